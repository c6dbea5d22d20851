package ws

import (
	"sync"

	"github.com/gofiber/websocket/v2"
)

// Client wraps a connection so that only one goroutine writes to it at a
// time. Hub broadcasts and a client's own replies both write through it.
type Client struct {
	conn Conn
	mu   sync.Mutex
}

func NewClient(conn Conn) *Client {
	return &Client{conn: conn}
}

func (c *Client) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

func (c *Client) WriteMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(messageType, data)
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// CloseWithReason sends a close frame carrying reason and closes the
// connection.
func (c *Client) CloseWithReason(reason string) {
	c.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason),
	)
	c.Close()
}
