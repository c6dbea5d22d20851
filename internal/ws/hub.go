package ws

import (
	"fmt"
	"sync"

	"github.com/benbeisheim/archess-backend/internal/model"
	"github.com/gofiber/fiber/v2/log"
)

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Hub holds the connections watching one game and fans game events out to
// them. It implements model.Observer.
type Hub struct {
	gameID      string
	mu          sync.RWMutex
	connections map[string]*Client // playerID -> connection
}

func NewHub(gameID string) *Hub {
	return &Hub{
		gameID:      gameID,
		connections: make(map[string]*Client),
	}
}

// Register adds conn for playerID. If the player already has a connection the
// new one is closed and Register returns false.
func (h *Hub) Register(playerID string, conn *Client) bool {
	h.mu.Lock()
	if _, exists := h.connections[playerID]; exists {
		h.mu.Unlock()
		conn.CloseWithReason("Connection already exists")
		return false
	}
	h.connections[playerID] = conn
	h.mu.Unlock()
	log.Infof("game %s: registered connection %p for player %s", h.gameID, conn, playerID)
	return true
}

// Unregister removes playerID's connection if it is still conn.
func (h *Hub) Unregister(playerID string, conn *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if current, exists := h.connections[playerID]; exists && current == conn {
		log.Infof("game %s: unregistering connection %p for player %s", h.gameID, conn, playerID)
		delete(h.connections, playerID)
	}
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// Send writes msg to a single player.
func (h *Hub) Send(playerID string, msg Message) error {
	h.mu.RLock()
	conn, ok := h.connections[playerID]
	h.mu.RUnlock()
	if !ok {
		return fmt.Errorf("player %s has no connection", playerID)
	}
	return conn.WriteJSON(msg)
}

// Broadcast writes msg to every connection. Connections that fail to write
// are dropped.
func (h *Hub) Broadcast(msg Message) {
	h.mu.RLock()
	active := make(map[string]*Client, len(h.connections))
	for playerID, conn := range h.connections {
		active[playerID] = conn
	}
	h.mu.RUnlock()

	failed := []string{}
	for playerID, conn := range active {
		if err := conn.WriteJSON(msg); err != nil {
			log.Warnf("game %s: failed to send %s to player %s: %v", h.gameID, msg.Type, playerID, err)
			failed = append(failed, playerID)
		}
	}
	if len(failed) == 0 {
		return
	}

	h.mu.Lock()
	for _, playerID := range failed {
		if h.connections[playerID] == active[playerID] {
			delete(h.connections, playerID)
		}
	}
	h.mu.Unlock()
}

// CloseAll closes every connection with reason and empties the hub.
func (h *Hub) CloseAll(reason string) {
	h.mu.Lock()
	active := h.connections
	h.connections = make(map[string]*Client)
	h.mu.Unlock()

	for playerID, conn := range active {
		log.Infof("game %s: closing connection for player %s: %s", h.gameID, playerID, reason)
		conn.CloseWithReason(reason)
	}
}

func (h *Hub) broadcastEvent(t MessageType, payload any) {
	msg, err := NewMessage(t, payload)
	if err != nil {
		log.Errorf("game %s: failed to encode %s: %v", h.gameID, t, err)
		return
	}
	h.Broadcast(msg)
}

// BroadcastState sends the full game view to every connection.
func (h *Hub) BroadcastState(view model.GameView) {
	h.broadcastEvent(MessageTypeGameState, view)
}

func (h *Hub) OnPieceCaptured(p model.Piece, deathSlotIndex int) {
	h.broadcastEvent(MessageTypePieceCaptured, PieceCapturedPayload{Piece: p, DeathSlotIndex: deathSlotIndex})
}

func (h *Hub) OnPiecePromoted(sq model.Square, newType model.PieceType) {
	h.broadcastEvent(MessageTypePiecePromoted, PiecePromotedPayload{Square: sq, NewType: newType})
}

func (h *Hub) OnCastled(rookFrom, rookTo model.Square) {
	h.broadcastEvent(MessageTypeCastled, CastledPayload{RookFrom: rookFrom, RookTo: rookTo})
}

func (h *Hub) OnCheckmate(winner model.Team) {
	h.broadcastEvent(MessageTypeCheckmate, CheckmatePayload{Winner: winner})
}
