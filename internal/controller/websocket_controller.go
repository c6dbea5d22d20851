package controller

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/benbeisheim/archess-backend/internal/middleware"
	"github.com/benbeisheim/archess-backend/internal/service"
	"github.com/benbeisheim/archess-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection serves one client of a game until its connection closes.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID, _ := c.Locals(middleware.PlayerIDKey).(string)
	client := ws.NewClient(c)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, client); err != nil {
		log.Warnf("game %s: failed to register connection for %s: %v", gameID, playerID, err)
		if !errors.Is(err, service.ErrAlreadyConnected) {
			wsc.sendError(client, err)
			client.Close()
		}
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, client)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugf("game %s: read error for %s: %v", gameID, playerID, err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Debugf("game %s: parse error: %v", gameID, err)
			wsc.sendError(client, fmt.Errorf("invalid message: %w", err))
			continue
		}

		reply, err := wsc.handleMessage(gameID, playerID, msg)
		if err != nil {
			wsc.sendError(client, err)
			continue
		}
		if reply != nil {
			client.WriteJSON(reply)
		}
	}
}

// handleMessage applies one client message. State changes reach every client
// through the game's hub; the returned message goes to the sender only.
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) (*ws.Message, error) {
	switch msg.Type {
	case ws.MessageTypeSelect:
		var payload ws.SelectPayload
		if err := msg.Decode(&payload); err != nil {
			return nil, err
		}
		moves, err := wsc.gameService.SelectPiece(gameID, playerID, payload.Square)
		if err != nil {
			return nil, err
		}
		reply, err := ws.NewMessage(ws.MessageTypeLegalMoves, ws.LegalMovesPayload{Square: payload.Square, Moves: moves})
		return &reply, err

	case ws.MessageTypeDeselect:
		return nil, wsc.gameService.DeselectPiece(gameID, playerID)

	case ws.MessageTypeMove:
		var payload ws.MovePayload
		if err := msg.Decode(&payload); err != nil {
			return nil, err
		}
		res, err := wsc.gameService.HandleMove(gameID, playerID, payload.From, payload.To)
		if err != nil {
			return nil, err
		}
		reply, err := ws.NewMessage(ws.MessageTypeMoveResult, res)
		return &reply, err

	case ws.MessageTypeReset:
		return nil, wsc.gameService.ResetGame(gameID)

	default:
		return nil, fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

// HandleMatchmaking waits for the player's match and sends it as one message.
// Closing the connection first takes the player out of the queue.
func (wsc *WebSocketController) HandleMatchmaking(c *websocket.Conn) {
	playerID, _ := c.Locals(middleware.PlayerIDKey).(string)

	ch := make(chan string, 1)
	wsc.gameService.RegisterMatchmakingChannel(playerID, ch)

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case event, ok := <-ch:
		if !ok {
			return
		}
		if err := c.WriteMessage(websocket.TextMessage, []byte(event)); err != nil {
			log.Warnf("matchmaking: failed to notify %s: %v", playerID, err)
		}
		c.Close()
	case <-closed:
		wsc.gameService.LeaveMatchmaking(playerID)
	}
}

func (wsc *WebSocketController) sendError(c *ws.Client, err error) {
	msg, encErr := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: err.Error()})
	if encErr != nil {
		return
	}
	c.WriteJSON(msg)
}
