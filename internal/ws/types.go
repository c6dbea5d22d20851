package ws

import (
	"encoding/json"

	"github.com/benbeisheim/archess-backend/internal/model"
)

// MessageType names a websocket message kind.
type MessageType string

const (
	// client -> server
	MessageTypeSelect   MessageType = "select"
	MessageTypeDeselect MessageType = "deselect"
	MessageTypeMove     MessageType = "move"
	MessageTypeReset    MessageType = "reset"

	// server -> client
	MessageTypeGameState     MessageType = "gameState"
	MessageTypeLegalMoves    MessageType = "legalMoves"
	MessageTypeMoveResult    MessageType = "moveResult"
	MessageTypePieceCaptured MessageType = "pieceCaptured"
	MessageTypePiecePromoted MessageType = "piecePromoted"
	MessageTypeCastled       MessageType = "castled"
	MessageTypeCheckmate     MessageType = "checkmate"
	MessageTypeError         MessageType = "error"
)

// Message is the envelope for every websocket frame in both directions.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type SelectPayload struct {
	Square model.Square `json:"square"`
}

type MovePayload struct {
	From model.Square `json:"from"`
	To   model.Square `json:"to"`
}

type LegalMovesPayload struct {
	Square model.Square   `json:"square"`
	Moves  []model.Square `json:"moves"`
}

type PieceCapturedPayload struct {
	Piece          model.Piece `json:"piece"`
	DeathSlotIndex int         `json:"deathSlotIndex"`
}

type PiecePromotedPayload struct {
	Square  model.Square    `json:"square"`
	NewType model.PieceType `json:"newType"`
}

type CastledPayload struct {
	RookFrom model.Square `json:"rookFrom"`
	RookTo   model.Square `json:"rookTo"`
}

type CheckmatePayload struct {
	Winner model.Team `json:"winner"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

func NewMessage(t MessageType, payload any) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: raw}, nil
}

// Decode unmarshals the payload into v.
func (m Message) Decode(v any) error {
	return json.Unmarshal(m.Payload, v)
}
