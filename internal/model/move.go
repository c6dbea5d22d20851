package model

import "golang.org/x/exp/slices"

type SpecialMove string

const (
	SpecialNone      SpecialMove = "none"
	SpecialEnPassant SpecialMove = "enPassant"
	SpecialCastling  SpecialMove = "castling"
	SpecialPromotion SpecialMove = "promotion"
)

// MoveRecord is one committed move. The history of a game is an append-only
// slice of these.
type MoveRecord struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

type CastleRookMove struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

// SpecialEffect describes what ApplySpecialMove actually did to the board.
type SpecialEffect struct {
	Kind       SpecialMove
	Captured   *Piece
	Promoted   *Piece
	CastleRook *CastleRookMove
}

type MoveResult struct {
	Success   bool            `json:"success"`
	From      Square          `json:"from"`
	To        Square          `json:"to"`
	Captured  *Piece          `json:"capturedPiece"`
	Special   SpecialMove     `json:"specialMove"`
	Castle    *CastleRookMove `json:"castleRookMove"`
	Promoted  *Piece          `json:"promotedPiece"`
	Check     bool            `json:"check"`
	Checkmate *Team           `json:"checkmate"`
}

func lastMove(history []MoveRecord) (MoveRecord, bool) {
	if len(history) == 0 {
		return MoveRecord{}, false
	}
	return history[len(history)-1], true
}

// ContainsValidMove reports whether sq is one of moves.
func ContainsValidMove(moves []Square, sq Square) bool {
	return slices.Contains(moves, sq)
}
