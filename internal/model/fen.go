package model

import (
	"fmt"

	"github.com/notnil/chess"
)

var fenPieceTypes = map[chess.PieceType]PieceType{
	chess.King:   King,
	chess.Queen:  Queen,
	chess.Rook:   Rook,
	chess.Bishop: Bishop,
	chess.Knight: Knight,
	chess.Pawn:   Pawn,
}

func teamFromColor(c chess.Color) Team {
	if c == chess.Black {
		return Black
	}
	return White
}

// BoardFromFEN parses the piece placement and side to move of a FEN string.
// Castling rights and the en passant square are not carried over: castling
// follows from pieces standing on their home squares, and en passant needs a
// recorded double advance.
func BoardFromFEN(fen string) (*Board, Team, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrInvalidFEN, err)
	}
	pos := chess.NewGame(opt).Position()

	b := NewBoard()
	for sq, pc := range pos.Board().SquareMap() {
		t, ok := fenPieceTypes[pc.Type()]
		if !ok {
			continue
		}
		b.Set(Square{X: int(sq.File()), Y: int(sq.Rank())}, &Piece{Type: t, Team: teamFromColor(pc.Color())})
	}
	for _, team := range []Team{White, Black} {
		if _, ok := b.FindKing(team); !ok {
			return nil, "", fmt.Errorf("%w: %s: %w", ErrInvalidFEN, team, ErrMissingKing)
		}
	}
	return b, teamFromColor(pos.Turn()), nil
}
