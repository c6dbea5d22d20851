package model

import "errors"

var (
	ErrOutOfBounds       = errors.New("square out of bounds")
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrIllegalMove       = errors.New("illegal move")
	ErrNoPieceSelected   = errors.New("no piece at square")
	ErrWrongTurn         = errors.New("not your turn")
	ErrGameOver          = errors.New("game is over")
	ErrMissingKing       = errors.New("king missing from board")
	ErrInvalidFEN        = errors.New("invalid FEN")
)
