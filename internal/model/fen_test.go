package model

import (
	"errors"
	"testing"
)

func TestBoardFromFEN(t *testing.T) {
	b, turn, err := BoardFromFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	if err != nil {
		t.Fatalf("BoardFromFEN: %v", err)
	}
	if turn != White {
		t.Fatalf("expected white to move, got %s", turn)
	}
	if !b.Equal(NewStartingBoard()) {
		t.Fatalf("FEN start position differs from the starting board:\n%s", b)
	}

	_, turn, err = BoardFromFEN("4k3/8/8/8/8/8/8/4K3 b - - 0 1")
	if err != nil || turn != Black {
		t.Fatalf("expected black to move, got %s (%v)", turn, err)
	}
}

func TestBoardFromFENErrors(t *testing.T) {
	if _, _, err := BoardFromFEN("not a fen"); !errors.Is(err, ErrInvalidFEN) {
		t.Fatalf("expected ErrInvalidFEN for garbage input, got %v", err)
	}
	if _, _, err := BoardFromFEN("8/8/8/8/8/8/8/4K3 w - - 0 1"); !errors.Is(err, ErrInvalidFEN) {
		t.Fatalf("expected ErrInvalidFEN for a position without a black king, got %v", err)
	}
}
