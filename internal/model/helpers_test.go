package model

import (
	"testing"

	"golang.org/x/exp/slices"
)

// sq parses a square name like "e4".
func sq(t *testing.T, name string) Square {
	t.Helper()
	if len(name) != 2 {
		t.Fatalf("bad square name %q", name)
	}
	s := Square{X: int(name[0] - 'a'), Y: int(name[1] - '1')}
	if !s.Valid() {
		t.Fatalf("bad square name %q", name)
	}
	return s
}

func mustFEN(t *testing.T, fen string) (*Board, Team) {
	t.Helper()
	b, turn, err := BoardFromFEN(fen)
	if err != nil {
		t.Fatalf("BoardFromFEN(%q): %v", fen, err)
	}
	return b, turn
}

func mustGameFEN(t *testing.T, fen string, opts ...Option) *Game {
	t.Helper()
	g, err := NewGameFromFEN(fen, opts...)
	if err != nil {
		t.Fatalf("NewGameFromFEN(%q): %v", fen, err)
	}
	return g
}

func play(t *testing.T, g *Game, moves ...[2]string) MoveResult {
	t.Helper()
	var res MoveResult
	for _, m := range moves {
		var err error
		res, err = g.TryMove(sq(t, m[0]), sq(t, m[1]))
		if err != nil {
			t.Fatalf("move %s-%s: %v\n%s", m[0], m[1], err, g.Board())
		}
	}
	return res
}

func sameSquares(a, b []Square) bool {
	if len(a) != len(b) {
		return false
	}
	for _, s := range a {
		if !slices.Contains(b, s) {
			return false
		}
	}
	return true
}
