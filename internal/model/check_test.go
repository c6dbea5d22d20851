package model

import (
	"testing"

	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/exp/slices"
)

func TestStartingPositionHasTwentyLegalMoves(t *testing.T) {
	b := NewStartingBoard()
	total, pawnMoves, knightMoves := 0, 0, 0
	for _, p := range b.Pieces(White) {
		n := len(LegalMoves(b, nil, p))
		total += n
		switch p.Type {
		case Pawn:
			pawnMoves += n
		case Knight:
			knightMoves += n
		}
	}
	if total != 20 || pawnMoves != 16 || knightMoves != 4 {
		t.Fatalf("expected 20 legal moves (16 pawn, 4 knight), got %d (%d pawn, %d knight)", total, pawnMoves, knightMoves)
	}
}

func TestKnightLegalMovesFromStart(t *testing.T) {
	b := NewStartingBoard()
	got := LegalMoves(b, nil, b.Get(Square{X: 1, Y: 0}))
	want := []Square{{X: 0, Y: 2}, {X: 2, Y: 2}}
	if !sameSquares(got, want) {
		t.Fatalf("knight b1 expected %v but got %v", want, got)
	}
}

func TestFilterLegalMovesIsSubset(t *testing.T) {
	for _, fen := range movegenPositions {
		b, turn := mustFEN(t, fen)
		for _, p := range b.Pieces(turn) {
			candidates := GenerateMoves(b, p)
			for _, to := range FilterLegalMoves(b, p, candidates) {
				if !slices.Contains(candidates, to) {
					t.Fatalf("%s: filtered move %s of %s not among candidates %v", fen, to, p.Square, candidates)
				}
			}
		}
	}
}

func TestPinnedPieceHasNoLegalMoves(t *testing.T) {
	b, _ := mustFEN(t, "4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1")
	bishop := b.Get(sq(t, "e2"))
	if len(GenerateMoves(b, bishop)) == 0 {
		t.Fatalf("expected the pinned bishop to have candidate moves")
	}
	if moves := LegalMoves(b, nil, bishop); len(moves) != 0 {
		t.Fatalf("pinned bishop expected no legal moves, got %v", moves)
	}

	king := b.Get(sq(t, "e1"))
	want := []Square{sq(t, "d1"), sq(t, "f1"), sq(t, "d2"), sq(t, "f2")}
	if got := LegalMoves(b, nil, king); !sameSquares(got, want) {
		t.Fatalf("king expected %v but got %v", want, got)
	}
}

func TestKingCannotCaptureDefendedPiece(t *testing.T) {
	b, _ := mustFEN(t, "4k3/8/8/8/8/3b4/4r3/4K3 w - - 0 1")
	if !InCheck(b, White) {
		t.Fatalf("expected white to be in check")
	}
	king := b.Get(sq(t, "e1"))
	want := []Square{sq(t, "d1"), sq(t, "f1")}
	if got := LegalMoves(b, nil, king); !sameSquares(got, want) {
		t.Fatalf("king expected %v but got %v", want, got)
	}
}

func TestCheckWithEscapeIsNotCheckmate(t *testing.T) {
	b, _ := mustFEN(t, "4k3/8/8/8/8/8/8/4K2r w - - 0 1")
	history := []MoveRecord{{From: sq(t, "h8"), To: sq(t, "h1")}}
	if !InCheck(b, White) {
		t.Fatalf("expected white king to be attacked")
	}
	if IsCheckmate(b, history) {
		t.Fatalf("king with escape squares reported as checkmate")
	}
}

func TestNotInCheckIsNotCheckmate(t *testing.T) {
	b, _ := mustFEN(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	if IsCheckmate(b, []MoveRecord{{From: sq(t, "e7"), To: sq(t, "e8")}}) {
		t.Fatalf("bare kings reported as checkmate")
	}
	if IsCheckmate(b, nil) {
		t.Fatalf("empty history reported as checkmate")
	}
}

func TestFoolsMateIsCheckmate(t *testing.T) {
	var mated *Team
	g := NewGame(WithObserver(ObserverFuncs{
		Checkmate: func(winner Team) { mated = &winner },
	}))
	res := play(t, g,
		[2]string{"f2", "f3"},
		[2]string{"e7", "e5"},
		[2]string{"g2", "g4"},
		[2]string{"d8", "h4"},
	)
	if res.Checkmate == nil || *res.Checkmate != Black {
		t.Fatalf("expected checkmate by black, got %+v", res)
	}
	if !res.Check {
		t.Fatalf("expected the result to report check")
	}
	if mated == nil || *mated != Black {
		t.Fatalf("OnCheckmate not raised for black")
	}
	b := g.Board()
	if !IsCheckmate(b, g.State().History) {
		t.Fatalf("IsCheckmate disagrees with the game result")
	}
	for _, p := range b.Pieces(White) {
		if moves := LegalMoves(b, g.State().History, p); len(moves) != 0 {
			t.Fatalf("white %s at %s still has moves %v", p.Type, p.Square, moves)
		}
	}
}

func TestBackRankMate(t *testing.T) {
	g := mustGameFEN(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	res := play(t, g, [2]string{"a1", "a8"})
	if res.Checkmate == nil || *res.Checkmate != White {
		t.Fatalf("expected checkmate by white, got %+v", res)
	}
	if winner, ok := g.Winner(); !ok || winner != White {
		t.Fatalf("expected white recorded as winner, got %q (%t)", winner, ok)
	}
}

func legalMoveSet(b *Board, turn Team) map[MoveRecord]bool {
	set := map[MoveRecord]bool{}
	for _, p := range b.Pieces(turn) {
		for _, to := range LegalMoves(b, nil, p) {
			set[MoveRecord{From: p.Square, To: to}] = true
		}
	}
	return set
}

func squareFromIndex(i uint8) Square {
	return Square{X: int(i % 8), Y: int(i / 8)}
}

// TestLegalMovesMatchDragontooth compares full legal move sets against an
// independent bitboard generator. Promotions collapse to one destination.
func TestLegalMovesMatchDragontooth(t *testing.T) {
	for _, fen := range movegenPositions {
		t.Run(fen, func(t *testing.T) {
			b, turn := mustFEN(t, fen)
			got := legalMoveSet(b, turn)

			ref := dragontoothmg.ParseFen(fen)
			want := map[MoveRecord]bool{}
			for _, m := range ref.GenerateLegalMoves() {
				want[MoveRecord{From: squareFromIndex(m.From()), To: squareFromIndex(m.To())}] = true
			}

			for m := range want {
				if !got[m] {
					t.Errorf("missing move %s-%s", m.From, m.To)
				}
			}
			for m := range got {
				if !want[m] {
					t.Errorf("extra move %s-%s", m.From, m.To)
				}
			}
		})
	}
}

func perft(b *Board, history []MoveRecord, turn Team, depth int) int {
	if depth == 0 {
		return 1
	}
	nodes := 0
	for _, p := range b.Pieces(turn) {
		from := p.Square
		for _, to := range LegalMoves(b, history, p) {
			next := b.Clone()
			mover := next.Get(from)
			special, _ := DetectSpecialMove(next, history, GenerateMoves(next, mover), mover)
			next.move(from, to)
			h := append(slices.Clone(history), MoveRecord{From: from, To: to})
			ApplySpecialMove(next, h, special)
			nodes += perft(next, h, turn.Opponent(), depth-1)
		}
	}
	return nodes
}

func TestPerftInitialPosition(t *testing.T) {
	b := NewStartingBoard()
	if got := perft(b, nil, White, 1); got != 20 {
		t.Fatalf("perft depth1: got %d want %d", got, 20)
	}
	if got := perft(b, nil, White, 2); got != 400 {
		t.Fatalf("perft depth2: got %d want %d", got, 400)
	}
	if testing.Short() {
		return
	}
	if got := perft(b, nil, White, 3); got != 8902 {
		t.Fatalf("perft depth3: got %d want %d", got, 8902)
	}
}
