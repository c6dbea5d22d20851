package model

import "golang.org/x/exp/slices"

type castleSide struct {
	rookX   int
	kingTo  int
	rookTo  int
	between []int
}

var castleSides = []castleSide{
	{rookX: 0, kingTo: 2, rookTo: 3, between: []int{1, 2, 3}},
	{rookX: 7, kingTo: 6, rookTo: 5, between: []int{5, 6}},
}

const kingHomeFile = 4

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// DetectSpecialMove flags the special move p is eligible for and returns
// moves extended with the en passant or castling destinations. moves itself
// is not modified.
func DetectSpecialMove(b *Board, history []MoveRecord, moves []Square, p *Piece) (SpecialMove, []Square) {
	moves = slices.Clone(moves)
	switch p.Type {
	case Pawn:
		if target, ok := enPassantTarget(b, history, p); ok {
			return SpecialEnPassant, append(moves, target)
		}
		if p.Square.Y+p.Team.forward() == p.Team.lastRank() {
			return SpecialPromotion, moves
		}
	case King:
		if targets := castleTargets(b, history, p); len(targets) > 0 {
			return SpecialCastling, append(moves, targets...)
		}
	}
	return SpecialNone, moves
}

// enPassantTarget returns the capture square when the last move was an enemy
// pawn's double advance landing beside p.
func enPassantTarget(b *Board, history []MoveRecord, p *Piece) (Square, bool) {
	last, ok := lastMove(history)
	if !ok {
		return Square{}, false
	}
	enemy := b.Get(last.To)
	if enemy == nil || enemy.Type != Pawn || enemy.Team == p.Team {
		return Square{}, false
	}
	if abs(last.To.Y-last.From.Y) != 2 {
		return Square{}, false
	}
	if last.To.Y != p.Square.Y || abs(last.To.X-p.Square.X) != 1 {
		return Square{}, false
	}
	return Square{X: last.To.X, Y: p.Square.Y + p.Team.forward()}, true
}

// touched reports whether any recorded move started or ended on sq.
func touched(history []MoveRecord, sq Square) bool {
	return slices.IndexFunc(history, func(m MoveRecord) bool {
		return m.From == sq || m.To == sq
	}) >= 0
}

// castleTargets lists the king destinations for each side that can castle.
// The king must be unmoved and not in check, the rook unmoved, the squares
// between them empty, and the square the king crosses unattacked. The
// landing square is left to FilterLegalMoves.
func castleTargets(b *Board, history []MoveRecord, king *Piece) []Square {
	rank := king.Team.homeRank()
	home := Square{X: kingHomeFile, Y: rank}
	if king.Square != home || touched(history, home) {
		return nil
	}
	if InCheck(b, king.Team) {
		return nil
	}
	targets := []Square{}
	for _, side := range castleSides {
		rookSq := Square{X: side.rookX, Y: rank}
		rook := b.Get(rookSq)
		if rook == nil || rook.Type != Rook || rook.Team != king.Team || touched(history, rookSq) {
			continue
		}
		blocked := false
		for _, x := range side.between {
			if b.Get(Square{X: x, Y: rank}) != nil {
				blocked = true
				break
			}
		}
		if blocked {
			continue
		}
		if InCheck(simulate(b, home, Square{X: side.rookTo, Y: rank}), king.Team) {
			continue
		}
		targets = append(targets, Square{X: side.kingTo, Y: rank})
	}
	return targets
}

// ApplySpecialMove resolves the side effects of kind for the move at the end
// of history, which must already be on the board. Kind is only an
// eligibility flag, so the effect reports SpecialNone when the committed move
// did not actually use it.
func ApplySpecialMove(b *Board, history []MoveRecord, kind SpecialMove) SpecialEffect {
	none := SpecialEffect{Kind: SpecialNone}
	last, ok := lastMove(history)
	if !ok {
		return none
	}
	moved := b.Get(last.To)
	if moved == nil {
		return none
	}
	switch kind {
	case SpecialEnPassant:
		if moved.Type != Pawn || last.From.X == last.To.X || len(history) < 2 {
			return none
		}
		prev := history[len(history)-2]
		enemy := b.Get(prev.To)
		if enemy == nil || enemy.Type != Pawn || enemy.Team == moved.Team {
			return none
		}
		if enemy.Square.X != moved.Square.X || abs(enemy.Square.Y-moved.Square.Y) != 1 {
			return none
		}
		b.Set(enemy.Square, nil)
		return SpecialEffect{Kind: SpecialEnPassant, Captured: enemy}
	case SpecialPromotion:
		if moved.Type != Pawn || last.To.Y != moved.Team.lastRank() {
			return none
		}
		queen := &Piece{Type: Queen, Team: moved.Team}
		b.Set(last.To, queen)
		return SpecialEffect{Kind: SpecialPromotion, Promoted: queen}
	case SpecialCastling:
		if moved.Type != King || abs(last.To.X-last.From.X) != 2 {
			return none
		}
		for _, side := range castleSides {
			if side.kingTo != last.To.X {
				continue
			}
			rook := CastleRookMove{
				From: Square{X: side.rookX, Y: last.To.Y},
				To:   Square{X: side.rookTo, Y: last.To.Y},
			}
			if b.Get(rook.From) == nil {
				return none
			}
			b.move(rook.From, rook.To)
			return SpecialEffect{Kind: SpecialCastling, CastleRook: &rook}
		}
	}
	return none
}
