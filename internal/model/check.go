package model

import "fmt"

// attacks reports whether any piece of team generates a move onto target.
func attacks(b *Board, team Team, target Square) bool {
	for _, p := range b.Pieces(team) {
		if ContainsValidMove(GenerateMoves(b, p), target) {
			return true
		}
	}
	return false
}

// InCheck reports whether team's king is attacked on b. A board without that
// king is corrupt and panics.
func InCheck(b *Board, team Team) bool {
	king, ok := b.FindKing(team)
	if !ok {
		panic(fmt.Errorf("%s: %w", team, ErrMissingKing))
	}
	return attacks(b, team.Opponent(), king)
}

// simulate plays from->to on a clone of b. A pawn moving diagonally onto an
// empty square takes the pawn it bypassed.
func simulate(b *Board, from, to Square) *Board {
	sim := b.Clone()
	p := sim.Get(from)
	if p.Type == Pawn && from.X != to.X && sim.Get(to) == nil {
		sim.Set(Square{X: to.X, Y: from.Y}, nil)
	}
	sim.move(from, to)
	return sim
}

// FilterLegalMoves drops every candidate that would leave p's own king in
// check. The result keeps the candidates' order and is always a subset of
// them.
func FilterLegalMoves(b *Board, p *Piece, candidates []Square) []Square {
	legal := []Square{}
	for _, to := range candidates {
		sim := simulate(b, p.Square, to)
		if !InCheck(sim, p.Team) {
			legal = append(legal, to)
		}
	}
	return legal
}

// LegalMoves is the full pipeline for one piece: generated moves, special
// destinations, then the check filter.
func LegalMoves(b *Board, history []MoveRecord, p *Piece) []Square {
	_, candidates := DetectSpecialMove(b, history, GenerateMoves(b, p), p)
	return FilterLegalMoves(b, p, candidates)
}

func hasLegalMove(b *Board, history []MoveRecord, team Team) bool {
	for _, p := range b.Pieces(team) {
		if len(LegalMoves(b, history, p)) > 0 {
			return true
		}
	}
	return false
}

// IsCheckmate reports whether the team that did not make the last move is in
// check with no legal move for any of its pieces.
func IsCheckmate(b *Board, history []MoveRecord) bool {
	last, ok := lastMove(history)
	if !ok {
		return false
	}
	mover := b.Get(last.To)
	if mover == nil {
		return false
	}
	defending := mover.Team.Opponent()
	if !InCheck(b, defending) {
		return false
	}
	return !hasLegalMove(b, history, defending)
}
