package model

type direction struct{ dx, dy int }

var (
	rookDirs   = []direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirs = []direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	queenDirs  = append(append([]direction{}, rookDirs...), bishopDirs...)
	knightDirs = []direction{{1, 2}, {2, 1}, {-1, 2}, {-2, 1}, {1, -2}, {2, -1}, {-1, -2}, {-2, -1}}
	kingDirs   = queenDirs
)

type generator func(b *Board, p *Piece) []Square

var generators = map[PieceType]generator{
	Pawn:   pawnMoves,
	Rook:   func(b *Board, p *Piece) []Square { return slideMoves(b, p, rookDirs) },
	Bishop: func(b *Board, p *Piece) []Square { return slideMoves(b, p, bishopDirs) },
	Queen:  func(b *Board, p *Piece) []Square { return slideMoves(b, p, queenDirs) },
	Knight: func(b *Board, p *Piece) []Square { return stepMoves(b, p, knightDirs) },
	King:   func(b *Board, p *Piece) []Square { return stepMoves(b, p, kingDirs) },
}

// GenerateMoves returns the candidate destinations of p on b, in a fixed
// order. Candidates may leave the mover's own king in check, and special
// moves are not included.
func GenerateMoves(b *Board, p *Piece) []Square {
	gen, ok := generators[p.Type]
	if !ok {
		return []Square{}
	}
	return gen(b, p)
}

func pawnMoves(b *Board, p *Piece) []Square {
	moves := []Square{}
	dy := p.Team.forward()
	one := p.Square.add(0, dy)
	if !one.Valid() {
		return moves
	}
	// Check move forward 1
	if b.Get(one) == nil {
		moves = append(moves, one)
		// Check move forward 2 from the starting rank
		two := p.Square.add(0, 2*dy)
		if p.Square.Y == p.Team.pawnRank() && b.Get(two) == nil {
			moves = append(moves, two)
		}
	}
	for _, dx := range []int{-1, 1} {
		target := p.Square.add(dx, dy)
		if !target.Valid() {
			continue
		}
		if other := b.Get(target); other != nil && other.Team != p.Team {
			moves = append(moves, target)
		}
	}
	return moves
}

func slideMoves(b *Board, p *Piece, dirs []direction) []Square {
	moves := []Square{}
	for _, dir := range dirs {
		target := p.Square.add(dir.dx, dir.dy)
		for target.Valid() {
			other := b.Get(target)
			if other == nil {
				moves = append(moves, target)
			} else {
				if other.Team != p.Team {
					moves = append(moves, target)
				}
				break
			}
			target = target.add(dir.dx, dir.dy)
		}
	}
	return moves
}

func stepMoves(b *Board, p *Piece, dirs []direction) []Square {
	moves := []Square{}
	for _, dir := range dirs {
		target := p.Square.add(dir.dx, dir.dy)
		if !target.Valid() {
			continue
		}
		if other := b.Get(target); other == nil || other.Team != p.Team {
			moves = append(moves, target)
		}
	}
	return moves
}
