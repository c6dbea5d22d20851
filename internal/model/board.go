package model

import (
	"encoding/json"
	"fmt"
)

const BoardSize = 8

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

func (p PieceType) glyph() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return "P"
	}
	return "?"
}

// Glyph returns the single letter used for the piece type, upper case for
// White and lower case for Black.
func (p Piece) Glyph() string {
	g := p.Type.glyph()
	if p.Team == Black {
		return string(g[0] + ('a' - 'A'))
	}
	return g
}

type Team string

const (
	White Team = "white"
	Black Team = "black"
)

func (t Team) Opponent() Team {
	if t == White {
		return Black
	}
	return White
}

// forward is the direction a team's pawns advance along Y.
func (t Team) forward() int {
	if t == White {
		return 1
	}
	return -1
}

func (t Team) homeRank() int {
	if t == White {
		return 0
	}
	return BoardSize - 1
}

func (t Team) pawnRank() int {
	return t.homeRank() + t.forward()
}

func (t Team) lastRank() int {
	return BoardSize - 1 - t.homeRank()
}

type Square struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (s Square) Valid() bool {
	return s.X >= 0 && s.X < BoardSize && s.Y >= 0 && s.Y < BoardSize
}

func (s Square) add(dx, dy int) Square {
	return Square{X: s.X + dx, Y: s.Y + dy}
}

// String renders the square as file letter and rank number, White's home
// rank being 1.
func (s Square) String() string {
	if !s.Valid() {
		return fmt.Sprintf("(%d,%d)", s.X, s.Y)
	}
	return fmt.Sprintf("%c%d", 'a'+s.X, s.Y+1)
}

type Piece struct {
	Type   PieceType `json:"type"`
	Team   Team      `json:"team"`
	Square Square    `json:"square"`
}

// Board is the 8x8 grid of pieces, indexed [y][x]. The zero value is an
// empty board.
type Board struct {
	squares [BoardSize][BoardSize]*Piece
}

func NewBoard() *Board {
	return &Board{}
}

// NewStartingBoard returns the standard opening setup.
func NewStartingBoard() *Board {
	b := NewBoard()
	backRank := []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for _, team := range []Team{White, Black} {
		for x, t := range backRank {
			b.Set(Square{X: x, Y: team.homeRank()}, &Piece{Type: t, Team: team})
			b.Set(Square{X: x, Y: team.pawnRank()}, &Piece{Type: Pawn, Team: team})
		}
	}
	return b
}

func mustBeOnBoard(sq Square) {
	if !sq.Valid() {
		panic(fmt.Errorf("square %s: %w", sq, ErrOutOfBounds))
	}
}

func (b *Board) Get(sq Square) *Piece {
	mustBeOnBoard(sq)
	return b.squares[sq.Y][sq.X]
}

// Set places p on sq, or clears sq when p is nil. The piece's Square field is
// updated to match.
func (b *Board) Set(sq Square, p *Piece) {
	mustBeOnBoard(sq)
	if p != nil {
		p.Square = sq
	}
	b.squares[sq.Y][sq.X] = p
}

// move relocates whatever stands on from to to, overwriting to.
func (b *Board) move(from, to Square) *Piece {
	p := b.Get(from)
	b.Set(from, nil)
	b.Set(to, p)
	return p
}

func (b *Board) FindKing(team Team) (Square, bool) {
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			p := b.squares[y][x]
			if p != nil && p.Type == King && p.Team == team {
				return Square{X: x, Y: y}, true
			}
		}
	}
	return Square{}, false
}

// Pieces lists a team's pieces in scan order (rank by rank from y=0).
func (b *Board) Pieces(team Team) []*Piece {
	pieces := []*Piece{}
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			if p := b.squares[y][x]; p != nil && p.Team == team {
				pieces = append(pieces, p)
			}
		}
	}
	return pieces
}

// Clone returns a deep copy. Pieces are copied by value, so mutating the
// clone never reaches the original.
func (b *Board) Clone() *Board {
	c := &Board{}
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			if p := b.squares[y][x]; p != nil {
				cp := *p
				c.squares[y][x] = &cp
			}
		}
	}
	return c
}

// Equal reports whether both boards hold the same piece values on the same
// squares.
func (b *Board) Equal(o *Board) bool {
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			p, q := b.squares[y][x], o.squares[y][x]
			if (p == nil) != (q == nil) {
				return false
			}
			if p != nil && *p != *q {
				return false
			}
		}
	}
	return true
}

// Rows returns the grid as rows, y=0 first, for serialization.
func (b *Board) Rows() [][]*Piece {
	rows := make([][]*Piece, 0, BoardSize)
	for y := 0; y < BoardSize; y++ {
		row := make([]*Piece, BoardSize)
		copy(row, b.squares[y][:])
		rows = append(rows, row)
	}
	return rows
}

func (b *Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Rows())
}

// String draws the board with Black's home rank on top, '.' for empty squares.
func (b *Board) String() string {
	out := make([]byte, 0, (BoardSize+1)*BoardSize)
	for y := BoardSize - 1; y >= 0; y-- {
		for x := 0; x < BoardSize; x++ {
			if p := b.squares[y][x]; p != nil {
				out = append(out, p.Glyph()...)
			} else {
				out = append(out, '.')
			}
		}
		out = append(out, '\n')
	}
	return string(out)
}
