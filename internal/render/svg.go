// Package render draws board snapshots as SVG for clients that cannot run
// the 3D scene.
package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"
	"github.com/benbeisheim/archess-backend/internal/model"
)

const SquareSize = 64

const (
	lightSquare     = "#f0d9b5"
	darkSquare      = "#b58863"
	highlightSquare = "#cdd26a"
)

var glyphs = map[model.Team]map[model.PieceType]string{
	model.White: {
		model.King: "♔", model.Queen: "♕", model.Rook: "♖",
		model.Bishop: "♗", model.Knight: "♘", model.Pawn: "♙",
	},
	model.Black: {
		model.King: "♚", model.Queen: "♛", model.Rook: "♜",
		model.Bishop: "♝", model.Knight: "♞", model.Pawn: "♟",
	},
}

// Board writes b to w with White at the bottom. Squares in highlights are
// tinted.
func Board(w io.Writer, b *model.Board, highlights []model.Square) {
	marked := make(map[model.Square]bool, len(highlights))
	for _, sq := range highlights {
		marked[sq] = true
	}

	size := model.BoardSize * SquareSize
	canvas := svg.New(w)
	canvas.Start(size, size)
	for y := 0; y < model.BoardSize; y++ {
		row := model.BoardSize - 1 - y
		for x := 0; x < model.BoardSize; x++ {
			sq := model.Square{X: x, Y: y}
			fill := lightSquare
			if (x+y)%2 == 0 {
				fill = darkSquare
			}
			if marked[sq] {
				fill = highlightSquare
			}
			canvas.Rect(x*SquareSize, row*SquareSize, SquareSize, SquareSize, "fill:"+fill)

			p := b.Get(sq)
			if p == nil {
				continue
			}
			canvas.Text(
				x*SquareSize+SquareSize/2,
				row*SquareSize+SquareSize*3/4,
				glyphs[p.Team][p.Type],
				fmt.Sprintf("text-anchor:middle;font-size:%dpx;font-family:serif", SquareSize*3/4),
			)
		}
	}
	canvas.End()
}
