package model

// Observer receives the notifications a presentation layer needs to keep its
// visuals in step with the board. Calls arrive after the move is committed,
// in the order the effects happened.
type Observer interface {
	OnPieceCaptured(p Piece, deathSlotIndex int)
	OnPiecePromoted(sq Square, newType PieceType)
	OnCastled(rookFrom, rookTo Square)
	OnCheckmate(winner Team)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	PieceCaptured func(p Piece, deathSlotIndex int)
	PiecePromoted func(sq Square, newType PieceType)
	Castled       func(rookFrom, rookTo Square)
	Checkmate     func(winner Team)
}

func (f ObserverFuncs) OnPieceCaptured(p Piece, deathSlotIndex int) {
	if f.PieceCaptured != nil {
		f.PieceCaptured(p, deathSlotIndex)
	}
}

func (f ObserverFuncs) OnPiecePromoted(sq Square, newType PieceType) {
	if f.PiecePromoted != nil {
		f.PiecePromoted(sq, newType)
	}
}

func (f ObserverFuncs) OnCastled(rookFrom, rookTo Square) {
	if f.Castled != nil {
		f.Castled(rookFrom, rookTo)
	}
}

func (f ObserverFuncs) OnCheckmate(winner Team) {
	if f.Checkmate != nil {
		f.Checkmate(winner)
	}
}
