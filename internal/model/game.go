package model

import (
	"fmt"
	"sync"

	"github.com/gofiber/fiber/v2/log"
	"golang.org/x/exp/slices"
)

// GameState is the turn and the committed move history.
type GameState struct {
	Turn    Team         `json:"turn"`
	History []MoveRecord `json:"history"`
}

// CapturedPieces holds the dead pieces of each team in capture order. A
// piece's index in its slice is its death slot.
type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

// GameView is a read-only snapshot of a game for clients.
type GameView struct {
	ID             string         `json:"id"`
	Board          *Board         `json:"board"`
	Turn           Team           `json:"turn"`
	History        []MoveRecord   `json:"history"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	IsCheck        bool           `json:"isCheck"`
	SelectedSquare *Square        `json:"selectedSquare"`
	LegalMoves     []Square       `json:"legalMoves"`
	Winner         *Team          `json:"winner"`
	Players        Players        `json:"players"`
}

// Game owns the authoritative board of one game and is the only thing that
// mutates it. All exported methods are safe for concurrent use.
type Game struct {
	ID string
	mu sync.Mutex

	board    *Board
	state    GameState
	captured CapturedPieces
	players  Players

	selected   *Square
	legalMoves []Square
	winner     *Team
	// generation changes on every mutation so a selection computed off-lock
	// against an older position is discarded.
	generation uint64

	initialBoard *Board
	initialTurn  Team
	observer     Observer
}

type Option func(*Game)

func WithID(id string) Option {
	return func(g *Game) { g.ID = id }
}

func WithObserver(o Observer) Option {
	return func(g *Game) { g.observer = o }
}

// WithPosition starts the game (and every reset) from b with turn to move.
func WithPosition(b *Board, turn Team) Option {
	return func(g *Game) {
		g.initialBoard = b.Clone()
		g.initialTurn = turn
	}
}

func NewGame(opts ...Option) *Game {
	g := &Game{
		initialBoard: NewStartingBoard(),
		initialTurn:  White,
		observer:     ObserverFuncs{},
	}
	for _, opt := range opts {
		opt(g)
	}
	g.reset()
	return g
}

// NewGameFromFEN starts a game from a FEN position.
func NewGameFromFEN(fen string, opts ...Option) (*Game, error) {
	b, turn, err := BoardFromFEN(fen)
	if err != nil {
		return nil, err
	}
	return NewGame(append(opts, WithPosition(b, turn))...), nil
}

func (g *Game) reset() {
	g.board = g.initialBoard.Clone()
	g.state = GameState{Turn: g.initialTurn, History: make([]MoveRecord, 0)}
	g.captured = CapturedPieces{White: make([]Piece, 0), Black: make([]Piece, 0)}
	g.clearSelection()
	g.winner = nil
	g.generation++
}

// Reset puts the game back to its starting position, clearing history,
// captured pieces, selection and winner. Seated players keep their seats.
func (g *Game) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	log.Infof("game %s: reset", g.ID)
	g.reset()
}

func (g *Game) State() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return GameState{Turn: g.state.Turn, History: slices.Clone(g.state.History)}
}

// Board returns a copy of the current board.
func (g *Game) Board() *Board {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.Clone()
}

func (g *Game) View() GameView {
	g.mu.Lock()
	defer g.mu.Unlock()

	view := GameView{
		ID:      g.ID,
		Board:   g.board.Clone(),
		Turn:    g.state.Turn,
		History: slices.Clone(g.state.History),
		CapturedPieces: CapturedPieces{
			White: slices.Clone(g.captured.White),
			Black: slices.Clone(g.captured.Black),
		},
		IsCheck:    InCheck(g.board, g.state.Turn),
		LegalMoves: slices.Clone(g.legalMoves),
		Players:    g.players,
	}
	if g.selected != nil {
		sq := *g.selected
		view.SelectedSquare = &sq
	}
	if g.winner != nil {
		w := *g.winner
		view.Winner = &w
	}
	return view
}

func (g *Game) Winner() (Team, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.winner == nil {
		return "", false
	}
	return *g.winner, true
}

func (g *Game) clearSelection() {
	g.selected = nil
	g.legalMoves = make([]Square, 0)
}

// ClearSelection drops the selected piece and its highlighted moves.
func (g *Game) ClearSelection() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.clearSelection()
}

// SelectPiece selects the piece on sq and returns its legal moves. It returns
// an empty set and an error when sq is empty or holds a piece of the team not
// on move. Move generation runs on a snapshot without holding the lock.
func (g *Game) SelectPiece(sq Square) ([]Square, error) {
	if !sq.Valid() {
		return []Square{}, fmt.Errorf("select %s: %w", sq, ErrInvalidCoordinate)
	}

	g.mu.Lock()
	if g.winner != nil {
		g.mu.Unlock()
		return []Square{}, ErrGameOver
	}
	p := g.board.Get(sq)
	if p == nil {
		g.clearSelection()
		g.mu.Unlock()
		return []Square{}, fmt.Errorf("select %s: %w", sq, ErrNoPieceSelected)
	}
	if p.Team != g.state.Turn {
		g.clearSelection()
		g.mu.Unlock()
		return []Square{}, fmt.Errorf("select %s: %w", sq, ErrWrongTurn)
	}
	snapshot := g.board.Clone()
	history := slices.Clone(g.state.History)
	generation := g.generation
	g.mu.Unlock()

	moves := LegalMoves(snapshot, history, snapshot.Get(sq))

	g.mu.Lock()
	if g.generation == generation {
		g.selected = &sq
		g.legalMoves = slices.Clone(moves)
	}
	g.mu.Unlock()
	return moves, nil
}

// TryMove moves the piece on from to to. On any error the game is left
// exactly as it was and the result has Success false.
func (g *Game) TryMove(from, to Square) (MoveResult, error) {
	res := MoveResult{From: from, To: to, Special: SpecialNone}
	if !from.Valid() || !to.Valid() {
		return res, fmt.Errorf("move %s -> %s: %w", from, to, ErrInvalidCoordinate)
	}

	g.mu.Lock()
	events, err := g.commit(&res)
	observer := g.observer
	g.mu.Unlock()
	if err != nil {
		log.Debugf("game %s: rejected %s -> %s: %v", g.ID, from, to, err)
		return res, err
	}

	for _, notify := range events {
		notify(observer)
	}
	return res, nil
}

// commit validates and applies res.From -> res.To. Must hold g.mu. Returned
// events are delivered by the caller once the lock is released.
func (g *Game) commit(res *MoveResult) ([]func(Observer), error) {
	from, to := res.From, res.To
	if g.winner != nil {
		return nil, ErrGameOver
	}
	p := g.board.Get(from)
	if p == nil {
		return nil, fmt.Errorf("move %s -> %s: %w", from, to, ErrNoPieceSelected)
	}
	if p.Team != g.state.Turn {
		return nil, fmt.Errorf("move %s -> %s: %w", from, to, ErrWrongTurn)
	}
	if target := g.board.Get(to); target != nil && target.Team == p.Team {
		return nil, fmt.Errorf("move %s -> %s: own piece on target: %w", from, to, ErrIllegalMove)
	}

	moves := g.legalMoves
	if g.selected == nil || *g.selected != from {
		moves = LegalMoves(g.board, g.state.History, p)
	}
	if !ContainsValidMove(moves, to) {
		return nil, fmt.Errorf("move %s -> %s: %w", from, to, ErrIllegalMove)
	}
	special, _ := DetectSpecialMove(g.board, g.state.History, GenerateMoves(g.board, p), p)

	events := []func(Observer){}
	if target := g.board.Get(to); target != nil {
		dead, slot := g.bury(*target)
		res.Captured = &dead
		events = append(events, func(o Observer) { o.OnPieceCaptured(dead, slot) })
	}
	g.board.move(from, to)
	g.state.History = append(g.state.History, MoveRecord{From: from, To: to})
	g.state.Turn = g.state.Turn.Opponent()

	effect := ApplySpecialMove(g.board, g.state.History, special)
	res.Special = effect.Kind
	switch effect.Kind {
	case SpecialEnPassant:
		dead, slot := g.bury(*effect.Captured)
		res.Captured = &dead
		events = append(events, func(o Observer) { o.OnPieceCaptured(dead, slot) })
	case SpecialPromotion:
		promoted := *effect.Promoted
		res.Promoted = &promoted
		events = append(events, func(o Observer) { o.OnPiecePromoted(promoted.Square, promoted.Type) })
	case SpecialCastling:
		rook := *effect.CastleRook
		res.Castle = &rook
		events = append(events, func(o Observer) { o.OnCastled(rook.From, rook.To) })
	}

	res.Check = InCheck(g.board, g.state.Turn)
	if IsCheckmate(g.board, g.state.History) {
		winner := p.Team
		g.winner = &winner
		res.Checkmate = &winner
		events = append(events, func(o Observer) { o.OnCheckmate(winner) })
		log.Infof("game %s: checkmate, %s wins", g.ID, winner)
	}

	g.clearSelection()
	g.generation++
	res.Success = true
	log.Debugf("game %s: %s %s -> %s special=%s check=%t", g.ID, p.Team, from, to, res.Special, res.Check)
	return events, nil
}

// bury appends a captured piece to its team's dead list and returns the copy
// stored there with its slot index.
func (g *Game) bury(p Piece) (Piece, int) {
	if p.Team == White {
		g.captured.White = append(g.captured.White, p)
		return p, len(g.captured.White) - 1
	}
	g.captured.Black = append(g.captured.Black, p)
	return p, len(g.captured.Black) - 1
}
