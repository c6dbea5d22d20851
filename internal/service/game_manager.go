package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/archess-backend/internal/model"
	"github.com/benbeisheim/archess-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"golang.org/x/exp/maps"
)

var (
	ErrGameNotFound  = errors.New("game not found")
	ErrGameExists    = errors.New("game already exists")
	ErrNotYourPiece  = errors.New("player does not control this team")
	ErrNotAuthorized = errors.New("not authorized to join this game")

	ErrAlreadyConnected = errors.New("player already has a connection to this game")
)

type MatchFoundEvent struct {
	GameID string     `json:"gameId"`
	Team   model.Team `json:"team"`
}

type gameEntry struct {
	game *model.Game
	hub  *ws.Hub
}

// GameManager owns every running game and its connection hub.
type GameManager struct {
	games            map[string]*gameEntry
	queue            *Queue
	matchingChannels map[string]chan string
	mu               sync.RWMutex
}

func NewGameManager() *GameManager {
	return &GameManager{
		games:            make(map[string]*gameEntry),
		queue:            NewQueue(),
		matchingChannels: make(map[string]chan string),
	}
}

// CreateGame registers a new game under gameID. An empty fen starts from the
// standard position.
func (gm *GameManager) CreateGame(gameID string, fen string) error {
	hub := ws.NewHub(gameID)
	opts := []model.Option{model.WithID(gameID), model.WithObserver(hub)}

	var game *model.Game
	if fen == "" {
		game = model.NewGame(opts...)
	} else {
		var err error
		game, err = model.NewGameFromFEN(fen, opts...)
		if err != nil {
			return err
		}
	}

	gm.mu.Lock()
	defer gm.mu.Unlock()
	if _, exists := gm.games[gameID]; exists {
		return ErrGameExists
	}
	gm.games[gameID] = &gameEntry{game: game, hub: hub}
	log.Infof("created game %s", gameID)
	return nil
}

func (gm *GameManager) entry(gameID string) (*gameEntry, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	e, exists := gm.games[gameID]
	if !exists {
		return nil, fmt.Errorf("game %s: %w", gameID, ErrGameNotFound)
	}
	return e, nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	e, err := gm.entry(gameID)
	if err != nil {
		return nil, err
	}
	return e.game, nil
}

// DeleteGame forgets gameID and closes every connection watching it.
func (gm *GameManager) DeleteGame(gameID string) error {
	gm.mu.Lock()
	e, exists := gm.games[gameID]
	if !exists {
		gm.mu.Unlock()
		return fmt.Errorf("game %s: %w", gameID, ErrGameNotFound)
	}
	delete(gm.games, gameID)
	gm.mu.Unlock()

	e.hub.CloseAll("Game deleted")
	log.Infof("deleted game %s", gameID)
	return nil
}

func (gm *GameManager) GameIDs() []string {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return maps.Keys(gm.games)
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.Team, error) {
	e, err := gm.entry(gameID)
	if err != nil {
		return "", err
	}
	return e.game.AddPlayer(playerID)
}

func (gm *GameManager) GetGameState(gameID string) (model.GameView, error) {
	e, err := gm.entry(gameID)
	if err != nil {
		return model.GameView{}, err
	}
	return e.game.View(), nil
}

// authorize checks that playerID may act for the team on move. Seated
// players only act for their own team. Unseated clients may act only while
// nobody is seated, which is how a single local AR session plays both sides.
func authorize(game *model.Game, playerID string) error {
	team, seated := game.TeamOf(playerID)
	if !seated {
		players := game.Players()
		if players.White.ID == "" && players.Black.ID == "" {
			return nil
		}
		return ErrNotYourPiece
	}
	if turn := game.State().Turn; team != turn {
		return fmt.Errorf("%s to move: %w", turn, model.ErrWrongTurn)
	}
	return nil
}

func (gm *GameManager) SelectPiece(gameID, playerID string, sq model.Square) ([]model.Square, error) {
	e, err := gm.entry(gameID)
	if err != nil {
		return []model.Square{}, err
	}
	if err := authorize(e.game, playerID); err != nil {
		return []model.Square{}, err
	}
	return e.game.SelectPiece(sq)
}

// DeselectPiece drops the current selection and broadcasts the new state.
func (gm *GameManager) DeselectPiece(gameID, playerID string) error {
	e, err := gm.entry(gameID)
	if err != nil {
		return err
	}
	if err := authorize(e.game, playerID); err != nil {
		return err
	}
	e.game.ClearSelection()
	e.hub.BroadcastState(e.game.View())
	return nil
}

// MakeMove plays from -> to and broadcasts the new state to the game's
// connections.
func (gm *GameManager) MakeMove(gameID, playerID string, from, to model.Square) (model.MoveResult, error) {
	e, err := gm.entry(gameID)
	if err != nil {
		return model.MoveResult{}, err
	}
	if err := authorize(e.game, playerID); err != nil {
		return model.MoveResult{From: from, To: to, Special: model.SpecialNone}, err
	}
	res, err := e.game.TryMove(from, to)
	if err != nil {
		return res, err
	}
	e.hub.BroadcastState(e.game.View())
	return res, nil
}

func (gm *GameManager) ResetGame(gameID string) error {
	e, err := gm.entry(gameID)
	if err != nil {
		return err
	}
	e.game.Reset()
	e.hub.BroadcastState(e.game.View())
	return nil
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn *ws.Client) error {
	e, err := gm.entry(gameID)
	if err != nil {
		return err
	}
	if !e.game.IsPlayerInGame(playerID) && !e.game.CanSpectate() {
		return ErrNotAuthorized
	}
	if !e.hub.Register(playerID, conn) {
		return ErrAlreadyConnected
	}
	msg, err := ws.NewMessage(ws.MessageTypeGameState, e.game.View())
	if err != nil {
		return err
	}
	return conn.WriteJSON(msg)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn *ws.Client) {
	e, err := gm.entry(gameID)
	if err != nil {
		return
	}
	e.hub.Unregister(playerID, conn)
}

func (gm *GameManager) JoinMatchmaking(playerID string) error {
	if err := gm.queue.Add(playerID); err != nil {
		log.Warnf("matchmaking: %s: %v", playerID, err)
		return err
	}
	return nil
}

func (gm *GameManager) LeaveMatchmaking(playerID string) {
	gm.queue.Remove(playerID)
	gm.UnregisterMatchmakingChannel(playerID)
}

func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if existing, exists := gm.matchingChannels[playerID]; exists {
		delete(gm.matchingChannels, playerID)
		close(existing)
	}
	gm.matchingChannels[playerID] = ch
}

// UnregisterMatchmakingChannel forgets playerID's channel without closing
// it; the channel's creator closes it.
func (gm *GameManager) UnregisterMatchmakingChannel(playerID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	delete(gm.matchingChannels, playerID)
}

// RunMatchmaking pairs queued players into new games every interval until
// ctx is done.
func (gm *GameManager) RunMatchmaking(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for gm.matchNextPair() {
			}
		}
	}
}

func (gm *GameManager) matchNextPair() bool {
	p1, p2, ok := gm.queue.NextPair()
	if !ok {
		return false
	}
	gameID := uuid.New().String()
	if err := gm.CreateGame(gameID, ""); err != nil {
		log.Errorf("matchmaking: create game: %v", err)
		return false
	}
	for _, playerID := range []string{p1, p2} {
		team, err := gm.AddPlayerToGame(gameID, playerID)
		if err != nil {
			log.Errorf("matchmaking: seat %s: %v", playerID, err)
			continue
		}
		gm.notifyMatch(playerID, MatchFoundEvent{GameID: gameID, Team: team})
	}
	return true
}

// notifyMatch delivers the event and closes the player's channel.
func (gm *GameManager) notifyMatch(playerID string, event MatchFoundEvent) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	ch, ok := gm.matchingChannels[playerID]
	if !ok {
		log.Warnf("matchmaking: no channel for player %s", playerID)
		return
	}
	delete(gm.matchingChannels, playerID)
	defer close(ch)

	payload, err := json.Marshal(event)
	if err != nil {
		log.Errorf("matchmaking: encode event: %v", err)
		return
	}
	select {
	case ch <- string(payload):
	default:
		log.Warnf("matchmaking: failed to send event to player %s", playerID)
	}
}
