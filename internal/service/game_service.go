package service

import (
	"fmt"

	"github.com/benbeisheim/archess-backend/internal/model"
	"github.com/benbeisheim/archess-backend/internal/ws"
	"github.com/google/uuid"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame(fen string) (string, error) {
	gameID := uuid.New().String()

	if err := gs.gameManager.CreateGame(gameID, fen); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, nil
}

func (gs *GameService) DeleteGame(gameID string) error {
	return gs.gameManager.DeleteGame(gameID)
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.Team, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) JoinMatchmaking(playerID string) error {
	return gs.gameManager.JoinMatchmaking(playerID)
}

// LeaveMatchmaking takes playerID out of the queue and forgets its channel.
func (gs *GameService) LeaveMatchmaking(playerID string) {
	gs.gameManager.LeaveMatchmaking(playerID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameView, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) SelectPiece(gameID, playerID string, sq model.Square) ([]model.Square, error) {
	return gs.gameManager.SelectPiece(gameID, playerID, sq)
}

func (gs *GameService) DeselectPiece(gameID, playerID string) error {
	return gs.gameManager.DeselectPiece(gameID, playerID)
}

func (gs *GameService) HandleMove(gameID, playerID string, from, to model.Square) (model.MoveResult, error) {
	return gs.gameManager.MakeMove(gameID, playerID, from, to)
}

func (gs *GameService) ResetGame(gameID string) error {
	return gs.gameManager.ResetGame(gameID)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn *ws.Client) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn *ws.Client) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}

func (gs *GameService) RegisterMatchmakingChannel(playerID string, ch chan string) {
	gs.gameManager.RegisterMatchmakingChannel(playerID, ch)
}
