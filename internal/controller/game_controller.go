package controller

import (
	"bytes"
	"errors"

	"github.com/benbeisheim/archess-backend/internal/middleware"
	"github.com/benbeisheim/archess-backend/internal/model"
	"github.com/benbeisheim/archess-backend/internal/render"
	"github.com/benbeisheim/archess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type createGameRequest struct {
	FEN string `json:"fen"`
}

type selectRequest struct {
	Square model.Square `json:"square"`
}

type moveRequest struct {
	From model.Square `json:"from"`
	To   model.Square `json:"to"`
}

// statusFor maps service and engine errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrInvalidCoordinate), errors.Is(err, model.ErrInvalidFEN):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrNotYourPiece), errors.Is(err, service.ErrNotAuthorized):
		return fiber.StatusForbidden
	case errors.Is(err, model.ErrWrongTurn),
		errors.Is(err, model.ErrGameOver),
		errors.Is(err, model.ErrGameFull),
		errors.Is(err, service.ErrGameExists),
		errors.Is(err, service.ErrAlreadyConnected),
		errors.Is(err, service.ErrAlreadyQueued):
		return fiber.StatusConflict
	case errors.Is(err, model.ErrIllegalMove), errors.Is(err, model.ErrNoPieceSelected):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

func errorJSON(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var req createGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}

	gameID, err := gc.gameService.CreateGame(req.FEN)
	if err != nil {
		log.Warnf("create game: %v", err)
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) DeleteGame(c *fiber.Ctx) error {
	if err := gc.gameService.DeleteGame(c.Params("gameId")); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := middleware.PlayerID(c)

	team, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game joined",
		"team":    team,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	view, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(view)
}

func (gc *GameController) SelectPiece(c *fiber.Ctx) error {
	var req selectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	moves, err := gc.gameService.SelectPiece(c.Params("gameId"), middleware.PlayerID(c), req.Square)
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"error":      err.Error(),
			"legalMoves": moves,
		})
	}
	return c.JSON(fiber.Map{
		"square":     req.Square,
		"legalMoves": moves,
	})
}

func (gc *GameController) DeselectPiece(c *fiber.Ctx) error {
	if err := gc.gameService.DeselectPiece(c.Params("gameId"), middleware.PlayerID(c)); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Selection cleared",
	})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var req moveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	res, err := gc.gameService.HandleMove(c.Params("gameId"), middleware.PlayerID(c), req.From, req.To)
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"error":  err.Error(),
			"result": res,
		})
	}
	return c.JSON(res)
}

func (gc *GameController) ResetGame(c *fiber.Ctx) error {
	if err := gc.gameService.ResetGame(c.Params("gameId")); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game reset",
	})
}

// BoardSVG renders the current board, tinting the selected piece's legal
// moves.
func (gc *GameController) BoardSVG(c *fiber.Ctx) error {
	view, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return errorJSON(c, err)
	}

	var buf bytes.Buffer
	render.Board(&buf, view.Board, view.LegalMoves)
	c.Set(fiber.HeaderContentType, "image/svg+xml")
	return c.Send(buf.Bytes())
}

func (gc *GameController) JoinMatchmaking(c *fiber.Ctx) error {
	if err := gc.gameService.JoinMatchmaking(middleware.PlayerID(c)); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{
		"status": "queued",
	})
}
