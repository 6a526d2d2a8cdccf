package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/webcheckers/internal/checkers"
	"github.com/lk16/webcheckers/internal/matches"
	"github.com/lk16/webcheckers/internal/middleware"
	"github.com/lk16/webcheckers/internal/models"
)

func getManager(c *fiber.Ctx) *matches.Manager {
	return c.Locals("matches").(*matches.Manager) //nolint: errcheck
}

// CreateMatch seats two players in a new match.
func CreateMatch(c *fiber.Ctx) error {
	var payload models.CreateMatchRequest
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Invalid request body")
	}

	match, err := getManager(c).CreateMatch(payload)
	if err != nil {
		return badRequest(c, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(models.CreateMatchResponse{
		MatchID: match.ID.String(),
	})
}

// GetMatch returns the match as seen from the requested perspective, white by default.
// The open turn is only included for the player who is building it.
func GetMatch(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid match id")
	}

	perspective := checkers.White
	if query := c.Query("perspective"); query != "" {
		var err error
		perspective, err = checkers.ParsePieceColor(query)
		if err != nil {
			return badRequest(c, err.Error())
		}
	}

	view, err := getManager(c).View(id, perspective, middleware.GetPlayerID(c))
	if err != nil {
		return sendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(view)
}

// SubmitMove validates a candidate move of the requesting player.
func SubmitMove(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid match id")
	}

	var payload models.MoveRequest
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Invalid request body")
	}

	kind, err := getManager(c).SubmitMove(id, middleware.GetPlayerID(c), payload.Move())
	if err != nil {
		return sendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(models.MoveResponse{Kind: kind})
}

// BackupMove undoes the last tentative move of the requesting player.
func BackupMove(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid match id")
	}

	move, err := getManager(c).BackupMove(id, middleware.GetPlayerID(c))
	if err != nil {
		return sendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(models.BackupResponse{Move: move})
}

// DiscardTurn drops all tentative moves of the requesting player.
func DiscardTurn(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid match id")
	}

	if err := getManager(c).DiscardTurn(id, middleware.GetPlayerID(c)); err != nil {
		return sendError(c, err)
	}

	return c.SendStatus(fiber.StatusOK)
}

// SubmitTurn commits the open turn of the requesting player.
func SubmitTurn(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid match id")
	}

	turn, state, err := getManager(c).CommitTurn(id, middleware.GetPlayerID(c))
	if err != nil {
		return sendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(models.TurnResponse{
		Turn:  turn,
		State: models.NewStateView(state),
	})
}

// Resign ends the match on behalf of the requesting player.
func Resign(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid match id")
	}

	state, err := getManager(c).Resign(id, middleware.GetPlayerID(c))
	if err != nil {
		return sendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(models.NewStateView(state))
}

// CloseMatch archives a match and tears it down.
func CloseMatch(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid match id")
	}

	record, err := getManager(c).Close(c.Context(), id)
	if err != nil {
		return sendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(record)
}
