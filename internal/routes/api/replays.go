package api

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lk16/webcheckers/internal/config"
	"github.com/lk16/webcheckers/internal/models"
	"github.com/lk16/webcheckers/internal/replays"
)

func getReplays(c *fiber.Ctx) *replays.Service {
	return c.Locals("replays").(*replays.Service) //nolint: errcheck
}

// ListReplays lists archived matches. With the ids query parameter, a comma separated
// list of match ids, only those matches are returned.
func ListReplays(c *fiber.Ctx) error {
	service := getReplays(c)

	if idsQuery := c.Query("ids"); idsQuery != "" {
		parts := strings.Split(idsQuery, ",")
		ids := make([]uuid.UUID, len(parts))
		for i, part := range parts {
			id, err := uuid.Parse(strings.TrimSpace(part))
			if err != nil {
				return badRequest(c, "Invalid match id in ids")
			}
			ids[i] = id
		}

		summaries, err := service.Lookup(c.Context(), ids)
		if err != nil {
			return sendError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(summaries)
	}

	limit := c.QueryInt("limit", config.DefaultReplayListLimit)
	if limit <= 0 || limit > config.MaxReplayListLimit {
		return badRequest(c, "limit must be between 1 and 100")
	}

	summaries, err := service.List(c.Context(), limit)
	if err != nil {
		return sendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(summaries)
}

// OpenReplay starts a replay session of an archived match.
func OpenReplay(c *fiber.Ctx) error {
	var payload models.OpenReplayRequest
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Invalid request body")
	}

	matchID, err := uuid.Parse(payload.MatchID)
	if err != nil {
		return badRequest(c, "Invalid match id")
	}

	view, err := getReplays(c).Open(c.Context(), matchID)
	if err != nil {
		return sendError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(view)
}

type replayAction func(service *replays.Service, ctx context.Context, sessionID uuid.UUID) (models.ReplayView, error)

// handleReplayAction runs a replay action on the session named in the route.
func handleReplayAction(c *fiber.Ctx, action replayAction) error {
	sessionID, ok := parseUUIDParam(c, "session")
	if !ok {
		return badRequest(c, "Invalid session")
	}

	view, err := action(getReplays(c), c.Context(), sessionID)
	if err != nil {
		return sendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(view)
}

// GetReplay returns the current state of a replay session.
func GetReplay(c *fiber.Ctx) error {
	return handleReplayAction(c, (*replays.Service).Get)
}

// NextReplayTurn applies the next turn of a replay session.
func NextReplayTurn(c *fiber.Ctx) error {
	return handleReplayAction(c, (*replays.Service).Next)
}

// PreviousReplayTurn reverts the last applied turn of a replay session.
func PreviousReplayTurn(c *fiber.Ctx) error {
	return handleReplayAction(c, (*replays.Service).Previous)
}

// ResetReplay moves a replay session back to the start board.
func ResetReplay(c *fiber.Ctx) error {
	return handleReplayAction(c, (*replays.Service).Reset)
}
