package api

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lk16/webcheckers/internal/checkers"
	"github.com/lk16/webcheckers/internal/matches"
	"github.com/lk16/webcheckers/internal/repository"
)

// errorStatus maps an error to the HTTP status code of the response.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, matches.ErrMatchNotFound),
		errors.Is(err, repository.ErrMatchNotFound),
		errors.Is(err, repository.ErrSessionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, matches.ErrUnknownPlayer):
		return fiber.StatusForbidden
	case checkers.IsRuleError(err):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

// sendError writes the error response. A mandatory jump also reports where the jump is.
func sendError(c *fiber.Ctx, err error) error {
	status := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		slog.Error("request failed", "path", c.Path(), "error", err)
	}

	body := fiber.Map{"error": err.Error()}

	var jumpErr *checkers.MandatoryJumpError
	if errors.As(err, &jumpErr) {
		body["at"] = jumpErr.At
	}

	return c.Status(status).JSON(body)
}

// badRequest writes a 400 response with the given message.
func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": message,
	})
}

// parseUUIDParam parses a route parameter holding a uuid.
func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
