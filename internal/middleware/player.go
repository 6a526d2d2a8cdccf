package middleware

import (
	"github.com/gofiber/fiber/v2"
)

const (
	PlayerIDHeader = "X-Player-ID"
	PlayerIDLocal  = "playerID"
)

func readPlayerID(c *fiber.Ctx) string {
	playerID := c.Get(PlayerIDHeader)
	if playerID == "" {
		playerID = c.Query("player")
	}
	return playerID
}

// PlayerID middleware that requires the acting player's id, from the X-Player-ID header or the player query parameter.
func PlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		playerID := readPlayerID(c)
		if playerID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Player ID is required",
			})
		}

		c.Locals(PlayerIDLocal, playerID)
		return c.Next()
	}
}

// OptionalPlayerID stores the player id if the request carries one. Requests without one are spectators.
func OptionalPlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if playerID := readPlayerID(c); playerID != "" {
			c.Locals(PlayerIDLocal, playerID)
		}
		return c.Next()
	}
}

// GetPlayerID returns the player id stored by the PlayerID middleware, or an empty string.
func GetPlayerID(c *fiber.Ctx) string {
	playerID, _ := c.Locals(PlayerIDLocal).(string) //nolint:errcheck
	return playerID
}
