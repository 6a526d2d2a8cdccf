package ws

import (
	"log/slog"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lk16/webcheckers/internal/matches"
	"github.com/lk16/webcheckers/internal/middleware"
	"github.com/lk16/webcheckers/internal/ws"
)

// requireUpgrade rejects plain HTTP requests and requests for unknown matches or players,
// before the connection is upgraded.
func requireUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	matchID, err := uuid.Parse(c.Query("match"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid match id",
		})
	}

	manager := c.Locals("matches").(*matches.Manager) //nolint: errcheck

	match, err := manager.Get(matchID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if _, err = match.ColorOf(middleware.GetPlayerID(c)); err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Locals("matchID", matchID)
	return c.Next()
}

func handleWs(c *websocket.Conn) {
	manager := c.Locals("matches").(*matches.Manager)     //nolint: errcheck
	matchID := c.Locals("matchID").(uuid.UUID)            //nolint: errcheck
	player := c.Locals(middleware.PlayerIDLocal).(string) //nolint: errcheck

	h, err := ws.NewHandler(c, manager, matchID, player)
	if err != nil {
		slog.Error("ws setup error", "error", err)
		return
	}

	if err = h.Handle(); err != nil {
		slog.Error("ws handle error", "error", err, "match", matchID, "player", player)
	}
}

// SetupRoutes sets up the routes for the websocket.
func SetupRoutes(app *fiber.App) {
	app.Get("/ws", middleware.PlayerID(), requireUpgrade, websocket.New(handleWs))
}
