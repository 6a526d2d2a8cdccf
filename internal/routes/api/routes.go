package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/webcheckers/internal/middleware"
)

// SetupRoutes sets up the API routes.
func SetupRoutes(app *fiber.App) {
	apiGroup := app.Group("/api")

	// Match routes
	apiGroup.Post("/matches", CreateMatch)
	apiGroup.Get("/matches/:id", middleware.OptionalPlayerID(), GetMatch)
	apiGroup.Delete("/matches/:id", CloseMatch)

	playerGroup := apiGroup.Group("/matches/:id", middleware.PlayerID())
	playerGroup.Post("/moves", SubmitMove)
	playerGroup.Post("/backup", BackupMove)
	playerGroup.Post("/discard", DiscardTurn)
	playerGroup.Post("/turn", SubmitTurn)
	playerGroup.Post("/resign", Resign)

	// Replay routes
	apiGroup.Get("/replays", ListReplays)
	apiGroup.Post("/replays", OpenReplay)
	apiGroup.Get("/replays/:session", GetReplay)
	apiGroup.Post("/replays/:session/next", NextReplayTurn)
	apiGroup.Post("/replays/:session/previous", PreviousReplayTurn)
	apiGroup.Post("/replays/:session/reset", ResetReplay)
}
