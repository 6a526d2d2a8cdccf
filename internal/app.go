package internal

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/webcheckers/internal/config"
	"github.com/lk16/webcheckers/internal/matches"
	"github.com/lk16/webcheckers/internal/middleware"
	"github.com/lk16/webcheckers/internal/replays"
	"github.com/lk16/webcheckers/internal/repository"
	"github.com/lk16/webcheckers/internal/routes"
	"github.com/lk16/webcheckers/internal/services"
)

const (
	defaultConcurrency  = 256 * 1024 // Maximum number of concurrent connections
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 10 * time.Second
	defaultIdleTimeout  = 5 * time.Second
	defaultBodyLimit    = 64 * 1024 // 64KB
	schemaTimeout       = 10 * time.Second
)

// SetupApp connects to the external services and builds the app on top of them.
// The returned services must be closed by the caller after the app shuts down.
func SetupApp(cfg *config.ServerConfig) (*fiber.App, *services.Services, error) {
	// Initialize services
	svc, err := services.InitServices(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	matchRepo := repository.NewMatchRepositoryFromServices(svc, cfg.LedgerCacheTTL)
	sessionRepo := repository.NewReplaySessionRepositoryFromServices(svc, cfg.ReplaySessionTTL)

	ctx, cancel := context.WithTimeout(context.Background(), schemaTimeout)
	defer cancel()

	if err = matchRepo.EnsureSchema(ctx); err != nil {
		_ = svc.Close()
		return nil, nil, fmt.Errorf("failed to create schema: %w", err)
	}

	manager := matches.NewManager(matchRepo)
	replaysService := replays.NewService(matchRepo, sessionRepo)

	return BuildApp(cfg, manager, replaysService), svc, nil
}

// BuildApp creates the Fiber app serving the given match manager and replay service.
func BuildApp(cfg *config.ServerConfig, manager *matches.Manager, replaysService *replays.Service) *fiber.App {
	app := fiber.New(fiber.Config{
		Concurrency:  defaultConcurrency,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
		BodyLimit:    defaultBodyLimit,
	})

	// Share the running matches, the replay service and config with all handlers
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("matches", manager)
		c.Locals("replays", replaysService)
		c.Locals("config", cfg)
		return c.Next()
	})

	// Add request id and logging middleware
	app.Use(middleware.RequestID())
	app.Use(middleware.Logging())

	// Setup all routes
	routes.SetupRoutes(app)

	return app
}
