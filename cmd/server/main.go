package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lk16/webcheckers/internal"
	"github.com/lk16/webcheckers/internal/config"
)

const shutdownTimeout = 10 * time.Second

func main() {
	config.SetLogLevel()

	// Load configuration
	cfg := config.LoadServerConfig()

	// Setup app
	app, svc, err := internal.SetupApp(cfg)
	if err != nil {
		slog.Error("Failed to setup app", "error", err)
		os.Exit(1)
	}

	// Stop accepting requests on SIGINT or SIGTERM
	go func() {
		signals := make(chan os.Signal, 1)
		signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
		<-signals

		slog.Info("Shutting down server")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			slog.Error("Failed to shut down server", "error", err)
		}
	}()

	// Start server
	address := cfg.ServerHost + ":" + cfg.ServerPort
	if err = app.Listen(address); err != nil {
		slog.Error("Server stopped", "error", err)
	}

	if err = svc.Close(); err != nil {
		slog.Error("Failed to close services", "error", err)
		os.Exit(1)
	}
}
