package config

import (
	"log/slog"
	"os"
	"strings"
)

var logLevels = map[string]slog.Level{
	"DEBUG": slog.LevelDebug,
	"INFO":  slog.LevelInfo,
	"WARN":  slog.LevelWarn,
	"ERROR": slog.LevelError,
}

// SetLogLevel sets up the default logger from LOG_LEVEL and LOG_FORMAT.
// The level defaults to INFO, the format to text. LOG_FORMAT=json switches to structured JSON output.
func SetLogLevel() {
	level := slog.LevelInfo
	if envLevel := os.Getenv("LOG_LEVEL"); envLevel != "" {
		var ok bool
		level, ok = logLevels[strings.ToUpper(envLevel)]
		if !ok {
			slog.Error("Invalid log level", "level", envLevel)
			os.Exit(1)
		}
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch format := strings.ToLower(os.Getenv("LOG_FORMAT")); format {
	case "", "text":
		handler = slog.NewTextHandler(os.Stderr, opts)
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default:
		slog.Error("Invalid log format", "format", format)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(handler))
}
