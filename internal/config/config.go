package config

import (
	"log/slog"
	"os"
	"time"
)

const (
	MaxReplayListLimit     = 100
	DefaultReplayListLimit = 20
)

// ServerConfig holds all configuration values loaded from environment variables.
type ServerConfig struct {
	ServerHost       string
	ServerPort       string
	RedisURL         string
	PostgresURL      string
	LedgerCacheTTL   time.Duration
	ReplaySessionTTL time.Duration
}

// LoadServerConfig loads configuration from environment variables.
func LoadServerConfig() *ServerConfig {
	return &ServerConfig{
		ServerHost:       getEnvMust("CHECKERS_SERVER_HOST"),
		ServerPort:       getEnvMust("CHECKERS_SERVER_PORT"),
		RedisURL:         getEnvMust("CHECKERS_REDIS_URL"),
		PostgresURL:      getEnvMust("CHECKERS_POSTGRES_URL"),
		LedgerCacheTTL:   getEnvMustDuration("CHECKERS_LEDGER_CACHE_TTL"),
		ReplaySessionTTL: getEnvMustDuration("CHECKERS_REPLAY_SESSION_TTL"),
	}
}

// ClientConfig holds the configuration of the terminal client.
type ClientConfig struct {
	ServerURL string
}

// LoadClientConfig loads the client configuration from environment variables.
func LoadClientConfig() *ClientConfig {
	return &ClientConfig{
		ServerURL: getEnvMust("CHECKERS_SERVER_URL"),
	}
}

// getEnvMust either returns the environment variable or logs a fatal error if it is not set.
func getEnvMust(key string) string {
	value := os.Getenv(key)
	if value == "" {
		slog.Error("Environment variable is not set", "key", key)
		os.Exit(1)
	}
	return value
}

func getEnvMustDuration(key string) time.Duration {
	value := getEnvMust(key)

	duration, err := time.ParseDuration(value)
	if err != nil || duration <= 0 {
		slog.Error("Cannot load environment variable, it must be a positive duration such as \"10m\"", "key", key, "value", value)
		os.Exit(1)
	}

	return duration
}
