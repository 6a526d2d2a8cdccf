package services

import (
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lk16/webcheckers/internal/config"
	"github.com/redis/go-redis/v9"
)

// Services contains the connections to the external services.
type Services struct {
	Postgres *sqlx.DB
	Redis    *redis.Client
}

// InitServices connects to Postgres and Redis. A connection that was opened is closed again if the other one fails.
func InitServices(cfg *config.ServerConfig) (*Services, error) {
	postgres, err := InitPostgres(cfg.PostgresURL)
	if err != nil {
		return nil, err
	}

	redisClient, err := InitRedis(cfg.RedisURL)
	if err != nil {
		_ = postgres.Close()
		return nil, err
	}

	return &Services{
		Postgres: postgres,
		Redis:    redisClient,
	}, nil
}

// Close closes all connections.
func (s *Services) Close() error {
	var errs []error

	if err := s.Postgres.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing Postgres: %w", err))
	}

	if err := s.Redis.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing Redis: %w", err))
	}

	return errors.Join(errs...)
}
