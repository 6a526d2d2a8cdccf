package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lk16/webcheckers/internal/models"
	"github.com/lk16/webcheckers/internal/services"
	"github.com/redis/go-redis/v9"
)

const ReplaySessionsKey = "replay_sessions"

// ErrSessionNotFound is returned for unknown or expired replay sessions.
var ErrSessionNotFound = errors.New("replay session not found")

// ReplaySessionRepository keeps replay session cursors in a Redis hash.
type ReplaySessionRepository struct {
	services *services.Services
	ttl      time.Duration
}

// NewReplaySessionRepositoryFromServices creates a new ReplaySessionRepository.
func NewReplaySessionRepositoryFromServices(services *services.Services, ttl time.Duration) *ReplaySessionRepository {
	return &ReplaySessionRepository{
		services: services,
		ttl:      ttl,
	}
}

// SaveSession stores a session and resets the TTL of the session hash.
func (repo *ReplaySessionRepository) SaveSession(ctx context.Context, session models.ReplaySession) error {
	jsonData, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("error marshaling replay session: %w", err)
	}

	redisConn := repo.services.Redis

	err = redisConn.HSet(ctx, ReplaySessionsKey, session.ID.String(), jsonData).Err()
	if err != nil {
		return fmt.Errorf("error storing replay session: %w", err)
	}

	err = redisConn.Expire(ctx, ReplaySessionsKey, repo.ttl).Err()
	if err != nil {
		return fmt.Errorf("error setting TTL: %w", err)
	}

	return nil
}

// GetSession loads a session.
func (repo *ReplaySessionRepository) GetSession(ctx context.Context, id uuid.UUID) (models.ReplaySession, error) {
	jsonData, err := repo.services.Redis.HGet(ctx, ReplaySessionsKey, id.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.ReplaySession{}, ErrSessionNotFound
		}
		return models.ReplaySession{}, fmt.Errorf("error getting replay session: %w", err)
	}

	var session models.ReplaySession
	if err = json.Unmarshal(jsonData, &session); err != nil {
		return models.ReplaySession{}, fmt.Errorf("error unmarshaling replay session: %w", err)
	}

	return session, nil
}
