package replays

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lk16/webcheckers/internal/checkers"
	"github.com/lk16/webcheckers/internal/models"
)

// MatchStore reads archived matches.
type MatchStore interface {
	GetMatch(ctx context.Context, id uuid.UUID) (models.MatchRecord, error)
	ListMatches(ctx context.Context, limit int) ([]models.MatchSummary, error)
	LookupMatches(ctx context.Context, ids []uuid.UUID) ([]models.MatchSummary, error)
}

// SessionStore persists replay session cursors.
type SessionStore interface {
	SaveSession(ctx context.Context, session models.ReplaySession) error
	GetSession(ctx context.Context, id uuid.UUID) (models.ReplaySession, error)
}

// Service steps through archived matches. Only the cursor of a session is stored,
// the board is rebuilt from the ledger on every request.
type Service struct {
	matches  MatchStore
	sessions SessionStore
}

// NewService creates a new Service.
func NewService(matches MatchStore, sessions SessionStore) *Service {
	return &Service{
		matches:  matches,
		sessions: sessions,
	}
}

// List returns the most recently archived matches.
func (s *Service) List(ctx context.Context, limit int) ([]models.MatchSummary, error) {
	return s.matches.ListMatches(ctx, limit)
}

// Lookup returns the summaries of the given archived matches.
func (s *Service) Lookup(ctx context.Context, ids []uuid.UUID) ([]models.MatchSummary, error) {
	return s.matches.LookupMatches(ctx, ids)
}

// Open starts a replay session of an archived match at its start board.
func (s *Service) Open(ctx context.Context, matchID uuid.UUID) (models.ReplayView, error) {
	record, err := s.matches.GetMatch(ctx, matchID)
	if err != nil {
		return models.ReplayView{}, err
	}

	session := models.ReplaySession{
		ID:      uuid.New(),
		MatchID: matchID,
	}

	if err = s.sessions.SaveSession(ctx, session); err != nil {
		return models.ReplayView{}, err
	}

	slog.Info("replay opened", "session", session.ID, "match", matchID, "turns", record.Ledger.Len())

	replay := checkers.OpenReplayFrom(record.Start, record.Ledger)
	return newReplayView(session, replay), nil
}

// Get returns the current state of a session.
func (s *Service) Get(ctx context.Context, sessionID uuid.UUID) (models.ReplayView, error) {
	return s.step(ctx, sessionID, func(*checkers.Replay) error { return nil })
}

// Next applies the next turn.
func (s *Service) Next(ctx context.Context, sessionID uuid.UUID) (models.ReplayView, error) {
	return s.step(ctx, sessionID, (*checkers.Replay).StepForward)
}

// Previous reverts the last applied turn.
func (s *Service) Previous(ctx context.Context, sessionID uuid.UUID) (models.ReplayView, error) {
	return s.step(ctx, sessionID, (*checkers.Replay).StepBackward)
}

// Reset moves the session back to the start board.
func (s *Service) Reset(ctx context.Context, sessionID uuid.UUID) (models.ReplayView, error) {
	return s.step(ctx, sessionID, func(replay *checkers.Replay) error {
		replay.Reset()
		return nil
	})
}

// step restores the replay of a session, applies action and stores the new cursor if it moved.
func (s *Service) step(
	ctx context.Context,
	sessionID uuid.UUID,
	action func(*checkers.Replay) error,
) (models.ReplayView, error) {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return models.ReplayView{}, err
	}

	record, err := s.matches.GetMatch(ctx, session.MatchID)
	if err != nil {
		return models.ReplayView{}, err
	}

	replay := checkers.OpenReplayFrom(record.Start, record.Ledger)
	if err = replay.Seek(session.Cursor); err != nil {
		return models.ReplayView{}, fmt.Errorf("stored cursor %d is invalid: %w", session.Cursor, err)
	}

	if err = action(replay); err != nil {
		return models.ReplayView{}, err
	}

	if replay.Cursor() != session.Cursor {
		session.Cursor = replay.Cursor()
		if err = s.sessions.SaveSession(ctx, session); err != nil {
			return models.ReplayView{}, err
		}
	}

	return newReplayView(session, replay), nil
}

func newReplayView(session models.ReplaySession, replay *checkers.Replay) models.ReplayView {
	view := models.ReplayView{
		SessionID: session.ID.String(),
		MatchID:   session.MatchID.String(),
		Cursor:    replay.Cursor(),
		Turns:     replay.Len(),
		AtStart:   replay.AtStart(),
		AtEnd:     replay.ReachedEnd(),
		Board:     replay.Board(),
	}

	if turn, ok := replay.CurrentTurn(); ok {
		view.Turn = &turn
	}

	return view
}
