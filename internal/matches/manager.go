package matches

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lk16/webcheckers/internal/checkers"
	"github.com/lk16/webcheckers/internal/models"
)

var (
	ErrMatchNotFound = errors.New("match not found")
	ErrUnknownPlayer = errors.New("player is not seated in this match")
)

// Archive stores matches that are torn down.
type Archive interface {
	SaveMatch(ctx context.Context, record models.MatchRecord) error
}

// Manager owns all running matches, keyed by match id.
type Manager struct {
	// matches stores the running matches
	matches map[uuid.UUID]*Match

	// mu protects matches
	mu sync.RWMutex

	archive Archive
}

// NewManager creates a new Manager that archives closed matches in the given archive.
func NewManager(archive Archive) *Manager {
	return &Manager{
		matches: make(map[uuid.UUID]*Match),
		archive: archive,
	}
}

// CreateMatch seats two players and starts a match from the given board.
func (m *Manager) CreateMatch(req models.CreateMatchRequest) (*Match, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start, err := req.StartBoard()
	if err != nil {
		return nil, fmt.Errorf("invalid start board: %w", err)
	}

	match := newMatch(req.Red, req.White, start, req.FirstColor())

	m.mu.Lock()
	m.matches[match.ID] = match
	m.mu.Unlock()

	slog.Info("match created", "match", match.ID, "red", match.Red, "white", match.White)
	return match, nil
}

// Get returns a running match.
func (m *Manager) Get(id uuid.UUID) (*Match, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	match, ok := m.matches[id]
	if !ok {
		return nil, ErrMatchNotFound
	}
	return match, nil
}

// Len returns the number of running matches.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.matches)
}

// SubmitMove validates and records a tentative move.
func (m *Manager) SubmitMove(id uuid.UUID, player string, move checkers.Move) (checkers.MoveKind, error) {
	match, err := m.Get(id)
	if err != nil {
		return checkers.KindInvalid, err
	}

	kind, err := match.SubmitMove(player, move)
	if err != nil {
		slog.Debug("move rejected", "match", id, "player", player, "move", move.String(), "reason", err)
		return kind, err
	}

	return kind, nil
}

// BackupMove undoes the last tentative move.
func (m *Manager) BackupMove(id uuid.UUID, player string) (checkers.Move, error) {
	match, err := m.Get(id)
	if err != nil {
		return checkers.Move{}, err
	}
	return match.BackupMove(player)
}

// DiscardTurn drops all tentative moves of the open turn.
func (m *Manager) DiscardTurn(id uuid.UUID, player string) error {
	match, err := m.Get(id)
	if err != nil {
		return err
	}
	return match.DiscardTurn(player)
}

// CommitTurn commits the open turn.
func (m *Manager) CommitTurn(id uuid.UUID, player string) (checkers.Turn, checkers.GameState, error) {
	match, err := m.Get(id)
	if err != nil {
		return checkers.Turn{}, checkers.GameState{}, err
	}

	turn, state, err := match.CommitTurn(player)
	if err != nil {
		slog.Debug("turn rejected", "match", id, "player", player, "reason", err)
		return turn, state, err
	}

	slog.Info("turn committed", "match", id, "color", turn.Color.String(), "moves", len(turn.Moves))
	logIfOver(id, state)

	return turn, state, nil
}

// Resign ends the match on behalf of the given player.
func (m *Manager) Resign(id uuid.UUID, player string) (checkers.GameState, error) {
	match, err := m.Get(id)
	if err != nil {
		return checkers.GameState{}, err
	}

	state, err := match.Resign(player)
	if err != nil {
		return state, err
	}

	slog.Info("player resigned", "match", id, "player", player)
	logIfOver(id, state)

	return state, nil
}

// View returns the match as seen by viewer from the given color. An empty viewer is a spectator.
func (m *Manager) View(id uuid.UUID, perspective checkers.PieceColor, viewer string) (models.MatchView, error) {
	match, err := m.Get(id)
	if err != nil {
		return models.MatchView{}, err
	}
	return match.View(perspective, viewer), nil
}

// Close archives a match and removes it. Only one close of a match can archive it; the match is
// put back if archiving fails.
func (m *Manager) Close(ctx context.Context, id uuid.UUID) (models.MatchRecord, error) {
	m.mu.Lock()
	match, ok := m.matches[id]
	delete(m.matches, id)
	m.mu.Unlock()

	if !ok {
		return models.MatchRecord{}, ErrMatchNotFound
	}

	record := match.Record(time.Now())

	if err := m.archive.SaveMatch(ctx, record); err != nil {
		m.mu.Lock()
		m.matches[id] = match
		m.mu.Unlock()
		return models.MatchRecord{}, fmt.Errorf("error archiving match: %w", err)
	}

	slog.Info("match archived", "match", id, "turns", record.Ledger.Len(), "outcome", record.Outcome.String())
	return record, nil
}

func logIfOver(id uuid.UUID, state checkers.GameState) {
	if !state.IsOver() {
		return
	}

	winner, _ := state.Winner()
	slog.Info("match over", "match", id, "outcome", state.Outcome().String(), "winner", winner.String())
}
