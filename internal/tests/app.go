package tests

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lk16/webcheckers/internal"
	"github.com/lk16/webcheckers/internal/config"
	"github.com/lk16/webcheckers/internal/matches"
	"github.com/lk16/webcheckers/internal/models"
	"github.com/lk16/webcheckers/internal/replays"
	"github.com/lk16/webcheckers/internal/repository"
)

// MemoryArchive keeps archived matches in memory. It stands in for the Postgres archive.
type MemoryArchive struct {
	mu      sync.Mutex
	records map[uuid.UUID]models.MatchRecord
}

func NewMemoryArchive() *MemoryArchive {
	return &MemoryArchive{records: make(map[uuid.UUID]models.MatchRecord)}
}

func (a *MemoryArchive) SaveMatch(_ context.Context, record models.MatchRecord) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.records[record.ID] = record
	return nil
}

func (a *MemoryArchive) GetMatch(_ context.Context, id uuid.UUID) (models.MatchRecord, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	record, ok := a.records[id]
	if !ok {
		return models.MatchRecord{}, repository.ErrMatchNotFound
	}
	return record, nil
}

func (a *MemoryArchive) ListMatches(_ context.Context, limit int) ([]models.MatchSummary, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	summaries := make([]models.MatchSummary, 0, len(a.records))
	for _, record := range a.records {
		summaries = append(summaries, summarize(record))
	}

	slices.SortFunc(summaries, func(x, y models.MatchSummary) int {
		return y.FinishedAt.Compare(x.FinishedAt)
	})

	if len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

func (a *MemoryArchive) LookupMatches(_ context.Context, ids []uuid.UUID) ([]models.MatchSummary, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	summaries := make([]models.MatchSummary, 0, len(ids))
	for _, id := range ids {
		if record, ok := a.records[id]; ok {
			summaries = append(summaries, summarize(record))
		}
	}
	return summaries, nil
}

func summarize(record models.MatchRecord) models.MatchSummary {
	winner, _ := record.Winner.MarshalText() //nolint:errcheck

	return models.MatchSummary{
		ID:         record.ID,
		Red:        record.Red,
		White:      record.White,
		Outcome:    record.Outcome.String(),
		Winner:     string(winner),
		Turns:      record.Ledger.Len(),
		FinishedAt: record.FinishedAt,
	}
}

// MemorySessions keeps replay sessions in memory. It stands in for the Redis session store.
type MemorySessions struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]models.ReplaySession
}

func NewMemorySessions() *MemorySessions {
	return &MemorySessions{sessions: make(map[uuid.UUID]models.ReplaySession)}
}

func (s *MemorySessions) SaveSession(_ context.Context, session models.ReplaySession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ID] = session
	return nil
}

func (s *MemorySessions) GetSession(_ context.Context, id uuid.UUID) (models.ReplaySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return models.ReplaySession{}, repository.ErrSessionNotFound
	}
	return session, nil
}

// TestApp is an app wired to in-memory stores.
type TestApp struct {
	App     *fiber.App
	Manager *matches.Manager
	Archive *MemoryArchive
}

// NewTestApp builds the full app on in-memory stores.
func NewTestApp() *TestApp {
	cfg := &config.ServerConfig{
		ServerHost:       "localhost",
		ServerPort:       "3000",
		LedgerCacheTTL:   time.Minute,
		ReplaySessionTTL: time.Minute,
	}

	archive := NewMemoryArchive()
	manager := matches.NewManager(archive)
	replaysService := replays.NewService(archive, NewMemorySessions())

	return &TestApp{
		App:     internal.BuildApp(cfg, manager, replaysService),
		Manager: manager,
		Archive: archive,
	}
}
