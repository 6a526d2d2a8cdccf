package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/lk16/webcheckers/internal/checkers"
	"github.com/lk16/webcheckers/internal/models"
	"github.com/lk16/webcheckers/internal/services"
	"github.com/redis/go-redis/v9"
)

const matchKeyPrefix = "match:"

// ErrMatchNotFound is returned when no archived match has the requested id.
var ErrMatchNotFound = errors.New("archived match not found")

const schema = `
	CREATE TABLE IF NOT EXISTS matches (
		id           UUID PRIMARY KEY,
		red_player   TEXT NOT NULL,
		white_player TEXT NOT NULL,
		start_board  TEXT NOT NULL,
		first_color  TEXT NOT NULL,
		outcome      TEXT NOT NULL,
		winner       TEXT NOT NULL,
		red_pieces   INTEGER NOT NULL,
		white_pieces INTEGER NOT NULL,
		turn_count   INTEGER NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL,
		finished_at  TIMESTAMPTZ NOT NULL
	);

	CREATE TABLE IF NOT EXISTS turns (
		match_id   UUID NOT NULL REFERENCES matches (id) ON DELETE CASCADE,
		turn_index INTEGER NOT NULL,
		color      TEXT NOT NULL,
		moves      JSONB NOT NULL,
		PRIMARY KEY (match_id, turn_index)
	);

	CREATE INDEX IF NOT EXISTS matches_finished_at_idx ON matches (finished_at DESC);
`

// matchRow is a row of the matches table.
type matchRow struct {
	ID          uuid.UUID `db:"id"`
	Red         string    `db:"red_player"`
	White       string    `db:"white_player"`
	StartBoard  string    `db:"start_board"`
	FirstColor  string    `db:"first_color"`
	Outcome     string    `db:"outcome"`
	Winner      string    `db:"winner"`
	RedPieces   int       `db:"red_pieces"`
	WhitePieces int       `db:"white_pieces"`
	TurnCount   int       `db:"turn_count"`
	CreatedAt   time.Time `db:"created_at"`
	FinishedAt  time.Time `db:"finished_at"`
}

// turnRow is a row of the turns table.
type turnRow struct {
	MatchID   uuid.UUID        `db:"match_id"`
	TurnIndex int              `db:"turn_index"`
	Color     string           `db:"color"`
	Moves     models.TurnMoves `db:"moves"`
}

// MatchRepository archives finished matches in Postgres and caches them in Redis.
type MatchRepository struct {
	services *services.Services
	cacheTTL time.Duration
}

// NewMatchRepositoryFromServices creates a new MatchRepository.
func NewMatchRepositoryFromServices(services *services.Services, cacheTTL time.Duration) *MatchRepository {
	return &MatchRepository{
		services: services,
		cacheTTL: cacheTTL,
	}
}

// EnsureSchema creates the archive tables if they do not exist yet.
func (repo *MatchRepository) EnsureSchema(ctx context.Context) error {
	if _, err := repo.services.Postgres.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("error creating schema: %w", err)
	}
	return nil
}

func matchKey(id uuid.UUID) string {
	return matchKeyPrefix + id.String()
}

// SaveMatch stores a match and all its turns in a single transaction and caches the record.
func (repo *MatchRepository) SaveMatch(ctx context.Context, record models.MatchRecord) error {
	pgConn := repo.services.Postgres

	tx, err := pgConn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	row := matchRow{
		ID:          record.ID,
		Red:         record.Red,
		White:       record.White,
		StartBoard:  record.Start.String(),
		FirstColor:  record.First.String(),
		Outcome:     record.Outcome.String(),
		Winner:      colorColumn(record.Winner),
		RedPieces:   record.RedPieces,
		WhitePieces: record.WhitePieces,
		TurnCount:   record.Ledger.Len(),
		CreatedAt:   record.CreatedAt,
		FinishedAt:  record.FinishedAt,
	}

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO matches (
			id, red_player, white_player, start_board, first_color, outcome, winner,
			red_pieces, white_pieces, turn_count, created_at, finished_at
		) VALUES (
			:id, :red_player, :white_player, :start_board, :first_color, :outcome, :winner,
			:red_pieces, :white_pieces, :turn_count, :created_at, :finished_at
		)
	`, row)
	if err != nil {
		return fmt.Errorf("error inserting match: %w", err)
	}

	turns := record.Ledger.Turns()
	if len(turns) > 0 {
		rows := make([]turnRow, len(turns))
		for i, turn := range turns {
			rows[i] = turnRow{
				MatchID:   record.ID,
				TurnIndex: i,
				Color:     turn.Color.String(),
				Moves:     models.TurnMoves(turn.Moves),
			}
		}

		_, err = tx.NamedExecContext(ctx, `
			INSERT INTO turns (match_id, turn_index, color, moves)
			VALUES (:match_id, :turn_index, :color, :moves)
		`, rows)
		if err != nil {
			return fmt.Errorf("error inserting turns: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing match: %w", err)
	}

	// Caching is best effort.
	if err = repo.cacheMatch(ctx, record); err != nil {
		slog.Warn("error caching match", "match", record.ID, "error", err)
	}

	return nil
}

func (repo *MatchRepository) cacheMatch(ctx context.Context, record models.MatchRecord) error {
	jsonData, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("error marshaling match: %w", err)
	}

	err = repo.services.Redis.Set(ctx, matchKey(record.ID), jsonData, repo.cacheTTL).Err()
	if err != nil {
		return fmt.Errorf("error storing match in Redis: %w", err)
	}

	return nil
}

// GetMatch returns an archived match, preferring the Redis cache. Any cache failure falls back to Postgres.
func (repo *MatchRepository) GetMatch(ctx context.Context, id uuid.UUID) (models.MatchRecord, error) {
	if record, ok := repo.getCachedMatch(ctx, id); ok {
		return record, nil
	}

	record, err := repo.loadMatch(ctx, id)
	if err != nil {
		return models.MatchRecord{}, err
	}

	if err = repo.cacheMatch(ctx, record); err != nil {
		slog.Warn("error caching match", "match", id, "error", err)
	}

	return record, nil
}

// getCachedMatch looks up a match in Redis. Misses and errors both report false.
func (repo *MatchRepository) getCachedMatch(ctx context.Context, id uuid.UUID) (models.MatchRecord, bool) {
	jsonData, err := repo.services.Redis.Get(ctx, matchKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("error getting match from Redis", "match", id, "error", err)
		}
		return models.MatchRecord{}, false
	}

	var record models.MatchRecord
	if err = json.Unmarshal(jsonData, &record); err != nil {
		slog.Warn("dropping unreadable cached match", "match", id, "error", err)
		return models.MatchRecord{}, false
	}

	return record, true
}

// loadMatch reads a match and its turns from Postgres.
func (repo *MatchRepository) loadMatch(ctx context.Context, id uuid.UUID) (models.MatchRecord, error) {
	pgConn := repo.services.Postgres

	var row matchRow
	err := pgConn.GetContext(ctx, &row, `
		SELECT id, red_player, white_player, start_board, first_color, outcome, winner,
			red_pieces, white_pieces, turn_count, created_at, finished_at
		FROM matches
		WHERE id = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.MatchRecord{}, ErrMatchNotFound
		}
		return models.MatchRecord{}, fmt.Errorf("error loading match: %w", err)
	}

	var turnRows []turnRow
	err = pgConn.SelectContext(ctx, &turnRows, `
		SELECT match_id, turn_index, color, moves
		FROM turns
		WHERE match_id = $1
		ORDER BY turn_index
	`, id)
	if err != nil {
		return models.MatchRecord{}, fmt.Errorf("error loading turns: %w", err)
	}

	return buildMatchRecord(row, turnRows)
}

// buildMatchRecord converts database rows into a match record.
func buildMatchRecord(row matchRow, turnRows []turnRow) (models.MatchRecord, error) {
	start, err := checkers.NewBoardFromString(row.StartBoard)
	if err != nil {
		return models.MatchRecord{}, fmt.Errorf("error parsing start board: %w", err)
	}

	first, err := checkers.ParsePieceColor(row.FirstColor)
	if err != nil {
		return models.MatchRecord{}, fmt.Errorf("error parsing first color: %w", err)
	}

	var outcome checkers.Outcome
	if err = outcome.UnmarshalText([]byte(row.Outcome)); err != nil {
		return models.MatchRecord{}, fmt.Errorf("error parsing outcome: %w", err)
	}

	var winner checkers.PieceColor
	if err = winner.UnmarshalText([]byte(row.Winner)); err != nil {
		return models.MatchRecord{}, fmt.Errorf("error parsing winner: %w", err)
	}

	turns := make([]checkers.Turn, len(turnRows))
	for i, tr := range turnRows {
		if tr.TurnIndex != i {
			return models.MatchRecord{}, fmt.Errorf("turn %d is missing", i)
		}

		color, err := checkers.ParsePieceColor(tr.Color)
		if err != nil {
			return models.MatchRecord{}, fmt.Errorf("error parsing color of turn %d: %w", i, err)
		}

		turns[i] = checkers.Turn{Color: color, Moves: tr.Moves}
	}

	ledger, err := checkers.NewLedger(turns...)
	if err != nil {
		return models.MatchRecord{}, fmt.Errorf("error building ledger: %w", err)
	}

	if ledger.Len() != row.TurnCount {
		return models.MatchRecord{}, fmt.Errorf("expected %d turns, found %d", row.TurnCount, ledger.Len())
	}

	return models.MatchRecord{
		ID:          row.ID,
		Red:         row.Red,
		White:       row.White,
		Start:       start,
		First:       first,
		Ledger:      ledger,
		Outcome:     outcome,
		Winner:      winner,
		RedPieces:   row.RedPieces,
		WhitePieces: row.WhitePieces,
		CreatedAt:   row.CreatedAt,
		FinishedAt:  row.FinishedAt,
	}, nil
}

// ListMatches returns the most recently archived matches.
func (repo *MatchRepository) ListMatches(ctx context.Context, limit int) ([]models.MatchSummary, error) {
	summaries := make([]models.MatchSummary, 0)

	err := repo.services.Postgres.SelectContext(ctx, &summaries, `
		SELECT id, red_player, white_player, outcome, winner, turn_count, finished_at
		FROM matches
		ORDER BY finished_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing matches: %w", err)
	}

	return summaries, nil
}

// LookupMatches returns the summaries of the given matches. Unknown ids are skipped.
func (repo *MatchRepository) LookupMatches(ctx context.Context, ids []uuid.UUID) ([]models.MatchSummary, error) {
	idStrings := make([]string, len(ids))
	for i, id := range ids {
		idStrings[i] = id.String()
	}

	rows, err := repo.services.Postgres.QueryxContext(ctx, `
		SELECT id, red_player, white_player, outcome, winner, turn_count, finished_at
		FROM matches
		WHERE id = ANY($1::uuid[])
	`, pq.Array(idStrings))
	if err != nil {
		return nil, fmt.Errorf("error looking up matches: %w", err)
	}
	defer rows.Close()

	summaries := make([]models.MatchSummary, 0, len(ids))
	for rows.Next() {
		var summary models.MatchSummary
		if err = rows.StructScan(&summary); err != nil {
			return nil, fmt.Errorf("error scanning match: %w", err)
		}
		summaries = append(summaries, summary)
	}

	return summaries, rows.Err()
}

// colorColumn stores the zero color as an empty string.
func colorColumn(color checkers.PieceColor) string {
	text, _ := color.MarshalText() //nolint:errcheck
	return string(text)
}
