package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lk16/webcheckers/internal/checkers"
)

// MatchRecord is a finished or abandoned match as it is archived.
type MatchRecord struct {
	ID          uuid.UUID           `json:"id"`
	Red         string              `json:"red"`
	White       string              `json:"white"`
	Start       checkers.Board      `json:"start"`
	First       checkers.PieceColor `json:"first"`
	Ledger      checkers.Ledger     `json:"ledger"`
	Outcome     checkers.Outcome    `json:"outcome"`
	Winner      checkers.PieceColor `json:"winner"`
	RedPieces   int                 `json:"red_pieces"`
	WhitePieces int                 `json:"white_pieces"`
	CreatedAt   time.Time           `json:"created_at"`
	FinishedAt  time.Time           `json:"finished_at"`
}

// MatchSummary is a row of the archive listing.
type MatchSummary struct {
	ID         uuid.UUID `json:"id"          db:"id"`
	Red        string    `json:"red"         db:"red_player"`
	White      string    `json:"white"       db:"white_player"`
	Outcome    string    `json:"outcome"     db:"outcome"`
	Winner     string    `json:"winner"      db:"winner"`
	Turns      int       `json:"turns"       db:"turn_count"`
	FinishedAt time.Time `json:"finished_at" db:"finished_at"`
}

// ReplaySession is the persisted state of a replay session.
type ReplaySession struct {
	ID      uuid.UUID `json:"id"`
	MatchID uuid.UUID `json:"match_id"`
	Cursor  int       `json:"cursor"`
}

// TurnMoves is the list of moves of one archived turn. It is stored as a jsonb column.
type TurnMoves []checkers.TurnMove

// Scan implements the sql.Scanner interface for TurnMoves.
func (m *TurnMoves) Scan(value interface{}) error {
	var bytes []byte

	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into TurnMoves", value)
	}

	if bytes == nil {
		return errors.New("cannot scan nil into TurnMoves")
	}

	var moves []checkers.TurnMove
	if err := json.Unmarshal(bytes, &moves); err != nil {
		return fmt.Errorf("cannot decode TurnMoves: %w", err)
	}

	*m = moves
	return nil
}

// Value implements the driver.Valuer interface for TurnMoves.
func (m TurnMoves) Value() (driver.Value, error) {
	if m == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]checkers.TurnMove(m))
}
