package matches

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lk16/webcheckers/internal/checkers"
	"github.com/lk16/webcheckers/internal/models"
)

// Match is one running game between two seated players. All access to the game goes through the
// match mutex, so a match has a single writer at a time.
type Match struct {
	ID      uuid.UUID
	Red     string
	White   string
	Created time.Time

	// first is the color that moved first
	first checkers.PieceColor

	// mu protects game
	mu   sync.Mutex
	game *checkers.Game
}

func newMatch(red, white string, start checkers.Board, first checkers.PieceColor) *Match {
	return &Match{
		ID:      uuid.New(),
		Red:     red,
		White:   white,
		Created: time.Now(),
		first:   first,
		game:    checkers.NewGameWithStart(start, first),
	}
}

// ColorOf returns the color the given player plays.
func (m *Match) ColorOf(player string) (checkers.PieceColor, error) {
	switch player {
	case m.Red:
		return checkers.Red, nil
	case m.White:
		return checkers.White, nil
	default:
		return 0, ErrUnknownPlayer
	}
}

// SubmitMove validates and records a tentative move of the given player.
func (m *Match) SubmitMove(player string, move checkers.Move) (checkers.MoveKind, error) {
	color, err := m.ColorOf(player)
	if err != nil {
		return checkers.KindInvalid, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.game.SubmitMove(color, move)
}

// BackupMove undoes the last tentative move of the given player.
func (m *Match) BackupMove(player string) (checkers.Move, error) {
	color, err := m.ColorOf(player)
	if err != nil {
		return checkers.Move{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.game.BackupMove(color)
}

// DiscardTurn drops the open turn of the given player.
func (m *Match) DiscardTurn(player string) error {
	color, err := m.ColorOf(player)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.game.DiscardTurn(color)
}

// CommitTurn commits the open turn of the given player.
func (m *Match) CommitTurn(player string) (checkers.Turn, checkers.GameState, error) {
	color, err := m.ColorOf(player)
	if err != nil {
		return checkers.Turn{}, checkers.GameState{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	turn, err := m.game.CommitTurn(color)
	return turn, m.game.State(), err
}

// Resign ends the match on behalf of the given player.
func (m *Match) Resign(player string) (checkers.GameState, error) {
	color, err := m.ColorOf(player)
	if err != nil {
		return checkers.GameState{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	err = m.game.Resign(color)
	return m.game.State(), err
}

// View returns the match rotated for the given color. The open turn is only shown when viewer is
// the seated player who is building it; other players and spectators see the live board.
func (m *Match) View(perspective checkers.PieceColor, viewer string) models.MatchView {
	m.mu.Lock()
	defer m.mu.Unlock()

	state := m.game.State()

	seat, err := m.ColorOf(viewer)
	isMover := err == nil && m.game.IsMover(seat)

	var pending []checkers.Move
	if isMover {
		pending = m.game.PendingMoves()
	}

	return models.MatchView{
		MatchID:     m.ID.String(),
		Red:         m.Red,
		White:       m.White,
		Perspective: perspective,
		Board:       m.game.BoardView(perspective, isMover),
		Pending:     pending,
		Turns:       m.game.Ledger().Len(),
		State:       models.NewStateView(state),
	}
}

// Record returns the archive record of the match in its current state.
func (m *Match) Record(finishedAt time.Time) models.MatchRecord {
	m.mu.Lock()
	defer m.mu.Unlock()

	state := m.game.State()
	winner, _ := state.Winner()

	return models.MatchRecord{
		ID:          m.ID,
		Red:         m.Red,
		White:       m.White,
		Start:       m.game.Start(),
		First:       m.first,
		Ledger:      m.game.Ledger(),
		Outcome:     state.Outcome(),
		Winner:      winner,
		RedPieces:   state.PieceCount(checkers.Red),
		WhitePieces: state.PieceCount(checkers.White),
		CreatedAt:   m.Created,
		FinishedAt:  finishedAt,
	}
}
