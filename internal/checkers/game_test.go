package checkers

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGame_StandardMoveAndCommit(t *testing.T) {
	game := NewGame()

	kind, err := game.SubmitMove(White, mv(5, 1, 4, 0))
	require.ErrorIs(t, err, ErrOutOfTurn)
	require.Equal(t, KindInvalid, kind)

	kind, err = game.SubmitMove(Red, mv(2, 0, 3, 1))
	require.NoError(t, err)
	require.Equal(t, KindStandardSingle, kind)

	// Only the mover sees the tentative move.
	require.True(t, game.IsMover(Red))
	require.False(t, game.IsMover(White))
	require.Equal(t, Red, game.BoardView(White, game.IsMover(White)).ColorAt(pos(2, 0)))
	require.Equal(t, Red, game.BoardView(Red, game.IsMover(Red)).Rotated180().ColorAt(pos(3, 1)))

	// Asking for red's perspective is not enough to see the draft.
	require.Equal(t, Red, game.BoardView(Red, false).Rotated180().ColorAt(pos(2, 0)))

	turn, err := game.CommitTurn(Red)
	require.NoError(t, err)
	require.Equal(t, Turn{Color: Red, Moves: []TurnMove{{Move: mv(2, 0, 3, 1)}}}, turn)

	state := game.State()
	require.Equal(t, White, state.ActiveColor())
	require.Equal(t, WhiteTurn, state.Phase())
	require.Equal(t, 1, game.Ledger().Len())
	require.Empty(t, game.PendingMoves())
	require.True(t, game.Live().Equal(game.Draft()))
	require.Equal(t, Red, game.BoardView(White, game.IsMover(White)).ColorAt(pos(3, 1)))
}

func TestGame_JumpCapturesOnCommit(t *testing.T) {
	game := NewGameWithStart(newTestBoard(t, map[Position]Piece{
		pos(1, 3): redSingle,
		pos(2, 2): whiteSingle,
		pos(6, 6): whiteSingle,
	}), Red)

	kind, err := game.SubmitMove(Red, mv(1, 3, 3, 1))
	require.NoError(t, err)
	require.Equal(t, KindJumpSingle, kind)

	require.False(t, game.Draft().IsEmpty(pos(2, 2)))
	require.Equal(t, 2, game.State().PieceCount(White))

	turn, err := game.CommitTurn(Red)
	require.NoError(t, err)
	require.True(t, turn.Moves[0].Captured)

	state := game.State()
	require.Equal(t, 1, state.PieceCount(Red))
	require.Equal(t, 1, state.PieceCount(White))
	require.True(t, game.Live().IsEmpty(pos(2, 2)))
	require.Equal(t, White, state.ActiveColor())
}

func TestGame_MandatoryJump(t *testing.T) {
	game := NewGameWithStart(newTestBoard(t, map[Position]Piece{
		pos(1, 3): redSingle,
		pos(2, 2): whiteSingle,
		pos(1, 7): redSingle,
	}), Red)

	_, err := game.SubmitMove(Red, mv(1, 7, 2, 6))

	var jumpErr *MandatoryJumpError
	require.True(t, errors.As(err, &jumpErr))
	require.Equal(t, pos(1, 3), jumpErr.At)
	require.Empty(t, game.PendingMoves())
}

func TestGame_ChainedJumps(t *testing.T) {
	game := NewGameWithStart(newTestBoard(t, map[Position]Piece{
		pos(0, 0): redSingle,
		pos(1, 1): whiteSingle,
		pos(3, 3): whiteSingle,
		pos(0, 4): redSingle,
		pos(1, 5): whiteSingle,
		pos(7, 7): whiteSingle,
	}), Red)

	_, err := game.SubmitMove(Red, mv(0, 0, 2, 2))
	require.NoError(t, err)

	// The chain is not finished yet.
	_, err = game.CommitTurn(Red)
	var jumpErr *MandatoryJumpError
	require.True(t, errors.As(err, &jumpErr))
	require.Equal(t, pos(2, 2), jumpErr.At)

	_, err = game.SubmitMove(Red, mv(0, 4, 2, 6))
	require.ErrorIs(t, err, ErrNotChainPiece)

	_, err = game.SubmitMove(Red, mv(2, 2, 4, 4))
	require.NoError(t, err)

	turn, err := game.CommitTurn(Red)
	require.NoError(t, err)
	require.Len(t, turn.Moves, 2)
	require.True(t, turn.Moves[0].Captured)
	require.True(t, turn.Moves[1].Captured)

	require.Equal(t, 2, game.State().PieceCount(White))
	require.Equal(t, White, game.State().ActiveColor())
}

func TestGame_BacktrackRejected(t *testing.T) {
	game := NewGameWithStart(newTestBoard(t, map[Position]Piece{
		pos(4, 4): redKing,
		pos(3, 3): whiteSingle,
		pos(7, 7): whiteSingle,
	}), Red)

	kind, err := game.SubmitMove(Red, mv(4, 4, 2, 2))
	require.NoError(t, err)
	require.Equal(t, KindJumpKing, kind)

	kind, err = game.SubmitMove(Red, mv(2, 2, 4, 4))
	require.ErrorIs(t, err, ErrBacktrackRejected)
	require.Equal(t, KindJumpKing, kind)
	require.Len(t, game.PendingMoves(), 1)
}

func TestGame_MovesAfterStandard(t *testing.T) {
	game := NewGameWithStart(newTestBoard(t, map[Position]Piece{
		pos(2, 0): redSingle,
		pos(2, 4): redSingle,
		pos(4, 2): whiteSingle,
		pos(7, 7): whiteSingle,
	}), Red)

	_, err := game.SubmitMove(Red, mv(2, 0, 3, 1))
	require.NoError(t, err)

	_, err = game.SubmitMove(Red, mv(2, 4, 3, 5))
	require.ErrorIs(t, err, ErrNotSoleMoveOfTurn)

	_, err = game.SubmitMove(Red, mv(3, 1, 5, 3))
	require.ErrorIs(t, err, ErrJumpAfterStandard)
}

func TestGame_BackupAndDiscard(t *testing.T) {
	game := NewGame()

	_, err := game.BackupMove(Red)
	require.ErrorIs(t, err, ErrNoPriorMove)

	_, err = game.CommitTurn(Red)
	require.ErrorIs(t, err, ErrEmptyTurn)

	_, err = game.SubmitMove(Red, mv(2, 0, 3, 1))
	require.NoError(t, err)

	_, err = game.BackupMove(White)
	require.ErrorIs(t, err, ErrOutOfTurn)

	move, err := game.BackupMove(Red)
	require.NoError(t, err)
	require.Equal(t, mv(2, 0, 3, 1), move)
	require.True(t, game.Draft().Equal(game.Live()))

	_, err = game.SubmitMove(Red, mv(2, 2, 3, 3))
	require.NoError(t, err)

	require.NoError(t, game.DiscardTurn(Red))
	require.Empty(t, game.PendingMoves())
	require.True(t, game.Draft().Equal(NewBoardStart()))
}

func TestGame_Promotion(t *testing.T) {
	game := NewGameWithStart(newTestBoard(t, map[Position]Piece{
		pos(6, 0): redSingle,
		pos(5, 5): whiteSingle,
	}), Red)

	_, err := game.SubmitMove(Red, mv(6, 0, 7, 1))
	require.NoError(t, err)

	turn, err := game.CommitTurn(Red)
	require.NoError(t, err)
	require.True(t, turn.Moves[0].Promoted)

	piece, _ := game.Live().PieceAt(pos(7, 1))
	require.Equal(t, redKing, piece)
}

func TestGame_Resign(t *testing.T) {
	game := NewGame()

	_, err := game.SubmitMove(Red, mv(2, 0, 3, 1))
	require.NoError(t, err)

	require.NoError(t, game.Resign(Red))

	state := game.State()
	require.True(t, state.IsOver())
	require.Equal(t, OutcomeResigned, state.Outcome())
	require.Equal(t, White, state.ActiveColor())

	winner, _ := state.Winner()
	require.Equal(t, White, winner)

	// The open turn is dropped.
	require.Empty(t, game.PendingMoves())
	require.Equal(t, 0, game.Ledger().Len())

	_, err = game.SubmitMove(White, mv(5, 1, 4, 0))
	require.ErrorIs(t, err, ErrGameOver)
	require.ErrorIs(t, game.Resign(White), ErrGameOver)
}

func TestGame_EndConditions(t *testing.T) {
	tests := []struct {
		name        string
		pieces      map[Position]Piece
		move        Move
		wantOutcome Outcome
	}{
		{
			name:        "last white piece captured",
			pieces:      map[Position]Piece{pos(1, 3): redSingle, pos(2, 2): whiteSingle},
			move:        mv(1, 3, 3, 1),
			wantOutcome: OutcomeNoWhitePieces,
		},
		{
			name: "white cannot move",
			pieces: map[Position]Piece{
				pos(0, 0): redSingle, pos(0, 2): redSingle,
				pos(2, 0): redSingle, pos(2, 2): redSingle,
				pos(1, 1): whiteSingle, pos(4, 4): redSingle,
			},
			move:        mv(4, 4, 5, 5),
			wantOutcome: OutcomeBlocked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := NewGameWithStart(newTestBoard(t, tt.pieces), Red)

			_, err := game.SubmitMove(Red, tt.move)
			require.NoError(t, err)

			_, err = game.CommitTurn(Red)
			require.NoError(t, err)

			state := game.State()
			require.Equal(t, Over, state.Phase())
			require.Equal(t, tt.wantOutcome, state.Outcome())

			winner, ok := state.Winner()
			require.True(t, ok)
			require.Equal(t, Red, winner)

			_, err = game.CommitTurn(White)
			require.ErrorIs(t, err, ErrGameOver)
		})
	}
}

func TestIsRuleError(t *testing.T) {
	require.True(t, IsRuleError(ErrOutOfTurn))
	require.True(t, IsRuleError(&MandatoryJumpError{At: pos(1, 3)}))
	require.True(t, IsRuleError(fmt.Errorf("wrapped: %w", ErrBacktrackRejected)))
	require.False(t, IsRuleError(ErrUnknownOutcome))
	require.False(t, IsRuleError(errors.New("database is down")))
}
