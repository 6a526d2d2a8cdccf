package checkers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// playRecordedGame plays a short game with a chained capture and a promotion. It returns the
// start board, the ledger and the live board after every committed turn, starting with the start board.
func playRecordedGame(t *testing.T) (Board, Ledger, []Board) {
	t.Helper()

	start := newTestBoard(t, map[Position]Piece{
		pos(0, 0): redSingle,
		pos(1, 1): whiteSingle,
		pos(3, 3): whiteSingle,
		pos(6, 0): redSingle,
		pos(7, 7): whiteSingle,
	})

	turns := []struct {
		color PieceColor
		moves []Move
	}{
		{Red, []Move{mv(0, 0, 2, 2), mv(2, 2, 4, 4)}},
		{White, []Move{mv(7, 7, 6, 6)}},
		{Red, []Move{mv(6, 0, 7, 1)}},
		{White, []Move{mv(6, 6, 5, 5)}},
		{Red, []Move{mv(4, 4, 6, 6)}},
	}

	game := NewGameWithStart(start, Red)
	boards := []Board{start}

	for _, turn := range turns {
		for _, move := range turn.moves {
			_, err := game.SubmitMove(turn.color, move)
			require.NoError(t, err, "move %s", move)
		}

		_, err := game.CommitTurn(turn.color)
		require.NoError(t, err)

		boards = append(boards, game.Live())
	}

	require.Equal(t, OutcomeNoWhitePieces, game.State().Outcome())
	return start, game.Ledger(), boards
}

func TestReplay_RoundTrip(t *testing.T) {
	start, ledger, boards := playRecordedGame(t)
	replay := OpenReplayFrom(start, ledger)

	require.Equal(t, 5, replay.Len())
	require.True(t, replay.AtStart())
	require.ErrorIs(t, replay.StepBackward(), ErrReplayBoundary)

	_, ok := replay.CurrentTurn()
	require.False(t, ok)

	for i := 1; i <= ledger.Len(); i++ {
		require.NoError(t, replay.StepForward())
		require.Equal(t, i, replay.Cursor())
		require.True(t, boards[i].Equal(replay.Board()), "forward to turn %d", i)
	}

	require.True(t, replay.ReachedEnd())
	require.ErrorIs(t, replay.StepForward(), ErrReplayBoundary)

	turn, ok := replay.CurrentTurn()
	require.True(t, ok)
	require.Equal(t, Red, turn.Color)

	for i := ledger.Len() - 1; i >= 0; i-- {
		require.NoError(t, replay.StepBackward())
		require.Equal(t, i, replay.Cursor())
		require.True(t, boards[i].Equal(replay.Board()), "backward to turn %d", i)
	}

	require.True(t, start.Equal(replay.Board()))
}

func TestReplay_PromotionUndone(t *testing.T) {
	start, ledger, _ := playRecordedGame(t)
	replay := OpenReplayFrom(start, ledger)

	require.NoError(t, replay.Seek(3))
	piece, _ := replay.Board().PieceAt(pos(7, 1))
	require.Equal(t, redKing, piece)

	require.NoError(t, replay.StepBackward())
	piece, ok := replay.Board().PieceAt(pos(6, 0))
	require.True(t, ok)
	require.Equal(t, redSingle, piece)
	require.True(t, replay.Board().IsEmpty(pos(7, 1)))
}

func TestReplay_SeekAndReset(t *testing.T) {
	start, ledger, boards := playRecordedGame(t)
	replay := OpenReplayFrom(start, ledger)

	require.NoError(t, replay.Seek(5))
	require.True(t, boards[5].Equal(replay.Board()))

	require.NoError(t, replay.Seek(2))
	require.True(t, boards[2].Equal(replay.Board()))

	require.ErrorIs(t, replay.Seek(6), ErrReplayBoundary)
	require.ErrorIs(t, replay.Seek(-1), ErrReplayBoundary)
	require.Equal(t, 2, replay.Cursor())

	replay.Reset()
	require.True(t, replay.AtStart())
	require.True(t, start.Equal(replay.Board()))
	require.True(t, start.Equal(replay.Start()))
}

func TestReplay_FromStandardStart(t *testing.T) {
	game := NewGame()

	_, err := game.SubmitMove(Red, mv(2, 0, 3, 1))
	require.NoError(t, err)
	_, err = game.CommitTurn(Red)
	require.NoError(t, err)

	replay := OpenReplay(game.Ledger())
	require.NoError(t, replay.StepForward())
	require.True(t, game.Live().Equal(replay.Board()))
}

func TestLedger_JSON(t *testing.T) {
	_, ledger, _ := playRecordedGame(t)

	data, err := json.Marshal(ledger)
	require.NoError(t, err)

	var decoded Ledger
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, ledger.Turns(), decoded.Turns())

	data, err = json.Marshal(Ledger{})
	require.NoError(t, err)
	require.Equal(t, "[]", string(data))

	invalid := `[{"color":"red","moves":[{"start":{"row":2,"col":0},"end":{"row":3,"col":1},"captured":true,"promoted":false}]}]`
	require.Error(t, json.Unmarshal([]byte(invalid), &decoded))

	empty := `[{"color":"white","moves":[]}]`
	require.Error(t, json.Unmarshal([]byte(empty), &decoded))
}

func TestLedger_Immutable(t *testing.T) {
	_, ledger, _ := playRecordedGame(t)

	turn := ledger.Turn(0)
	turn.Moves[0].Captured = false

	require.True(t, ledger.Turn(0).Moves[0].Captured)
}
