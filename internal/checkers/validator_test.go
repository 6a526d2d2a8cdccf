package checkers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		pieces map[Position]Piece
		move   Move
		want   MoveKind
	}{
		{"single forward", map[Position]Piece{pos(2, 0): redSingle}, mv(2, 0, 3, 1), KindStandardSingle},
		{"single backward", map[Position]Piece{pos(3, 1): redSingle}, mv(3, 1, 2, 0), KindInvalid},
		{"white single forward", map[Position]Piece{pos(5, 1): whiteSingle}, mv(5, 1, 4, 0), KindStandardSingle},
		{"white single backward", map[Position]Piece{pos(4, 0): whiteSingle}, mv(4, 0, 5, 1), KindInvalid},
		{"king backward", map[Position]Piece{pos(3, 1): redKing}, mv(3, 1, 2, 0), KindStandardKing},
		{"not diagonal", map[Position]Piece{pos(2, 0): redSingle}, mv(2, 0, 3, 0), KindInvalid},
		{"uneven", map[Position]Piece{pos(2, 0): redSingle}, mv(2, 0, 4, 1), KindInvalid},
		{"too far", map[Position]Piece{pos(2, 0): redSingle}, mv(2, 0, 5, 3), KindInvalid},
		{"zero distance", map[Position]Piece{pos(2, 0): redSingle}, mv(2, 0, 2, 0), KindInvalid},
		{"single jump", map[Position]Piece{pos(1, 3): redSingle}, mv(1, 3, 3, 1), KindJumpSingle},
		{"single jump backward", map[Position]Piece{pos(3, 1): redSingle}, mv(3, 1, 1, 3), KindInvalid},
		{"king jump backward", map[Position]Piece{pos(4, 4): redKing}, mv(4, 4, 2, 2), KindJumpKing},
		{"empty start", map[Position]Piece{}, mv(2, 0, 3, 1), KindInvalid},
		{"off board", map[Position]Piece{pos(7, 7): redKing}, mv(7, 7, 8, 8), KindInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := newTestBoard(t, tt.pieces)
			require.Equal(t, tt.want, Classify(board, tt.move))
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		pieces    map[Position]Piece
		active    PieceColor
		turnMoves []Move
		move      Move
		wantKind  MoveKind
		wantErr   error
	}{
		{
			name:     "standard move without jumps",
			pieces:   map[Position]Piece{pos(2, 0): redSingle, pos(5, 5): whiteSingle},
			active:   Red,
			move:     mv(2, 0, 3, 1),
			wantKind: KindStandardSingle,
		},
		{
			name:     "jump captures opposing piece",
			pieces:   map[Position]Piece{pos(1, 3): redSingle, pos(2, 2): whiteSingle},
			active:   Red,
			move:     mv(1, 3, 3, 1),
			wantKind: KindJumpSingle,
		},
		{
			name:     "standard move while a jump is available",
			pieces:   map[Position]Piece{pos(1, 3): redSingle, pos(2, 2): whiteSingle, pos(1, 7): redSingle},
			active:   Red,
			move:     mv(1, 7, 2, 6),
			wantKind: KindStandardSingle,
			wantErr:  ErrMandatoryJumpAvailable,
		},
		{
			name:     "out of bounds",
			pieces:   map[Position]Piece{pos(7, 7): redKing},
			active:   Red,
			move:     mv(7, 7, 8, 8),
			wantKind: KindInvalid,
			wantErr:  ErrInvalidGeometry,
		},
		{
			name:     "empty start",
			pieces:   map[Position]Piece{},
			active:   Red,
			move:     mv(2, 0, 3, 1),
			wantKind: KindInvalid,
			wantErr:  ErrEmptyStart,
		},
		{
			name:     "opponent piece",
			pieces:   map[Position]Piece{pos(5, 1): whiteSingle},
			active:   Red,
			move:     mv(5, 1, 4, 0),
			wantKind: KindInvalid,
			wantErr:  ErrNotOwnPiece,
		},
		{
			name:     "single moving backward",
			pieces:   map[Position]Piece{pos(3, 1): redSingle},
			active:   Red,
			move:     mv(3, 1, 2, 0),
			wantKind: KindInvalid,
			wantErr:  ErrInvalidGeometry,
		},
		{
			name:     "occupied destination",
			pieces:   map[Position]Piece{pos(2, 0): redSingle, pos(3, 1): redSingle},
			active:   Red,
			move:     mv(2, 0, 3, 1),
			wantKind: KindStandardSingle,
			wantErr:  ErrDestinationOccupied,
		},
		{
			name:     "jump over own piece",
			pieces:   map[Position]Piece{pos(1, 3): redSingle, pos(2, 2): redSingle},
			active:   Red,
			move:     mv(1, 3, 3, 1),
			wantKind: KindJumpSingle,
			wantErr:  ErrIllegalJumpTarget,
		},
		{
			name:     "jump over empty square",
			pieces:   map[Position]Piece{pos(1, 3): redSingle},
			active:   Red,
			move:     mv(1, 3, 3, 1),
			wantKind: KindJumpSingle,
			wantErr:  ErrIllegalJumpTarget,
		},
		{
			name:     "jump onto occupied square",
			pieces:   map[Position]Piece{pos(1, 3): redSingle, pos(2, 2): whiteSingle, pos(3, 1): whiteSingle},
			active:   Red,
			move:     mv(1, 3, 3, 1),
			wantKind: KindJumpSingle,
			wantErr:  ErrIllegalJumpTarget,
		},
		{
			name:      "second standard move",
			pieces:    map[Position]Piece{pos(3, 1): redSingle, pos(2, 4): redSingle},
			active:    Red,
			turnMoves: []Move{mv(2, 0, 3, 1)},
			move:      mv(2, 4, 3, 5),
			wantKind:  KindStandardSingle,
			wantErr:   ErrNotSoleMoveOfTurn,
		},
		{
			name:      "jump after standard move",
			pieces:    map[Position]Piece{pos(3, 1): redSingle, pos(4, 2): whiteSingle},
			active:    Red,
			turnMoves: []Move{mv(2, 0, 3, 1)},
			move:      mv(3, 1, 5, 3),
			wantKind:  KindJumpSingle,
			wantErr:   ErrJumpAfterStandard,
		},
		{
			name:      "backtracking king",
			pieces:    map[Position]Piece{pos(2, 2): redKing, pos(3, 3): whiteSingle},
			active:    Red,
			turnMoves: []Move{mv(4, 4, 2, 2)},
			move:      mv(2, 2, 4, 4),
			wantKind:  KindJumpKing,
			wantErr:   ErrBacktrackRejected,
		},
		{
			name: "chain with another piece",
			pieces: map[Position]Piece{
				pos(2, 2): redSingle, pos(1, 1): whiteSingle,
				pos(0, 4): redSingle, pos(1, 5): whiteSingle,
			},
			active:    Red,
			turnMoves: []Move{mv(0, 0, 2, 2)},
			move:      mv(0, 4, 2, 6),
			wantKind:  KindJumpSingle,
			wantErr:   ErrNotChainPiece,
		},
		{
			name:      "chain continues",
			pieces:    map[Position]Piece{pos(2, 2): redSingle, pos(1, 1): whiteSingle, pos(3, 3): whiteSingle},
			active:    Red,
			turnMoves: []Move{mv(0, 0, 2, 2)},
			move:      mv(2, 2, 4, 4),
			wantKind:  KindJumpSingle,
		},
		{
			name:     "white jumps toward row zero",
			pieces:   map[Position]Piece{pos(2, 2): whiteSingle, pos(1, 3): redSingle},
			active:   White,
			move:     mv(2, 2, 0, 4),
			wantKind: KindJumpSingle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := newTestBoard(t, tt.pieces)
			before := board

			kind, err := Validate(board, tt.active, tt.turnMoves, tt.move)
			require.Equal(t, tt.wantKind, kind)

			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.wantErr)
			}

			require.True(t, before.Equal(board))
		})
	}
}

func TestValidate_MandatoryJumpPosition(t *testing.T) {
	board := newTestBoard(t, map[Position]Piece{
		pos(1, 3): redSingle,
		pos(2, 2): whiteSingle,
		pos(1, 7): redSingle,
	})

	_, err := Validate(board, Red, nil, mv(1, 7, 2, 6))

	var jumpErr *MandatoryJumpError
	require.True(t, errors.As(err, &jumpErr))
	require.Equal(t, pos(1, 3), jumpErr.At)
	require.Equal(t, "a jump move is available with your piece at row 1, column 3", err.Error())
}

func TestIsCapture_MidpointAlreadyCaptured(t *testing.T) {
	board := newTestBoard(t, map[Position]Piece{
		pos(0, 0): redKing,
		pos(1, 1): whiteSingle,
	})

	require.True(t, isCapture(board, nil, mv(0, 0, 2, 2)))
	require.False(t, isCapture(board, []Move{mv(0, 2, 2, 0)}, mv(0, 0, 2, 2)))
}

func TestFindForcedJump(t *testing.T) {
	board := newTestBoard(t, map[Position]Piece{
		pos(1, 3): redSingle,
		pos(2, 2): whiteSingle,
		pos(1, 7): redSingle,
	})

	at, ok := FindForcedJump(board, Red, nil)
	require.True(t, ok)
	require.Equal(t, pos(1, 3), at)

	// White can jump the red piece at (1, 3) as well, but only the color asked for is scanned.
	at, ok = FindForcedJump(board, White, nil)
	require.True(t, ok)
	require.Equal(t, pos(2, 2), at)

	_, ok = FindForcedJump(NewBoardStart(), Red, nil)
	require.False(t, ok)
}

func TestJumpTargets(t *testing.T) {
	board := newTestBoard(t, map[Position]Piece{
		pos(4, 4): redKing,
		pos(3, 3): whiteSingle,
		pos(5, 5): whiteSingle,
		pos(3, 5): redSingle,
	})

	require.ElementsMatch(t, []Position{pos(2, 2), pos(6, 6)}, JumpTargets(board, pos(4, 4), nil))

	// The jump back to (6, 6) reverses a move made this turn.
	require.Equal(t, []Position{pos(2, 2)}, JumpTargets(board, pos(4, 4), []Move{mv(6, 6, 4, 4)}))

	require.Empty(t, JumpTargets(board, pos(0, 0), nil))
}

func TestLegalMoves(t *testing.T) {
	require.Len(t, LegalMoves(NewBoardStart(), Red), 7)
	require.Len(t, LegalMoves(NewBoardStart(), White), 7)

	board := newTestBoard(t, map[Position]Piece{
		pos(1, 3): redSingle,
		pos(2, 2): whiteSingle,
		pos(1, 7): redSingle,
	})
	require.Equal(t, []Move{mv(1, 3, 3, 1)}, LegalMoves(board, Red))

	blocked := newTestBoard(t, map[Position]Piece{
		pos(0, 0): redSingle,
		pos(0, 2): redSingle,
		pos(1, 1): whiteSingle,
		pos(2, 0): redSingle,
		pos(2, 2): redSingle,
	})
	require.False(t, HasAnyMove(blocked, White))
	require.True(t, HasAnyMove(blocked, Red))
}
