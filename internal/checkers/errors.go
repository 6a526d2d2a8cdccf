package checkers

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidGeometry        = errors.New("move does not match any legal move shape")
	ErrOutOfTurn              = errors.New("it is not this player's turn")
	ErrNotSoleMoveOfTurn      = errors.New("a previous move has already been made this turn")
	ErrMandatoryJumpAvailable = errors.New("a jump move is available")
	ErrIllegalJumpTarget      = errors.New("jump does not capture an opposing piece onto an empty square")
	ErrJumpAfterStandard      = errors.New("cannot jump after a standard move")
	ErrBacktrackRejected      = errors.New("backtracking is not allowed")
	ErrNoPriorMove            = errors.New("no previous move to back up")
	ErrReplayBoundary         = errors.New("replay cannot step past the start or end of the ledger")

	ErrEmptyStart          = errors.New("no piece on the start square")
	ErrNotOwnPiece         = errors.New("piece belongs to the opponent")
	ErrNotChainPiece       = errors.New("a jump chain must continue with the piece that just jumped")
	ErrDestinationOccupied = errors.New("destination square is not an empty dark square")
	ErrEmptyTurn           = errors.New("no moves were made this turn")
	ErrGameOver            = errors.New("the game is over")
	ErrUnknownOutcome      = errors.New("unknown game outcome")
)

// MandatoryJumpError reports the position of a piece that must jump.
type MandatoryJumpError struct {
	At Position
}

func (e *MandatoryJumpError) Error() string {
	return fmt.Sprintf("a jump move is available with your piece at row %d, column %d", e.At.Row, e.At.Col)
}

// Unwrap makes errors.Is(err, ErrMandatoryJumpAvailable) hold.
func (e *MandatoryJumpError) Unwrap() error {
	return ErrMandatoryJumpAvailable
}

var ruleErrors = []error{
	ErrInvalidGeometry,
	ErrOutOfTurn,
	ErrNotSoleMoveOfTurn,
	ErrMandatoryJumpAvailable,
	ErrIllegalJumpTarget,
	ErrJumpAfterStandard,
	ErrBacktrackRejected,
	ErrNoPriorMove,
	ErrReplayBoundary,
	ErrEmptyStart,
	ErrNotOwnPiece,
	ErrNotChainPiece,
	ErrDestinationOccupied,
	ErrEmptyTurn,
	ErrGameOver,
}

// IsRuleError returns true if err rejects a move or turn for breaking the rules of the game.
// Such errors leave all state unchanged and the caller may try again.
func IsRuleError(err error) bool {
	for _, ruleErr := range ruleErrors {
		if errors.Is(err, ruleErr) {
			return true
		}
	}
	return false
}
