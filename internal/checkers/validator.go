package checkers

// MoveKind classifies a candidate move. It is computed once per move and passed along.
type MoveKind uint8

const (
	KindInvalid MoveKind = iota
	KindStandardSingle
	KindStandardKing
	KindJumpSingle
	KindJumpKing
)

var moveKindNames = map[MoveKind]string{
	KindInvalid:        "invalid",
	KindStandardSingle: "standard_single",
	KindStandardKing:   "standard_king",
	KindJumpSingle:     "jump_single",
	KindJumpKing:       "jump_king",
}

func (k MoveKind) String() string {
	return moveKindNames[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k MoveKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// IsStandard returns true for one-step moves.
func (k MoveKind) IsStandard() bool {
	return k == KindStandardSingle || k == KindStandardKing
}

// IsJump returns true for capturing moves.
func (k MoveKind) IsJump() bool {
	return k == KindJumpSingle || k == KindJumpKing
}

// Classify determines the kind of a move from its coordinate deltas and the piece on move.Start.
// Single pieces only move and jump forward for their color.
func Classify(board Board, move Move) MoveKind {
	if !move.InBounds() {
		return KindInvalid
	}

	piece, ok := board.PieceAt(move.Start)
	if !ok {
		return KindInvalid
	}

	dRow, dCol := move.deltas()
	if abs(dRow) != abs(dCol) {
		return KindInvalid
	}

	forward := dRow*piece.Color.forward() > 0

	switch abs(dRow) {
	case 1:
		if piece.IsKing() {
			return KindStandardKing
		}
		if forward {
			return KindStandardSingle
		}
	case 2:
		if piece.IsKing() {
			return KindJumpKing
		}
		if forward {
			return KindJumpSingle
		}
	}

	return KindInvalid
}

// Validate checks a candidate move by the active color against the draft board and the moves
// already made this turn. It never modifies its arguments.
func Validate(board Board, active PieceColor, turnMoves []Move, move Move) (MoveKind, error) {
	if !move.InBounds() {
		return KindInvalid, ErrInvalidGeometry
	}

	piece, ok := board.PieceAt(move.Start)
	if !ok {
		return KindInvalid, ErrEmptyStart
	}

	if piece.Color != active {
		return KindInvalid, ErrNotOwnPiece
	}

	kind := Classify(board, move)

	var err error
	switch {
	case kind.IsStandard():
		err = validateStandard(board, active, turnMoves, move)
	case kind.IsJump():
		err = validateJump(board, turnMoves, move)
	default:
		err = ErrInvalidGeometry
	}

	if err != nil {
		return kind, err
	}
	return kind, nil
}

func validateStandard(board Board, active PieceColor, turnMoves []Move, move Move) error {
	if len(turnMoves) > 0 {
		return ErrNotSoleMoveOfTurn
	}

	if !board.isLandable(move.End) {
		return ErrDestinationOccupied
	}

	if at, ok := FindForcedJump(board, active, turnMoves); ok {
		return &MandatoryJumpError{At: at}
	}

	return nil
}

func validateJump(board Board, turnMoves []Move, move Move) error {
	if len(turnMoves) > 0 {
		last := turnMoves[len(turnMoves)-1]
		if !last.IsJump() {
			return ErrJumpAfterStandard
		}

		if isBacktrack(turnMoves, move) {
			return ErrBacktrackRejected
		}

		if move.Start != last.End {
			return ErrNotChainPiece
		}
	}

	if !isCapture(board, turnMoves, move) {
		return ErrIllegalJumpTarget
	}

	return nil
}

// isBacktrack returns true if the move reverses any move already made this turn.
func isBacktrack(turnMoves []Move, move Move) bool {
	reversed := move.Reverse()
	for _, previous := range turnMoves {
		if previous == reversed {
			return true
		}
	}
	return false
}

// isCapture checks jump geometry: an opposing piece on the midpoint that was not already
// captured this turn, and an empty dark square to land on.
func isCapture(board Board, turnMoves []Move, move Move) bool {
	mover, ok := board.PieceAt(move.Start)
	if !ok {
		return false
	}

	midpoint := move.Midpoint()
	captured, ok := board.PieceAt(midpoint)
	if !ok || captured.Color == mover.Color {
		return false
	}

	for _, previous := range turnMoves {
		if previous.IsJump() && previous.Midpoint() == midpoint {
			return false
		}
	}

	return board.isLandable(move.End)
}

// rowDirections returns the row deltas a piece may travel in.
func rowDirections(piece Piece) []int {
	if piece.IsKing() {
		return []int{1, -1}
	}
	return []int{piece.Color.forward()}
}

// JumpTargets returns the landing squares of every legal jump from the given position.
// Jumps that would reverse a move made earlier this turn are excluded.
func JumpTargets(board Board, from Position, turnMoves []Move) []Position {
	piece, ok := board.PieceAt(from)
	if !ok {
		return nil
	}

	var targets []Position
	for _, dRow := range rowDirections(piece) {
		for _, dCol := range []int{-1, 1} {
			candidate := Move{Start: from, End: from.offset(2*dRow, 2*dCol)}

			if isBacktrack(turnMoves, candidate) {
				continue
			}

			if isCapture(board, turnMoves, candidate) {
				targets = append(targets, candidate.End)
			}
		}
	}
	return targets
}

// HasJumpsAvailable returns true if the piece at the given position can jump.
func HasJumpsAvailable(board Board, from Position, turnMoves []Move) bool {
	return len(JumpTargets(board, from, turnMoves)) > 0
}

// FindForcedJump scans all pieces of the given color and returns the first one, in row-major order,
// that has a jump available.
func FindForcedJump(board Board, color PieceColor, turnMoves []Move) (Position, bool) {
	for _, pos := range board.Pieces(color) {
		if HasJumpsAvailable(board, pos, turnMoves) {
			return pos, true
		}
	}
	return Position{}, false
}

// LegalMoves returns all moves that could start a turn for the given color.
// When any jump exists only jumps are returned.
func LegalMoves(board Board, color PieceColor) []Move {
	var jumps, steps []Move

	for _, pos := range board.Pieces(color) {
		for _, end := range JumpTargets(board, pos, nil) {
			jumps = append(jumps, Move{Start: pos, End: end})
		}

		if len(jumps) > 0 {
			continue
		}

		piece, _ := board.PieceAt(pos)
		for _, dRow := range rowDirections(piece) {
			for _, dCol := range []int{-1, 1} {
				end := pos.offset(dRow, dCol)
				if board.isLandable(end) {
					steps = append(steps, Move{Start: pos, End: end})
				}
			}
		}
	}

	if len(jumps) > 0 {
		return jumps
	}
	return steps
}

// HasAnyMove returns true if the given color can make at least one legal move.
func HasAnyMove(board Board, color PieceColor) bool {
	return len(LegalMoves(board, color)) > 0
}
