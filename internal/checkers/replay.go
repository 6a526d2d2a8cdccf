package checkers

// Replay steps through a ledger of committed turns in both directions on its own board.
// The cursor counts the turns applied so far and lies in [0, ledger length].
type Replay struct {
	ledger   Ledger
	start    Board
	board    Board
	cursor   int
	captured []Piece
}

// OpenReplay creates a replay of a ledger played from the standard starting board.
func OpenReplay(ledger Ledger) *Replay {
	return OpenReplayFrom(NewBoardStart(), ledger)
}

// OpenReplayFrom creates a replay of a ledger played from a custom starting board.
func OpenReplayFrom(start Board, ledger Ledger) *Replay {
	return &Replay{
		ledger: ledger,
		start:  start,
		board:  start,
	}
}

// Board returns a copy of the replay board at the current cursor.
func (r *Replay) Board() Board {
	return r.board
}

// Start returns a copy of the board the ledger is played from.
func (r *Replay) Start() Board {
	return r.start
}

// Cursor returns the number of turns currently applied.
func (r *Replay) Cursor() int {
	return r.cursor
}

// Len returns the number of turns in the ledger.
func (r *Replay) Len() int {
	return r.ledger.Len()
}

// AtStart returns true if no turn has been applied.
func (r *Replay) AtStart() bool {
	return r.cursor == 0
}

// ReachedEnd returns true if every turn has been applied.
func (r *Replay) ReachedEnd() bool {
	return r.cursor == r.ledger.Len()
}

// CurrentTurn returns the most recently applied turn.
func (r *Replay) CurrentTurn() (Turn, bool) {
	if r.AtStart() {
		return Turn{}, false
	}
	return r.ledger.Turn(r.cursor - 1), true
}

// StepForward applies the next turn.
func (r *Replay) StepForward() error {
	if r.ReachedEnd() {
		return ErrReplayBoundary
	}

	turn := r.ledger.turns[r.cursor]
	for _, move := range turn.Moves {
		if move.Captured {
			if piece, ok := r.board.RemovePiece(move.Midpoint()); ok {
				r.captured = append(r.captured, piece)
			}
		}

		r.board.ApplyMove(move.Move, false)

		if move.Promoted {
			r.board.Promote(move.End)
		}
	}

	r.cursor++
	return nil
}

// StepBackward reverts the most recently applied turn, restoring captured pieces and
// uncrowning pieces that were promoted during that turn.
func (r *Replay) StepBackward() error {
	if r.AtStart() {
		return ErrReplayBoundary
	}

	turn := r.ledger.turns[r.cursor-1]
	for i := len(turn.Moves) - 1; i >= 0; i-- {
		move := turn.Moves[i]

		if move.Promoted {
			r.board.Demote(move.End)
		}

		r.board.ApplyMove(move.Move, true)

		if move.Captured && len(r.captured) > 0 {
			piece := r.captured[len(r.captured)-1]
			r.captured = r.captured[:len(r.captured)-1]
			r.board.place(move.Midpoint(), piece)
		}
	}

	r.cursor--
	return nil
}

// Reset steps backward until the cursor is at the start.
func (r *Replay) Reset() {
	for !r.AtStart() {
		_ = r.StepBackward()
	}
}

// Seek moves the cursor to the given turn count.
func (r *Replay) Seek(cursor int) error {
	if cursor < 0 || cursor > r.ledger.Len() {
		return ErrReplayBoundary
	}

	for r.cursor > cursor {
		if err := r.StepBackward(); err != nil {
			return err
		}
	}

	for r.cursor < cursor {
		if err := r.StepForward(); err != nil {
			return err
		}
	}
	return nil
}
