package checkers

import "slices"

// DraftLiveBoard keeps the moves of an open turn apart from the committed board.
// The draft board shows the mover's tentative moves; the live board is the last committed state.
// Captured pieces stay on the draft board until the turn is committed.
type DraftLiveBoard struct {
	live  Board
	draft Board
	moves []Move
}

// NewDraftLiveBoard creates a draft/live pair that both start from the given board.
func NewDraftLiveBoard(start Board) *DraftLiveBoard {
	return &DraftLiveBoard{
		live:  start,
		draft: start,
	}
}

// Live returns a copy of the committed board.
func (d *DraftLiveBoard) Live() Board {
	return d.live
}

// Draft returns a copy of the board including tentative moves.
func (d *DraftLiveBoard) Draft() Board {
	return d.draft
}

// Moves returns a copy of the tentative moves made so far this turn.
func (d *DraftLiveBoard) Moves() []Move {
	return slices.Clone(d.moves)
}

// HasMoves returns true if the open turn has at least one tentative move.
func (d *DraftLiveBoard) HasMoves() bool {
	return len(d.moves) > 0
}

// ApplyTentative records the move and applies it to the draft board only.
func (d *DraftLiveBoard) ApplyTentative(move Move) {
	d.moves = append(d.moves, move)
	d.draft.ApplyMove(move, false)
}

// UndoLast removes the most recent tentative move and reverts it on the draft board.
func (d *DraftLiveBoard) UndoLast() (Move, error) {
	if len(d.moves) == 0 {
		return Move{}, ErrNoPriorMove
	}

	last := d.moves[len(d.moves)-1]
	d.moves = d.moves[:len(d.moves)-1]
	d.draft.ApplyMove(last, true)
	return last, nil
}

// Commit replays the tentative moves onto the live board, removing jumped pieces and crowning
// singles that land on their promotion row. It returns the per-move records and the captured pieces.
// Afterwards the draft board equals the live board and no tentative moves remain.
func (d *DraftLiveBoard) Commit() ([]TurnMove, []Piece) {
	records := make([]TurnMove, 0, len(d.moves))
	var captured []Piece

	for _, move := range d.moves {
		record := TurnMove{Move: move}

		if move.IsJump() {
			if piece, ok := d.live.RemovePiece(move.Midpoint()); ok {
				captured = append(captured, piece)
				record.Captured = true
			}
		}

		if _, promotable := d.live.ApplyMove(move, false); promotable {
			record.Promoted = d.live.Promote(move.End)
		}

		records = append(records, record)
	}

	d.draft = d.live
	d.moves = nil
	return records, captured
}

// Discard drops all tentative moves and resets the draft board to the live board.
func (d *DraftLiveBoard) Discard() {
	d.draft = d.live
	d.moves = nil
}
