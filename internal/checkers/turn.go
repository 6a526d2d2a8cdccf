package checkers

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

// TurnMove is a committed move together with what it caused on the live board.
type TurnMove struct {
	Move
	Captured bool `json:"captured"`
	Promoted bool `json:"promoted"`
}

// Turn is everything one player did in one turn: one standard move or one or more chained jumps.
type Turn struct {
	Color PieceColor `json:"color"`
	Moves []TurnMove `json:"moves"`
}

// Validate checks that the turn is non-empty and internally consistent.
func (t Turn) Validate() error {
	if t.Color != Red && t.Color != White {
		return fmt.Errorf("turn has invalid color %d", t.Color)
	}

	if len(t.Moves) == 0 {
		return errors.New("turn has no moves")
	}

	for i, move := range t.Moves {
		if !move.InBounds() {
			return fmt.Errorf("move %d is out of bounds", i)
		}

		if move.Captured != move.IsJump() {
			return fmt.Errorf("move %d capture flag does not match its distance", i)
		}
	}
	return nil
}

// Inverted returns a copy of the turn with every move mapped into the opposite player's frame.
func (t Turn) Inverted() Turn {
	inverted := t.clone()
	for i := range inverted.Moves {
		inverted.Moves[i].Move = inverted.Moves[i].Invert()
	}
	return inverted
}

func (t Turn) clone() Turn {
	return Turn{Color: t.Color, Moves: slices.Clone(t.Moves)}
}

// Ledger is the ordered history of committed turns. Turns are copied on the way in and out,
// so a turn in a ledger is never mutated.
type Ledger struct {
	turns []Turn
}

// NewLedger creates a ledger holding copies of the given turns.
func NewLedger(turns ...Turn) (Ledger, error) {
	var ledger Ledger
	for i, turn := range turns {
		if err := turn.Validate(); err != nil {
			return Ledger{}, fmt.Errorf("invalid turn %d: %w", i, err)
		}
		ledger = ledger.append(turn)
	}
	return ledger, nil
}

// append returns a ledger with the turn added at the end. The receiver is left untouched.
func (l Ledger) append(turn Turn) Ledger {
	turns := make([]Turn, len(l.turns), len(l.turns)+1)
	copy(turns, l.turns)
	return Ledger{turns: append(turns, turn.clone())}
}

// Len returns the number of turns.
func (l Ledger) Len() int {
	return len(l.turns)
}

// Turn returns a copy of the turn at the given index.
func (l Ledger) Turn(index int) Turn {
	return l.turns[index].clone()
}

// Turns returns copies of all turns.
func (l Ledger) Turns() []Turn {
	turns := make([]Turn, len(l.turns))
	for i, turn := range l.turns {
		turns[i] = turn.clone()
	}
	return turns
}

// MarshalJSON encodes the ledger as a list of turns.
func (l Ledger) MarshalJSON() ([]byte, error) {
	if l.turns == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.turns)
}

// UnmarshalJSON decodes a list of turns and validates each of them.
func (l *Ledger) UnmarshalJSON(data []byte) error {
	var turns []Turn
	if err := json.Unmarshal(data, &turns); err != nil {
		return err
	}

	ledger, err := NewLedger(turns...)
	if err != nil {
		return err
	}
	*l = ledger
	return nil
}
