package checkers

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

const (
	MaxRow = 8
	MaxCol = 8
)

// Position is a zero-based (row, column) coordinate on the board.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NewPosition creates a new position and returns an error if it is off the board.
func NewPosition(row, col int) (Position, error) {
	pos := Position{Row: row, Col: col}
	if !pos.InBounds() {
		return Position{}, fmt.Errorf("position (%d, %d) is out of bounds", row, col)
	}
	return pos, nil
}

// InBounds returns true if the position lies on the 8x8 board.
func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < MaxRow && p.Col >= 0 && p.Col < MaxCol
}

// offset returns the position shifted by the given deltas. The result may be out of bounds.
func (p Position) offset(dRow, dCol int) Position {
	return Position{Row: p.Row + dRow, Col: p.Col + dCol}
}

// mirrored returns the point reflection of p through the board center.
func (p Position) mirrored() Position {
	return Position{Row: MaxRow - 1 - p.Row, Col: MaxCol - 1 - p.Col}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

// Move is a single step of a piece from Start to End.
type Move struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// NewMove creates a move between two positions.
func NewMove(start, end Position) Move {
	return Move{Start: start, End: end}
}

// Reverse returns the move with start and end swapped.
func (m Move) Reverse() Move {
	return Move{Start: m.End, End: m.Start}
}

// Invert maps the move into the opposite player's coordinate frame.
func (m Move) Invert() Move {
	return Move{Start: m.Start.mirrored(), End: m.End.mirrored()}
}

// deltas returns the signed row and column distance of the move.
func (m Move) deltas() (int, int) {
	return m.End.Row - m.Start.Row, m.End.Col - m.Start.Col
}

// IsJump returns true if the move covers two or more rows or columns.
func (m Move) IsJump() bool {
	dRow, dCol := m.deltas()
	return abs(dRow) >= 2 || abs(dCol) >= 2
}

// Midpoint returns the square halfway between start and end.
func (m Move) Midpoint() Position {
	return Position{
		Row: m.Start.Row + (m.End.Row-m.Start.Row)/2,
		Col: m.Start.Col + (m.End.Col-m.Start.Col)/2,
	}
}

// InBounds returns true if both endpoints lie on the board.
func (m Move) InBounds() bool {
	return m.Start.InBounds() && m.End.InBounds()
}

func (m Move) String() string {
	return fmt.Sprintf("%s -> %s", m.Start, m.End)
}

func abs[T constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}
