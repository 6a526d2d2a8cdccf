package checkers

import (
	"fmt"
	"strings"
)

// PieceColor is the side a piece belongs to. The zero value means no color.
type PieceColor uint8

const (
	Red PieceColor = iota + 1
	White
)

// ParsePieceColor parses "red" or "white", case insensitive.
func ParsePieceColor(s string) (PieceColor, error) {
	switch strings.ToLower(s) {
	case "red":
		return Red, nil
	case "white":
		return White, nil
	default:
		return 0, fmt.Errorf("invalid piece color: %q", s)
	}
}

// Opponent returns the other color.
func (c PieceColor) Opponent() PieceColor {
	return Red + White - c
}

// forward returns the row direction single pieces of this color move in.
func (c PieceColor) forward() int {
	if c == Red {
		return 1
	}
	return -1
}

// promotionRow returns the far row on which a piece of this color is crowned.
func (c PieceColor) promotionRow() int {
	if c == Red {
		return MaxRow - 1
	}
	return 0
}

func (c PieceColor) String() string {
	switch c {
	case Red:
		return "red"
	case White:
		return "white"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c PieceColor) MarshalText() ([]byte, error) {
	if c != Red && c != White {
		return []byte(""), nil
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty string decodes to no color.
func (c *PieceColor) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*c = 0
		return nil
	}

	parsed, err := ParsePieceColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Rank is the rank of a piece.
type Rank uint8

const (
	Single Rank = iota
	King
)

func (r Rank) String() string {
	if r == King {
		return "king"
	}
	return "single"
}

// Piece is a checker of a given color and rank.
type Piece struct {
	Color PieceColor `json:"color"`
	Rank  Rank       `json:"rank"`
}

// IsKing returns true if the piece has been crowned.
func (p Piece) IsKing() bool {
	return p.Rank == King
}

// symbol returns the single character used for the piece in board strings.
func (p Piece) symbol() byte {
	switch {
	case p.Color == Red && p.IsKing():
		return 'R'
	case p.Color == Red:
		return 'r'
	case p.IsKing():
		return 'W'
	default:
		return 'w'
	}
}

func pieceFromSymbol(symbol byte) (Piece, bool) {
	switch symbol {
	case 'r':
		return Piece{Color: Red, Rank: Single}, true
	case 'R':
		return Piece{Color: Red, Rank: King}, true
	case 'w':
		return Piece{Color: White, Rank: Single}, true
	case 'W':
		return Piece{Color: White, Rank: King}, true
	default:
		return Piece{}, false
	}
}
