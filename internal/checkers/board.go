package checkers

import (
	"fmt"
	"strings"
)

// SquareColor is the color of a board square. Only dark squares hold pieces.
type SquareColor uint8

const (
	Light SquareColor = iota
	Dark
)

func (c SquareColor) String() string {
	if c == Dark {
		return "dark"
	}
	return "light"
}

// Square is a single cell of the board.
type Square struct {
	color             SquareColor
	piece             Piece
	occupied          bool
	redPromotionRow   bool
	whitePromotionRow bool
}

// Color returns the color of the square.
func (s Square) Color() SquareColor {
	return s.color
}

// Piece returns the occupant of the square, if any.
func (s Square) Piece() (Piece, bool) {
	return s.piece, s.occupied
}

// IsRedPromotionRow returns true if a red single landing here is crowned.
func (s Square) IsRedPromotionRow() bool {
	return s.redPromotionRow
}

// IsWhitePromotionRow returns true if a white single landing here is crowned.
func (s Square) IsWhitePromotionRow() bool {
	return s.whitePromotionRow
}

func (s Square) isPromotionRowFor(color PieceColor) bool {
	if color == Red {
		return s.redPromotionRow
	}
	return s.whitePromotionRow
}

// Board is an 8x8 checkers board. It is a value type: copying a Board copies all squares.
type Board struct {
	squares [MaxRow][MaxCol]Square
}

// NewBoardEmpty creates a board with square colors and promotion rows but no pieces.
func NewBoardEmpty() Board {
	var b Board
	for row := range MaxRow {
		for col := range MaxCol {
			color := Light
			if (row+col)%2 == 0 {
				color = Dark
			}

			b.squares[row][col] = Square{
				color:             color,
				redPromotionRow:   row == Red.promotionRow(),
				whitePromotionRow: row == White.promotionRow(),
			}
		}
	}
	return b
}

// NewBoardStart creates a board with the standard starting layout: red on rows 0-2, white on rows 5-7.
func NewBoardStart() Board {
	b := NewBoardEmpty()
	for row := range MaxRow {
		for col := range MaxCol {
			if b.squares[row][col].color != Dark {
				continue
			}

			switch {
			case row < 3:
				b.place(Position{Row: row, Col: col}, Piece{Color: Red})
			case row > 4:
				b.place(Position{Row: row, Col: col}, Piece{Color: White})
			}
		}
	}
	return b
}

// NewBoardFromString parses a board string as produced by Board.String.
func NewBoardFromString(s string) (Board, error) {
	rows := strings.Split(s, "/")
	if len(rows) != MaxRow {
		return Board{}, fmt.Errorf("board string must have %d rows, got %d", MaxRow, len(rows))
	}

	b := NewBoardEmpty()
	for row, line := range rows {
		if len(line) != MaxCol {
			return Board{}, fmt.Errorf("row %d must be %d characters long, got %d", row, MaxCol, len(line))
		}

		for col := range MaxCol {
			symbol := line[col]
			if symbol == '.' {
				continue
			}

			piece, ok := pieceFromSymbol(symbol)
			if !ok {
				return Board{}, fmt.Errorf("invalid symbol %q at row %d column %d", symbol, row, col)
			}

			if err := b.SetPiece(Position{Row: row, Col: col}, piece); err != nil {
				return Board{}, err
			}
		}
	}
	return b, nil
}

// NewBoardMust parses a board string and panics if it is invalid.
func NewBoardMust(s string) Board {
	b, err := NewBoardFromString(s)
	if err != nil {
		panic(err)
	}
	return b
}

// At returns the square at the given position.
// The position must be on the board; At panics otherwise.
func (b Board) At(pos Position) Square {
	return b.squares[pos.Row][pos.Col]
}

// PieceAt returns the piece at the given position, if any.
func (b Board) PieceAt(pos Position) (Piece, bool) {
	if !pos.InBounds() {
		return Piece{}, false
	}
	return b.squares[pos.Row][pos.Col].Piece()
}

// ColorAt returns the color of the piece at the given position.
// The square must be occupied; ColorAt panics otherwise.
func (b Board) ColorAt(pos Position) PieceColor {
	piece, ok := b.PieceAt(pos)
	if !ok {
		panic(fmt.Sprintf("no piece at %s", pos))
	}
	return piece.Color
}

// SquareColorAt returns the color of the square at the given position.
// The position must be on the board; SquareColorAt panics otherwise.
func (b Board) SquareColorAt(pos Position) SquareColor {
	return b.squares[pos.Row][pos.Col].color
}

// IsEmpty returns true if no piece occupies the given position. Positions off the board are empty.
func (b Board) IsEmpty(pos Position) bool {
	_, ok := b.PieceAt(pos)
	return !ok
}

// isLandable returns true if a piece may be put on the position: on the board, dark and empty.
func (b Board) isLandable(pos Position) bool {
	if !pos.InBounds() {
		return false
	}
	square := b.squares[pos.Row][pos.Col]
	return square.color == Dark && !square.occupied
}

func (b *Board) place(pos Position, piece Piece) {
	square := &b.squares[pos.Row][pos.Col]
	square.piece = piece
	square.occupied = true
}

// SetPiece puts a piece on the board, replacing any occupant. Light squares are rejected.
func (b *Board) SetPiece(pos Position, piece Piece) error {
	if !pos.InBounds() {
		return fmt.Errorf("position %s is out of bounds", pos)
	}
	if b.SquareColorAt(pos) != Dark {
		return fmt.Errorf("cannot place a piece on light square %s", pos)
	}
	b.place(pos, piece)
	return nil
}

// RemovePiece takes the occupant off the given position and returns it.
func (b *Board) RemovePiece(pos Position) (Piece, bool) {
	if !pos.InBounds() {
		return Piece{}, false
	}

	square := &b.squares[pos.Row][pos.Col]
	if !square.occupied {
		return Piece{}, false
	}

	piece := square.piece
	square.piece = Piece{}
	square.occupied = false
	return piece, true
}

// ApplyMove moves the occupant of move.Start to move.End, or the other way around if reverse is set.
// Nothing happens if the source is empty or the destination is not a dark empty square.
// The promotable result reports a single landing on its color's promotion row; crowning is left to the caller.
func (b *Board) ApplyMove(move Move, reverse bool) (moved bool, promotable bool) {
	if reverse {
		move = move.Reverse()
	}

	if !move.Start.InBounds() || !b.isLandable(move.End) {
		return false, false
	}

	piece, ok := b.RemovePiece(move.Start)
	if !ok {
		return false, false
	}

	b.place(move.End, piece)

	promotable = !piece.IsKing() && b.At(move.End).isPromotionRowFor(piece.Color)
	return true, promotable
}

// Promote crowns the single piece at the given position. It returns false if there is nothing to crown.
func (b *Board) Promote(pos Position) bool {
	return b.setRank(pos, King)
}

// Demote turns the king at the given position back into a single piece.
func (b *Board) Demote(pos Position) bool {
	return b.setRank(pos, Single)
}

func (b *Board) setRank(pos Position, rank Rank) bool {
	if !pos.InBounds() {
		return false
	}

	square := &b.squares[pos.Row][pos.Col]
	if !square.occupied || square.piece.Rank == rank {
		return false
	}
	square.piece.Rank = rank
	return true
}

// Rotated180 returns a new board whose cell (r, c) is this board's cell (7-r, 7-c).
func (b Board) Rotated180() Board {
	var rotated Board
	for row := range MaxRow {
		for col := range MaxCol {
			rotated.squares[row][col] = b.squares[MaxRow-1-row][MaxCol-1-col]
		}
	}
	return rotated
}

// Equal compares all 64 squares.
func (b Board) Equal(other Board) bool {
	return b == other
}

// Count returns the number of pieces of the given color.
func (b Board) Count(color PieceColor) int {
	return len(b.Pieces(color))
}

// Pieces returns the positions of all pieces of the given color in row-major order.
func (b Board) Pieces(color PieceColor) []Position {
	positions := make([]Position, 0, 12)
	for row := range MaxRow {
		for col := range MaxCol {
			square := b.squares[row][col]
			if square.occupied && square.piece.Color == color {
				positions = append(positions, Position{Row: row, Col: col})
			}
		}
	}
	return positions
}

// String returns the board as 8 rows separated by '/', using r, R, w, W for pieces and '.' otherwise.
func (b Board) String() string {
	var sb strings.Builder
	for row := range MaxRow {
		if row > 0 {
			sb.WriteByte('/')
		}
		for col := range MaxCol {
			square := b.squares[row][col]
			if square.occupied {
				sb.WriteByte(square.piece.symbol())
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

// MarshalText implements encoding.TextMarshaler using the board string.
func (b Board) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Board) UnmarshalText(text []byte) error {
	parsed, err := NewBoardFromString(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// ASCIIArtLines returns the ascii art lines for the board.
func (b Board) ASCIIArtLines() []string {
	lines := make([]string, MaxRow+2)

	lines[0] = "+-0-1-2-3-4-5-6-7-+"
	for row := range MaxRow {
		line := fmt.Sprintf("%d ", row)

		for col := range MaxCol {
			square := b.squares[row][col]

			switch {
			case square.occupied:
				line += string(square.piece.symbol()) + " "
			case square.color == Dark:
				line += "· "
			default:
				line += "  "
			}
		}

		lines[row+1] = line + "|"
	}

	lines[MaxRow+1] = "+-----------------+"

	return lines
}
