package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/lk16/webcheckers/internal/checkers"
)

var (
	redPiece    = color.New(color.FgRed, color.Bold, color.BgBlack)
	whitePiece  = color.New(color.FgHiWhite, color.Bold, color.BgBlack)
	darkSquare  = color.New(color.BgBlack)
	lightSquare = color.New(color.BgWhite)
)

// Board writes a colored board with row and column labels to w.
func Board(w io.Writer, board checkers.Board) {
	fmt.Fprintln(w, "   0  1  2  3  4  5  6  7")

	for row := range checkers.MaxRow {
		var line strings.Builder
		line.WriteString(fmt.Sprintf("%d ", row))

		for col := range checkers.MaxCol {
			line.WriteString(Square(board.At(checkers.Position{Row: row, Col: col})))
		}

		fmt.Fprintln(w, line.String())
	}

	fmt.Fprintf(w, "red: %d white: %d\n", board.Count(checkers.Red), board.Count(checkers.White))
}

// Square renders one square, three characters wide.
func Square(square checkers.Square) string {
	piece, ok := square.Piece()
	if !ok {
		if square.Color() == checkers.Dark {
			return darkSquare.Sprint("   ")
		}
		return lightSquare.Sprint("   ")
	}

	symbol := "o"
	if piece.IsKing() {
		symbol = "K"
	}

	if piece.Color == checkers.Red {
		return redPiece.Sprintf(" %s ", symbol)
	}
	return whitePiece.Sprintf(" %s ", symbol)
}
