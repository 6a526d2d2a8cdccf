package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/lk16/webcheckers/internal/checkers"
	"github.com/lk16/webcheckers/internal/models"
	"github.com/lk16/webcheckers/internal/render"
)

func main() {
	boardString := flag.String("board", "", "the board to show")
	ledgerFile := flag.String("ledger", "", "json file with an archived match or a ledger to replay")
	turn := flag.Int("turn", -1, "number of turns to replay, all turns if negative")
	perspective := flag.String("perspective", "white", "the side to show the board for")
	plain := flag.Bool("plain", false, "print ascii art without colors")
	flag.Parse()

	side, err := checkers.ParsePieceColor(*perspective)
	if err != nil {
		exit(err)
	}

	var board checkers.Board

	switch {
	case *ledgerFile != "":
		board, err = replayBoard(*ledgerFile, *turn)
	case *boardString != "":
		board, err = checkers.NewBoardFromString(*boardString)
	default:
		board = checkers.NewBoardStart()
	}

	if err != nil {
		exit(err)
	}

	if side == checkers.Red {
		board = board.Rotated180()
	}

	if *plain {
		for _, line := range board.ASCIIArtLines() {
			fmt.Println(line)
		}
		return
	}

	render.Board(os.Stdout, board)
}

func exit(err error) {
	fmt.Println(err)
	os.Exit(1)
}

// replayBoard loads a ledger file and returns the board after the given number of turns.
func replayBoard(path string, turns int) (checkers.Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return checkers.Board{}, err
	}

	replay, err := loadReplay(data)
	if err != nil {
		return checkers.Board{}, fmt.Errorf("cannot load %s: %w", path, err)
	}

	if turns < 0 {
		turns = replay.Len()
	}

	if err = replay.Seek(turns); err != nil {
		return checkers.Board{}, fmt.Errorf("cannot replay %d of %d turns: %w", turns, replay.Len(), err)
	}

	if turn, ok := replay.CurrentTurn(); ok {
		fmt.Printf("turn %d/%d by %s:", replay.Cursor(), replay.Len(), turn.Color)
		for _, move := range turn.Moves {
			fmt.Printf(" %s", move.Move)
		}
		fmt.Println()
	}

	return replay.Board(), nil
}

// loadReplay accepts either an archived match or a bare list of turns, which starts from the standard board.
func loadReplay(data []byte) (*checkers.Replay, error) {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		var ledger checkers.Ledger
		if err := json.Unmarshal(data, &ledger); err != nil {
			return nil, err
		}
		return checkers.OpenReplay(ledger), nil
	}

	var record models.MatchRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return checkers.OpenReplayFrom(record.Start, record.Ledger), nil
}
