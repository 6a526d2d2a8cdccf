package client

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lk16/webcheckers/internal/checkers"
	"github.com/lk16/webcheckers/internal/render"
)

const helpText = `commands:
  move <row> <col> <row> <col>  move a piece, coordinates as shown on your board
  backup                        undo your last move of this turn
  discard                       undo all moves of this turn
  turn                          submit your turn
  board                         show the board
  resign                        give up
  close                         archive the match and quit
  quit                          quit without closing the match`

var errQuit = errors.New("quit")

// Player plays one seat of a match from a terminal.
type Player struct {
	client  *Client
	matchID string
	color   checkers.PieceColor
	out     io.Writer
}

// NewPlayer looks up which side the client's player is seated on.
func NewPlayer(client *Client, matchID string, out io.Writer) (*Player, error) {
	view, err := client.GetMatch(matchID, checkers.White)
	if err != nil {
		return nil, err
	}

	var color checkers.PieceColor
	switch client.playerID {
	case view.Red:
		color = checkers.Red
	case view.White:
		color = checkers.White
	default:
		return nil, fmt.Errorf("player %s is not seated in match %s", client.playerID, matchID)
	}

	return &Player{
		client:  client,
		matchID: matchID,
		color:   color,
		out:     out,
	}, nil
}

// Color returns the side the player plays.
func (p *Player) Color() checkers.PieceColor {
	return p.color
}

// Run reads commands from in until it is exhausted or the player quits.
// Rejected commands are printed and do not stop the loop.
func (p *Player) Run(in io.Reader) error {
	fmt.Fprintf(p.out, "playing %s in match %s\n", p.color, p.matchID)
	if err := p.showBoard(); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		err := p.handleCommand(fields)
		if errors.Is(err, errQuit) {
			return nil
		}

		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status < 500 {
			fmt.Fprintf(p.out, "rejected: %s\n", apiErr.Message)
			if apiErr.At != nil {
				fmt.Fprintf(p.out, "the piece at %s must jump\n", p.fromCanonical(*apiErr.At))
			}
			continue
		}

		if err != nil {
			return err
		}
	}

	return scanner.Err()
}

func (p *Player) handleCommand(fields []string) error {
	switch fields[0] {
	case "move":
		return p.move(fields[1:])
	case "backup":
		move, err := p.client.BackupMove(p.matchID)
		if err != nil {
			return err
		}
		fmt.Fprintf(p.out, "undid %s\n", p.fromCanonicalMove(move))
		return p.showBoard()
	case "discard":
		if err := p.client.DiscardTurn(p.matchID); err != nil {
			return err
		}
		return p.showBoard()
	case "turn":
		result, err := p.client.SubmitTurn(p.matchID)
		if err != nil {
			return err
		}
		fmt.Fprintf(p.out, "turn submitted, %d moves\n", len(result.Turn.Moves))
		p.printState(result.State)
		return nil
	case "board":
		return p.showBoard()
	case "resign":
		state, err := p.client.Resign(p.matchID)
		if err != nil {
			return err
		}
		p.printState(state)
		return nil
	case "close":
		if err := p.client.CloseMatch(p.matchID); err != nil {
			return err
		}
		fmt.Fprintln(p.out, "match archived")
		return errQuit
	case "quit":
		return errQuit
	default:
		fmt.Fprintln(p.out, helpText)
		return nil
	}
}

func (p *Player) move(args []string) error {
	if len(args) != 4 {
		fmt.Fprintln(p.out, "usage: move <row> <col> <row> <col>")
		return nil
	}

	coords := make([]int, len(args))
	for i, arg := range args {
		value, err := strconv.Atoi(arg)
		if err != nil {
			fmt.Fprintf(p.out, "invalid coordinate %q\n", arg)
			return nil
		}
		coords[i] = value
	}

	move := checkers.NewMove(
		checkers.Position{Row: coords[0], Col: coords[1]},
		checkers.Position{Row: coords[2], Col: coords[3]},
	)

	kind, err := p.client.SubmitMove(p.matchID, move, p.color)
	if err != nil {
		return err
	}

	fmt.Fprintf(p.out, "accepted %s\n", kind)
	return p.showBoard()
}

func (p *Player) showBoard() error {
	view, err := p.client.GetMatch(p.matchID, p.color)
	if err != nil {
		return err
	}

	render.Board(p.out, view.Board)
	p.printState(view.State)
	return nil
}

func (p *Player) printState(state State) {
	if state.IsOver() {
		fmt.Fprintf(p.out, "game over: %s, winner %s\n", state.Outcome, state.Winner)
		return
	}

	if state.Active == p.color.String() {
		fmt.Fprintln(p.out, "your move")
		return
	}
	fmt.Fprintf(p.out, "waiting for %s\n", state.Active)
}

// fromCanonical maps a canonical position into the player's frame.
func (p *Player) fromCanonical(pos checkers.Position) checkers.Position {
	return p.fromCanonicalMove(checkers.NewMove(pos, pos)).Start
}

func (p *Player) fromCanonicalMove(move checkers.Move) checkers.Move {
	if p.color == checkers.Red {
		return move.Invert()
	}
	return move
}
