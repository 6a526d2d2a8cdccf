package client

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/lk16/webcheckers/internal/checkers"
	"github.com/lk16/webcheckers/internal/models"
	"github.com/stretchr/testify/require"
)

func TestPlayer_Run(t *testing.T) {
	color.NoColor = true
	alice, bob := newTestClients(t)

	matchID, err := alice.CreateMatch(models.CreateMatchRequest{Red: "alice", White: "bob"})
	require.NoError(t, err)

	var out bytes.Buffer
	player, err := NewPlayer(alice, matchID, &out)
	require.NoError(t, err)
	require.Equal(t, checkers.Red, player.Color())

	commands := strings.Join([]string{
		"move 5 7 4 7", // not diagonal
		"move 5 7 4 6",
		"backup",
		"move 5 7 4 6",
		"turn",
		"move 4 6 3 5", // white's turn now
		"quit",
		"board",
	}, "\n")

	require.NoError(t, player.Run(strings.NewReader(commands)))

	output := out.String()
	require.Contains(t, output, "playing red in match "+matchID)
	require.Contains(t, output, "rejected: "+checkers.ErrInvalidGeometry.Error())
	require.Contains(t, output, "accepted standard_single")
	require.Contains(t, output, "undid (5, 7) -> (4, 6)")
	require.Contains(t, output, "turn submitted, 1 moves")
	require.Contains(t, output, "waiting for white")
	require.Contains(t, output, "rejected: "+checkers.ErrOutOfTurn.Error())

	view, err := bob.GetMatch(matchID, checkers.White)
	require.NoError(t, err)
	require.Equal(t, 1, view.Turns)
	require.Equal(t, checkers.Red, view.Board.ColorAt(checkers.Position{Row: 3, Col: 1}))
}

func TestPlayer_MandatoryJumpInOwnFrame(t *testing.T) {
	color.NoColor = true
	alice, _ := newTestClients(t)

	matchID, err := alice.CreateMatch(models.CreateMatchRequest{
		Red:   "alice",
		White: "bob",
		Start: "......../...r...r/..w...../......../......../......../......w./........",
	})
	require.NoError(t, err)

	var out bytes.Buffer
	player, err := NewPlayer(alice, matchID, &out)
	require.NoError(t, err)

	// Canonical (1, 7) -> (2, 6) is (6, 0) -> (5, 1) for red.
	require.NoError(t, player.Run(strings.NewReader("move 6 0 5 1\nclose\n")))

	output := out.String()
	require.Contains(t, output, "the piece at (6, 4) must jump")
	require.Contains(t, output, "match archived")
}

func TestNewPlayer_NotSeated(t *testing.T) {
	alice, _ := newTestClients(t)

	matchID, err := alice.CreateMatch(models.CreateMatchRequest{Red: "carol", White: "bob"})
	require.NoError(t, err)

	_, err = NewPlayer(alice, matchID, &bytes.Buffer{})
	require.Error(t, err)
}
