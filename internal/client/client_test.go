package client

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/lk16/webcheckers/internal/checkers"
	"github.com/lk16/webcheckers/internal/config"
	"github.com/lk16/webcheckers/internal/models"
	"github.com/lk16/webcheckers/internal/tests"
	"github.com/stretchr/testify/require"
)

func newTestClients(t *testing.T) (*Client, *Client) {
	t.Helper()

	server := httptest.NewServer(adaptor.FiberApp(tests.NewTestApp().App))
	t.Cleanup(server.Close)

	cfg := &config.ClientConfig{ServerURL: server.URL}
	return NewClient(cfg, "alice"), NewClient(cfg, "bob")
}

func TestClient_PlayTurn(t *testing.T) {
	alice, bob := newTestClients(t)

	matchID, err := alice.CreateMatch(models.CreateMatchRequest{Red: "alice", White: "bob"})
	require.NoError(t, err)

	// (5, 7) -> (4, 6) in red's frame is (2, 0) -> (3, 1) on the canonical board.
	redMove := checkers.NewMove(checkers.Position{Row: 5, Col: 7}, checkers.Position{Row: 4, Col: 6})

	kind, err := alice.SubmitMove(matchID, redMove, checkers.Red)
	require.NoError(t, err)
	require.Equal(t, "standard_single", kind)

	view, err := alice.GetMatch(matchID, checkers.Red)
	require.NoError(t, err)
	require.Equal(t, checkers.Red, view.Board.ColorAt(checkers.Position{Row: 4, Col: 6}))
	require.Len(t, view.Pending, 1)

	result, err := alice.SubmitTurn(matchID)
	require.NoError(t, err)
	require.Equal(t, checkers.Red, result.Turn.Color)
	require.Equal(t, "white", result.State.Active)

	state, err := bob.Resign(matchID)
	require.NoError(t, err)
	require.True(t, state.IsOver())
	require.Equal(t, "red", state.Winner)

	require.NoError(t, alice.CloseMatch(matchID))

	_, err = alice.GetMatch(matchID, checkers.White)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestClient_RuleErrors(t *testing.T) {
	alice, bob := newTestClients(t)

	matchID, err := alice.CreateMatch(models.CreateMatchRequest{
		Red:   "alice",
		White: "bob",
		Start: "......../...r...r/..w...../......../......../......../......w./........",
	})
	require.NoError(t, err)

	_, err = bob.SubmitMove(matchID, checkers.NewMove(checkers.Position{Row: 6, Col: 6}, checkers.Position{Row: 5, Col: 5}), checkers.White)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	require.Equal(t, checkers.ErrOutOfTurn.Error(), apiErr.Message)

	_, err = alice.SubmitMove(matchID, checkers.NewMove(checkers.Position{Row: 1, Col: 7}, checkers.Position{Row: 2, Col: 6}), checkers.White)
	require.True(t, errors.As(err, &apiErr))
	require.NotNil(t, apiErr.At)
	require.Equal(t, checkers.Position{Row: 1, Col: 3}, *apiErr.At)

	_, err = alice.BackupMove(matchID)
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, checkers.ErrNoPriorMove.Error(), apiErr.Message)

	require.NoError(t, alice.DiscardTurn(matchID))
}
