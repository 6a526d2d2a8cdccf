package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/lk16/webcheckers/internal/checkers"
	"github.com/lk16/webcheckers/internal/config"
	"github.com/lk16/webcheckers/internal/middleware"
	"github.com/lk16/webcheckers/internal/models"
)

const (
	clientTimeout = 5 * time.Second
)

// APIError is an error response of the server.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"error"`

	// At is the square of the piece that must jump, if the server reported one.
	At *checkers.Position `json:"at,omitempty"`
}

func (e *APIError) Error() string {
	if e.At != nil {
		return fmt.Sprintf("%d: %s at %s", e.Status, e.Message, e.At)
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// Client talks to the checkers server on behalf of one player.
type Client struct {
	// config contains details on how to connect to the server
	config *config.ClientConfig

	// playerID is sent with every request that acts on a match
	playerID string

	httpClient *http.Client
}

func NewClient(config *config.ClientConfig, playerID string) *Client {
	return &Client{
		config:     config,
		playerID:   playerID,
		httpClient: &http.Client{Timeout: clientTimeout},
	}
}

func (c *Client) logRequestAsCurl(req *http.Request) {
	// Do not build string if we're not logging it
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}

	var builder strings.Builder
	builder.WriteString("curl -X ")
	builder.WriteString(req.Method)
	builder.WriteString(" '")
	builder.WriteString(req.URL.String())
	builder.WriteString("'")

	for key, values := range req.Header {
		for _, value := range values {
			builder.WriteString(" -H '")
			builder.WriteString(strings.ToLower(key))
			builder.WriteString(": ")
			builder.WriteString(value)
			builder.WriteString("'")
		}
	}

	if req.Body != nil {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			slog.Error("Failed to read request body", "error", err)
		}

		if len(body) > 0 {
			builder.WriteString(" -d '")
			builder.WriteString(strings.ReplaceAll(string(body), "'", "'\\''"))
			builder.WriteString("'")
		}

		// Restore the original body
		req.Body = io.NopCloser(bytes.NewBuffer(body))
	}

	slog.Debug("Sending request", "command", builder.String())
}

// request sends a request and decodes a successful response into out, if out is not nil.
func (c *Client) request(method string, path string, payload any, out any) error {
	var body io.Reader

	if payload == nil {
		body = http.NoBody
	} else {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(payload); err != nil {
			return fmt.Errorf("failed to encode payload: %w", err)
		}
		body = buf
	}

	ctx, cancel := context.WithTimeout(context.Background(), clientTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.config.ServerURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	req.Header.Set(middleware.PlayerIDHeader, c.playerID)

	c.logRequestAsCurl(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	slog.Debug("Response", "status", resp.Status, "body", string(respBody))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		if err = json.Unmarshal(respBody, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = resp.Status
		}
		return apiErr
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}

	if err = json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func (c *Client) post(path string, payload any, out any) error {
	return c.request(http.MethodPost, path, payload, out)
}

func (c *Client) get(path string, out any) error {
	return c.request(http.MethodGet, path, nil, out)
}

// CreateMatch starts a match between two players and returns its id.
func (c *Client) CreateMatch(req models.CreateMatchRequest) (string, error) {
	var resp models.CreateMatchResponse
	if err := c.post("/api/matches", req, &resp); err != nil {
		return "", fmt.Errorf("failed to create match: %w", err)
	}
	return resp.MatchID, nil
}

// GetMatch returns the match as seen from the given side.
func (c *Client) GetMatch(matchID string, perspective checkers.PieceColor) (MatchView, error) {
	var view MatchView
	if err := c.get("/api/matches/"+matchID+"?perspective="+perspective.String(), &view); err != nil {
		return MatchView{}, fmt.Errorf("failed to get match: %w", err)
	}
	return view, nil
}

// SubmitMove submits a move given in the frame of perspective and returns its kind.
func (c *Client) SubmitMove(matchID string, move checkers.Move, perspective checkers.PieceColor) (string, error) {
	payload := models.MoveRequest{
		Start:       move.Start,
		End:         move.End,
		Perspective: perspective,
	}

	var resp struct {
		Kind string `json:"kind"`
	}
	if err := c.post("/api/matches/"+matchID+"/moves", payload, &resp); err != nil {
		return "", fmt.Errorf("failed to submit move: %w", err)
	}
	return resp.Kind, nil
}

// BackupMove undoes the last tentative move and returns it.
func (c *Client) BackupMove(matchID string) (checkers.Move, error) {
	var resp models.BackupResponse
	if err := c.post("/api/matches/"+matchID+"/backup", nil, &resp); err != nil {
		return checkers.Move{}, fmt.Errorf("failed to back up move: %w", err)
	}
	return resp.Move, nil
}

// DiscardTurn drops all tentative moves.
func (c *Client) DiscardTurn(matchID string) error {
	if err := c.post("/api/matches/"+matchID+"/discard", nil, nil); err != nil {
		return fmt.Errorf("failed to discard turn: %w", err)
	}
	return nil
}

// SubmitTurn commits the open turn.
func (c *Client) SubmitTurn(matchID string) (TurnResult, error) {
	var resp TurnResult
	if err := c.post("/api/matches/"+matchID+"/turn", nil, &resp); err != nil {
		return TurnResult{}, fmt.Errorf("failed to submit turn: %w", err)
	}
	return resp, nil
}

// Resign gives up the match.
func (c *Client) Resign(matchID string) (State, error) {
	var resp State
	if err := c.post("/api/matches/"+matchID+"/resign", nil, &resp); err != nil {
		return State{}, fmt.Errorf("failed to resign: %w", err)
	}
	return resp, nil
}

// CloseMatch archives the match on the server.
func (c *Client) CloseMatch(matchID string) error {
	if err := c.request(http.MethodDelete, "/api/matches/"+matchID, nil, nil); err != nil {
		return fmt.Errorf("failed to close match: %w", err)
	}
	return nil
}
