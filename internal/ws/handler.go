package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"github.com/lk16/webcheckers/internal/checkers"
	"github.com/lk16/webcheckers/internal/matches"
	"github.com/lk16/webcheckers/internal/models"
)

// Conn is the part of a websocket connection the handler uses.
type Conn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(messageType int, data []byte) error
}

// Handler plays one seat of a match over a websocket connection.
type Handler struct {
	manager *matches.Manager
	ws      Conn
	matchID uuid.UUID
	player  string
	color   checkers.PieceColor
}

// NewHandler creates a new Handler for the given player, who must be seated in the match.
func NewHandler(ws Conn, manager *matches.Manager, matchID uuid.UUID, player string) (*Handler, error) {
	match, err := manager.Get(matchID)
	if err != nil {
		return nil, err
	}

	color, err := match.ColorOf(player)
	if err != nil {
		return nil, err
	}

	return &Handler{
		manager: manager,
		ws:      ws,
		matchID: matchID,
		player:  player,
		color:   color,
	}, nil
}

func (h *Handler) readMessage() (*Incoming, error) {
	var req Incoming

	msgType, msg, err := h.ws.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("ws read error: %w", err)
	}

	slog.Debug("read ws message", "msgType", msgType, "msg", msg)

	if msgType != websocket.TextMessage {
		return nil, fmt.Errorf("unexpected message type: %d", msgType)
	}

	if err = json.Unmarshal(msg, &req); err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	return &req, nil
}

func (h *Handler) writeMessage(outgoing *Outgoing) error {
	msg, err := json.Marshal(outgoing)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	slog.Debug("write ws message", "msg", string(msg))

	if err = h.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
		return fmt.Errorf("write error: %w", err)
	}

	return nil
}

func (h *Handler) handleMessage(req *Incoming) (*Outgoing, error) {
	if req.Event == "" {
		return nil, errors.New("event field is either empty or missing")
	}

	var (
		data any
		err  error
	)

	switch req.Event {
	case EventSubmitMove:
		data, err = h.handleSubmitMove(req)
	case EventBackupMove:
		data, err = h.handleBackupMove()
	case EventSubmitTurn:
		data, err = h.handleSubmitTurn()
	case EventDiscard:
		data, err = h.handleDiscard()
	case EventResign:
		data, err = h.handleResign()
	case EventBoard:
		data, err = h.manager.View(h.matchID, h.color, h.player)
	default:
		return nil, fmt.Errorf("unknown event: %s", req.Event)
	}

	if err != nil {
		if !checkers.IsRuleError(err) {
			return nil, err
		}
		return &Outgoing{ID: req.ID, Error: err.Error()}, nil
	}

	return &Outgoing{ID: req.ID, Data: data}, nil
}

// Handle handles the websocket connection until the client disconnects or the match is gone.
func (h *Handler) Handle() error {
	for {
		req, err := h.readMessage()
		if err != nil {
			return fmt.Errorf("ws read error: %w", err)
		}

		respData, err := h.handleMessage(req)
		if err != nil {
			return fmt.Errorf("ws handle error: %w", err)
		}

		if err = h.writeMessage(respData); err != nil {
			return fmt.Errorf("ws write error: %w", err)
		}
	}
}

func (h *Handler) handleSubmitMove(req *Incoming) (models.MoveResponse, error) {
	var event MoveEvent
	if err := json.Unmarshal(req.Data, &event); err != nil {
		return models.MoveResponse{}, fmt.Errorf("ws submit move unmarshal error: %w", err)
	}

	move := models.MoveRequest{
		Start:       event.Start,
		End:         event.End,
		Perspective: h.color,
	}.Move()

	kind, err := h.manager.SubmitMove(h.matchID, h.player, move)
	return models.MoveResponse{Kind: kind}, err
}

func (h *Handler) handleBackupMove() (models.BackupResponse, error) {
	move, err := h.manager.BackupMove(h.matchID, h.player)
	if err != nil {
		return models.BackupResponse{}, err
	}

	if h.color == checkers.Red {
		move = move.Invert()
	}
	return models.BackupResponse{Move: move}, nil
}

func (h *Handler) handleSubmitTurn() (models.TurnResponse, error) {
	turn, state, err := h.manager.CommitTurn(h.matchID, h.player)
	if err != nil {
		return models.TurnResponse{}, err
	}

	if h.color == checkers.Red {
		turn = turn.Inverted()
	}
	return models.TurnResponse{Turn: turn, State: models.NewStateView(state)}, nil
}

func (h *Handler) handleDiscard() (models.MatchView, error) {
	if err := h.manager.DiscardTurn(h.matchID, h.player); err != nil {
		return models.MatchView{}, err
	}
	return h.manager.View(h.matchID, h.color, h.player)
}

func (h *Handler) handleResign() (models.StateView, error) {
	state, err := h.manager.Resign(h.matchID, h.player)
	if err != nil {
		return models.StateView{}, err
	}
	return models.NewStateView(state), nil
}
