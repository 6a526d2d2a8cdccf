package ws

import (
	"encoding/json"

	"github.com/lk16/webcheckers/internal/checkers"
)

const (
	EventSubmitMove = "submit_move"
	EventBackupMove = "backup_move"
	EventSubmitTurn = "submit_turn"
	EventDiscard    = "discard"
	EventResign     = "resign"
	EventBoard      = "board"
)

type Incoming struct {
	Event string          `json:"event"`
	ID    int             `json:"id"`
	Data  json.RawMessage `json:"data"`
}

// Outgoing is the reply to an Incoming message with the same ID. Rejected moves and other rule
// violations are reported in Error and leave the connection open.
type Outgoing struct {
	ID    int    `json:"id"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// MoveEvent is a candidate move in the frame of the connected player.
type MoveEvent struct {
	Start checkers.Position `json:"start"`
	End   checkers.Position `json:"end"`
}
