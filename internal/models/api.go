package models

import (
	"errors"

	"github.com/lk16/webcheckers/internal/checkers"
)

// CreateMatchRequest represents the payload for creating a match.
type CreateMatchRequest struct {
	Red   string `json:"red"`
	White string `json:"white"`

	// Start is an optional board string. The standard layout is used when it is empty.
	Start string `json:"start,omitempty"`

	// First is the color to move first. Red moves first when it is empty.
	First checkers.PieceColor `json:"first,omitempty"`
}

// Validate checks that two distinct players are seated.
func (r CreateMatchRequest) Validate() error {
	if r.Red == "" || r.White == "" {
		return errors.New("both red and white player ids are required")
	}

	if r.Red == r.White {
		return errors.New("red and white must be different players")
	}

	return nil
}

// StartBoard returns the board the match starts from.
func (r CreateMatchRequest) StartBoard() (checkers.Board, error) {
	if r.Start == "" {
		return checkers.NewBoardStart(), nil
	}
	return checkers.NewBoardFromString(r.Start)
}

// FirstColor returns the color that moves first.
func (r CreateMatchRequest) FirstColor() checkers.PieceColor {
	if r.First == 0 {
		return checkers.Red
	}
	return r.First
}

// CreateMatchResponse represents the response for match creation.
type CreateMatchResponse struct {
	MatchID string `json:"match_id"`
}

// MoveRequest represents a candidate move. Coordinates are in the frame of Perspective;
// moves in red's frame are mapped onto the canonical board before validation.
type MoveRequest struct {
	Start       checkers.Position   `json:"start"`
	End         checkers.Position   `json:"end"`
	Perspective checkers.PieceColor `json:"perspective"`
}

// Move returns the move in the canonical frame.
func (r MoveRequest) Move() checkers.Move {
	move := checkers.NewMove(r.Start, r.End)
	if r.Perspective == checkers.Red {
		return move.Invert()
	}
	return move
}

// MoveResponse represents the response for an accepted move.
type MoveResponse struct {
	Kind checkers.MoveKind `json:"kind"`
}

// BackupResponse represents the response for an undone move.
type BackupResponse struct {
	Move checkers.Move `json:"move"`
}

// TurnResponse represents the response for a committed turn.
type TurnResponse struct {
	Turn  checkers.Turn `json:"turn"`
	State StateView     `json:"state"`
}

// StateView is the serializable form of a game state.
type StateView struct {
	Phase       checkers.Phase      `json:"phase"`
	Active      checkers.PieceColor `json:"active"`
	RedPieces   int                 `json:"red_pieces"`
	WhitePieces int                 `json:"white_pieces"`
	Outcome     checkers.Outcome    `json:"outcome"`
	Winner      checkers.PieceColor `json:"winner"`
}

// NewStateView converts a game state.
func NewStateView(state checkers.GameState) StateView {
	winner, _ := state.Winner()

	return StateView{
		Phase:       state.Phase(),
		Active:      state.ActiveColor(),
		RedPieces:   state.PieceCount(checkers.Red),
		WhitePieces: state.PieceCount(checkers.White),
		Outcome:     state.Outcome(),
		Winner:      winner,
	}
}

// MatchView is a match as seen by one side.
type MatchView struct {
	MatchID     string              `json:"match_id"`
	Red         string              `json:"red"`
	White       string              `json:"white"`
	Perspective checkers.PieceColor `json:"perspective"`
	Board       checkers.Board      `json:"board"`
	Pending     []checkers.Move     `json:"pending"`
	Turns       int                 `json:"turns"`
	State       StateView           `json:"state"`
}

// OpenReplayRequest represents the payload for opening a replay session.
type OpenReplayRequest struct {
	MatchID string `json:"match_id"`
}

// ReplayView is the state of a replay session.
type ReplayView struct {
	SessionID string         `json:"session_id"`
	MatchID   string         `json:"match_id"`
	Cursor    int            `json:"cursor"`
	Turns     int            `json:"turns"`
	AtStart   bool           `json:"at_start"`
	AtEnd     bool           `json:"at_end"`
	Board     checkers.Board `json:"board"`
	Turn      *checkers.Turn `json:"turn,omitempty"`
}
