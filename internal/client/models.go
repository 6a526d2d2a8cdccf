package client

import "github.com/lk16/webcheckers/internal/checkers"

// State is the game state as the server reports it.
type State struct {
	Phase       string `json:"phase"`
	Active      string `json:"active"`
	RedPieces   int    `json:"red_pieces"`
	WhitePieces int    `json:"white_pieces"`
	Outcome     string `json:"outcome"`
	Winner      string `json:"winner"`
}

// IsOver returns true if the game has ended.
func (s State) IsOver() bool {
	return s.Phase == "over"
}

// MatchView is a match as the server shows it to one side.
type MatchView struct {
	MatchID     string              `json:"match_id"`
	Red         string              `json:"red"`
	White       string              `json:"white"`
	Perspective checkers.PieceColor `json:"perspective"`
	Board       checkers.Board      `json:"board"`
	Pending     []checkers.Move     `json:"pending"`
	Turns       int                 `json:"turns"`
	State       State               `json:"state"`
}

// TurnResult is the reply to a committed turn.
type TurnResult struct {
	Turn  checkers.Turn `json:"turn"`
	State State         `json:"state"`
}
