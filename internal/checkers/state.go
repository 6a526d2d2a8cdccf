package checkers

// Phase is the state of the turn state machine.
type Phase uint8

const (
	RedTurn Phase = iota
	WhiteTurn
	Over
)

func (p Phase) String() string {
	switch p {
	case RedTurn:
		return "red_turn"
	case WhiteTurn:
		return "white_turn"
	default:
		return "over"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Outcome is the reason a game ended.
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomeNoRedPieces
	OutcomeNoWhitePieces
	OutcomeResigned
	OutcomeBlocked
)

var outcomeNames = map[Outcome]string{
	OutcomeNone:          "",
	OutcomeNoRedPieces:   "no_red_pieces",
	OutcomeNoWhitePieces: "no_white_pieces",
	OutcomeResigned:      "resigned",
	OutcomeBlocked:       "blocked",
}

func (o Outcome) String() string {
	return outcomeNames[o]
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Outcome) UnmarshalText(text []byte) error {
	for outcome, name := range outcomeNames {
		if name == string(text) {
			*o = outcome
			return nil
		}
	}
	return ErrUnknownOutcome
}

// GameState tracks whose turn it is, the remaining pieces per color and how the game ended.
type GameState struct {
	active      PieceColor
	redPieces   int
	whitePieces int
	outcome     Outcome
	loser       PieceColor
}

// NewGameState creates the state for a game starting from the given board with the given color to move.
func NewGameState(board Board, first PieceColor) GameState {
	return GameState{
		active:      first,
		redPieces:   board.Count(Red),
		whitePieces: board.Count(White),
	}
}

// ActiveColor returns the color to move.
func (s GameState) ActiveColor() PieceColor {
	return s.active
}

// IdleColor returns the color waiting for its turn.
func (s GameState) IdleColor() PieceColor {
	return s.active.Opponent()
}

// PieceCount returns the remaining pieces of the given color.
func (s GameState) PieceCount(color PieceColor) int {
	if color == Red {
		return s.redPieces
	}
	return s.whitePieces
}

// Phase returns the current state machine phase.
func (s GameState) Phase() Phase {
	switch {
	case s.outcome != OutcomeNone:
		return Over
	case s.active == Red:
		return RedTurn
	default:
		return WhiteTurn
	}
}

// IsOver returns true once the game has ended. No further moves are accepted after that.
func (s GameState) IsOver() bool {
	return s.outcome != OutcomeNone
}

// Outcome returns why the game ended, or OutcomeNone.
func (s GameState) Outcome() Outcome {
	return s.outcome
}

// ResignedBy returns the color that resigned, if any.
func (s GameState) ResignedBy() (PieceColor, bool) {
	if s.outcome != OutcomeResigned {
		return 0, false
	}
	return s.loser, true
}

// Winner returns the winning color once the game is over.
func (s GameState) Winner() (PieceColor, bool) {
	if !s.IsOver() {
		return 0, false
	}
	return s.loser.Opponent(), true
}

// CommitTurn applies the captures of a committed turn and hands the move to the other color.
// The game ends instead if a color has no pieces left, or if the next mover cannot move.
func (s *GameState) CommitTurn(captured []Piece, nextCanMove bool) error {
	if s.IsOver() {
		return ErrGameOver
	}

	for _, piece := range captured {
		if piece.Color == Red {
			s.redPieces--
		} else {
			s.whitePieces--
		}
	}

	switch {
	case s.redPieces == 0:
		s.end(OutcomeNoRedPieces, Red)
	case s.whitePieces == 0:
		s.end(OutcomeNoWhitePieces, White)
	case !nextCanMove:
		s.end(OutcomeBlocked, s.IdleColor())
	default:
		s.active = s.IdleColor()
	}
	return nil
}

// Resign ends the game immediately. If the resigning color held the turn, the turn still
// passes to the other color so observers see a consistent active color.
func (s *GameState) Resign(color PieceColor) error {
	if s.IsOver() {
		return ErrGameOver
	}

	if color == s.active {
		s.active = s.IdleColor()
	}
	s.end(OutcomeResigned, color)
	return nil
}

func (s *GameState) end(outcome Outcome, loser PieceColor) {
	s.outcome = outcome
	s.loser = loser
}
