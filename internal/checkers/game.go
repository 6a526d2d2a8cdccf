package checkers

// Game is the rules engine for one match: committed and draft boards, the turn state machine
// and the ledger of committed turns. A Game is not safe for concurrent use; callers serialize
// access per match.
type Game struct {
	start  Board
	boards *DraftLiveBoard
	state  GameState
	ledger Ledger
}

// NewGame creates a game from the standard starting board with red to move.
func NewGame() *Game {
	return NewGameWithStart(NewBoardStart(), Red)
}

// NewGameWithStart creates a game from a custom board. This allows custom positions for tests and analysis.
func NewGameWithStart(start Board, first PieceColor) *Game {
	return &Game{
		start:  start,
		boards: NewDraftLiveBoard(start),
		state:  NewGameState(start, first),
	}
}

// Start returns the board the game started from.
func (g *Game) Start() Board {
	return g.start
}

// State returns a copy of the turn state.
func (g *Game) State() GameState {
	return g.state
}

// Ledger returns the committed turns.
func (g *Game) Ledger() Ledger {
	return g.ledger
}

// Live returns the committed board.
func (g *Game) Live() Board {
	return g.boards.Live()
}

// Draft returns the board including the open turn's tentative moves.
func (g *Game) Draft() Board {
	return g.boards.Draft()
}

// PendingMoves returns the tentative moves of the open turn.
func (g *Game) PendingMoves() []Move {
	return g.boards.Moves()
}

// checkTurn returns an error unless the given color may act now.
func (g *Game) checkTurn(color PieceColor) error {
	if g.state.IsOver() {
		return ErrGameOver
	}

	if color != g.state.ActiveColor() {
		return ErrOutOfTurn
	}
	return nil
}

// SubmitMove validates a candidate move by the given color and, if it is legal,
// records it as tentative and applies it to the draft board.
func (g *Game) SubmitMove(color PieceColor, move Move) (MoveKind, error) {
	if err := g.checkTurn(color); err != nil {
		return KindInvalid, err
	}

	kind, err := Validate(g.boards.Draft(), color, g.boards.moves, move)
	if err != nil {
		return kind, err
	}

	g.boards.ApplyTentative(move)
	return kind, nil
}

// BackupMove undoes the most recent tentative move of the given color.
func (g *Game) BackupMove(color PieceColor) (Move, error) {
	if err := g.checkTurn(color); err != nil {
		return Move{}, err
	}
	return g.boards.UndoLast()
}

// DiscardTurn drops all tentative moves of the open turn.
func (g *Game) DiscardTurn(color PieceColor) error {
	if err := g.checkTurn(color); err != nil {
		return err
	}
	g.boards.Discard()
	return nil
}

// CommitTurn finalizes the open turn: captures are resolved and promotions applied on the live board,
// the turn is appended to the ledger and the move passes to the other color.
// A turn that is empty, or whose jump chain could still continue, is refused.
func (g *Game) CommitTurn(color PieceColor) (Turn, error) {
	if err := g.checkTurn(color); err != nil {
		return Turn{}, err
	}

	moves := g.boards.moves
	if len(moves) == 0 {
		return Turn{}, ErrEmptyTurn
	}

	last := moves[len(moves)-1]
	if last.IsJump() && HasJumpsAvailable(g.boards.Draft(), last.End, moves) {
		return Turn{}, &MandatoryJumpError{At: last.End}
	}

	records, captured := g.boards.Commit()
	turn := Turn{Color: color, Moves: records}
	g.ledger = g.ledger.append(turn)

	nextCanMove := HasAnyMove(g.boards.Live(), color.Opponent())
	if err := g.state.CommitTurn(captured, nextCanMove); err != nil {
		return Turn{}, err
	}

	return turn.clone(), nil
}

// Resign ends the game on behalf of the given color, dropping any open turn.
func (g *Game) Resign(color PieceColor) error {
	if g.state.IsOver() {
		return ErrGameOver
	}

	g.boards.Discard()
	return g.state.Resign(color)
}

// IsMover returns whether the given color is currently building a turn.
func (g *Game) IsMover(color PieceColor) bool {
	return color == g.state.ActiveColor() && !g.state.IsOver()
}

// BoardView returns the board as seen from the given color. The draft board is only returned when
// the viewer is the mover; everyone else sees the live board. Red sees the board rotated by 180 degrees.
func (g *Game) BoardView(perspective PieceColor, viewerIsMover bool) Board {
	board := g.boards.Live()
	if viewerIsMover && !g.state.IsOver() {
		board = g.boards.Draft()
	}

	if perspective == Red {
		return board.Rotated180()
	}
	return board
}
