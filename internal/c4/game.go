package c4

const (
	// DefaultWidth is the standard Connect Four board width.
	DefaultWidth = 7

	// DefaultHeight is the standard Connect Four board height.
	DefaultHeight = 6

	// winLength is the run length needed to win.
	winLength = 4
)

// Match is a playable Connect Four match, one- or two-player.
type Match interface {
	// Board returns the current grid.
	Board() *Board[Player]

	// Turn returns whose move it is.
	Turn() Player

	// Status returns the current lifecycle state.
	Status() Status

	// Winner returns the winning player, if any.
	Winner() (Player, bool)

	// Drop places the current player's token in the given column and
	// reports whether the move was accepted.
	Drop(column int) bool

	// Close ends the match without a winner. A won match stays won.
	Close()
}

// Game is a two-player match. Red moves first.
type Game struct {
	board   *Board[Player]
	turn    Player
	status  Status
	winner  Player
	lastRow int
	lastCol int
}

// NewGame creates a match on a board of the given size.
func NewGame(width, height int) *Game {
	return &Game{
		board:  NewBoard[Player](width, height),
		turn:   Red,
		status: StatusPlaying,
	}
}

// Board returns the current grid.
func (g *Game) Board() *Board[Player] {
	return g.board
}

// Turn returns whose move it is.
func (g *Game) Turn() Player {
	return g.turn
}

// Status returns the current lifecycle state.
func (g *Game) Status() Status {
	return g.status
}

// Winner returns the winning player, if any.
func (g *Game) Winner() (Player, bool) {
	if g.status != StatusWon {
		return Red, false
	}
	return g.winner, true
}

// Close ends the match without a winner. A won match stays won.
func (g *Game) Close() {
	if g.status == StatusPlaying {
		g.status = StatusClosed
	}
}

// Drop places the current player's token in the lowest free row of the
// given column. It returns false when the match is over, the column is out
// of range, or the column is full; a rejected move changes nothing.
func (g *Game) Drop(column int) bool {
	if g.status != StatusPlaying || column < 0 || column >= g.board.Width() {
		return false
	}
	for row := g.board.Height() - 1; row >= 0; row-- {
		if g.board.Get(row, column) != nil {
			continue
		}
		g.board.Set(row, column, g.turn)
		g.lastRow = row
		g.lastCol = column

		if g.connectsFour(row, column) {
			g.status = StatusWon
			g.winner = g.turn
		} else if g.board.Full() {
			g.status = StatusClosed
		}
		g.turn = g.turn.Other()
		return true
	}
	return false
}

// connectsFour checks the four axes through the last placed token.
func (g *Game) connectsFour(row, column int) bool {
	axes := [4]Direction{North, NorthEast, East, NorthWest}
	for _, axis := range axes {
		if g.board.CountInBidirection(row, column, axis) >= winLength {
			return true
		}
	}
	return false
}
