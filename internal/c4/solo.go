package c4

import (
	"math/rand"

	"github.com/rs/zerolog/log"
)

// BotPlayer chooses a column for the given player on the given board.
type BotPlayer interface {
	ChooseColumn(board *Board[Player], player Player) int
}

// RandomPlayer picks uniformly among columns that still have room.
type RandomPlayer struct{}

// ChooseColumn implements BotPlayer.
func (RandomPlayer) ChooseColumn(board *Board[Player], _ Player) int {
	options := make([]int, 0, board.Width())
	for column := 0; column < board.Width(); column++ {
		// Row 0 is the topmost row; a free top cell means the column has room.
		if board.Get(0, column) == nil {
			options = append(options, column)
		}
	}
	if len(options) == 0 {
		return 0
	}
	return options[rand.Intn(len(options))]
}

// Solo is a one-player match. After every accepted human move the bot
// answers with a move of its own.
type Solo struct {
	game *Game
	bot  BotPlayer
}

// NewSolo creates a one-player match. A nil bot defaults to RandomPlayer.
func NewSolo(width, height int, bot BotPlayer) *Solo {
	if bot == nil {
		bot = RandomPlayer{}
	}
	return &Solo{
		game: NewGame(width, height),
		bot:  bot,
	}
}

// Board returns the current grid.
func (s *Solo) Board() *Board[Player] {
	return s.game.Board()
}

// Turn returns whose move it is.
func (s *Solo) Turn() Player {
	return s.game.Turn()
}

// Status returns the current lifecycle state.
func (s *Solo) Status() Status {
	return s.game.Status()
}

// Winner returns the winning player, if any.
func (s *Solo) Winner() (Player, bool) {
	return s.game.Winner()
}

// Close ends the match without a winner. A won match stays won.
func (s *Solo) Close() {
	s.game.Close()
}

// Drop places the human's token, then the bot's answer. It returns false
// when the human move was rejected. A bot choosing an invalid column closes
// the match.
func (s *Solo) Drop(column int) bool {
	if !s.game.Drop(column) {
		return false
	}
	if s.game.Status() == StatusPlaying {
		choice := s.bot.ChooseColumn(s.game.Board(), s.game.Turn())
		if !s.game.Drop(choice) {
			s.game.Close()
			log.Warn().Int("column", choice).Msg("bot made an invalid move")
		}
	}
	return true
}
