// Package render turns a Connect Four match into the text of a Discord
// message: a header line, the emoji board, and a reaction legend.
package render

import (
	"fmt"
	"strings"

	"github.com/aaronzipp/drop-four/internal/c4"
)

// Mode selects the token set and player labels.
type Mode int

const (
	// TwoPlayer renders red/blue tokens labelled Red and Blue.
	TwoPlayer Mode = iota

	// OnePlayer renders orange/purple tokens labelled Player and Bot.
	OnePlayer
)

// MaxColumns is the widest board that can be rendered, limited by the ten
// Unicode keycap emoji.
const MaxColumns = 10

// keycapSuffix follows an ASCII digit to form a keycap emoji,
// see https://unicode.org/emoji/charts-12.0/full-emoji-list.html#0030_fe0f_20e3
const keycapSuffix = "️⃣"

// Message renders the full board message for a match.
func Message(match c4.Match, mode Mode) string {
	var b strings.Builder
	b.WriteString(header(match, mode))
	b.WriteString(boardRows(match.Board(), mode))
	b.WriteString(axis(match))
	return b.String()
}

func header(match c4.Match, mode Mode) string {
	if match.Status() == c4.StatusPlaying {
		turn := match.Turn()
		return fmt.Sprintf("> Current turn: %s\n", playerLabel(&turn, mode))
	}
	if winner, ok := match.Winner(); ok {
		return fmt.Sprintf("> %s wins!\n", playerLabel(&winner, mode))
	}
	return fmt.Sprintf("> %s wins!\n", playerLabel(nil, mode))
}

func boardRows(board *c4.Board[c4.Player], mode Mode) string {
	var b strings.Builder
	for row := 0; row < board.Height(); row++ {
		for column := 0; column < board.Width(); column++ {
			var player *c4.Player
			if token := board.Get(row, column); token != nil {
				player = &token.Value
			}
			b.WriteString(playerToken(player, mode))
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func axis(match c4.Match) string {
	if match.Status() != c4.StatusPlaying {
		return ""
	}
	var b strings.Builder
	for column := 0; column < match.Board().Width(); column++ {
		b.WriteString(ColumnEmoji(column))
		b.WriteString(" ")
	}
	b.WriteString("\n")
	return b.String()
}

// playerLabel names a player for the header; nil becomes "Nobody".
func playerLabel(player *c4.Player, mode Mode) string {
	name := "Nobody"
	if player != nil {
		switch {
		case *player == c4.Red && mode == TwoPlayer:
			name = "Red"
		case *player == c4.Red:
			name = "Player"
		case mode == TwoPlayer:
			name = "Blue"
		default:
			name = "Bot"
		}
	}
	return playerToken(player, mode) + " " + name
}

func playerToken(player *c4.Player, mode Mode) string {
	if player == nil {
		return ":black_circle:"
	}
	if *player == c4.Red {
		if mode == OnePlayer {
			return ":orange_circle:"
		}
		return ":red_circle:"
	}
	if mode == OnePlayer {
		return ":purple_circle:"
	}
	return ":blue_circle:"
}

// ColumnEmoji returns the Unicode keycap for a column in [0, MaxColumns).
func ColumnEmoji(column int) string {
	if column < 0 || column >= MaxColumns {
		return ""
	}
	return fmt.Sprintf("%d%s", column, keycapSuffix)
}

// ColumnFromEmoji parses a keycap emoji back into a column number.
func ColumnFromEmoji(emoji string) (int, bool) {
	digits, ok := strings.CutSuffix(emoji, keycapSuffix)
	if !ok || len(digits) != 1 || digits[0] < '0' || digits[0] > '9' {
		return 0, false
	}
	return int(digits[0] - '0'), true
}
