package bot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/aaronzipp/drop-four/internal/c4"
	"github.com/aaronzipp/drop-four/internal/render"
	"github.com/aaronzipp/drop-four/internal/store"
)

const (
	placeholderText = "Setting up a game..."
	gameLimitText   = "Too many games are already running, try again in a bit."
	noGameText      = "No active game in this channel."
	qrImageSize     = 256
)

// ConnectFour runs reaction-driven Connect Four games.
//
// A game lives on one message: the bot renders the board into it, adds one
// keycap reaction per column, and players move by clicking those reactions.
// The first user to react claims the red seat, the second the blue seat.
type ConnectFour struct {
	sessions *store.Store
	resolver *Resolver
	ttl      time.Duration

	// test seams
	now      func() time.Time
	newMatch func(mode render.Mode) c4.Match
}

// NewConnectFour creates the c4 command. Games idle longer than ttl are
// pruned to a draw.
func NewConnectFour(sessions *store.Store, resolver *Resolver, ttl time.Duration) *ConnectFour {
	return &ConnectFour{
		sessions: sessions,
		resolver: resolver,
		ttl:      ttl,
		now:      time.Now,
		newMatch: func(mode render.Mode) c4.Match {
			if mode == render.OnePlayer {
				return c4.NewSolo(c4.DefaultWidth, c4.DefaultHeight, nil)
			}
			return c4.NewGame(c4.DefaultWidth, c4.DefaultHeight)
		},
	}
}

// HandleMessage implements MessageHandler for "c4 start|restart|solo|stop|link".
func (c *ConnectFour) HandleMessage(_ context.Context, s Messenger, m *discordgo.MessageCreate, args []string) {
	if len(args) != 1 {
		return
	}
	switch args[0] {
	case "start", "restart":
		c.startGame(s, m, render.TwoPlayer)
	case "solo":
		c.startGame(s, m, render.OnePlayer)
	case "stop":
		c.stopGame(s, m)
	case "link":
		c.sendLink(s, m)
	}
}

func (c *ConnectFour) startGame(s Messenger, m *discordgo.MessageCreate, mode render.Mode) {
	// Creating a game is one of the two prune triggers; the other is the
	// timed sweep.
	c.pruneExpired(s)

	if c.sessions.Full() {
		c.say(s, m.ChannelID, gameLimitText)
		return
	}

	message, err := s.ChannelMessageSend(m.ChannelID, placeholderText)
	if err != nil {
		log.Debug().Err(err).Str("channel_id", m.ChannelID).Msg("could not send board message")
		return
	}

	now := c.now()
	session := &store.Session{
		ID:        uuid.New(),
		GuildID:   m.GuildID,
		ChannelID: m.ChannelID,
		MessageID: message.ID,
		Mode:      mode,
		Match:     c.newMatch(mode),
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Render before the session becomes visible: once it is in the store,
	// reactions resolve on the board's own lane and may mutate the match.
	c.edit(s, session, render.Message(session.Match, session.Mode))

	if err := c.sessions.Put(session); err != nil {
		if errors.Is(err, store.ErrGameLimit) {
			c.edit(s, session, gameLimitText)
		}
		return
	}

	log.Info().
		Stringer("game_id", session.ID).
		Str("channel_id", session.ChannelID).
		Str("message_id", session.MessageID).
		Int("mode", int(mode)).
		Msg("game started")

	// Add one at a time so the keycaps appear in column order.
	for column := 0; column < session.Match.Board().Width(); column++ {
		if err := s.MessageReactionAdd(session.ChannelID, session.MessageID, render.ColumnEmoji(column)); err != nil {
			log.Debug().Err(err).Int("column", column).Msg("could not react")
		}
	}
}

func (c *ConnectFour) stopGame(s Messenger, m *discordgo.MessageCreate) {
	session, ok := c.sessions.LatestInChannel(m.ChannelID)
	if !ok {
		c.say(s, m.ChannelID, noGameText)
		return
	}
	// Finalize on the board's reaction lane so a move in flight resolves
	// first.
	c.resolver.Do(reactionLane(session.MessageID), func() {
		if _, ok := c.sessions.Remove(session.MessageID); ok {
			c.finalize(s, session)
		}
	})
}

func (c *ConnectFour) sendLink(s Messenger, m *discordgo.MessageCreate) {
	session, ok := c.sessions.LatestInChannel(m.ChannelID)
	if !ok {
		c.say(s, m.ChannelID, noGameText)
		return
	}

	guild := session.GuildID
	if guild == "" {
		guild = "@me"
	}
	jumpURL := fmt.Sprintf("https://discord.com/channels/%s/%s/%s", guild, session.ChannelID, session.MessageID)

	png, err := qrcode.Encode(jumpURL, qrcode.Medium, qrImageSize)
	if err != nil {
		log.Debug().Err(err).Msg("could not encode QR code")
		return
	}
	_, err = s.ChannelMessageSendComplex(m.ChannelID, &discordgo.MessageSend{
		Content: "Scan to jump to the board: " + jumpURL,
		Files: []*discordgo.File{{
			Name:        "board.png",
			ContentType: "image/png",
			Reader:      bytes.NewReader(png),
		}},
	})
	if err != nil {
		log.Debug().Err(err).Str("channel_id", m.ChannelID).Msg("could not send link message")
	}
}

// HandleReactionAdd implements ReactionHandler. It resolves one move: map
// the keycap to a column, claim a seat if needed, check the turn, drop.
func (c *ConnectFour) HandleReactionAdd(_ context.Context, s Messenger, r *discordgo.MessageReactionAdd) {
	session, ok := c.sessions.ByMessage(r.MessageID)
	if !ok {
		return
	}
	column, ok := render.ColumnFromEmoji(r.Emoji.APIName())
	if !ok {
		return
	}

	if !c.claimSeat(session, r.UserID) {
		// Not this user's turn (or a spectator): drop the reaction.
		c.removeReaction(s, r)
		return
	}

	if !session.Match.Drop(column) {
		c.removeReaction(s, r)
		return
	}
	c.sessions.Touch(r.MessageID, c.now())

	c.edit(s, session, render.Message(session.Match, session.Mode))

	if session.Match.Status() == c4.StatusPlaying {
		// Give the keycap back so the same column can be played again.
		c.removeReaction(s, r)
		return
	}
	if _, ok := c.sessions.Remove(session.MessageID); ok {
		c.finalize(s, session)
	}
}

// claimSeat assigns the mover to the seat whose turn it is, if that seat is
// still open, and reports whether the mover may move now.
func (c *ConnectFour) claimSeat(session *store.Session, userID string) bool {
	if session.Mode == render.OnePlayer {
		if session.Red == "" {
			session.Red = userID
		}
		return session.Red == userID
	}

	turn := session.Match.Turn()
	if session.Seat(turn) == "" && session.Seat(turn.Other()) != userID {
		if turn == c4.Red {
			session.Red = userID
		} else {
			session.Blue = userID
		}
		log.Info().
			Stringer("game_id", session.ID).
			Str("user_id", userID).
			Stringer("seat", turn).
			Msg("seat claimed")
	}
	return session.Seat(turn) == userID
}

// finalize renders the last board state and removes the controls. Callers
// must have removed the session from the store first.
func (c *ConnectFour) finalize(s Messenger, session *store.Session) {
	// A won game keeps its winner; anything else becomes a draw.
	session.Match.Close()

	c.edit(s, session, render.Message(session.Match, session.Mode))
	if err := s.MessageReactionsRemoveAll(session.ChannelID, session.MessageID); err != nil {
		log.Debug().Err(err).Str("message_id", session.MessageID).Msg("could not delete reactions")
	}

	event := log.Info().
		Stringer("game_id", session.ID).
		Str("message_id", session.MessageID)
	if winner, ok := session.Match.Winner(); ok {
		event = event.Stringer("winner", winner)
	}
	event.Msg("game finished")
}

// PruneLoop sweeps for stale games until the context is cancelled.
func (c *ConnectFour) PruneLoop(ctx context.Context, s Messenger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.pruneExpired(s)
		}
	}
}

// pruneExpired forces idle games to a draw, as the board message promises
// no stale game lingers forever.
func (c *ConnectFour) pruneExpired(s Messenger) {
	expired := c.sessions.PruneExpired(c.now().Add(-c.ttl))
	for _, session := range expired {
		log.Info().
			Stringer("game_id", session.ID).
			Time("last_activity", session.UpdatedAt).
			Msg("pruning stale game")
		// Finalize on the board's lane so it cannot race a move.
		c.resolver.Do(reactionLane(session.MessageID), func() {
			c.finalize(s, session)
		})
	}
}

func (c *ConnectFour) say(s Messenger, channelID, content string) {
	if _, err := s.ChannelMessageSend(channelID, content); err != nil {
		log.Debug().Err(err).Str("channel_id", channelID).Msg("could not send message")
	}
}

func (c *ConnectFour) edit(s Messenger, session *store.Session, content string) {
	if _, err := s.ChannelMessageEdit(session.ChannelID, session.MessageID, content); err != nil {
		log.Debug().Err(err).Str("message_id", session.MessageID).Msg("could not edit message")
	}
}

func (c *ConnectFour) removeReaction(s Messenger, r *discordgo.MessageReactionAdd) {
	if err := s.MessageReactionRemove(r.ChannelID, r.MessageID, r.Emoji.APIName(), r.UserID); err != nil {
		log.Debug().Err(err).Str("message_id", r.MessageID).Msg("could not remove reaction")
	}
}
