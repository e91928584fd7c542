package bot

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// Announce logs when the bot comes online.
type Announce struct{}

// HandleReady implements ReadyHandler.
func (Announce) HandleReady(_ context.Context, _ Messenger, r *discordgo.Ready) {
	log.Info().Str("user", r.User.Username).Msg("now online")
}
