package bot

import (
	"context"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// Ping greets with a running counter.
type Ping struct {
	mu    sync.Mutex
	count int
}

// NewPing creates the ping command.
func NewPing() *Ping {
	return &Ping{}
}

// HandleMessage implements MessageHandler.
func (p *Ping) HandleMessage(_ context.Context, s Messenger, m *discordgo.MessageCreate, args []string) {
	if len(args) != 0 {
		return
	}

	p.mu.Lock()
	p.count++
	count := p.count
	p.mu.Unlock()

	reply := fmt.Sprintf("Welcome #%d!", count)
	if _, err := s.ChannelMessageSend(m.ChannelID, reply); err != nil {
		log.Debug().Err(err).Str("channel_id", m.ChannelID).Msg("could not send message")
	}
}
