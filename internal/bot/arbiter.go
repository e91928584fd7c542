// Package bot wires Discord gateway events to the commands of the bot: the
// arbiter routes prefixed text commands, the resolver orders their
// execution, and each command handles its own slice of events.
package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Messenger is the slice of the discordgo session the commands need. It
// exists so command handlers can be exercised without a gateway connection.
type Messenger interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEdit(channelID, messageID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	MessageReactionAdd(channelID, messageID, emojiID string, options ...discordgo.RequestOption) error
	MessageReactionRemove(channelID, messageID, emojiID, userID string, options ...discordgo.RequestOption) error
	MessageReactionsRemoveAll(channelID, messageID string, options ...discordgo.RequestOption) error
}

// MessageHandler receives the command it was registered for. args holds the
// words after the command name.
type MessageHandler interface {
	HandleMessage(ctx context.Context, s Messenger, m *discordgo.MessageCreate, args []string)
}

// ReactionHandler receives every reaction added by a user.
type ReactionHandler interface {
	HandleReactionAdd(ctx context.Context, s Messenger, r *discordgo.MessageReactionAdd)
}

// ReadyHandler receives the gateway ready event.
type ReadyHandler interface {
	HandleReady(ctx context.Context, s Messenger, r *discordgo.Ready)
}

// Arbiter dispatches gateway events to registered command handlers.
type Arbiter struct {
	prefix   string
	resolver *Resolver
	names    []string
	handlers map[string]any
}

// NewArbiter creates an arbiter routing commands with the given prefix.
func NewArbiter(prefix string, resolver *Resolver) *Arbiter {
	return &Arbiter{
		prefix:   prefix,
		resolver: resolver,
		handlers: make(map[string]any),
	}
}

// Register adds a named command handler. Message events are routed to the
// handler whose name matches the first word of the command; other events
// are broadcast. Duplicate names are rejected.
func (a *Arbiter) Register(name string, handler any) error {
	if _, exists := a.handlers[name]; exists {
		return fmt.Errorf("a command named %q already exists", name)
	}
	a.names = append(a.names, name)
	a.handlers[name] = handler
	return nil
}

// Bind attaches the arbiter to a discordgo session. Register is not safe to
// call afterwards.
func (a *Arbiter) Bind(ctx context.Context, session *discordgo.Session) {
	session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author != nil && m.Author.Bot {
			return
		}
		a.dispatchMessage(ctx, s, m)
	})
	session.AddHandler(func(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
		if s.State != nil && s.State.User != nil && r.UserID == s.State.User.ID {
			return
		}
		a.dispatchReactionAdd(ctx, s, r)
	})
	session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		a.dispatchReady(ctx, s, r)
	})
}

func (a *Arbiter) dispatchMessage(ctx context.Context, s Messenger, m *discordgo.MessageCreate) {
	if !strings.HasPrefix(m.Content, a.prefix) {
		return
	}
	name := a.commandName(m.Content)
	handler, ok := a.handlers[name].(MessageHandler)
	if !ok {
		return
	}
	args := strings.Fields(m.Content)[1:]
	a.resolver.Do(messageLane(m.ChannelID), func() {
		handler.HandleMessage(ctx, s, m, args)
	})
}

func (a *Arbiter) dispatchReactionAdd(ctx context.Context, s Messenger, r *discordgo.MessageReactionAdd) {
	for _, name := range a.names {
		handler, ok := a.handlers[name].(ReactionHandler)
		if !ok {
			continue
		}
		a.resolver.Do(reactionLane(r.MessageID), func() {
			handler.HandleReactionAdd(ctx, s, r)
		})
	}
}

func (a *Arbiter) dispatchReady(ctx context.Context, s Messenger, r *discordgo.Ready) {
	for _, name := range a.names {
		handler, ok := a.handlers[name].(ReadyHandler)
		if !ok {
			continue
		}
		a.resolver.Do("ready", func() {
			handler.HandleReady(ctx, s, r)
		})
	}
}

// commandName extracts the first word of a message, stripped of the prefix.
func (a *Arbiter) commandName(content string) string {
	first, _, _ := strings.Cut(content, " ")
	return strings.TrimPrefix(first, a.prefix)
}

func messageLane(channelID string) string {
	return "msg:" + channelID
}

func reactionLane(messageID string) string {
	return "react:" + messageID
}
