package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/aaronzipp/drop-four/internal/bot"
	"github.com/aaronzipp/drop-four/internal/config"
	"github.com/aaronzipp/drop-four/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Str("level", cfg.LogLevel).Msg("invalid log level")
	}
	log.Logger = zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create client")
	}
	session.Identify.Intents = discordgo.IntentGuilds |
		discordgo.IntentGuildMessages |
		discordgo.IntentGuildMessageReactions |
		discordgo.IntentMessageContent

	resolver := bot.NewResolver()
	sessions := store.New(cfg.MaxGames)
	connectFour := bot.NewConnectFour(sessions, resolver, cfg.GameTTL)

	arbiter := bot.NewArbiter(cfg.Prefix, resolver)
	mustRegister(arbiter, "ping", bot.NewPing())
	mustRegister(arbiter, "announce", bot.Announce{})
	mustRegister(arbiter, "c4", connectFour)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	arbiter.Bind(ctx, session)

	if err := session.Open(); err != nil {
		log.Fatal().Err(err).Msg("could not connect to gateway")
	}
	log.Info().Str("prefix", cfg.Prefix).Msg("gateway connected")

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		connectFour.PruneLoop(ctx, session, cfg.PruneInterval)
		return nil
	})

	<-ctx.Done()
	log.Info().Msg("shutting down")

	if err := session.Close(); err != nil {
		log.Debug().Err(err).Msg("gateway close failed")
	}
	_ = group.Wait()
	resolver.Close()
}

func mustRegister(arbiter *bot.Arbiter, name string, handler any) {
	if err := arbiter.Register(name, handler); err != nil {
		log.Fatal().Err(err).Str("command", name).Msg("could not register command")
	}
}
