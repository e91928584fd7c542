// Package config loads the bot configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrNoToken is returned when neither the token variable nor the token
// file yields a Discord token.
var ErrNoToken = errors.New("no Discord token found")

// Config holds everything the daemon needs to run.
type Config struct {
	// Token authenticates the bot. When empty, TokenFile is read instead.
	Token     string `env:"DISCORD_TOKEN"`
	TokenFile string `env:"DISCORD_TOKEN_FILE" envDefault:"secret"`

	Prefix        string        `env:"BOT_PREFIX" envDefault:"!"`
	MaxGames      int           `env:"C4_MAX_GAMES" envDefault:"10"`
	GameTTL       time.Duration `env:"C4_GAME_TTL" envDefault:"30m"`
	PruneInterval time.Duration `env:"C4_PRUNE_INTERVAL" envDefault:"5m"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads an optional .env file, parses the environment, and resolves
// the token.
func Load() (Config, error) {
	// A missing .env file is fine; explicit variables win either way.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.Token == "" {
		data, err := os.ReadFile(cfg.TokenFile)
		if err != nil {
			return Config{}, fmt.Errorf("%w: set DISCORD_TOKEN or provide %q", ErrNoToken, cfg.TokenFile)
		}
		cfg.Token = strings.TrimSpace(string(data))
	}
	if cfg.Token == "" {
		return Config{}, ErrNoToken
	}
	return cfg, nil
}
