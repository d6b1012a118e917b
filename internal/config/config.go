// Package config loads the bot configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Log formats
const (
	LogFormatJSON    = "json"
	LogFormatConsole = "console"
)

// Config is the process configuration. It is parsed once at startup and passed
// explicitly to everything that needs it.
type Config struct {
	BotToken           string        `env:"BOT_TOKEN"`
	ApplicationID      string        `env:"APPLICATION_ID"`
	DevelopmentGuildID string        `env:"DEVELOPMENT_GUILD_ID"` // empty registers commands globally
	DatabasePath       string        `env:"DATABASE_PATH" envDefault:"aurora.db"`
	HTTPAddr           string        `env:"HTTP_ADDR" envDefault:":8080"` // empty disables the stats API
	ProposalTTL        time.Duration `env:"PROPOSAL_TTL" envDefault:"15m"`
	GIFAPIURL          string        `env:"GIF_API_URL" envDefault:"https://api.otakugifs.xyz/gif"`
	MessageCacheSize   int           `env:"MESSAGE_CACHE_SIZE" envDefault:"15"`
	LogLevel           string        `env:"AURORA_LOG_LEVEL" envDefault:"info"`
	LogFormat          string        `env:"AURORA_LOG_FORMAT" envDefault:"json"`
}

// Load parses the configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values that every command depends on.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DatabasePath) == "" {
		return errors.New("DATABASE_PATH must not be empty")
	}
	if c.ProposalTTL <= 0 {
		return fmt.Errorf("PROPOSAL_TTL must be positive (got %s)", c.ProposalTTL)
	}
	switch c.LogFormat {
	case LogFormatJSON, LogFormatConsole:
	default:
		return fmt.Errorf("AURORA_LOG_FORMAT must be %q or %q (got %q)", LogFormatJSON, LogFormatConsole, c.LogFormat)
	}
	return nil
}

// RequireToken returns an error when no bot token is configured.
// Only commands that talk to the platform need it.
func (c *Config) RequireToken() error {
	if strings.TrimSpace(c.BotToken) == "" {
		return errors.New("BOT_TOKEN is not set")
	}
	return nil
}

// AuthHeader returns the token in the form the platform expects.
func (c *Config) AuthHeader() string {
	if strings.HasPrefix(c.BotToken, "Bot ") {
		return c.BotToken
	}
	return "Bot " + c.BotToken
}
