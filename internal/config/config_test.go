package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "aurora.db", cfg.DatabasePath)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 15*time.Minute, cfg.ProposalTTL)
	assert.Equal(t, 15, cfg.MessageCacheSize)
	assert.Equal(t, LogFormatJSON, cfg.LogFormat)
	assert.Equal(t, "https://api.otakugifs.xyz/gif", cfg.GIFAPIURL)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("BOT_TOKEN", "secret")
	t.Setenv("DEVELOPMENT_GUILD_ID", "81384788765712384")
	t.Setenv("DATABASE_PATH", "/var/lib/aurora/aurora.db")
	t.Setenv("PROPOSAL_TTL", "90s")
	t.Setenv("AURORA_LOG_FORMAT", "console")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.BotToken)
	assert.Equal(t, "81384788765712384", cfg.DevelopmentGuildID)
	assert.Equal(t, "/var/lib/aurora/aurora.db", cfg.DatabasePath)
	assert.Equal(t, 90*time.Second, cfg.ProposalTTL)
	assert.Equal(t, LogFormatConsole, cfg.LogFormat)
	assert.NoError(t, cfg.RequireToken())
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("PROPOSAL_TTL", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestValidate(t *testing.T) {
	base := Config{DatabasePath: "aurora.db", ProposalTTL: time.Minute, LogFormat: LogFormatJSON}

	t.Run("valid", func(t *testing.T) {
		cfg := base
		assert.NoError(t, cfg.Validate())
	})

	t.Run("non-positive ttl", func(t *testing.T) {
		cfg := base
		cfg.ProposalTTL = 0
		assert.ErrorContains(t, cfg.Validate(), "PROPOSAL_TTL")
	})

	t.Run("unknown log format", func(t *testing.T) {
		cfg := base
		cfg.LogFormat = "xml"
		assert.ErrorContains(t, cfg.Validate(), "AURORA_LOG_FORMAT")
	})
}

func TestRequireToken(t *testing.T) {
	cfg := Config{}
	assert.EqualError(t, cfg.RequireToken(), "BOT_TOKEN is not set")
}

func TestAuthHeader(t *testing.T) {
	assert.Equal(t, "Bot abc", (&Config{BotToken: "abc"}).AuthHeader())
	assert.Equal(t, "Bot abc", (&Config{BotToken: "Bot abc"}).AuthHeader())
}
