// Package logging builds the process logger and attaches request fields to it.
package logging

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Chiitoi/Aurora/internal/config"
	"github.com/Chiitoi/Aurora/internal/ctxutil"
)

// New builds a zap logger for the given level and format.
func New(level, format string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var cfg zap.Config
	switch format {
	case config.LogFormatConsole:
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	case config.LogFormatJSON, "":
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	default:
		return nil, fmt.Errorf("unsupported log format %q", format)
	}
	cfg.Level = lvl

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger.Named("aurora"), nil
}

// FromConfig builds the logger described by cfg.
func FromConfig(cfg *config.Config) (*zap.Logger, error) {
	return New(cfg.LogLevel, cfg.LogFormat)
}

// WithContext returns logger annotated with the request fields found in ctx.
func WithContext(ctx context.Context, logger *zap.Logger) *zap.Logger {
	fields := make([]zap.Field, 0, 3)
	if v := ctxutil.GuildFromContext(ctx); v != "" {
		fields = append(fields, zap.String("guild_id", v))
	}
	if v := ctxutil.ActorFromContext(ctx); v != "" {
		fields = append(fields, zap.String("actor_id", v))
	}
	if v := ctxutil.InteractionFromContext(ctx); v != "" {
		fields = append(fields, zap.String("interaction_id", v))
	}
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}
