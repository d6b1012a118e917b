package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Chiitoi/Aurora/internal/config"
	"github.com/Chiitoi/Aurora/internal/logging"
	"github.com/Chiitoi/Aurora/internal/models"
	"github.com/Chiitoi/Aurora/internal/wire"
)

// openApp loads configuration from the environment and builds the app.
func openApp() (*wire.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, err := logging.FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	a, err := wire.New(cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}
	return a, nil
}

func closeApp(a *wire.App) {
	if err := a.Close(); err != nil {
		a.Logger.Warn("failed to close database", zap.Error(err))
	}
	_ = a.Logger.Sync()
}

// guildFlag registers the --guild flag shared by the lookup commands.
func guildFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "guild", "g", "", "Guild ID (required)")
	_ = cmd.MarkFlagRequired("guild")
}

func parsePair(guild, a, b string) (models.GuildID, models.UserID, models.UserID, error) {
	g, err := models.ParseGuildID(guild)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid guild: %w", err)
	}
	ua, err := models.ParseUserID(a)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid user %q: %w", a, err)
	}
	ub, err := models.ParseUserID(b)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid user %q: %w", b, err)
	}
	return g, ua, ub, nil
}
