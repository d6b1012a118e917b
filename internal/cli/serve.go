package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Chiitoi/Aurora/internal/adapters/discord"
	"github.com/Chiitoi/Aurora/internal/adapters/httpapi"
	"github.com/Chiitoi/Aurora/internal/ports/primary"
)

const sweepInterval = time.Minute

// gatewayIntents are the gateway events the bot subscribes to.
const gatewayIntents = discordgo.IntentsGuilds |
	discordgo.IntentsGuildMembers |
	discordgo.IntentsGuildMessages |
	discordgo.IntentsMessageContent

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	var register bool
	var noHTTP bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Connect to the gateway and answer commands",
		Long: `Connect to the gateway, answer slash commands and buttons, and serve
the read-only stats API.

Configuration is read from the environment (BOT_TOKEN, APPLICATION_ID,
DATABASE_PATH, HTTP_ADDR, ...).

Examples:
  aurora serve                  # Register commands and run
  aurora serve --register=false # Run with the existing command set
  aurora serve --no-http        # Skip the stats API`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := openApp()
			if err != nil {
				return err
			}
			defer closeApp(a)
			if err := a.Config.RequireToken(); err != nil {
				return err
			}

			session, err := discordgo.New(a.Config.AuthHeader())
			if err != nil {
				return fmt.Errorf("failed to create session: %w", err)
			}
			session.Identify.Intents = gatewayIntents
			session.StateEnabled = true
			session.State.MaxMessageCount = a.Config.MessageCacheSize

			router := a.Router()
			session.AddHandler(router.OnReady)
			session.AddHandler(router.OnInteractionCreate)

			if err := session.Open(); err != nil {
				return fmt.Errorf("failed to open gateway: %w", err)
			}
			defer session.Close()

			if register {
				registered, err := discord.Register(session, a.Config.ApplicationID, a.Config.DevelopmentGuildID)
				if err != nil {
					return err
				}
				a.Logger.Info("commands registered",
					zap.Int("count", len(registered)),
					zap.String("guild_id", a.Config.DevelopmentGuildID),
				)
			}

			serveHTTP := !noHTTP && a.Config.HTTPAddr != ""
			g, ctx := errgroup.WithContext(ctx)
			if serveHTTP {
				srv := httpapi.NewServer(a.Config.HTTPAddr, a.HTTPHandler(), a.Logger.Named("http"))
				g.Go(func() error { return srv.Run(ctx) })
			}
			g.Go(func() error {
				sweepProposals(ctx, a.Ships, a.Logger, sweepInterval)
				return nil
			})

			a.Logger.Info("aurora running", zap.String("http_addr", a.Config.HTTPAddr), zap.Bool("http", serveHTTP))
			err = g.Wait()
			a.Logger.Info("aurora stopping")
			return err
		},
	}

	cmd.Flags().BoolVar(&register, "register", true, "Register slash commands on startup")
	cmd.Flags().BoolVar(&noHTTP, "no-http", false, "Do not serve the stats API")

	return cmd
}

// sweepProposals expires stale proposals until ctx is done.
func sweepProposals(ctx context.Context, ships primary.ShipService, logger *zap.Logger, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := ships.ExpireProposals(ctx); n > 0 {
				logger.Debug("expired proposals", zap.Int("count", n))
			}
		}
	}
}
