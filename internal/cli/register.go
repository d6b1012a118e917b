package cli

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/cobra"

	"github.com/Chiitoi/Aurora/internal/adapters/discord"
	"github.com/Chiitoi/Aurora/internal/config"
)

// RegisterCmd returns the register command
func RegisterCmd() *cobra.Command {
	var global bool
	var list bool

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register slash commands without connecting to the gateway",
		Long: `Replace the registered slash command set.

Commands go to DEVELOPMENT_GUILD_ID when it is set, otherwise they are
registered globally.

Examples:
  aurora register           # Register to the development guild
  aurora register --global  # Register globally
  aurora register --list    # Print the command set and exit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				for _, c := range discord.Commands() {
					fmt.Printf("/%-10s %s\n", c.Name, c.Description)
				}
				return nil
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.RequireToken(); err != nil {
				return err
			}

			session, err := discordgo.New(cfg.AuthHeader())
			if err != nil {
				return fmt.Errorf("failed to create session: %w", err)
			}

			guildID := cfg.DevelopmentGuildID
			if global {
				guildID = ""
			}
			registered, err := discord.Register(session, cfg.ApplicationID, guildID)
			if err != nil {
				return err
			}

			scope := "globally"
			if guildID != "" {
				scope = "to guild " + guildID
			}
			fmt.Printf("✓ Registered %d commands %s\n", len(registered), scope)
			return nil
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "Register globally even if DEVELOPMENT_GUILD_ID is set")
	cmd.Flags().BoolVar(&list, "list", false, "Print the command set without registering")

	return cmd
}
