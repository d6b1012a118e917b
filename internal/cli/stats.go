package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Chiitoi/Aurora/internal/models"
)

// ShipCmd returns the ship command
func ShipCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ship",
		Short: "Inspect ships",
	}

	cmd.AddCommand(shipShowCmd())
	cmd.AddCommand(shipCountCmd())

	return cmd
}

func shipShowCmd() *cobra.Command {
	var guild string

	cmd := &cobra.Command{
		Use:   "show [user-id]",
		Short: "Show a member's ship",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, u, _, err := parsePair(guild, args[0], args[0])
			if err != nil {
				return err
			}
			a, err := openApp()
			if err != nil {
				return err
			}
			defer closeApp(a)

			_, err = a.StatsAdapter().ShowShip(cmd.Context(), g, u)
			return err
		},
	}
	guildFlag(cmd, &guild)

	return cmd
}

func shipCountCmd() *cobra.Command {
	var guild string

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count the ships in a guild",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := models.ParseGuildID(guild)
			if err != nil {
				return fmt.Errorf("invalid guild: %w", err)
			}
			a, err := openApp()
			if err != nil {
				return err
			}
			defer closeApp(a)

			_, err = a.StatsAdapter().CountShips(cmd.Context(), g)
			return err
		},
	}
	guildFlag(cmd, &guild)

	return cmd
}

// ActionCmd returns the action command
func ActionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "action",
		Short: "Inspect interaction counters",
	}

	cmd.AddCommand(actionCountsCmd())
	cmd.AddCommand(actionKillsCmd())

	return cmd
}

func actionCountsCmd() *cobra.Command {
	var guild string

	cmd := &cobra.Command{
		Use:   "counts [user-a] [user-b]",
		Short: "Show cuddle, handhold, hug and kiss totals between two members",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, ua, ub, err := parsePair(guild, args[0], args[1])
			if err != nil {
				return err
			}
			a, err := openApp()
			if err != nil {
				return err
			}
			defer closeApp(a)

			_, err = a.StatsAdapter().Counts(cmd.Context(), g, ua, ub)
			return err
		},
	}
	guildFlag(cmd, &guild)

	return cmd
}

func actionKillsCmd() *cobra.Command {
	var guild string

	cmd := &cobra.Command{
		Use:   "kills [user-a] [user-b]",
		Short: "Show the kill rivalry between two members",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, ua, ub, err := parsePair(guild, args[0], args[1])
			if err != nil {
				return err
			}
			a, err := openApp()
			if err != nil {
				return err
			}
			defer closeApp(a)

			_, _, err = a.StatsAdapter().Kills(cmd.Context(), g, ua, ub)
			return err
		},
	}
	guildFlag(cmd, &guild)

	return cmd
}
