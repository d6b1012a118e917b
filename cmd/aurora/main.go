package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Chiitoi/Aurora/internal/cli"
	"github.com/Chiitoi/Aurora/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "aurora",
		Short:   "Aurora - a chat bot for hugs, kills and ships",
		Version: version.String(),
		Long: `Aurora answers slash commands in a guild: reaction actions with running
counts, a kill game, bios, 8ball and ratings, and ships between two members.`,
		SilenceUsage: true,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.ServeCmd())
	rootCmd.AddCommand(cli.RegisterCmd())
	rootCmd.AddCommand(cli.DoctorCmd())
	rootCmd.AddCommand(cli.DBCmd())
	rootCmd.AddCommand(cli.ShipCmd())
	rootCmd.AddCommand(cli.ActionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
