package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Chiitoi/Aurora/internal/db"
)

// DBCmd returns the db command
func DBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Manage the Aurora database",
	}

	cmd.AddCommand(dbMigrateCmd())
	cmd.AddCommand(dbSeedCmd())
	cmd.AddCommand(dbSchemaCmd())

	return cmd
}

func dbMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Bring the schema up to date",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer closeApp(a)

			version, err := db.CurrentVersion(a.DB)
			if err != nil {
				return err
			}
			fmt.Printf("✓ %s at schema version %d\n", a.Config.DatabasePath, version)
			return nil
		},
	}
}

func dbSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load development fixtures",
		Long: `Load a fixture guild with one ship, some counters and a bio.

Examples:
  DATABASE_PATH=dev.db aurora db seed
  aurora ship show --guild 100000000000000001 200000000000000001`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer closeApp(a)

			if err := db.SeedFixtures(a.DB); err != nil {
				return fmt.Errorf("failed to seed fixtures: %w", err)
			}
			fmt.Printf("✓ Seeded guild %d\n", db.FixtureGuild)
			return nil
		},
	}
}

func dbSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the schema",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(db.GetSchemaSQL())
		},
	}
}
