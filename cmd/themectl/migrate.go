package main

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"

	"github.com/codr1/themesmith/internal/db"
)

func init() {
	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:       "migrate <up|down|version>",
	Short:     "Run the library schema migrations",
	Long:      "Run the schema migrations embedded in the binary against the --db library. Opening a library with any other command migrates it up automatically.",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"up", "down", "version"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if dbPath == "" {
			return fmt.Errorf("--db is required")
		}
		m, err := db.OpenMigrator(dbPath)
		if err != nil {
			return err
		}
		defer m.Close()

		out := cmd.OutOrStdout()
		switch args[0] {
		case "up":
			if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
				return fmt.Errorf("migration up failed: %w", err)
			}
		case "down":
			if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
				return fmt.Errorf("migration down failed: %w", err)
			}
		case "version":
		default:
			return fmt.Errorf("unknown migrate command: %s", args[0])
		}

		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Fprintln(out, "Version: none")
			return nil
		}
		if err != nil {
			return fmt.Errorf("get version failed: %w", err)
		}
		fmt.Fprintf(out, "Version: %d, Dirty: %v\n", version, dirty)
		return nil
	},
}
