// cmd/themectl/main.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/codr1/themesmith/internal/db"
	"github.com/codr1/themesmith/internal/library"
	"github.com/codr1/themesmith/internal/logging"
	"github.com/codr1/themesmith/internal/models"
)

var (
	dbPath     string
	jsonOutput bool
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:           "themectl",
	Short:         "Inspect, convert and store themes",
	Long:          "themectl validates theme documents, renders their CSS, compares themes and manages a SQLite theme library.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(logging.Config{Environment: "development", Level: logLevel})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the SQLite theme library")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Write JSON output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (trace, debug, info, warn, error)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// readTheme decodes the theme document at path; "-" reads stdin.
func readTheme(cmd *cobra.Command, path string) (*models.Theme, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	theme, err := models.ThemeFromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return theme, nil
}

// openLibrary opens the --db library. The caller closes the returned DB.
func openLibrary() (*library.Library, *db.DB, error) {
	if dbPath == "" {
		return nil, nil, fmt.Errorf("--db is required")
	}
	database, err := db.New(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open library: %w", err)
	}
	return library.New(database, library.Options{}), database, nil
}

func writeJSON(w io.Writer, payload any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
