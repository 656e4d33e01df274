package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/codr1/themesmith/internal/db"
)

const commandTimeout = 30 * time.Second

var (
	exportCSS   bool
	exportYAML  bool
	seedPresets bool
	pruneKeep   int
)

func init() {
	rootCmd.AddCommand(importCmd, listCmd, exportCmd, deleteCmd, backupCmd, restoreCmd, presetsCmd)
	exportCmd.Flags().BoolVar(&exportCSS, "css", false, "Export CSS custom properties instead of JSON")
	exportCmd.Flags().BoolVar(&exportYAML, "yaml", false, "Export the theme document as YAML (ignored with --css)")
	listCmd.Flags().BoolVar(&seedPresets, "seed", false, "Seed the preset themes into an empty library first")
	backupCmd.Flags().IntVar(&pruneKeep, "keep", 0, "Prune to this many newest backups after writing (0 keeps all)")
}

func commandContext() (context.Context, context.CancelFunc) {
	ctx := log.Logger.WithContext(context.Background())
	return context.WithTimeout(ctx, commandTimeout)
}

var importCmd = &cobra.Command{
	Use:   "import <theme.json>...",
	Short: "Import theme documents into the library",
	Long:  "Import theme documents, canonical or legacy, into the library. A theme with the same id is replaced.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, database, err := openLibrary()
		if err != nil {
			return err
		}
		defer database.Close()
		ctx, cancel := commandContext()
		defer cancel()

		out := cmd.OutOrStdout()
		for _, path := range args {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			theme, meta, err := lib.ImportTheme(ctx, string(data))
			if err != nil {
				return fmt.Errorf("import %s: %w", path, err)
			}
			fmt.Fprintf(out, "Imported %s (%s) score %d\n", theme.Name(), meta.ID, meta.Score)
		}
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored themes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, database, err := openLibrary()
		if err != nil {
			return err
		}
		defer database.Close()
		ctx, cancel := commandContext()
		defer cancel()

		if seedPresets {
			presets, _, err := db.ParseThemePresets()
			if err != nil {
				return err
			}
			if _, err := lib.SeedPresets(ctx, presets); err != nil {
				return err
			}
		}

		themes, err := lib.List(ctx)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if jsonOutput {
			return writeJSON(out, themes)
		}
		writer := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
		fmt.Fprintln(writer, "ID\tNAME\tVERSION\tVALID\tSCORE\tUPDATED")
		for _, meta := range themes {
			fmt.Fprintf(writer, "%s\t%s\t%s\t%t\t%d\t%s\n",
				meta.ID, meta.Name, meta.Version, meta.Valid, meta.Score, meta.UpdatedAt.Format(time.RFC3339))
		}
		return writer.Flush()
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export a stored theme",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, database, err := openLibrary()
		if err != nil {
			return err
		}
		defer database.Close()
		ctx, cancel := commandContext()
		defer cancel()

		out := cmd.OutOrStdout()
		if exportCSS {
			css, err := lib.ExportCSS(ctx, args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(out, css)
			return err
		}
		doc, err := lib.ExportTheme(ctx, args[0])
		if err != nil {
			return err
		}
		if exportYAML {
			return writeYAML(out, doc)
		}
		_, err = fmt.Fprintln(out, string(doc))
		return err
	},
}

// writeYAML re-encodes a JSON document as block-style YAML, keeping key order.
func writeYAML(w io.Writer, doc []byte) error {
	var node yaml.Node
	if err := yaml.Unmarshal(doc, &node); err != nil {
		return fmt.Errorf("decode theme document: %w", err)
	}
	clearStyle(&node)
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(&node); err != nil {
		return err
	}
	return encoder.Close()
}

func clearStyle(node *yaml.Node) {
	node.Style = 0
	for _, child := range node.Content {
		clearStyle(child)
	}
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored theme",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, database, err := openLibrary()
		if err != nil {
			return err
		}
		defer database.Close()
		ctx, cancel := commandContext()
		defer cancel()

		if err := lib.Delete(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		return nil
	},
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Snapshot every stored theme",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, database, err := openLibrary()
		if err != nil {
			return err
		}
		defer database.Close()
		ctx, cancel := commandContext()
		defer cancel()

		key, err := lib.Backup(ctx)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, key)
		if pruneKeep > 0 {
			pruned, err := lib.PruneBackups(ctx, pruneKeep)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Pruned %d backups\n", pruned)
		}
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore [backup-key]",
	Short: "Restore themes from a snapshot",
	Long:  "Restore themes from a snapshot, overwriting themes with matching ids. Without a key the newest backups are listed.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, database, err := openLibrary()
		if err != nil {
			return err
		}
		defer database.Close()
		ctx, cancel := commandContext()
		defer cancel()

		out := cmd.OutOrStdout()
		if len(args) == 0 {
			keys, err := lib.Backups(ctx)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(out, keys)
			}
			for _, key := range keys {
				fmt.Fprintln(out, key)
			}
			return nil
		}
		restored, err := lib.RestoreBackup(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Restored %d themes\n", restored)
		return nil
	},
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the preset themes built into the binary",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		presets, defaultID, err := db.ParseThemePresets()
		if err != nil {
			return err
		}
		writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
		fmt.Fprintln(writer, "ID\tNAME\tDEFAULT")
		for _, preset := range presets {
			fmt.Fprintf(writer, "%s\t%s\t%t\n", preset.ID(), preset.Name(), preset.ID() == defaultID)
		}
		return writer.Flush()
	},
}
