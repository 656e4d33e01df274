package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/codr1/themesmith/internal/colors"
	"github.com/codr1/themesmith/internal/diff"
	"github.com/codr1/themesmith/internal/templates/layouts"
	"github.com/codr1/themesmith/internal/validation"
)

var errInvalidTheme = errors.New("theme is invalid")

var convertTarget string

func init() {
	rootCmd.AddCommand(validateCmd, cssCmd, diffCmd, convertCmd, contrastCmd)
	convertCmd.Flags().StringVar(&convertTarget, "to", string(colors.FormatHex), "Target format (hex, rgb, hsl, oklch, tailwind)")
}

var validateCmd = &cobra.Command{
	Use:   "validate <theme.json>",
	Short: "Validate a theme document",
	Long:  "Validate a theme document and report its score, errors, warnings and link problems. Exits non-zero when the theme is invalid.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		theme, err := readTheme(cmd, args[0])
		if err != nil {
			return err
		}
		engine := validation.NewEngine(validation.Options{})
		report := engine.ValidateTheme(theme)
		links := engine.ValidateColorLinks(theme)

		out := cmd.OutOrStdout()
		if jsonOutput {
			if err := writeJSON(out, map[string]any{"report": report, "links": links}); err != nil {
				return err
			}
		} else {
			fmt.Fprintf(out, "%s (%s): score %d\n", theme.Name(), theme.ID(), report.Score)
			for _, msg := range append(report.Errors, links.Errors...) {
				fmt.Fprintf(out, "  error:   %s\n", msg)
			}
			for _, msg := range append(report.Warnings, links.Warnings...) {
				fmt.Fprintf(out, "  warning: %s\n", msg)
			}
		}
		if !report.IsValid {
			return errInvalidTheme
		}
		return nil
	},
}

var cssCmd = &cobra.Command{
	Use:   "css <theme.json>",
	Short: "Render a theme as CSS custom properties",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		theme, err := readTheme(cmd, args[0])
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), layouts.ThemeCSS(theme))
		return err
	},
}

var diffCmd = &cobra.Command{
	Use:   "diff <base.json> <other.json>",
	Short: "List the changes that turn one theme into another",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		base, err := readTheme(cmd, args[0])
		if err != nil {
			return err
		}
		other, err := readTheme(cmd, args[1])
		if err != nil {
			return err
		}
		d := diff.CreateThemeDiff(base, other)
		risk := diff.AssessRisk(d)

		out := cmd.OutOrStdout()
		if jsonOutput {
			return writeJSON(out, map[string]any{"changes": d.Changes, "risk": risk})
		}
		if d.IsEmpty() {
			fmt.Fprintln(out, "No changes.")
			return nil
		}
		writer := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
		fmt.Fprintln(writer, "TYPE\tPATH\tIMPACT\tFROM\tTO")
		for _, change := range d.Changes {
			fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n",
				change.Type, change.Path, diff.ClassifyImpact(change), shortValue(change.OriginalValue), shortValue(change.NewValue))
		}
		if err := writer.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(out, "\n%d changes, risk %s (%d high, %d medium, %d low)\n", risk.Total, risk.Level, risk.High, risk.Medium, risk.Low)
		return nil
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert <color>",
	Short: "Convert a color to another notation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		converted, err := colors.Convert(args[0], colors.Format(strings.ToLower(convertTarget)))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), converted)
		return err
	},
}

var contrastCmd = &cobra.Command{
	Use:   "contrast <foreground> <background>",
	Short: "Report the WCAG contrast ratio of two colors",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		check, err := validation.NewEngine(validation.Options{}).CheckContrast(args[0], args[1])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if jsonOutput {
			return writeJSON(out, check)
		}
		_, err = fmt.Fprintf(out, "%.2f:1 AA=%t AAA=%t\n", check.Ratio, check.PassesAA, check.PassesAAA)
		return err
	},
}

func shortValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "-"
	case string:
		return v
	default:
		return "{...}"
	}
}
