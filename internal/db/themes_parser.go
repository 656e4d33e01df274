package db

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/codr1/themesmith/assets"
	"github.com/codr1/themesmith/internal/models"
)

const defaultThemeSuffix = " DEFAULT"

// ParseThemePresets reads the embedded preset documents in file name order.
// Exactly one preset must carry the DEFAULT suffix on its name; the suffix is
// stripped and that preset's id returned as the default.
func ParseThemePresets() ([]*models.Theme, string, error) {
	return parseThemePresets(assets.ThemesFS, assets.ThemesDir)
}

func parseThemePresets(fsys fs.FS, dir string) ([]*models.Theme, string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, "", fmt.Errorf("read embedded themes: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".json" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	themes := make([]*models.Theme, 0, len(names))
	seen := make(map[string]string, len(names))
	defaultID := ""
	defaultName := ""
	for _, name := range names {
		data, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, "", fmt.Errorf("read preset %s: %w", name, err)
		}
		theme, err := models.ThemeFromJSON(data)
		if err != nil {
			return nil, "", fmt.Errorf("parse preset %s: %w", name, err)
		}
		if other, ok := seen[theme.ID()]; ok {
			return nil, "", fmt.Errorf("presets %s and %s share id %q", other, name, theme.ID())
		}
		seen[theme.ID()] = name

		if strings.HasSuffix(theme.Name(), defaultThemeSuffix) {
			trimmed := strings.TrimSpace(strings.TrimSuffix(theme.Name(), defaultThemeSuffix))
			if defaultName != "" {
				return nil, "", fmt.Errorf("multiple DEFAULT themes: %q and %q", defaultName, trimmed)
			}
			if err := theme.SetName(trimmed); err != nil {
				return nil, "", fmt.Errorf("preset %s: theme name missing before DEFAULT: %w", name, err)
			}
			defaultID = theme.ID()
			defaultName = trimmed
		}

		if result := theme.Validate(); !result.Valid {
			return nil, "", fmt.Errorf("invalid preset %q: %s", theme.Name(), strings.Join(result.Errors, "; "))
		}
		themes = append(themes, theme)
	}

	if defaultID == "" {
		return nil, "", fmt.Errorf("no DEFAULT theme among %d presets", len(themes))
	}
	return themes, defaultID, nil
}
