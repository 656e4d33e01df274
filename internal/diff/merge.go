package diff

import (
	"fmt"

	"github.com/codr1/themesmith/internal/models"
)

type MergeResult struct {
	Theme *models.Theme `json:"theme"`
	// Skipped lists overlay links and settings that could not be carried over.
	Skipped []string `json:"skipped"`
}

// MergeThemes builds a new theme named "<base> + <overlay>" from a copy of
// base, letting overlay's colors, links, typography and brand win wherever
// they are set. base and overlay are not modified.
func MergeThemes(base, overlay *models.Theme) (MergeResult, error) {
	if base == nil || overlay == nil {
		return MergeResult{}, ErrNilTheme
	}
	merged := base.Clone()
	if err := merged.SetName(fmt.Sprintf("%s + %s", base.Name(), overlay.Name())); err != nil {
		return MergeResult{}, err
	}

	result := MergeResult{Theme: merged, Skipped: []string{}}
	for _, mode := range []models.Mode{models.ModeLight, models.ModeDark} {
		for _, err := range merged.Palette(mode).Merge(overlay.Palette(mode), true) {
			result.Skipped = append(result.Skipped, fmt.Sprintf("%s link: %v", mode, err))
		}
	}

	if typography := overlay.Typography(); typography != nil {
		if err := merged.UpdateTypography(typography); err != nil {
			result.Skipped = append(result.Skipped, fmt.Sprintf("typography: %v", err))
		}
	}
	if brand := overlay.Brand(); brand != nil {
		if err := merged.UpdateBrand(brand); err != nil {
			result.Skipped = append(result.Skipped, fmt.Sprintf("brand: %v", err))
		}
	}
	return result, nil
}

// SyncPalettes copies every color present in the from palette but missing in
// the other mode, together with its link when the target exists there too.
// It returns the copied names.
func SyncPalettes(theme *models.Theme, from models.Mode) ([]string, error) {
	to := models.ModeDark
	if from == models.ModeDark {
		to = models.ModeLight
	}
	source, target := theme.Palette(from), theme.Palette(to)

	var copied []string
	for _, name := range source.Names() {
		if target.Has(name) {
			continue
		}
		value, _ := source.RawColor(name)
		if err := theme.UpdatePaletteColor(to, name, value); err != nil {
			return copied, fmt.Errorf("sync %s to %s mode: %w", name, to, err)
		}
		copied = append(copied, name)
	}
	for _, name := range copied {
		linkTarget, linked := source.LinkTarget(name)
		if !linked || !target.Has(linkTarget) {
			continue
		}
		if err := theme.LinkPaletteColor(to, name, linkTarget); err != nil {
			return copied, fmt.Errorf("sync link %s to %s mode: %w", name, to, err)
		}
	}
	return copied, nil
}
