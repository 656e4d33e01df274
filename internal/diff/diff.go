// Package diff compares, replays and merges themes.
package diff

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/codr1/themesmith/internal/models"
)

type ChangeType string

const (
	Added    ChangeType = "added"
	Modified ChangeType = "modified"
	Removed  ChangeType = "removed"
)

const (
	PathTypography = "typography"
	PathBrand      = "brandConfig"

	lightPrefix     = "light."
	darkPrefix      = "dark."
	lightLinkPrefix = "lightLinks."
	darkLinkPrefix  = "darkLinks."
)

var (
	ErrUnknownPath = errors.New("unknown change path")
	ErrNilTheme    = errors.New("theme is required")
)

// Change is one path-addressed difference. Color and link changes carry
// strings; typography and brand changes carry the whole object.
type Change struct {
	Type          ChangeType `json:"type"`
	Path          string     `json:"path"`
	OriginalValue any        `json:"originalValue,omitempty"`
	NewValue      any        `json:"newValue,omitempty"`
}

type Diff struct {
	Changes []Change `json:"changes"`
}

func (d Diff) IsEmpty() bool {
	return len(d.Changes) == 0
}

type FailedChange struct {
	Change Change `json:"change"`
	Error  string `json:"error"`
}

type ApplyResult struct {
	Applied       []Change       `json:"applied"`
	FailedChanges []FailedChange `json:"failedChanges"`
}

// ColorPath returns the diff path of a color in mode.
func ColorPath(mode models.Mode, name string) string {
	if mode == models.ModeDark {
		return darkPrefix + name
	}
	return lightPrefix + name
}

// LinkPath returns the diff path of the link from name in mode.
func LinkPath(mode models.Mode, name string) string {
	if mode == models.ModeDark {
		return darkLinkPrefix + name
	}
	return lightLinkPrefix + name
}

// CreateThemeDiff lists the changes that turn a into b. Stored color values
// and link targets are compared per mode; typography and brand compare as
// whole objects.
func CreateThemeDiff(a, b *models.Theme) Diff {
	var changes []Change
	for _, mode := range []models.Mode{models.ModeLight, models.ModeDark} {
		changes = append(changes, diffMaps(func(name string) string { return ColorPath(mode, name) },
			a.Palette(mode).Colors(), b.Palette(mode).Colors())...)
	}
	for _, mode := range []models.Mode{models.ModeLight, models.ModeDark} {
		changes = append(changes, diffMaps(func(name string) string { return LinkPath(mode, name) },
			a.Palette(mode).Links(), b.Palette(mode).Links())...)
	}
	if change, ok := diffObject(PathTypography, a.Typography(), b.Typography()); ok {
		changes = append(changes, change)
	}
	if change, ok := diffObject(PathBrand, a.Brand(), b.Brand()); ok {
		changes = append(changes, change)
	}
	if changes == nil {
		changes = []Change{}
	}
	return Diff{Changes: changes}
}

func diffMaps(path func(string) string, before, after map[string]string) []Change {
	names := make(map[string]struct{}, len(before)+len(after))
	for name := range before {
		names[name] = struct{}{}
	}
	for name := range after {
		names[name] = struct{}{}
	}
	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	var changes []Change
	for _, name := range sorted {
		oldValue, hadOld := before[name]
		newValue, hasNew := after[name]
		switch {
		case !hadOld:
			changes = append(changes, Change{Type: Added, Path: path(name), NewValue: newValue})
		case !hasNew:
			changes = append(changes, Change{Type: Removed, Path: path(name), OriginalValue: oldValue})
		case oldValue != newValue:
			changes = append(changes, Change{Type: Modified, Path: path(name), OriginalValue: oldValue, NewValue: newValue})
		}
	}
	return changes
}

func diffObject[T any](path string, before, after *T) (Change, bool) {
	switch {
	case before == nil && after == nil:
		return Change{}, false
	case before == nil:
		return Change{Type: Added, Path: path, NewValue: after}, true
	case after == nil:
		return Change{Type: Removed, Path: path, OriginalValue: before}, true
	}
	left, errA := json.Marshal(before)
	right, errB := json.Marshal(after)
	if errA == nil && errB == nil && string(left) == string(right) {
		return Change{}, false
	}
	return Change{Type: Modified, Path: path, OriginalValue: before, NewValue: after}, true
}

// ApplyThemeDiff replays d against theme. Each change is attempted on its
// own; failures are collected and successful changes stay applied.
func ApplyThemeDiff(theme *models.Theme, d Diff) ApplyResult {
	result := ApplyResult{Applied: []Change{}, FailedChanges: []FailedChange{}}

	linkChanges := make(map[string]struct{})
	for _, change := range d.Changes {
		if isLinkPath(change.Path) {
			linkChanges[change.Path] = struct{}{}
		}
	}

	for _, change := range replayOrder(d.Changes) {
		if err := applyChange(theme, change, linkChanges); err != nil {
			result.FailedChanges = append(result.FailedChanges, FailedChange{Change: change, Error: err.Error()})
			continue
		}
		result.Applied = append(result.Applied, change)
	}
	return result
}

// replayOrder moves link changes after every value change and link removals
// before link additions, so no intermediate state closes a cycle.
func replayOrder(changes []Change) []Change {
	rank := func(c Change) int {
		if !isLinkPath(c.Path) {
			return 0
		}
		if c.Type == Removed {
			return 1
		}
		return 2
	}
	ordered := make([]Change, len(changes))
	copy(ordered, changes)
	sort.SliceStable(ordered, func(i, j int) bool {
		return rank(ordered[i]) < rank(ordered[j])
	})
	return ordered
}

func isLinkPath(path string) bool {
	return strings.HasPrefix(path, lightLinkPrefix) || strings.HasPrefix(path, darkLinkPrefix)
}

func applyChange(theme *models.Theme, change Change, linkChanges map[string]struct{}) error {
	switch {
	case change.Path == PathTypography:
		return applyTypography(theme, change)
	case change.Path == PathBrand:
		return applyBrand(theme, change)
	case strings.HasPrefix(change.Path, lightLinkPrefix):
		return applyLink(theme, models.ModeLight, strings.TrimPrefix(change.Path, lightLinkPrefix), change)
	case strings.HasPrefix(change.Path, darkLinkPrefix):
		return applyLink(theme, models.ModeDark, strings.TrimPrefix(change.Path, darkLinkPrefix), change)
	case strings.HasPrefix(change.Path, lightPrefix):
		return applyColor(theme, models.ModeLight, strings.TrimPrefix(change.Path, lightPrefix), change, linkChanges)
	case strings.HasPrefix(change.Path, darkPrefix):
		return applyColor(theme, models.ModeDark, strings.TrimPrefix(change.Path, darkPrefix), change, linkChanges)
	}
	return fmt.Errorf("%w: %s", ErrUnknownPath, change.Path)
}

func applyColor(theme *models.Theme, mode models.Mode, name string, change Change, linkChanges map[string]struct{}) error {
	if change.Type == Removed {
		return theme.RemovePaletteColor(mode, name)
	}
	value, err := stringValue(change.NewValue)
	if err != nil {
		return err
	}
	target, linked := theme.Palette(mode).LinkTarget(name)
	if err := theme.UpdatePaletteColor(mode, name, value); err != nil {
		return err
	}
	// A value change clears the link; keep it when the diff leaves the link alone.
	if _, touched := linkChanges[LinkPath(mode, name)]; linked && !touched {
		return theme.LinkPaletteColor(mode, name, target)
	}
	return nil
}

func applyLink(theme *models.Theme, mode models.Mode, name string, change Change) error {
	if change.Type == Removed {
		theme.UnlinkPaletteColor(mode, name)
		return nil
	}
	target, err := stringValue(change.NewValue)
	if err != nil {
		return err
	}
	return theme.LinkPaletteColor(mode, name, target)
}

func applyTypography(theme *models.Theme, change Change) error {
	if change.Type == Removed {
		return theme.UpdateTypography(nil)
	}
	var typography models.Typography
	if err := decodeValue(change.NewValue, &typography); err != nil {
		return err
	}
	return theme.UpdateTypography(&typography)
}

func applyBrand(theme *models.Theme, change Change) error {
	if change.Type == Removed {
		return theme.UpdateBrand(nil)
	}
	var brand models.Brand
	if err := decodeValue(change.NewValue, &brand); err != nil {
		return err
	}
	return theme.UpdateBrand(&brand)
}

func stringValue(value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("expected a string value, got %T", value)
	}
	return s, nil
}

// decodeValue copies value into out through JSON, so changes decoded from a
// request body work the same as changes built in process.
func decodeValue(value any, out any) error {
	if value == nil {
		return fmt.Errorf("change has no new value")
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode change value: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode change value: %w", err)
	}
	return nil
}
