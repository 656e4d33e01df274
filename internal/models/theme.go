// internal/models/theme.go
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/codr1/themesmith/internal/colors"
)

const maxThemeNameLength = 100

var semverRegex = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-[0-9A-Za-z.-]+)?(?:\+[0-9A-Za-z.-]+)?$`)

// ErrMissingPalettes is returned when a theme document carries neither palette.
var ErrMissingPalettes = errors.New("theme document requires lightModeConfig or darkModeConfig")

// ThemeConfig is the fully specified input of NewTheme. Zero fields resolve to
// defaults: a random id, DefaultThemeVersion, the default palettes and
// time.Now.
type ThemeConfig struct {
	ID          string
	Name        string
	Version     string
	LightColors map[string]string
	DarkColors  map[string]string
	Typography  *Typography
	Brand       *Brand
	Now         func() time.Time
}

// Theme aggregates both palettes with optional typography and brand. Every
// mutator refreshes UpdatedAt. A theme may be invalid while it is edited;
// Validate reports what is wrong.
type Theme struct {
	id         string
	name       string
	version    string
	light      *ColorPalette
	dark       *ColorPalette
	typography *Typography
	brand      *Brand
	createdAt  time.Time
	updatedAt  time.Time
	now        func() time.Time
}

func NewTheme(cfg ThemeConfig) (*Theme, error) {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	id := strings.TrimSpace(cfg.ID)
	if id == "" {
		id = uuid.NewString()
	}
	version := cfg.Version
	if version == "" {
		version = DefaultThemeVersion
	}
	if !semverRegex.MatchString(version) {
		return nil, InvalidFormatError{Field: "version", Value: version, Reason: "expected MAJOR.MINOR.PATCH"}
	}
	name, err := checkThemeName(cfg.Name)
	if err != nil {
		return nil, err
	}

	lightColors := cfg.LightColors
	if lightColors == nil {
		lightColors = DefaultLightColors()
	}
	darkColors := cfg.DarkColors
	if darkColors == nil {
		darkColors = DefaultDarkColors()
	}
	light, err := normalizedPalette(ModeLight, lightColors)
	if err != nil {
		return nil, err
	}
	dark, err := normalizedPalette(ModeDark, darkColors)
	if err != nil {
		return nil, err
	}
	if err := checkTypography(cfg.Typography); err != nil {
		return nil, err
	}
	if err := checkBrand(cfg.Brand, light, dark); err != nil {
		return nil, err
	}

	created := now().UTC()
	return &Theme{
		id:         id,
		name:       name,
		version:    version,
		light:      light,
		dark:       dark,
		typography: cfg.Typography.Clone(),
		brand:      cfg.Brand.Clone(),
		createdAt:  created,
		updatedAt:  created,
		now:        now,
	}, nil
}

func normalizedPalette(mode Mode, values map[string]string) (*ColorPalette, error) {
	normalized := make(map[string]string, len(values))
	for _, name := range sortedKeys(values) {
		value, err := normalizeColor(mode, name, values[name])
		if err != nil {
			return nil, err
		}
		normalized[name] = value
	}
	return NewColorPalette(mode, normalized), nil
}

func normalizeColor(mode Mode, name, value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", EmptyValueError{Field: fmt.Sprintf("%s color %q value", mode, name)}
	}
	normalized, err := colors.Normalize(value)
	if err != nil {
		return "", InvalidFormatError{Field: fmt.Sprintf("%s color %q", mode, name), Value: value, Reason: err.Error()}
	}
	return normalized, nil
}

func checkThemeName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", EmptyValueError{Field: "theme name"}
	}
	if len(name) > maxThemeNameLength {
		return "", InvalidFormatError{Field: "theme name", Value: name, Reason: fmt.Sprintf("must be %d characters or fewer", maxThemeNameLength)}
	}
	return name, nil
}

func (t *Theme) ID() string           { return t.id }
func (t *Theme) Name() string         { return t.name }
func (t *Theme) Version() string      { return t.version }
func (t *Theme) CreatedAt() time.Time { return t.createdAt }
func (t *Theme) UpdatedAt() time.Time { return t.updatedAt }

// Light returns the light palette. Writes through it bypass the theme's
// format checks and do not refresh UpdatedAt.
func (t *Theme) Light() *ColorPalette { return t.light }

func (t *Theme) Dark() *ColorPalette { return t.dark }

func (t *Theme) Palette(mode Mode) *ColorPalette {
	if mode == ModeDark {
		return t.dark
	}
	return t.light
}

// Typography returns a copy of the typography settings, or nil.
func (t *Theme) Typography() *Typography { return t.typography.Clone() }

// Brand returns a copy of the brand settings, or nil.
func (t *Theme) Brand() *Brand { return t.brand.Clone() }

func (t *Theme) touch() {
	t.updatedAt = t.now().UTC()
}

func (t *Theme) palettes() []*ColorPalette {
	return []*ColorPalette{t.light, t.dark}
}

func (t *Theme) SetName(name string) error {
	trimmed, err := checkThemeName(name)
	if err != nil {
		return err
	}
	t.name = trimmed
	t.touch()
	return nil
}

func (t *Theme) SetVersion(version string) error {
	version = strings.TrimSpace(version)
	if !semverRegex.MatchString(version) {
		return InvalidFormatError{Field: "version", Value: version, Reason: "expected MAJOR.MINOR.PATCH"}
	}
	t.version = version
	t.touch()
	return nil
}

// UpdateColor writes name in both palettes. Both values are checked before
// either palette changes.
func (t *Theme) UpdateColor(name, lightValue, darkValue string) error {
	if strings.TrimSpace(name) == "" {
		return EmptyValueError{Field: "color name"}
	}
	light, err := normalizeColor(ModeLight, name, lightValue)
	if err != nil {
		return err
	}
	dark, err := normalizeColor(ModeDark, name, darkValue)
	if err != nil {
		return err
	}
	if err := t.light.UpdateColor(name, light); err != nil {
		return err
	}
	if err := t.dark.UpdateColor(name, dark); err != nil {
		return err
	}
	t.touch()
	return nil
}

func (t *Theme) UpdatePaletteColor(mode Mode, name, value string) error {
	if strings.TrimSpace(name) == "" {
		return EmptyValueError{Field: "color name"}
	}
	normalized, err := normalizeColor(mode, name, value)
	if err != nil {
		return err
	}
	if err := t.Palette(mode).UpdateColor(name, normalized); err != nil {
		return err
	}
	t.touch()
	return nil
}

// AddColor adds a new color to both palettes. It fails if either palette
// already holds name.
func (t *Theme) AddColor(name, lightValue, darkValue string) error {
	if strings.TrimSpace(name) == "" {
		return EmptyValueError{Field: "color name"}
	}
	for _, p := range t.palettes() {
		if p.Has(name) {
			return DuplicateColorError{Name: name}
		}
	}
	return t.UpdateColor(name, lightValue, darkValue)
}

// RemoveColor removes name from every palette that holds it.
func (t *Theme) RemoveColor(name string) error {
	if IsRequiredColor(name) {
		return ProtectedColorError{Name: name}
	}
	if !t.light.Has(name) && !t.dark.Has(name) {
		return UnknownColorError{Name: name}
	}
	for _, p := range t.palettes() {
		if p.Has(name) {
			if err := p.RemoveColor(name); err != nil {
				return err
			}
		}
	}
	t.touch()
	return nil
}

func (t *Theme) RemovePaletteColor(mode Mode, name string) error {
	if err := t.Palette(mode).RemoveColor(name); err != nil {
		return err
	}
	t.touch()
	return nil
}

// LinkColor links source to target in both palettes. The link is checked
// against both palettes before either changes.
func (t *Theme) LinkColor(source, target string) error {
	for _, p := range t.palettes() {
		if err := p.CheckLink(source, target); err != nil {
			return err
		}
	}
	for _, p := range t.palettes() {
		if err := p.LinkColor(source, target); err != nil {
			return err
		}
	}
	t.touch()
	return nil
}

func (t *Theme) LinkPaletteColor(mode Mode, source, target string) error {
	if err := t.Palette(mode).LinkColor(source, target); err != nil {
		return err
	}
	t.touch()
	return nil
}

func (t *Theme) UnlinkColor(name string) {
	for _, p := range t.palettes() {
		p.UnlinkColor(name)
	}
	t.touch()
}

func (t *Theme) UnlinkPaletteColor(mode Mode, name string) {
	t.Palette(mode).UnlinkColor(name)
	t.touch()
}

// UpdateTypography replaces the typography settings. nil clears them.
func (t *Theme) UpdateTypography(typography *Typography) error {
	if err := checkTypography(typography); err != nil {
		return err
	}
	t.typography = typography.Clone()
	t.touch()
	return nil
}

// UpdateBrand replaces the brand settings. Brand color links must name a
// color present in at least one palette. nil clears the brand.
func (t *Theme) UpdateBrand(brand *Brand) error {
	if err := checkBrand(brand, t.light, t.dark); err != nil {
		return err
	}
	t.brand = brand.Clone()
	t.touch()
	return nil
}

func checkTypography(typography *Typography) error {
	if typography == nil {
		return nil
	}
	if result := typography.Validate(); !result.Valid {
		return InvalidFormatError{Field: "typography", Value: typography.FontFamily, Reason: strings.Join(result.Errors, "; ")}
	}
	return nil
}

func checkBrand(brand *Brand, light, dark *ColorPalette) error {
	if brand == nil {
		return nil
	}
	if result := brand.Validate(); !result.Valid {
		return InvalidFormatError{Field: "brand", Value: brand.PrimaryText(), Reason: strings.Join(result.Errors, "; ")}
	}
	for _, property := range BrandColors {
		target, linked := brand.Link(property)
		if linked && !light.Has(target) && !dark.Has(target) {
			return UnknownColorError{Name: target}
		}
	}
	return nil
}

// HasChanges reports whether t differs from original in name, palettes,
// typography or brand. Typography and brand compare by their JSON form.
func (t *Theme) HasChanges(original *Theme) bool {
	if original == nil {
		return true
	}
	if t.name != original.name {
		return true
	}
	if !t.light.Equals(original.light) || !t.dark.Equals(original.dark) {
		return true
	}
	return !jsonEqual(t.typography, original.typography) || !jsonEqual(t.brand, original.brand)
}

func jsonEqual(a, b any) bool {
	left, errA := json.Marshal(a)
	right, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(left, right)
}

// Validate checks the name and both palettes. Palette errors are prefixed
// with their mode.
func (t *Theme) Validate() ValidationResult {
	var errs []string
	if strings.TrimSpace(t.name) == "" {
		errs = append(errs, "Theme name is required")
	}
	for _, entry := range []struct {
		prefix  string
		palette *ColorPalette
	}{
		{prefix: "Light mode: ", palette: t.light},
		{prefix: "Dark mode: ", palette: t.dark},
	} {
		for _, msg := range entry.palette.Validate().Errors {
			errs = append(errs, entry.prefix+msg)
		}
	}
	return newValidationResult(errs)
}

// Clone deep-copies the theme under a new id with " (Copy)" appended to the
// name.
func (t *Theme) Clone() *Theme {
	name := t.name + " (Copy)"
	if len(name) > maxThemeNameLength {
		name = t.name
	}
	return &Theme{
		id:         uuid.NewString(),
		name:       name,
		version:    t.version,
		light:      t.light.Clone(),
		dark:       t.dark.Clone(),
		typography: t.typography.Clone(),
		brand:      t.brand.Clone(),
		createdAt:  t.createdAt,
		updatedAt:  t.updatedAt,
		now:        t.now,
	}
}

type themeMetadata struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type themeDocument struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	LightModeConfig map[string]string `json:"lightModeConfig"`
	DarkModeConfig  map[string]string `json:"darkModeConfig"`
	LightModeLinks  map[string]string `json:"lightModeLinks,omitempty"`
	DarkModeLinks   map[string]string `json:"darkModeLinks,omitempty"`
	Typography      *Typography       `json:"typography,omitempty"`
	BrandConfig     *Brand            `json:"brandConfig,omitempty"`
	Metadata        themeMetadata     `json:"metadata"`
}

// incomingThemeDocument also accepts the legacy palette keys.
type incomingThemeDocument struct {
	themeDocument
	LightColors map[string]string `json:"lightColors"`
	DarkColors  map[string]string `json:"darkColors"`
	Metadata    *themeMetadata    `json:"metadata"`
}

func (t *Theme) MarshalJSON() ([]byte, error) {
	doc := themeDocument{
		ID:              t.id,
		Name:            t.name,
		Version:         t.version,
		LightModeConfig: t.light.Colors(),
		DarkModeConfig:  t.dark.Colors(),
		Typography:      t.typography,
		BrandConfig:     t.brand,
		Metadata: themeMetadata{
			CreatedAt: t.createdAt,
			UpdatedAt: t.updatedAt,
		},
	}
	if links := t.light.Links(); len(links) > 0 {
		doc.LightModeLinks = links
	}
	if links := t.dark.Links(); len(links) > 0 {
		doc.DarkModeLinks = links
	}
	return json.Marshal(doc)
}

// ToJSON returns the indented theme document.
func (t *Theme) ToJSON() ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

func (t *Theme) UnmarshalJSON(data []byte) error {
	decoded, err := ThemeFromJSON(data)
	if err != nil {
		return err
	}
	*t = *decoded
	return nil
}

// ThemeFromJSON decodes a theme document. Color values must be valid and are
// kept as written. Links that point at missing colors are kept so Validate
// reports them, but self links and cycles are rejected.
func ThemeFromJSON(data []byte) (*Theme, error) {
	var doc incomingThemeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse theme: %w", err)
	}

	lightColors := doc.LightModeConfig
	if lightColors == nil {
		lightColors = doc.LightColors
	}
	darkColors := doc.DarkModeConfig
	if darkColors == nil {
		darkColors = doc.DarkColors
	}
	if lightColors == nil && darkColors == nil {
		return nil, ErrMissingPalettes
	}

	name, err := checkThemeName(doc.Name)
	if err != nil {
		return nil, err
	}
	version := doc.Version
	if version == "" {
		version = DefaultThemeVersion
	}
	if !semverRegex.MatchString(version) {
		return nil, InvalidFormatError{Field: "version", Value: version, Reason: "expected MAJOR.MINOR.PATCH"}
	}

	light, err := decodePalette(ModeLight, lightColors, doc.LightModeLinks)
	if err != nil {
		return nil, err
	}
	dark, err := decodePalette(ModeDark, darkColors, doc.DarkModeLinks)
	if err != nil {
		return nil, err
	}

	id := doc.ID
	if strings.TrimSpace(id) == "" {
		id = uuid.NewString()
	}
	now := time.Now().UTC()
	created, updated := now, now
	if doc.Metadata != nil {
		if !doc.Metadata.CreatedAt.IsZero() {
			created = doc.Metadata.CreatedAt
		}
		if !doc.Metadata.UpdatedAt.IsZero() {
			updated = doc.Metadata.UpdatedAt
		}
	}

	return &Theme{
		id:         id,
		name:       name,
		version:    version,
		light:      light,
		dark:       dark,
		typography: doc.Typography,
		brand:      doc.BrandConfig,
		createdAt:  created,
		updatedAt:  updated,
		now:        time.Now,
	}, nil
}

func decodePalette(mode Mode, values, links map[string]string) (*ColorPalette, error) {
	for _, name := range sortedKeys(values) {
		value := values[name]
		if strings.TrimSpace(value) == "" {
			return nil, EmptyValueError{Field: fmt.Sprintf("%s color %q value", mode, name)}
		}
		if result := colors.Validate(value); !result.Valid {
			return nil, InvalidFormatError{Field: fmt.Sprintf("%s color %q", mode, name), Value: value, Reason: result.Error}
		}
	}
	palette := NewColorPalette(mode, values)
	for _, source := range sortedKeys(links) {
		if err := palette.restoreLink(source, links[source]); err != nil {
			return nil, fmt.Errorf("%s link %s: %w", mode, source, err)
		}
	}
	return palette, nil
}

// WithClock replaces the time source used to stamp mutations.
func (t *Theme) WithClock(now func() time.Time) *Theme {
	if now != nil {
		t.now = now
	}
	return t
}
