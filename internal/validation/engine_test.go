package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codr1/themesmith/internal/models"
)

func newTheme(t *testing.T) *models.Theme {
	t.Helper()
	theme, err := models.NewTheme(models.ThemeConfig{Name: "Harbor"})
	require.NoError(t, err)
	return theme
}

func containsMessage(messages []string, fragment string) bool {
	for _, msg := range messages {
		if strings.Contains(msg, fragment) {
			return true
		}
	}
	return false
}

func TestValidateTheme_Defaults(t *testing.T) {
	report := NewEngine(Options{}).ValidateTheme(newTheme(t))

	assert.True(t, report.IsValid)
	assert.Empty(t, report.Errors)
	assert.Empty(t, report.Warnings)
	assert.Empty(t, report.MissingColors)
	assert.Equal(t, 100, report.Score)
	assert.Len(t, report.Contrast, 2*len(ContrastPairs))
	// destructive in both modes and dark muted sit between AA and AAA
	assert.Len(t, report.AAAMisses, 3)
}

func TestValidateTheme_LowContrastIsWarning(t *testing.T) {
	theme := newTheme(t)
	require.NoError(t, theme.UpdatePaletteColor(models.ModeLight, "primary", "#3b82f6"))
	require.NoError(t, theme.UpdatePaletteColor(models.ModeLight, "primary-foreground", "#ffffff"))

	report := NewEngine(Options{}).ValidateTheme(theme)

	assert.True(t, report.IsValid)
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "Light mode: Contrast of primary-foreground on primary")
	assert.True(t, containsMessage(report.AAAMisses, "Light mode: primary-foreground on primary"))
}

func TestValidateTheme_MissingColors(t *testing.T) {
	dark := models.DefaultDarkColors()
	delete(dark, "primary")
	theme, err := models.NewTheme(models.ThemeConfig{Name: "Harbor", DarkColors: dark})
	require.NoError(t, err)

	report := NewEngine(Options{}).ValidateTheme(theme)

	assert.False(t, report.IsValid)
	assert.Equal(t, []string{"dark.primary"}, report.MissingColors)
	assert.Contains(t, report.Errors, "Dark mode: Missing required color: primary")
	assert.True(t, containsMessage(report.Warnings, "Color primary is defined in light mode but not in dark mode"))
	assert.Equal(t, 90, report.Score)
}

func TestValidateTheme_DoesNotDuplicateMessages(t *testing.T) {
	theme, err := models.ThemeFromJSON([]byte(`{
		"name": "Dangling",
		"lightModeConfig": {"ring": "#000000"},
		"lightModeLinks": {"ring": "primary"}
	}`))
	require.NoError(t, err)

	report := NewEngine(Options{}).ValidateTheme(theme)

	count := 0
	for _, msg := range report.Errors {
		if msg == "Light mode: Color ring links to missing color primary" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestValidateTheme_WideGamutWarning(t *testing.T) {
	theme := newTheme(t)
	require.NoError(t, theme.UpdateColor("brand", "oklch(70% 0.45 30)", "oklch(60% 0.2 30)"))

	report := NewEngine(Options{}).ValidateTheme(theme)

	assert.True(t, report.IsValid)
	assert.True(t, containsMessage(report.Warnings, "Light mode: Color brand has chroma 0.45"))
	assert.False(t, containsMessage(report.Warnings, "Dark mode: Color brand"))
}

func TestValidateTheme_StoredTypographyAndBrand(t *testing.T) {
	base, err := newTheme(t).ToJSON()
	require.NoError(t, err)
	doc := strings.Replace(string(base), `"metadata"`, `"typography": {
		"fontFamily": "Inter",
		"monoFontFamily": "Fira Code",
		"fontWeight": {"bold": 650}
	},
	"brandConfig": {
		"primaryText": "Harbor",
		"secondaryText": "Marina club",
		"primaryTextColor": "#0a0a0a",
		"secondaryTextColor": "#525252",
		"iconBackgroundColor": "#171717",
		"iconColor": "#fafafa",
		"colorLinks": {"icon": "sidebar"},
		"monochromeMode": "none"
	},
	"metadata"`, 1)
	theme, err := models.ThemeFromJSON([]byte(doc))
	require.NoError(t, err)

	report := NewEngine(Options{}).ValidateTheme(theme)

	assert.False(t, report.IsValid)
	assert.True(t, containsMessage(report.Errors, "Typography: Font weight bold"))
	assert.True(t, containsMessage(report.Warnings, "Brand color icon links to missing theme color sidebar"))
}

func TestCheckContrast(t *testing.T) {
	engine := NewEngine(Options{})

	check, err := engine.CheckContrast("100% 0 0", "0% 0 0")
	require.NoError(t, err)
	assert.InDelta(t, 21.0, check.Ratio, 0.05)
	assert.True(t, check.PassesAA)
	assert.True(t, check.PassesAAA)

	check, err = engine.CheckContrast("#777777", "#ffffff")
	require.NoError(t, err)
	assert.False(t, check.PassesAA)

	lenient := NewEngine(Options{MinContrast: 3})
	check, err = lenient.CheckContrast("#777777", "#ffffff")
	require.NoError(t, err)
	assert.True(t, check.PassesAA)

	_, err = engine.CheckContrast("currentColor", "#ffffff")
	assert.Error(t, err)
}

func TestValidateColorLinks(t *testing.T) {
	theme := newTheme(t)
	require.NoError(t, theme.LinkColor("ring", "primary"))
	require.NoError(t, theme.LinkPaletteColor(models.ModeDark, "accent", "secondary"))

	report := NewEngine(Options{}).ValidateColorLinks(theme)

	assert.Empty(t, report.Errors)
	assert.Equal(t, []string{"Color accent is linked differently in light mode (unlinked) and dark mode (secondary)"}, report.Warnings)
}

func TestScore(t *testing.T) {
	full := 2 * len(models.RequiredColors)
	tests := []struct {
		name     string
		errors   int
		warnings int
		present  int
		want     int
	}{
		{name: "perfect", present: full, want: 100},
		{name: "one_error", errors: 1, present: full, want: 95},
		{name: "warnings_only", warnings: 3, present: full, want: 95},
		{name: "half_complete", errors: 2, present: full / 2, want: 75},
		{name: "floor", errors: 10, want: 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, score(test.errors, test.warnings, test.present))
		})
	}
}
