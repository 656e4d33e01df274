package layouts

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/a-h/templ"

	"github.com/codr1/themesmith/internal/models"
)

const darkSelector = `[data-theme="dark"]`

var breakpointWidths = map[string]string{
	"sm":  "640px",
	"md":  "768px",
	"lg":  "1024px",
	"xl":  "1280px",
	"2xl": "1536px",
}

// ThemeStylesheet renders the theme's custom properties inside a style tag.
func ThemeStylesheet(theme *models.Theme) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<style>\n"); err != nil {
			return err
		}
		if _, err := io.WriteString(w, ThemeCSS(theme)); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</style>")
		return err
	})
}

// ThemeCSS renders light colors, typography and brand colors under :root and
// dark colors under the dark selector. Values that could break out of a
// declaration are dropped.
func ThemeCSS(theme *models.Theme) string {
	if theme == nil {
		return ""
	}
	var b strings.Builder

	light := theme.Light()
	b.WriteString(":root {\n")
	writeColors(&b, light.Resolved())
	if typography := theme.Typography(); typography != nil {
		writeTypography(&b, typography)
	}
	if brand := theme.Brand(); brand != nil {
		writeBrand(&b, brand, light)
	}
	b.WriteString("}\n")

	dark := theme.Dark()
	b.WriteString("\n" + darkSelector + " {\n")
	writeColors(&b, dark.Resolved())
	if brand := theme.Brand(); brand != nil {
		writeBrand(&b, brand, dark)
	}
	b.WriteString("}\n")

	if typography := theme.Typography(); typography != nil {
		writeResponsive(&b, typography)
	}
	return b.String()
}

func writeColors(b *strings.Builder, colors map[string]string) {
	for _, name := range sortedNames(colors) {
		writeVar(b, name, colors[name])
	}
}

func writeTypography(b *strings.Builder, t *models.Typography) {
	writeVar(b, "font-sans", t.FontFamily)
	writeVar(b, "font-mono", t.MonoFontFamily)
	for _, scale := range models.FontSizeScales {
		if value, ok := t.FontSize[scale]; ok {
			writeVar(b, "text-"+scale, value)
		}
	}
	for _, scale := range models.FontWeightScales {
		if value, ok := t.FontWeight[scale]; ok {
			writeVar(b, "font-weight-"+scale, fmt.Sprintf("%d", value))
		}
	}
	for _, scale := range models.LineHeightScales {
		if value, ok := t.LineHeight[scale]; ok {
			writeVar(b, "leading-"+scale, value)
		}
	}
	for _, scale := range models.LetterSpacingScales {
		if value, ok := t.LetterSpacing[scale]; ok {
			writeVar(b, "tracking-"+scale, value)
		}
	}
}

func writeBrand(b *strings.Builder, brand *models.Brand, palette *models.ColorPalette) {
	for _, property := range models.BrandColors {
		writeVar(b, "brand-"+kebab(string(property)), brand.ResolveColor(property, palette))
	}
}

func writeResponsive(b *strings.Builder, t *models.Typography) {
	for _, breakpoint := range models.Breakpoints {
		override, ok := t.Responsive[breakpoint]
		if !ok || (len(override.FontSize) == 0 && len(override.LineHeight) == 0) {
			continue
		}
		fmt.Fprintf(b, "\n@media (min-width: %s) {\n  :root {\n", breakpointWidths[breakpoint])
		for _, scale := range models.FontSizeScales {
			if value, ok := override.FontSize[scale]; ok && cssSafe(value) {
				fmt.Fprintf(b, "    --text-%s: %s;\n", scale, value)
			}
		}
		for _, scale := range models.LineHeightScales {
			if value, ok := override.LineHeight[scale]; ok && cssSafe(value) {
				fmt.Fprintf(b, "    --leading-%s: %s;\n", scale, value)
			}
		}
		b.WriteString("  }\n}\n")
	}
}

func writeVar(b *strings.Builder, name, value string) {
	value = strings.TrimSpace(value)
	if value == "" || !cssSafe(value) || !cssSafe(name) {
		return
	}
	fmt.Fprintf(b, "  --%s: %s;\n", name, value)
}

func cssSafe(value string) bool {
	return !strings.ContainsAny(value, ";{}<>\\\n")
}

// kebab turns iconBackground into icon-background.
func kebab(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

func sortedNames(m map[string]string) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
