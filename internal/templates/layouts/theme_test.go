package layouts

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/codr1/themesmith/internal/models"
)

func newCSSTheme(t *testing.T) *models.Theme {
	t.Helper()
	theme, err := models.NewTheme(models.ThemeConfig{Name: "Export"})
	if err != nil {
		t.Fatalf("NewTheme() error = %v", err)
	}
	return theme
}

func TestThemeCSSSections(t *testing.T) {
	theme := newCSSTheme(t)
	if err := theme.UpdateColor("primary", "#112233", "#ddeeff"); err != nil {
		t.Fatalf("UpdateColor() error = %v", err)
	}
	if err := theme.LinkColor("ring", "primary"); err != nil {
		t.Fatalf("LinkColor() error = %v", err)
	}

	css := ThemeCSS(theme)
	root, dark, found := strings.Cut(css, `[data-theme="dark"] {`)
	if !found {
		t.Fatalf("missing dark selector:\n%s", css)
	}
	if !strings.HasPrefix(root, ":root {\n") {
		t.Fatalf("css does not start with :root:\n%s", css)
	}
	for _, want := range []string{"  --primary: #112233;\n", "  --ring: #112233;\n"} {
		if !strings.Contains(root, want) {
			t.Fatalf("light section missing %q:\n%s", want, root)
		}
	}
	for _, want := range []string{"  --primary: #ddeeff;\n", "  --ring: #ddeeff;\n"} {
		if !strings.Contains(dark, want) {
			t.Fatalf("dark section missing %q:\n%s", want, dark)
		}
	}
}

func TestThemeCSSTypographyAndBrand(t *testing.T) {
	theme := newCSSTheme(t)
	typography := models.DefaultTypography()
	if err := typography.SetResponsiveFontSize("md", "base", "1.125rem"); err != nil {
		t.Fatalf("SetResponsiveFontSize() error = %v", err)
	}
	if err := theme.UpdateTypography(typography); err != nil {
		t.Fatalf("UpdateTypography() error = %v", err)
	}
	brand, err := models.NewBrand("Acme", "Design")
	if err != nil {
		t.Fatalf("NewBrand() error = %v", err)
	}
	if err := theme.UpdateBrand(brand); err != nil {
		t.Fatalf("UpdateBrand() error = %v", err)
	}
	primary, _ := theme.Light().Color("primary")

	css := ThemeCSS(theme)
	for _, want := range []string{
		"--font-sans: Inter, system-ui, sans-serif;",
		"--text-base: 1rem;",
		"--font-weight-bold: 700;",
		"--leading-normal: 1.5;",
		"--tracking-wide: 0.025em;",
		"--brand-icon-background: " + primary + ";",
		"@media (min-width: 768px) {",
		"--text-base: 1.125rem;",
	} {
		if !strings.Contains(css, want) {
			t.Fatalf("css missing %q:\n%s", want, css)
		}
	}
}

func TestWriteVarDropsUnsafeValues(t *testing.T) {
	var b strings.Builder
	writeVar(&b, "primary", "red; } body { color: red")
	writeVar(&b, "accent", "   ")
	writeVar(&b, "ok", " #fff ")
	if got := b.String(); got != "  --ok: #fff;\n" {
		t.Fatalf("writeVar output = %q", got)
	}
}

func TestThemeStylesheetComponent(t *testing.T) {
	var buf bytes.Buffer
	if err := ThemeStylesheet(newCSSTheme(t)).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "<style>\n:root {") || !strings.HasSuffix(out, "}\n</style>") {
		t.Fatalf("unexpected stylesheet: %s", out)
	}
}

func TestKebab(t *testing.T) {
	tests := map[string]string{"icon": "icon", "iconBackground": "icon-background", "primaryText": "primary-text"}
	for in, want := range tests {
		if got := kebab(in); got != want {
			t.Fatalf("kebab(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestThemeCSSNil(t *testing.T) {
	if got := ThemeCSS(nil); got != "" {
		t.Fatalf("ThemeCSS(nil) = %q", got)
	}
}

func TestBaseRendersStylesheetAndIndex(t *testing.T) {
	theme := newCSSTheme(t)
	body := ThemeIndex([]ThemeLink{
		{ID: "a1", Name: "Ocean <Blue>", Valid: true, Score: 96},
		{ID: "b2", Name: "Draft", Score: 40},
	})

	var buf bytes.Buffer
	if err := Base("Themes", theme, body).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	html := buf.String()
	for _, want := range []string{
		"<title>Themes</title>",
		"<style>\n:root {",
		`<li data-theme-id="a1">Ocean &lt;Blue&gt; <span class="valid">96</span>`,
		`href="/api/v1/themes/b2/css"`,
		`<span class="invalid">40</span>`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("page missing %q:\n%s", want, html)
		}
	}

	buf.Reset()
	if err := Base("Empty", nil, ThemeIndex(nil)).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if strings.Contains(buf.String(), "<style>") || !strings.Contains(buf.String(), "No themes stored.") {
		t.Fatalf("unexpected empty page:\n%s", buf.String())
	}
}
