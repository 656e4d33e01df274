package layouts

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/codr1/themesmith/internal/models"
)

// ThemeLink is one row of the theme index.
type ThemeLink struct {
	ID    string
	Name  string
	Valid bool
	Score int
}

// Base renders a full document styled by theme. A nil theme renders without
// custom properties.
func Base(title string, theme *models.Theme, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n", templ.EscapeString(title)); err != nil {
			return err
		}
		if theme != nil {
			if err := ThemeStylesheet(theme).Render(ctx, w); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n</head>\n<body>\n"); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "\n</body>\n</html>\n")
		return err
	})
}

// ThemeIndex lists stored themes with links to their stylesheet and export.
func ThemeIndex(themes []ThemeLink) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(themes) == 0 {
			_, err := io.WriteString(w, "<p>No themes stored.</p>")
			return err
		}
		if _, err := io.WriteString(w, "<ul class=\"theme-index\">\n"); err != nil {
			return err
		}
		for _, theme := range themes {
			status := "invalid"
			if theme.Valid {
				status = "valid"
			}
			id := templ.EscapeString(theme.ID)
			if _, err := fmt.Fprintf(w,
				"<li data-theme-id=\"%s\">%s <span class=\"%s\">%d</span> <a href=\"/api/v1/themes/%s/css\">css</a> <a href=\"/api/v1/themes/%s/export\">json</a></li>\n",
				id, templ.EscapeString(theme.Name), status, theme.Score, id, id); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</ul>")
		return err
	})
}
