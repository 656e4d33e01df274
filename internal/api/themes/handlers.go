// internal/api/themes/handlers.go
package themes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/themesmith/internal/api/apiutil"
	"github.com/codr1/themesmith/internal/diff"
	"github.com/codr1/themesmith/internal/library"
	"github.com/codr1/themesmith/internal/models"
	"github.com/codr1/themesmith/internal/validation"
)

const (
	themeQueryTimeout = 5 * time.Second
	themeIDParam      = "id"
	colorNameParam    = "name"
	otherIDParam      = "other"
)

var (
	store       themeLibrary
	engine      *validation.Engine
	handlerOnce sync.Once
)

type themeLibrary interface {
	Save(ctx context.Context, theme *models.Theme) (library.Metadata, error)
	Load(ctx context.Context, id string) (*models.Theme, error)
	List(ctx context.Context) ([]library.Metadata, error)
	Delete(ctx context.Context, id string) error
	Update(ctx context.Context, id string, fn func(*models.Theme) error) (*models.Theme, error)
	ImportTheme(ctx context.Context, content string) (*models.Theme, library.Metadata, error)
	ExportTheme(ctx context.Context, id string) ([]byte, error)
	ExportCSS(ctx context.Context, id string) (string, error)
}

type createRequest struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Version     string             `json:"version"`
	LightColors map[string]string  `json:"lightModeConfig"`
	DarkColors  map[string]string  `json:"darkModeConfig"`
	Typography  *models.Typography `json:"typography"`
	Brand       *models.Brand      `json:"brandConfig"`
}

type renameRequest struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type colorRequest struct {
	Name  string `json:"name"`
	Light string `json:"light"`
	Dark  string `json:"dark"`
	// Mode with Value updates a single palette.
	Mode  string `json:"mode"`
	Value string `json:"value"`
}

type linkRequest struct {
	Target string `json:"target"`
	Mode   string `json:"mode"`
}

type cloneRequest struct {
	Name string `json:"name"`
}

type mergeRequest struct {
	OverlayID string `json:"overlayId"`
	Name      string `json:"name"`
}

type syncRequest struct {
	From string `json:"from"`
}

type colorEntry struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	LinkedTo string `json:"linkedTo,omitempty"`
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(lib *library.Library, e *validation.Engine) {
	if lib == nil {
		return
	}
	handlerOnce.Do(func() {
		store = lib
		engine = e
		if engine == nil {
			engine = validation.NewEngine(validation.Options{})
		}
	})
}

// RegisterRoutes mounts the theme API on mux.
func RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/themes", HandleThemesList)
	mux.HandleFunc("POST /api/v1/themes", HandleThemeCreate)
	mux.HandleFunc("POST /api/v1/themes/import", HandleThemeImport)
	mux.HandleFunc("GET /api/v1/themes/{id}", HandleThemeDetail)
	mux.HandleFunc("PUT /api/v1/themes/{id}", HandleThemeUpdate)
	mux.HandleFunc("DELETE /api/v1/themes/{id}", HandleThemeDelete)
	mux.HandleFunc("POST /api/v1/themes/{id}/clone", HandleThemeClone)
	mux.HandleFunc("GET /api/v1/themes/{id}/colors", HandleColorSearch)
	mux.HandleFunc("POST /api/v1/themes/{id}/colors", HandleColorAdd)
	mux.HandleFunc("PUT /api/v1/themes/{id}/colors/{name}", HandleColorUpdate)
	mux.HandleFunc("DELETE /api/v1/themes/{id}/colors/{name}", HandleColorRemove)
	mux.HandleFunc("PUT /api/v1/themes/{id}/links/{name}", HandleLinkSet)
	mux.HandleFunc("DELETE /api/v1/themes/{id}/links/{name}", HandleLinkRemove)
	mux.HandleFunc("PUT /api/v1/themes/{id}/typography", HandleTypographyUpdate)
	mux.HandleFunc("PUT /api/v1/themes/{id}/brand", HandleBrandUpdate)
	mux.HandleFunc("POST /api/v1/themes/{id}/sync", HandleThemeSync)
	mux.HandleFunc("GET /api/v1/themes/{id}/validation", HandleThemeValidate)
	mux.HandleFunc("GET /api/v1/themes/{id}/diff/{other}", HandleThemeDiff)
	mux.HandleFunc("POST /api/v1/themes/{id}/diff", HandleThemeApplyDiff)
	mux.HandleFunc("POST /api/v1/themes/{id}/merge", HandleThemeMerge)
	mux.HandleFunc("GET /api/v1/themes/{id}/export", HandleThemeExport)
	mux.HandleFunc("GET /api/v1/themes/{id}/css", HandleThemeCSS)
}

// GET /api/v1/themes
func HandleThemesList(w http.ResponseWriter, r *http.Request) {
	lib, ok := loadLibrary(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), themeQueryTimeout)
	defer cancel()

	themes, err := lib.List(ctx)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"themes": themes})
}

// POST /api/v1/themes
func HandleThemeCreate(w http.ResponseWriter, r *http.Request) {
	lib, ok := loadLibrary(w, r)
	if !ok {
		return
	}
	var req createRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, apiutil.BadRequest(err))
		return
	}

	theme, err := models.NewTheme(models.ThemeConfig{
		ID:          req.ID,
		Name:        req.Name,
		Version:     req.Version,
		LightColors: req.LightColors,
		DarkColors:  req.DarkColors,
		Typography:  req.Typography,
		Brand:       req.Brand,
	})
	if err != nil {
		apiutil.WriteError(w, r, domainError(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), themeQueryTimeout)
	defer cancel()

	if strings.TrimSpace(req.ID) != "" {
		if _, err := lib.Load(ctx, theme.ID()); err == nil {
			apiutil.WriteError(w, r, apiutil.HandlerError{Status: http.StatusConflict, Message: "Theme id already exists"})
			return
		}
	}
	if _, err := lib.Save(ctx, theme); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	log.Ctx(r.Context()).Info().Str("theme_id", theme.ID()).Str("theme_name", theme.Name()).Msg("Theme created")
	writeJSON(w, r, http.StatusCreated, theme)
}

// POST /api/v1/themes/import
func HandleThemeImport(w http.ResponseWriter, r *http.Request) {
	lib, ok := loadLibrary(w, r)
	if !ok {
		return
	}
	body, err := apiutil.ReadBody(r)
	if err != nil {
		apiutil.WriteError(w, r, apiutil.BadRequest(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), themeQueryTimeout)
	defer cancel()

	theme, _, err := lib.ImportTheme(ctx, string(body))
	if err != nil {
		apiutil.WriteError(w, r, domainError(err))
		return
	}
	writeJSON(w, r, http.StatusCreated, theme)
}

// GET /api/v1/themes/{id}
func HandleThemeDetail(w http.ResponseWriter, r *http.Request) {
	theme, ok := loadTheme(w, r, themeIDParam)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, theme)
}

// PUT /api/v1/themes/{id}
func HandleThemeUpdate(w http.ResponseWriter, r *http.Request) {
	var req renameRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, apiutil.BadRequest(err))
		return
	}
	updateTheme(w, r, func(theme *models.Theme) error {
		if strings.TrimSpace(req.Name) == "" && strings.TrimSpace(req.Version) == "" {
			return apiutil.FieldError{Field: "name", Reason: "or version is required"}
		}
		if strings.TrimSpace(req.Name) != "" {
			if err := theme.SetName(req.Name); err != nil {
				return err
			}
		}
		if strings.TrimSpace(req.Version) != "" {
			return theme.SetVersion(req.Version)
		}
		return nil
	})
}

// DELETE /api/v1/themes/{id}
func HandleThemeDelete(w http.ResponseWriter, r *http.Request) {
	lib, ok := loadLibrary(w, r)
	if !ok {
		return
	}
	id, err := apiutil.PathParam(r, themeIDParam)
	if err != nil {
		apiutil.WriteError(w, r, apiutil.BadRequest(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), themeQueryTimeout)
	defer cancel()

	if err := lib.Delete(ctx, id); err != nil {
		apiutil.WriteError(w, r, domainError(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/v1/themes/{id}/clone
func HandleThemeClone(w http.ResponseWriter, r *http.Request) {
	lib, ok := loadLibrary(w, r)
	if !ok {
		return
	}
	var req cloneRequest
	if r.ContentLength != 0 {
		if err := apiutil.DecodeJSON(r, &req); err != nil {
			apiutil.WriteError(w, r, apiutil.BadRequest(err))
			return
		}
	}
	source, ok := loadTheme(w, r, themeIDParam)
	if !ok {
		return
	}

	clone := source.Clone()
	if strings.TrimSpace(req.Name) != "" {
		if err := clone.SetName(req.Name); err != nil {
			apiutil.WriteError(w, r, domainError(err))
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), themeQueryTimeout)
	defer cancel()

	if _, err := lib.Save(ctx, clone); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	log.Ctx(r.Context()).Info().Str("theme_id", clone.ID()).Str("source_id", source.ID()).Msg("Theme cloned")
	writeJSON(w, r, http.StatusCreated, clone)
}

// GET /api/v1/themes/{id}/colors?q=&mode=
func HandleColorSearch(w http.ResponseWriter, r *http.Request) {
	theme, ok := loadTheme(w, r, themeIDParam)
	if !ok {
		return
	}
	mode := models.ModeLight
	if raw := r.URL.Query().Get("mode"); raw != "" {
		parsed, err := models.ParseMode(raw)
		if err != nil {
			apiutil.WriteError(w, r, domainError(err))
			return
		}
		mode = parsed
	}

	palette := theme.Palette(mode)
	names := palette.Search(r.URL.Query().Get("q"))
	entries := make([]colorEntry, 0, len(names))
	for _, name := range names {
		value, _ := palette.Color(name)
		target, _ := palette.LinkTarget(name)
		entries = append(entries, colorEntry{Name: name, Value: value, LinkedTo: target})
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"mode": mode, "colors": entries})
}

// POST /api/v1/themes/{id}/colors
func HandleColorAdd(w http.ResponseWriter, r *http.Request) {
	var req colorRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, apiutil.BadRequest(err))
		return
	}
	updateThemeStatus(w, r, http.StatusCreated, func(theme *models.Theme) error {
		return theme.AddColor(req.Name, req.Light, req.Dark)
	})
}

// PUT /api/v1/themes/{id}/colors/{name}
func HandleColorUpdate(w http.ResponseWriter, r *http.Request) {
	name, err := apiutil.PathParam(r, colorNameParam)
	if err != nil {
		apiutil.WriteError(w, r, apiutil.BadRequest(err))
		return
	}
	var req colorRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, apiutil.BadRequest(err))
		return
	}
	updateTheme(w, r, func(theme *models.Theme) error {
		if req.Mode == "" {
			return theme.UpdateColor(name, req.Light, req.Dark)
		}
		mode, err := models.ParseMode(req.Mode)
		if err != nil {
			return err
		}
		return theme.UpdatePaletteColor(mode, name, req.Value)
	})
}

// DELETE /api/v1/themes/{id}/colors/{name}?mode=
func HandleColorRemove(w http.ResponseWriter, r *http.Request) {
	name, err := apiutil.PathParam(r, colorNameParam)
	if err != nil {
		apiutil.WriteError(w, r, apiutil.BadRequest(err))
		return
	}
	rawMode := r.URL.Query().Get("mode")
	updateTheme(w, r, func(theme *models.Theme) error {
		if rawMode == "" {
			return theme.RemoveColor(name)
		}
		mode, err := models.ParseMode(rawMode)
		if err != nil {
			return err
		}
		return theme.RemovePaletteColor(mode, name)
	})
}

// PUT /api/v1/themes/{id}/links/{name}
func HandleLinkSet(w http.ResponseWriter, r *http.Request) {
	name, err := apiutil.PathParam(r, colorNameParam)
	if err != nil {
		apiutil.WriteError(w, r, apiutil.BadRequest(err))
		return
	}
	var req linkRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, apiutil.BadRequest(err))
		return
	}
	updateTheme(w, r, func(theme *models.Theme) error {
		if req.Mode == "" {
			return theme.LinkColor(name, req.Target)
		}
		mode, err := models.ParseMode(req.Mode)
		if err != nil {
			return err
		}
		return theme.LinkPaletteColor(mode, name, req.Target)
	})
}

// DELETE /api/v1/themes/{id}/links/{name}?mode=
func HandleLinkRemove(w http.ResponseWriter, r *http.Request) {
	name, err := apiutil.PathParam(r, colorNameParam)
	if err != nil {
		apiutil.WriteError(w, r, apiutil.BadRequest(err))
		return
	}
	rawMode := r.URL.Query().Get("mode")
	updateTheme(w, r, func(theme *models.Theme) error {
		if rawMode == "" {
			theme.UnlinkColor(name)
			return nil
		}
		mode, err := models.ParseMode(rawMode)
		if err != nil {
			return err
		}
		theme.UnlinkPaletteColor(mode, name)
		return nil
	})
}

// PUT /api/v1/themes/{id}/typography; a null body clears typography.
func HandleTypographyUpdate(w http.ResponseWriter, r *http.Request) {
	var typography *models.Typography
	if err := apiutil.DecodeJSON(r, &typography); err != nil {
		apiutil.WriteError(w, r, apiutil.BadRequest(err))
		return
	}
	updateTheme(w, r, func(theme *models.Theme) error {
		return theme.UpdateTypography(typography)
	})
}

// PUT /api/v1/themes/{id}/brand; a null body clears the brand.
func HandleBrandUpdate(w http.ResponseWriter, r *http.Request) {
	var brand *models.Brand
	if err := apiutil.DecodeJSON(r, &brand); err != nil {
		apiutil.WriteError(w, r, apiutil.BadRequest(err))
		return
	}
	updateTheme(w, r, func(theme *models.Theme) error {
		return theme.UpdateBrand(brand)
	})
}

// POST /api/v1/themes/{id}/sync
func HandleThemeSync(w http.ResponseWriter, r *http.Request) {
	lib, ok := loadLibrary(w, r)
	if !ok {
		return
	}
	id, err := apiutil.PathParam(r, themeIDParam)
	if err != nil {
		apiutil.WriteError(w, r, apiutil.BadRequest(err))
		return
	}
	var req syncRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, apiutil.BadRequest(err))
		return
	}
	from, err := models.ParseMode(req.From)
	if err != nil {
		apiutil.WriteError(w, r, domainError(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), themeQueryTimeout)
	defer cancel()

	var copied []string
	theme, err := lib.Update(ctx, id, func(theme *models.Theme) error {
		var syncErr error
		copied, syncErr = diff.SyncPalettes(theme, from)
		return syncErr
	})
	if err != nil {
		apiutil.WriteError(w, r, domainError(err))
		return
	}
	if copied == nil {
		copied = []string{}
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"copied": copied, "theme": theme})
}

// GET /api/v1/themes/{id}/validation
func HandleThemeValidate(w http.ResponseWriter, r *http.Request) {
	theme, ok := loadTheme(w, r, themeIDParam)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"report": engine.ValidateTheme(theme),
		"links":  engine.ValidateColorLinks(theme),
	})
}

// GET /api/v1/themes/{id}/diff/{other}
func HandleThemeDiff(w http.ResponseWriter, r *http.Request) {
	base, ok := loadTheme(w, r, themeIDParam)
	if !ok {
		return
	}
	other, ok := loadTheme(w, r, otherIDParam)
	if !ok {
		return
	}
	d := diff.CreateThemeDiff(base, other)
	writeJSON(w, r, http.StatusOK, map[string]any{
		"changes": d.Changes,
		"risk":    diff.AssessRisk(d),
	})
}

// POST /api/v1/themes/{id}/diff replays a diff onto the stored theme. The
// theme is saved even when some changes fail; they are reported back.
func HandleThemeApplyDiff(w http.ResponseWriter, r *http.Request) {
	var d diff.Diff
	if err := apiutil.DecodeJSON(r, &d); err != nil {
		apiutil.WriteError(w, r, apiutil.BadRequest(err))
		return
	}
	lib, ok := loadLibrary(w, r)
	if !ok {
		return
	}
	id, err := apiutil.PathParam(r, themeIDParam)
	if err != nil {
		apiutil.WriteError(w, r, apiutil.BadRequest(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), themeQueryTimeout)
	defer cancel()

	var result diff.ApplyResult
	theme, err := lib.Update(ctx, id, func(theme *models.Theme) error {
		result = diff.ApplyThemeDiff(theme, d)
		return nil
	})
	if err != nil {
		apiutil.WriteError(w, r, domainError(err))
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"result": result, "theme": theme})
}

// POST /api/v1/themes/{id}/merge
func HandleThemeMerge(w http.ResponseWriter, r *http.Request) {
	lib, ok := loadLibrary(w, r)
	if !ok {
		return
	}
	var req mergeRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, apiutil.BadRequest(err))
		return
	}
	if strings.TrimSpace(req.OverlayID) == "" {
		apiutil.WriteError(w, r, apiutil.BadRequest(apiutil.FieldError{Field: "overlayId", Reason: "is required"}))
		return
	}
	base, ok := loadTheme(w, r, themeIDParam)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), themeQueryTimeout)
	defer cancel()

	overlay, err := lib.Load(ctx, req.OverlayID)
	if err != nil {
		apiutil.WriteError(w, r, domainError(err))
		return
	}
	merged, err := diff.MergeThemes(base, overlay)
	if err != nil {
		apiutil.WriteError(w, r, domainError(err))
		return
	}
	if strings.TrimSpace(req.Name) != "" {
		if err := merged.Theme.SetName(req.Name); err != nil {
			apiutil.WriteError(w, r, domainError(err))
			return
		}
	}
	if _, err := lib.Save(ctx, merged.Theme); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, merged)
}

// GET /api/v1/themes/{id}/export
func HandleThemeExport(w http.ResponseWriter, r *http.Request) {
	lib, ok := loadLibrary(w, r)
	if !ok {
		return
	}
	id, err := apiutil.PathParam(r, themeIDParam)
	if err != nil {
		apiutil.WriteError(w, r, apiutil.BadRequest(err))
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), themeQueryTimeout)
	defer cancel()

	doc, err := lib.ExportTheme(ctx, id)
	if err != nil {
		apiutil.WriteError(w, r, domainError(err))
		return
	}
	etag := `"` + library.Checksum(doc)[:32] + `"`
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="theme-%s.json"`, safeFilename(id)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Str("theme_id", id).Msg("Failed to write theme export")
	}
}

// GET /api/v1/themes/{id}/css
func HandleThemeCSS(w http.ResponseWriter, r *http.Request) {
	lib, ok := loadLibrary(w, r)
	if !ok {
		return
	}
	id, err := apiutil.PathParam(r, themeIDParam)
	if err != nil {
		apiutil.WriteError(w, r, apiutil.BadRequest(err))
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), themeQueryTimeout)
	defer cancel()

	css, err := lib.ExportCSS(ctx, id)
	if err != nil {
		apiutil.WriteError(w, r, domainError(err))
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(css)); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Str("theme_id", id).Msg("Failed to write theme css")
	}
}

func updateTheme(w http.ResponseWriter, r *http.Request, fn func(*models.Theme) error) {
	updateThemeStatus(w, r, http.StatusOK, fn)
}

func updateThemeStatus(w http.ResponseWriter, r *http.Request, status int, fn func(*models.Theme) error) {
	lib, ok := loadLibrary(w, r)
	if !ok {
		return
	}
	id, err := apiutil.PathParam(r, themeIDParam)
	if err != nil {
		apiutil.WriteError(w, r, apiutil.BadRequest(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), themeQueryTimeout)
	defer cancel()

	theme, err := lib.Update(ctx, id, fn)
	if err != nil {
		apiutil.WriteError(w, r, domainError(err))
		return
	}
	writeJSON(w, r, status, theme)
}

func loadTheme(w http.ResponseWriter, r *http.Request, param string) (*models.Theme, bool) {
	lib, ok := loadLibrary(w, r)
	if !ok {
		return nil, false
	}
	id, err := apiutil.PathParam(r, param)
	if err != nil {
		apiutil.WriteError(w, r, apiutil.BadRequest(err))
		return nil, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), themeQueryTimeout)
	defer cancel()

	theme, err := lib.Load(ctx, id)
	if err != nil {
		apiutil.WriteError(w, r, domainError(err))
		return nil, false
	}
	return theme, true
}

func loadLibrary(w http.ResponseWriter, r *http.Request) (themeLibrary, bool) {
	if store == nil {
		log.Ctx(r.Context()).Error().Msg("Theme library not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}
	return store, true
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	if err := apiutil.WriteJSON(w, status, payload); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("Failed to write response")
	}
}

// domainError maps library and model errors onto HTTP statuses.
func domainError(err error) error {
	var fieldErr apiutil.FieldError
	switch {
	case errors.Is(err, library.ErrThemeNotFound):
		return apiutil.HandlerError{Status: http.StatusNotFound, Message: "Theme not found", Err: err}
	case errors.Is(err, models.ErrUnknownColor):
		return apiutil.HandlerError{Status: http.StatusNotFound, Message: err.Error(), Err: err}
	case errors.Is(err, models.ErrDuplicateColor),
		errors.Is(err, models.ErrCircularLink),
		errors.Is(err, models.ErrProtectedColor):
		return apiutil.HandlerError{Status: http.StatusConflict, Message: err.Error(), Err: err}
	case errors.Is(err, models.ErrEmptyValue),
		errors.Is(err, models.ErrInvalidFormat),
		errors.Is(err, models.ErrSelfLink),
		errors.Is(err, models.ErrMissingPalettes),
		errors.Is(err, library.ErrEmptyImport),
		errors.Is(err, library.ErrInvalidDocument),
		errors.As(err, &fieldErr):
		return apiutil.HandlerError{Status: http.StatusBadRequest, Message: err.Error(), Err: err}
	}
	return err
}

func safeFilename(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, id)
}
