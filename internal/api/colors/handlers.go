// internal/api/colors/handlers.go
package colors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/codr1/themesmith/internal/api/apiutil"
	"github.com/codr1/themesmith/internal/colors"
	"github.com/codr1/themesmith/internal/validation"
)

var engine = validation.NewEngine(validation.Options{})

// InitHandlers swaps in the engine used for contrast checks.
func InitHandlers(e *validation.Engine) {
	if e != nil {
		engine = e
	}
}

func RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/colors/validate", HandleValidate)
	mux.HandleFunc("GET /api/v1/colors/convert", HandleConvert)
	mux.HandleFunc("GET /api/v1/colors/contrast", HandleContrast)
}

// GET /api/v1/colors/validate?value=
func HandleValidate(w http.ResponseWriter, r *http.Request) {
	value, err := apiutil.RequiredField(r.URL.Query().Get("value"), "value")
	if err != nil {
		apiutil.WriteError(w, r, apiutil.BadRequest(err))
		return
	}
	writeJSON(w, r, colors.Validate(value))
}

// GET /api/v1/colors/convert?value=&to=
func HandleConvert(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	value, err := apiutil.RequiredField(query.Get("value"), "value")
	if err != nil {
		apiutil.WriteError(w, r, apiutil.BadRequest(err))
		return
	}
	to, err := apiutil.RequiredField(query.Get("to"), "to")
	if err != nil {
		apiutil.WriteError(w, r, apiutil.BadRequest(err))
		return
	}

	converted, err := colors.Convert(value, colors.Format(strings.ToLower(to)))
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, colors.ErrUnsupportedTarget) {
			status = http.StatusUnprocessableEntity
		}
		apiutil.WriteError(w, r, apiutil.HandlerError{Status: status, Message: err.Error(), Err: err})
		return
	}
	writeJSON(w, r, map[string]string{"value": value, "format": strings.ToLower(to), "converted": converted})
}

// GET /api/v1/colors/contrast?fg=&bg=
// Without fg the response suggests black or white text for bg.
func HandleContrast(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	bg, err := apiutil.RequiredField(query.Get("bg"), "bg")
	if err != nil {
		apiutil.WriteError(w, r, apiutil.BadRequest(err))
		return
	}
	fg := strings.TrimSpace(query.Get("fg"))
	if fg == "" {
		suggested, _, err := colors.SuggestForeground(bg)
		if err != nil {
			apiutil.WriteError(w, r, apiutil.BadRequest(err))
			return
		}
		fg = suggested
	}

	check, err := engine.CheckContrast(fg, bg)
	if err != nil {
		apiutil.WriteError(w, r, apiutil.BadRequest(err))
		return
	}
	writeJSON(w, r, check)
}

func writeJSON(w http.ResponseWriter, r *http.Request, payload any) {
	if err := apiutil.WriteJSON(w, http.StatusOK, payload); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("Failed to write response")
	}
}
