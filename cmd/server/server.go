// cmd/server/server.go
package main

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/themesmith/internal/api"
	"github.com/codr1/themesmith/internal/api/colors"
	"github.com/codr1/themesmith/internal/api/themes"
	"github.com/codr1/themesmith/internal/config"
	"github.com/codr1/themesmith/internal/library"
	"github.com/codr1/themesmith/internal/metrics"
	"github.com/codr1/themesmith/internal/ratelimit"
	"github.com/codr1/themesmith/internal/templates/layouts"
	"github.com/codr1/themesmith/internal/validation"
)

type serverDeps struct {
	library   *library.Library
	engine    *validation.Engine
	metrics   *metrics.Metrics
	limiter   *ratelimit.Limiter
	defaultID string
}

func newServer(cfg *config.Config, deps serverDeps) *http.Server {
	router := http.NewServeMux()

	// Setup middleware chain
	chain := []api.Middleware{}
	if deps.limiter != nil {
		chain = append(chain, deps.limiter.Middleware)
	}
	chain = append(chain,
		api.WithMetrics(deps.metrics),
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
	)
	handler := api.ChainMiddleware(router, chain...)

	// Register routes
	registerRoutes(router, deps)

	return &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux, deps serverDeps) {
	themes.InitHandlers(deps.library, deps.engine)
	colors.InitHandlers(deps.engine)

	// Theme index styled by the default preset
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		handleIndex(w, r, deps)
	})

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	if deps.metrics != nil {
		mux.Handle("GET /metrics", deps.metrics.Handler())
	}

	themes.RegisterRoutes(mux)
	colors.RegisterRoutes(mux)
}

func handleIndex(w http.ResponseWriter, r *http.Request, deps serverDeps) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	stored, err := deps.library.List(ctx)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to list themes")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	links := make([]layouts.ThemeLink, 0, len(stored))
	for _, meta := range stored {
		links = append(links, layouts.ThemeLink{ID: meta.ID, Name: meta.Name, Valid: meta.Valid, Score: meta.Score})
	}

	// The default preset may have been deleted; render unstyled then.
	theme, err := deps.library.Load(ctx, deps.defaultID)
	if err != nil {
		log.Ctx(r.Context()).Debug().Err(err).Str("theme_id", deps.defaultID).Msg("Default theme unavailable")
		theme = nil
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := layouts.Base("Themes", theme, layouts.ThemeIndex(links)).Render(r.Context(), w); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to render index")
	}
}
