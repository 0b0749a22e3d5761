// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/ocms-translate/internal/middleware"
)

// RouterOptions configures NewRouter.
type RouterOptions struct {
	API       *APIHandler
	Health    *HealthHandler
	Languages middleware.LanguageSource
	Logger    *slog.Logger

	RequestTimeout time.Duration
	RateLimit      float64 // requests per second per client on /api/v1, 0 disables
	RateBurst      int
	RequestLog     bool
}

// NewRouter builds the HTTP routes of the service.
func NewRouter(opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	if opts.RequestLog {
		r.Use(chimw.Logger)
	}
	r.Use(chimw.Recoverer)
	r.Use(chimw.GetHead)
	if opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(opts.RequestTimeout))
	}

	// Health check routes
	r.Get("/health", opts.Health.Health)
	r.Get("/health/live", opts.Health.Liveness)
	r.Get("/health/ready", opts.Health.Readiness)

	var limiter *middleware.RateLimiter
	if opts.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(opts.RateLimit, opts.RateBurst)
	}
	languageMW := middleware.Language(opts.Languages, opts.Logger)

	r.Group(func(r chi.Router) {
		r.Use(languageMW)
		if limiter != nil {
			r.Use(limiter.Middleware())
		}

		registerAPIRoutes(r, opts.API)

		// Language-prefixed routes (e.g., /fr/api/v1/resolve). The {lang}
		// parameter only exists inside this route, so detection runs again.
		r.Route("/{lang:[a-z]{2}}", func(r chi.Router) {
			r.Use(languageMW)
			registerAPIRoutes(r, opts.API)
		})
	})

	return r
}

func registerAPIRoutes(r chi.Router, h *APIHandler) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/languages", h.ListLanguages)
		r.Get("/languages/{code}/url", h.LanguageURL)
		r.Post("/resolve", h.Resolve)
		r.Post("/labels/resolve", h.ResolveLabel)
		r.Post("/menus/resolve", h.ResolveMenu)
		r.Post("/content/{id}/saved", h.ContentSaved)
	})
}
