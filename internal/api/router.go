// Lumiere - Self-Hosted Media Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/lumiere/internal/config"
	"github.com/tomtom215/lumiere/internal/middleware"
)

// NewRouter assembles the full route tree.
//
// Route groups:
//   - /api/v1/health/*  health probes, no rate limiting
//   - /metrics          Prometheus scrape endpoint
//   - /media/*          byte streaming, media-tier rate limit
//   - /api/v1/*         JSON API, standard rate limit
func NewRouter(cfg *config.Config, h *Handlers) *chi.Mux {
	m := NewMiddleware(cfg.Security)

	r := chi.NewRouter()

	// ============================================================
	// Global middleware
	// ============================================================
	r.Use(chimiddleware.RealIP)
	r.Use(RequestIDWithLogging())
	r.Use(SecurityHeaders())
	r.Use(m.CORS())
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(10 * time.Minute)) // long enough for big media pulls

	// ============================================================
	// Operational endpoints
	// ============================================================
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// ============================================================
	// Media streaming
	// ============================================================
	r.Group(func(r chi.Router) {
		r.Use(m.RateLimitMedia())
		r.Use(middleware.Prometheus("/media"))
		r.Get("/media/*", h.ServeMedia)
	})

	// ============================================================
	// JSON API
	// ============================================================
	r.Route("/api/v1", func(r chi.Router) {
		// Health probes skip rate limiting: an orchestrator polling under
		// load must never see a 429.
		r.Get("/health/live", h.Liveness)
		r.Get("/health/ready", h.Readiness)

		r.Group(func(r chi.Router) {
			r.Use(m.RateLimit())
			r.Use(middleware.Prometheus("/api/v1"))

			r.Get("/browse", h.BrowseDir)
			r.Get("/browse/*", h.BrowseDir)

			r.Get("/likes", h.ListLikes)
			r.Put("/likes/*", h.AddLike)
			r.Delete("/likes/*", h.RemoveLike)

			r.Get("/classify/*", h.ClassifyFile)
			r.Get("/model", h.ModelInfo)
		})
	})

	return r
}
