// Lumiere - Self-Hosted Media Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

package api

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/tomtom215/lumiere/internal/config"
	"github.com/tomtom215/lumiere/internal/logging"
)

// Middleware bundles the cross-cutting HTTP middleware configured from the
// security section of the server config.
type Middleware struct {
	corsHandler       func(http.Handler) http.Handler
	rateLimitReqs     int
	rateLimitWindow   time.Duration
	rateLimitDisabled bool
}

// NewMiddleware builds the middleware set from config.
func NewMiddleware(cfg config.SecurityConfig) *Middleware {
	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Range", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Range", "Accept-Ranges", "Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	})

	return &Middleware{
		corsHandler:       corsHandler,
		rateLimitReqs:     cfg.RateLimitReqs,
		rateLimitWindow:   cfg.RateLimitWindow,
		rateLimitDisabled: cfg.RateLimitDisabled,
	}
}

// CORS returns the configured CORS middleware.
func (m *Middleware) CORS() func(http.Handler) http.Handler {
	return m.corsHandler
}

// RateLimit returns an IP-keyed rate limiter for the JSON API. Returns a
// pass-through when rate limiting is disabled in config.
func (m *Middleware) RateLimit() func(http.Handler) http.Handler {
	if m.rateLimitDisabled {
		return passthrough
	}
	return httprate.Limit(
		m.rateLimitReqs,
		m.rateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			WriteError(w, r, http.StatusTooManyRequests, ErrCodeTooManyRequests, "Rate limit exceeded")
		}),
	)
}

// RateLimitMedia returns a looser limiter for the media endpoint. Video
// players issue bursts of range requests during seeks, so the media tier
// gets 4x the API budget.
func (m *Middleware) RateLimitMedia() func(http.Handler) http.Handler {
	if m.rateLimitDisabled {
		return passthrough
	}
	return httprate.LimitByIP(m.rateLimitReqs*4, m.rateLimitWindow)
}

func passthrough(next http.Handler) http.Handler {
	return next
}

// RequestIDWithLogging returns a middleware that adds a request ID to the
// context and to the logging context, so every log line emitted while
// handling the request carries the same request_id field.
func RequestIDWithLogging() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		chiRequestID := chimiddleware.RequestID(next)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = logging.GenerateRequestID()
				r.Header.Set("X-Request-ID", requestID)
			}

			w.Header().Set("X-Request-ID", requestID)
			ctx := logging.ContextWithRequestID(r.Context(), requestID)

			chiRequestID.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SecurityHeaders returns a middleware that sets baseline security headers
// on every response.
func SecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Prevent MIME type sniffing
			w.Header().Set("X-Content-Type-Options", "nosniff")

			// Prevent embedding in frames (clickjacking protection)
			w.Header().Set("X-Frame-Options", "DENY")

			// Control referrer information
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

			if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
				w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}
