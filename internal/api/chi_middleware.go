// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/leemjnnkdzuy/rophim/internal/config"
	"github.com/leemjnnkdzuy/rophim/internal/logging"
	"github.com/leemjnnkdzuy/rophim/internal/metrics"
	"github.com/leemjnnkdzuy/rophim/internal/models"
)

// RateLimitConfig is one endpoint class's request budget per client IP.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

var (
	// RateLimitSync guards the trigger: every call may walk the remote catalog.
	RateLimitSync = RateLimitConfig{Requests: 10, Window: time.Minute}

	// RateLimitHealth is permissive for probes and scrapers.
	RateLimitHealth = RateLimitConfig{Requests: 1000, Window: time.Minute}

	// RateLimitWebSocket caps upgrade attempts.
	RateLimitWebSocket = RateLimitConfig{Requests: 30, Window: time.Minute}
)

// ChiMiddleware builds the CORS and rate limit middleware from the
// security config.
type ChiMiddleware struct {
	cors     func(http.Handler) http.Handler
	requests int
	window   time.Duration
	disabled bool
}

// NewChiMiddleware configures go-chi/cors and go-chi/httprate. An empty
// CORS origin list allows no cross-origin callers.
func NewChiMiddleware(cfg *config.SecurityConfig) *ChiMiddleware {
	requests, window := cfg.RateLimitReqs, cfg.RateLimitWindow
	if requests <= 0 {
		requests = 100
	}
	if window <= 0 {
		window = time.Minute
	}
	return &ChiMiddleware{
		cors: cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID", "Retry-After"},
			MaxAge:         86400,
		}),
		requests: requests,
		window:   window,
		disabled: cfg.RateLimitDisabled,
	}
}

func (m *ChiMiddleware) CORS() func(http.Handler) http.Handler {
	return m.cors
}

// RateLimit applies the configured default budget.
func (m *ChiMiddleware) RateLimit() func(http.Handler) http.Handler {
	return m.RateLimitCustom(RateLimitConfig{Requests: m.requests, Window: m.window})
}

// RateLimitCustom limits by client IP. Rejections are counted per route
// and answered with the JSON error envelope.
func (m *ChiMiddleware) RateLimitCustom(rl RateLimitConfig) func(http.Handler) http.Handler {
	if m.disabled {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(rl.Requests, rl.Window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(rateLimited),
	)
}

func rateLimited(w http.ResponseWriter, r *http.Request) {
	route := r.URL.Path
	if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
		route = rctx.RoutePattern()
	}
	metrics.APIRateLimitHits.WithLabelValues(route).Inc()
	logging.Ctx(r.Context()).Warn().Str("route", route).Str("remote_addr", r.RemoteAddr).Msg("Rate limit exceeded")

	respondError(w, r, http.StatusTooManyRequests, &models.APIError{
		Code:    codeRateLimited,
		Message: "Too many requests, slow down",
	}, nil)
}

// APISecurityHeaders sets the headers every JSON response carries.
func APISecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		next.ServeHTTP(w, r)
	})
}
