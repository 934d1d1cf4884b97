// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/leemjnnkdzuy/rophim/internal/auth"
	"github.com/leemjnnkdzuy/rophim/internal/authz"
	"github.com/leemjnnkdzuy/rophim/internal/middleware"
	"github.com/leemjnnkdzuy/rophim/internal/models"
)

// Router wires handlers to routes and middleware.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	authn         *auth.Middleware
	authz         *authz.Middleware

	// ws serves /api/v1/ws; nil leaves the route unregistered.
	ws http.Handler
}

func NewRouter(handler *Handler, chiMW *ChiMiddleware, authn *auth.Middleware, authzMW *authz.Middleware, ws http.Handler) *Router {
	return &Router{
		handler:       handler,
		chiMiddleware: chiMW,
		authn:         authn,
		authz:         authzMW,
		ws:            ws,
	}
}

// SetupChi builds the HTTP handler.
//
//	GET  /metrics
//	GET  /api/v1/health/live
//	GET  /api/v1/health/ready
//	GET  /api/v1/films/latest                 catalog:films read
//	GET  /api/v1/films/{slug}                 catalog:films read
//	GET  /api/v1/ws                           catalog:events read
//	GET  /api/v1/admin/catalog/sync/status    catalog:sync read
//	POST /api/v1/admin/catalog/sync           catalog:sync write
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())
	r.Use(middleware.PrometheusMetrics)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusNotFound, &models.APIError{Code: codeNotFound, Message: "Route not found"}, nil)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitCustom(RateLimitHealth))
		r.Use(APISecurityHeaders)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(APISecurityHeaders)
		r.Use(router.authn.Authenticate)

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())
			r.Use(router.authz.Authorize(authz.ObjectFilms, authz.ActionRead))
			// Static segment first: chi matches "latest" before {slug}.
			r.Get("/films/latest", router.handler.LatestFilm)
			r.Get("/films/{slug}", router.handler.GetFilm)
		})

		if router.ws != nil {
			r.With(
				router.chiMiddleware.RateLimitCustom(RateLimitWebSocket),
				router.authz.Authorize(authz.ObjectEvents, authz.ActionRead),
			).Get("/ws", router.ws.ServeHTTP)
		}

		r.Route("/admin/catalog/sync", func(r chi.Router) {
			r.With(router.chiMiddleware.RateLimit(), router.authz.Authorize(authz.ObjectSync, authz.ActionRead)).
				Get("/status", router.handler.CatalogSyncStatus)
			r.With(router.chiMiddleware.RateLimitCustom(RateLimitSync), router.authz.Authorize(authz.ObjectSync, authz.ActionWrite)).
				Post("/", router.handler.TriggerCatalogSync)
		})
	})

	return r
}
