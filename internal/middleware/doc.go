// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

/*
Package middleware holds the infrastructure middleware shared by every route:

  - RequestID: X-Request-ID propagation into the logging context
  - AccessLog: one zerolog line per request
  - PrometheusMetrics: rophim_api_* request metrics labelled by chi route pattern

All three use the func(http.Handler) http.Handler shape so they plug into
chi's r.Use. Authentication and authorization live in the auth and authz
packages; CORS and rate limiting come from go-chi/cors and go-chi/httprate
and are configured in the api package.

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)
*/
package middleware
