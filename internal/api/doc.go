// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

/*
Package api is the HTTP surface of the catalog service, routed with chi.

Every /api/v1 route except health requires authentication (auth package)
and a casbin permission (authz package). Triggering a sync needs
catalog:sync write, which the default policy grants to admin only.

The sync trigger answers with a flat body:

	{"success":true,"message":"...","films":[{"slug":...}],"totalPages":3,
	 "stopReason":"watermark_reached","runId":"..."}

and on a local store failure, HTTP 500:

	{"success":false,"message":"...","error":"..."}

Every other endpoint uses the models.APIResponse envelope.

Middleware order: request id, real IP, access log, panic recovery, CORS,
Prometheus metrics, then per-group rate limits and security headers.
*/
package api
