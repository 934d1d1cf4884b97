// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

/*
Package metrics defines the Prometheus collectors exported at /metrics.

All collectors are registered on the default registry through promauto, so
importing the package is enough to expose them.

# Sync

  - rophim_sync_runs_total{stop_reason}: finished runs
  - rophim_sync_duration_seconds: run duration
  - rophim_sync_pages_walked: listing pages per run
  - rophim_sync_films_per_run: upserts per run
  - rophim_sync_films_upserted_total: upserts across all runs
  - rophim_sync_in_progress: 1 while a run is active
  - rophim_sync_last_success_timestamp_seconds: last run without a fatal error
  - rophim_category_groups_dropped_total{label}: unrecognized category labels

# Remote catalog

  - rophim_remote_requests_total{endpoint,status}: status is the HTTP code or "error"
  - rophim_remote_request_duration_seconds{endpoint}
  - rophim_remote_retries_total{operation}: "listing" or "detail"
  - rophim_circuit_breaker_state{name}: 0=closed, 1=half-open, 2=open
  - rophim_circuit_breaker_requests_total{name,result}
  - rophim_circuit_breaker_transitions_total{name,from,to}

# Store

  - rophim_store_operation_duration_seconds{backend,operation}
  - rophim_store_operation_errors_total{backend,operation}: a missing entry is not an error

# HTTP, events and WebSocket

  - rophim_api_requests_total{method,route,status}
  - rophim_api_request_duration_seconds{method,route}
  - rophim_api_active_requests
  - rophim_api_rate_limit_hits_total{route}
  - rophim_authz_decisions_total{object,action,result}
  - rophim_events_published_total{topic,result}
  - rophim_websocket_connections
  - rophim_websocket_messages_sent_total
  - rophim_websocket_messages_dropped_total

Example alert:

	time() - rophim_sync_last_success_timestamp_seconds > 3 * 3600
*/
package metrics
