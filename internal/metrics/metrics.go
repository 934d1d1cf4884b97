// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// stopReasonFatal matches sync.StopFatalError. Duplicated to keep this
// package free of domain imports.
const stopReasonFatal = "fatal_error"

var (
	// Sync run metrics
	SyncRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rophim_sync_runs_total",
			Help: "Completed catalog sync runs by stop reason",
		},
		[]string{"stop_reason"},
	)

	SyncDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rophim_sync_duration_seconds",
			Help:    "Duration of catalog sync runs in seconds",
			Buckets: []float64{0.5, 1, 5, 10, 30, 60, 120, 300, 600, 1800},
		},
	)

	SyncPagesWalked = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rophim_sync_pages_walked",
			Help:    "Listing pages fetched per sync run",
			Buckets: []float64{1, 2, 3, 5, 10, 20, 50},
		},
	)

	SyncFilmsPerRun = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rophim_sync_films_per_run",
			Help:    "Entries upserted per sync run",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
		},
	)

	SyncFilmsUpserted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rophim_sync_films_upserted_total",
			Help: "Catalog entries inserted or replaced by sync runs",
		},
	)

	SyncInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rophim_sync_in_progress",
			Help: "1 while a catalog sync run is active",
		},
	)

	SyncLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rophim_sync_last_success_timestamp_seconds",
			Help: "Unix time of the last sync run that did not end in a fatal error",
		},
	)

	// The dropped label itself is remote-controlled and only goes to the debug log.
	CategoryGroupsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rophim_category_groups_dropped_total",
			Help: "Remote category groups with an unrecognized label",
		},
	)

	// Remote catalog metrics
	RemoteRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rophim_remote_requests_total",
			Help: "Requests to the remote catalog by endpoint and HTTP status",
		},
		[]string{"endpoint", "status"},
	)

	RemoteRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rophim_remote_request_duration_seconds",
			Help:    "Latency of remote catalog requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	RemoteRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rophim_remote_retries_total",
			Help: "Retried remote catalog operations",
		},
		[]string{"operation"},
	)

	// Circuit breaker metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "rophim_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rophim_circuit_breaker_requests_total",
			Help: "Requests through the circuit breaker by result",
		},
		[]string{"name", "result"}, // success, failure, rejected
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rophim_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// Store metrics
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rophim_store_operation_duration_seconds",
			Help:    "Duration of catalog store operations",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
		},
		[]string{"backend", "operation"},
	)

	StoreOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rophim_store_operation_errors_total",
			Help: "Failed catalog store operations",
		},
		[]string{"backend", "operation"},
	)

	StoreCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rophim_store_cache_lookups_total",
			Help: "Slug lookups served by the catalog read cache, by result",
		},
		[]string{"result"},
	)

	// API metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rophim_api_requests_total",
			Help: "HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rophim_api_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rophim_api_active_requests",
			Help: "HTTP requests currently being served",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rophim_api_rate_limit_hits_total",
			Help: "Requests rejected by the rate limiter",
		},
		[]string{"route"},
	)

	AuthzDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rophim_authz_decisions_total",
			Help: "Authorization decisions by object, action and result",
		},
		[]string{"object", "action", "result"},
	)

	// Event and WebSocket metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rophim_events_published_total",
			Help: "Domain events published by topic and result",
		},
		[]string{"topic", "result"},
	)

	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rophim_websocket_connections",
			Help: "Connected WebSocket clients",
		},
	)

	WSMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rophim_websocket_messages_sent_total",
			Help: "Messages queued to WebSocket clients",
		},
	)

	WSMessagesDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rophim_websocket_messages_dropped_total",
			Help: "Messages dropped because a client send buffer was full",
		},
	)

	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "rophim_app_info",
			Help: "Build information, value is always 1",
		},
		[]string{"version", "go_version", "store_backend"},
	)
)

// RecordSyncRun records a finished sync run.
func RecordSyncRun(stopReason string, duration time.Duration, films, pages int) {
	SyncRuns.WithLabelValues(stopReason).Inc()
	SyncDuration.Observe(duration.Seconds())
	SyncPagesWalked.Observe(float64(pages))
	SyncFilmsPerRun.Observe(float64(films))
	if stopReason != stopReasonFatal {
		SyncLastSuccess.SetToCurrentTime()
	}
}

// RecordRemoteRequest records one remote catalog exchange. status is the
// HTTP status code or "error" when no response arrived.
func RecordRemoteRequest(endpoint, status string, duration time.Duration) {
	RemoteRequests.WithLabelValues(endpoint, status).Inc()
	RemoteRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordStoreOperation records one catalog store call.
func RecordStoreOperation(backend, operation string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(backend, operation).Observe(duration.Seconds())
	if err != nil {
		StoreOperationErrors.WithLabelValues(backend, operation).Inc()
	}
}

// RecordCacheLookup records a read cache hit or miss.
func RecordCacheLookup(hit bool) {
	if hit {
		StoreCacheLookups.WithLabelValues("hit").Inc()
		return
	}
	StoreCacheLookups.WithLabelValues("miss").Inc()
}

// RecordAPIRequest records a served HTTP request.
func RecordAPIRequest(method, route, status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, status).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackActiveRequest moves the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordAuthzDecision records an enforcer verdict.
func RecordAuthzDecision(object, action string, allowed bool) {
	result := "denied"
	if allowed {
		result = "allowed"
	}
	AuthzDecisions.WithLabelValues(object, action, result).Inc()
}

// RecordEventPublish records one publish attempt on the event bus.
func RecordEventPublish(topic string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	EventsPublished.WithLabelValues(topic, result).Inc()
}
