// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

// Package main runs the Rophim catalog service: the synchronization engine
// that mirrors a third-party movie catalog into the local store, plus the
// HTTP API that triggers it and serves the result.
//
// Startup order:
//
//  1. Configuration (koanf: defaults, config.yaml, environment)
//  2. Logging
//  3. Catalog store (badger, duckdb or postgres)
//  4. Remote catalog client, optionally behind a circuit breaker
//  5. Sync manager, event bus and WebSocket hub
//  6. Authentication and casbin authorization
//  7. Supervisor tree: sync scheduler, hub, event forwarder, HTTP server
//
// SIGINT or SIGTERM cancels the tree; in-flight HTTP requests get
// server.shutdown_timeout to drain.
//
//	export CATALOG_LISTING_URL=https://catalog.example/v1/api/danh-sach/phim-moi-cap-nhat
//	export CATALOG_DETAIL_URL=https://catalog.example/phim
//	export JWT_SECRET=$(openssl rand -base64 32)
//	export STORE_BACKEND=badger STORE_PATH=/data/catalog
//	./rophim
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/leemjnnkdzuy/rophim/internal/api"
	"github.com/leemjnnkdzuy/rophim/internal/auth"
	"github.com/leemjnnkdzuy/rophim/internal/authz"
	"github.com/leemjnnkdzuy/rophim/internal/catalog"
	"github.com/leemjnnkdzuy/rophim/internal/config"
	"github.com/leemjnnkdzuy/rophim/internal/events"
	"github.com/leemjnnkdzuy/rophim/internal/logging"
	"github.com/leemjnnkdzuy/rophim/internal/metrics"
	"github.com/leemjnnkdzuy/rophim/internal/supervisor"
	"github.com/leemjnnkdzuy/rophim/internal/supervisor/services"
	catalogsync "github.com/leemjnnkdzuy/rophim/internal/sync"
	ws "github.com/leemjnnkdzuy/rophim/internal/websocket"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logging.Fatal().Err(err).Msg("Rophim stopped with an error")
	}
	logging.Info().Msg("Rophim stopped")
}

func run(ctx context.Context, cfg *config.Config) error {
	logging.Info().
		Str("version", version).
		Str("store_backend", cfg.Store.Backend).
		Str("auth_mode", cfg.Security.AuthMode).
		Str("environment", cfg.Server.Environment).
		Msg("Starting Rophim catalog service")
	metrics.AppInfo.WithLabelValues(version, runtime.Version(), cfg.Store.Backend).Set(1)

	store, err := catalog.Open(ctx, &cfg.Store)
	if err != nil {
		return fmt.Errorf("open catalog store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing catalog store")
		}
	}()

	var remote catalogsync.RemoteCatalog = catalogsync.NewCatalogClient(&cfg.Catalog)
	if cfg.Catalog.CircuitBreaker {
		remote = catalogsync.NewCircuitBreakerClient(remote, catalogsync.BreakerSettings{})
		logging.Info().Msg("Remote catalog circuit breaker enabled")
	}

	manager := catalogsync.NewManager(&cfg.Sync, store, remote)
	hub := ws.NewHub()

	var bus *events.Bus
	if cfg.Events.Enabled {
		bus = events.NewBus(&cfg.Events)
		defer func() {
			if err := bus.Close(); err != nil {
				logging.Warn().Err(err).Msg("Error closing event bus")
			}
		}()
		manager.SetEventPublisher(bus)
	}

	router, err := buildRouter(cfg, store, manager, hub)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// The sync trigger holds the request for a whole run.
		WriteTimeout: writeTimeout(cfg),
		IdleTimeout:  2 * time.Minute,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout + time.Second,
	})
	tree.AddSyncService(services.NewSyncSchedulerService(manager))
	tree.AddMessagingService(hub)
	if bus != nil {
		tree.AddMessagingService(events.NewForwarder(bus, hub))
	}
	tree.AddAPIService(services.NewHTTPServerService(srv, cfg.Server.ShutdownTimeout))

	logging.Info().Str("addr", srv.Addr).Msg("HTTP server listening")

	err = tree.Serve(ctx)
	if report, rerr := tree.UnstoppedServiceReport(); rerr == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop within the shutdown timeout")
		}
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor tree: %w", err)
	}
	return nil
}

func buildRouter(cfg *config.Config, store catalog.Store, manager *catalogsync.Manager, hub *ws.Hub) (http.Handler, error) {
	mode, err := auth.ParseAuthMode(cfg.Security.AuthMode)
	if err != nil {
		return nil, err
	}

	var jwtManager *auth.JWTManager
	if mode == auth.AuthModeJWT {
		jwtManager, err = auth.NewJWTManager(&cfg.Security)
		if err != nil {
			return nil, fmt.Errorf("init JWT manager: %w", err)
		}
	} else {
		logging.Warn().Msg("Authentication is DISABLED (AUTH_MODE=none): every caller is treated as admin")
	}

	enforcer, err := authz.NewEnforcer(&cfg.Security.Casbin)
	if err != nil {
		return nil, fmt.Errorf("init authorization: %w", err)
	}

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED")
	}

	router := api.NewRouter(
		api.NewHandler(store, manager, hub),
		api.NewChiMiddleware(&cfg.Security),
		auth.NewMiddleware(jwtManager, mode),
		authz.NewMiddleware(enforcer),
		ws.NewHandler(hub, cfg.Security.CORSOrigins),
	)
	return router.SetupChi(), nil
}

// writeTimeout leaves room for a full sync run behind the trigger endpoint.
// Without a run timeout the write deadline is disabled.
func writeTimeout(cfg *config.Config) time.Duration {
	if cfg.Sync.RunTimeout <= 0 {
		return 0
	}
	return cfg.Sync.RunTimeout + cfg.Server.Timeout
}
