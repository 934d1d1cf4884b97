// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

package catalog

import (
	"context"
	"fmt"

	"github.com/leemjnnkdzuy/rophim/internal/config"
	"github.com/leemjnnkdzuy/rophim/internal/logging"
)

// Open builds the Store selected by cfg.Backend, wrapped in a read cache
// when cfg.CacheSize is positive.
func Open(ctx context.Context, cfg *config.StoreConfig) (Store, error) {
	var (
		store Store
		err   error
	)

	switch cfg.Backend {
	case BackendBadger, "":
		if cfg.Path == "" {
			store, err = NewBadgerStore("", WithInMemory())
		} else {
			store, err = NewBadgerStore(cfg.Path)
		}
	case BackendDuckDB:
		store, err = NewDuckDBStore(ctx, cfg.Path)
	case BackendPostgres:
		store, err = NewPostgresStore(ctx, cfg.DSN, cfg.MaxConns)
	default:
		return nil, fmt.Errorf("unknown catalog store backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}

	logging.Info().
		Str("backend", cfg.Backend).
		Str("path", cfg.Path).
		Int("cache_size", cfg.CacheSize).
		Msg("Catalog store opened")

	if cfg.CacheSize > 0 {
		return NewCachedStore(store, cfg.CacheSize, cfg.CacheTTL), nil
	}
	return store, nil
}
