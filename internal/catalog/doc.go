// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

// Package catalog persists CatalogEntry records and resolves the sync watermark.
//
// The store is narrow: find by slug, upsert by slug, and return
// the most recently modified entry. Three backends implement it:
//
//	badger    embedded key/value store (default); entries plus a modified-time index
//	duckdb    embedded SQL file; ON CONFLICT upsert guarded by modified_at
//	postgres  pgxpool connection pool; same guarded upsert
//
// Every backend enforces the monotonic freshness rule inside the write itself:
// an upsert whose ModifiedAt is not strictly newer than the stored value for
// the slug is a no-op and reports applied=false.
//
// With store.cache_size set, Open wraps the backend in CachedStore, an LRU
// over FindBySlug that applied upserts keep current.
//
// Usage:
//
//	store, err := catalog.Open(ctx, &cfg.Store)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	wm, err := catalog.ResolveWatermark(ctx, store)
package catalog
