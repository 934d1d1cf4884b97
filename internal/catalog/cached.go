// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

package catalog

import (
	"context"
	"time"

	"github.com/leemjnnkdzuy/rophim/internal/cache"
	"github.com/leemjnnkdzuy/rophim/internal/metrics"
	"github.com/leemjnnkdzuy/rophim/internal/models"
)

// CachedStore puts a read-through LRU in front of FindBySlug. Applied
// upserts refresh the cached copy, so a slug is never served older than
// what this process last wrote. Writes from other processes become
// visible once the TTL lapses.
//
// The cache holds its own deep copies: callers may mutate what they pass
// in or get back without touching the cached entry.
type CachedStore struct {
	Store
	entries *cache.LRU[*models.CatalogEntry]
}

// NewCachedStore wraps store with an LRU of the given size and TTL.
func NewCachedStore(store Store, size int, ttl time.Duration) *CachedStore {
	return &CachedStore{
		Store:   store,
		entries: cache.NewLRU[*models.CatalogEntry](size, ttl),
	}
}

// FindBySlug serves from the cache, falling back to the wrapped store.
// Misses on the wrapped store are not cached.
func (s *CachedStore) FindBySlug(ctx context.Context, slug string) (*models.CatalogEntry, error) {
	if e, ok := s.entries.Get(slug); ok {
		metrics.RecordCacheLookup(true)
		return e.Clone(), nil
	}
	metrics.RecordCacheLookup(false)

	entry, err := s.Store.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	s.entries.Add(slug, entry.Clone())
	return entry, nil
}

func (s *CachedStore) Upsert(ctx context.Context, entry *models.CatalogEntry) (bool, error) {
	applied, err := s.Store.Upsert(ctx, entry)
	if err != nil {
		// The write may or may not have landed.
		if entry != nil {
			s.entries.Remove(entry.Slug)
		}
		return applied, err
	}
	if applied {
		s.entries.Add(entry.Slug, entry.Clone())
	}
	return applied, nil
}

// CacheStats exposes the LRU counters.
func (s *CachedStore) CacheStats() cache.Stats {
	return s.entries.Stats()
}
