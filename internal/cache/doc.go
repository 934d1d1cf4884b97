// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

// Package cache provides a generic in-memory LRU with TTL, used as the
// read-through layer in front of the catalog store.
//
//	c := cache.NewLRU[*models.CatalogEntry](10000, 10*time.Minute)
//	c.Add(entry.Slug, entry)
//	if e, ok := c.Get(slug); ok { ... }
package cache
