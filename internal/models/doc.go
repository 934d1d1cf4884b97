// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

/*
Package models defines the catalog data structures shared by the store, the
sync engine and the HTTP layer.

Key Components:

  - CatalogEntry: one film or series, keyed by slug
  - CategoryRef: an {id, name} pair inside one of the four category buckets
  - EntrySummary: the lightweight record returned by a sync run
  - Watermark: the (slug, modified_at) of the most recently modified entry
  - APIResponse: the envelope used by the read endpoints

Wire types of the remote catalog API live in the remote subpackage and are
converted into CatalogEntry by the sync engine.

Invariants:

  - Slug is the only merge key. Two entries with the same slug are the same entry.
  - ModifiedAt is remote-authoritative and only ever moves forward for a slug.
*/
package models
