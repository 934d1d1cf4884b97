// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/leemjnnkdzuy/rophim/internal/metrics"
	"github.com/leemjnnkdzuy/rophim/internal/models"
)

// ErrNotFound is returned when no entry exists for a slug, or the store is empty.
var ErrNotFound = errors.New("catalog entry not found")

// ErrInvalidEntry is returned by Upsert for entries without a slug.
var ErrInvalidEntry = errors.New("catalog entry requires a slug")

// Store is the keyed catalog store used by the sync engine and the read API.
type Store interface {
	// FindBySlug returns the stored entry or ErrNotFound.
	FindBySlug(ctx context.Context, slug string) (*models.CatalogEntry, error)

	// Upsert inserts the entry, or overwrites the stored one when the incoming
	// ModifiedAt is strictly newer. applied reports whether anything was written.
	Upsert(ctx context.Context, entry *models.CatalogEntry) (applied bool, err error)

	// Latest returns the entry with the greatest ModifiedAt, or ErrNotFound.
	Latest(ctx context.Context) (*models.CatalogEntry, error)

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	Close() error
}

// Backend names accepted by Open.
const (
	BackendBadger   = "badger"
	BackendDuckDB   = "duckdb"
	BackendPostgres = "postgres"
)

// isFresher reports whether incoming should replace stored.
func isFresher(incoming, stored *models.CatalogEntry) bool {
	return incoming.ModifiedAt.After(stored.ModifiedAt)
}

// observe records one store operation. A missing entry is not an error.
func observe(backend, op string, start time.Time, errp *error) {
	var err error
	if errp != nil && !errors.Is(*errp, ErrNotFound) {
		err = *errp
	}
	metrics.RecordStoreOperation(backend, op, time.Since(start), err)
}
