// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/leemjnnkdzuy/rophim/internal/logging"
	"github.com/leemjnnkdzuy/rophim/internal/models"
)

const duckdbSchema = `
CREATE TABLE IF NOT EXISTS catalog_entries (
	slug            VARCHAR PRIMARY KEY,
	title           VARCHAR NOT NULL,
	original_title  VARCHAR NOT NULL,
	description     VARCHAR NOT NULL,
	poster_url      VARCHAR NOT NULL,
	thumb_url       VARCHAR NOT NULL,
	trailer_url     VARCHAR NOT NULL,
	type            VARCHAR NOT NULL,
	status          VARCHAR NOT NULL,
	episode_current VARCHAR NOT NULL,
	episode_total   VARCHAR NOT NULL,
	runtime         VARCHAR NOT NULL,
	quality         VARCHAR NOT NULL,
	language        VARCHAR NOT NULL,
	year            INTEGER NOT NULL,
	directors       VARCHAR NOT NULL,
	cast_members    VARCHAR NOT NULL,
	formats         VARCHAR NOT NULL,
	genres          VARCHAR NOT NULL,
	years           VARCHAR NOT NULL,
	countries       VARCHAR NOT NULL,
	created_at      TIMESTAMP NOT NULL,
	modified_at     TIMESTAMP NOT NULL,
	synced_at       TIMESTAMP NOT NULL
)`

// DuckDBStore implements Store on an embedded DuckDB file.
type DuckDBStore struct {
	conn *sql.DB
}

// NewDuckDBStore opens the DuckDB file at path. An empty path opens an in-memory database.
func NewDuckDBStore(ctx context.Context, path string) (*DuckDBStore, error) {
	if path != "" {
		// 0750 (owner rwx, group rx) per gosec G301
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
			}
		}
	}

	conn, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := conn.ExecContext(ctx, duckdbSchema); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to create catalog schema: %w", err)
	}

	return &DuckDBStore{conn: conn}, nil
}

// FindBySlug returns the entry stored for slug.
func (s *DuckDBStore) FindBySlug(ctx context.Context, slug string) (entry *models.CatalogEntry, err error) {
	defer observe(BackendDuckDB, "find", time.Now(), &err)

	entry, err = scanEntry(s.conn.QueryRowContext(ctx, findBySlugSQL, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", slug, err)
	}
	return entry, nil
}

// Upsert writes entry when it is new or strictly fresher than the stored copy.
// The freshness comparison and the write share one transaction, and the
// statement itself carries the same guard.
func (s *DuckDBStore) Upsert(ctx context.Context, entry *models.CatalogEntry) (applied bool, err error) {
	defer observe(BackendDuckDB, "upsert", time.Now(), &err)

	if entry == nil || entry.Slug == "" {
		return false, ErrInvalidEntry
	}

	args, err := entryArgs(entry)
	if err != nil {
		return false, err
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin upsert: %w", err)
	}
	defer func() {
		if err != nil || !applied {
			_ = tx.Rollback()
		}
	}()

	var stored time.Time
	err = tx.QueryRowContext(ctx, "SELECT modified_at FROM catalog_entries WHERE slug = $1", entry.Slug).Scan(&stored)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		err = nil
	case err != nil:
		return false, fmt.Errorf("read stored modified_at: %w", err)
	case !entry.ModifiedAt.After(stored):
		return false, nil
	}

	if _, err = tx.ExecContext(ctx, upsertSQL, args...); err != nil {
		return false, fmt.Errorf("upsert %s: %w", entry.Slug, err)
	}
	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("commit upsert: %w", err)
	}
	return true, nil
}

// Latest returns the entry with the greatest modified_at.
func (s *DuckDBStore) Latest(ctx context.Context) (entry *models.CatalogEntry, err error) {
	defer observe(BackendDuckDB, "latest", time.Now(), &err)

	entry, err = scanEntry(s.conn.QueryRowContext(ctx, latestSQL))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("latest entry: %w", err)
	}
	return entry, nil
}

// Ping checks the connection.
func (s *DuckDBStore) Ping(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

// Close checkpoints and closes the database.
func (s *DuckDBStore) Close() error {
	if _, err := s.conn.Exec("CHECKPOINT"); err != nil {
		logging.Warn().Err(err).Msg("Checkpoint before close failed")
	}
	return s.conn.Close()
}

// closeQuietly closes a connection during error cleanup, logging any failure.
func closeQuietly(conn *sql.DB) {
	if err := conn.Close(); err != nil {
		logging.Warn().Err(err).Msg("Failed to close database connection during cleanup")
	}
}
