// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leemjnnkdzuy/rophim/internal/models"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS catalog_entries (
	slug            TEXT PRIMARY KEY,
	title           TEXT NOT NULL,
	original_title  TEXT NOT NULL,
	description     TEXT NOT NULL,
	poster_url      TEXT NOT NULL,
	thumb_url       TEXT NOT NULL,
	trailer_url     TEXT NOT NULL,
	type            TEXT NOT NULL,
	status          TEXT NOT NULL,
	episode_current TEXT NOT NULL,
	episode_total   TEXT NOT NULL,
	runtime         TEXT NOT NULL,
	quality         TEXT NOT NULL,
	language        TEXT NOT NULL,
	year            INTEGER NOT NULL,
	directors       TEXT NOT NULL,
	cast_members    TEXT NOT NULL,
	formats         TEXT NOT NULL,
	genres          TEXT NOT NULL,
	years           TEXT NOT NULL,
	countries       TEXT NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL,
	modified_at     TIMESTAMPTZ NOT NULL,
	synced_at       TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_catalog_entries_modified ON catalog_entries (modified_at DESC, slug DESC);`

// PostgresStore implements Store on a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to dsn and ensures the schema exists.
func NewPostgresStore(ctx context.Context, dsn string, maxConns int) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if maxConns <= 0 {
		maxConns = 4
	}
	cfg.MaxConns = int32(maxConns) //nolint:gosec // bounded by config validation

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create catalog schema: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// FindBySlug returns the entry stored for slug.
func (s *PostgresStore) FindBySlug(ctx context.Context, slug string) (entry *models.CatalogEntry, err error) {
	defer observe(BackendPostgres, "find", time.Now(), &err)

	entry, err = scanEntry(s.pool.QueryRow(ctx, findBySlugSQL, slug))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", slug, err)
	}
	return entry, nil
}

// Upsert relies on the guarded ON CONFLICT statement; a suppressed update
// returns no row.
func (s *PostgresStore) Upsert(ctx context.Context, entry *models.CatalogEntry) (applied bool, err error) {
	defer observe(BackendPostgres, "upsert", time.Now(), &err)

	if entry == nil || entry.Slug == "" {
		return false, ErrInvalidEntry
	}

	args, err := entryArgs(entry)
	if err != nil {
		return false, err
	}

	var slug string
	err = s.pool.QueryRow(ctx, upsertSQL+" RETURNING slug", args...).Scan(&slug)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("upsert %s: %w", entry.Slug, err)
	}
	return true, nil
}

// Latest returns the entry with the greatest modified_at.
func (s *PostgresStore) Latest(ctx context.Context) (entry *models.CatalogEntry, err error) {
	defer observe(BackendPostgres, "latest", time.Now(), &err)

	entry, err = scanEntry(s.pool.QueryRow(ctx, latestSQL))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("latest entry: %w", err)
	}
	return entry, nil
}

// Ping checks that a pooled connection can reach the server.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases every pooled connection.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
