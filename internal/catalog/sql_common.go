// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

package catalog

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/leemjnnkdzuy/rophim/internal/models"
)

// entryColumns is the column order shared by the SQL backends.
var entryColumns = []string{
	"slug", "title", "original_title", "description",
	"poster_url", "thumb_url", "trailer_url",
	"type", "status", "episode_current", "episode_total",
	"runtime", "quality", "language", "year",
	"directors", "cast_members",
	"formats", "genres", "years", "countries",
	"created_at", "modified_at", "synced_at",
}

// upsertSQL inserts an entry, overwriting only when the incoming modified_at is newer.
// The statement uses $n placeholders, which both DuckDB and PostgreSQL accept.
var upsertSQL = buildUpsertSQL()

var (
	findBySlugSQL = "SELECT " + strings.Join(entryColumns, ", ") + " FROM catalog_entries WHERE slug = $1"
	latestSQL     = "SELECT " + strings.Join(entryColumns, ", ") +
		" FROM catalog_entries ORDER BY modified_at DESC, slug DESC LIMIT 1"
)

func buildUpsertSQL() string {
	placeholders := make([]string, len(entryColumns))
	updates := make([]string, 0, len(entryColumns)-1)
	for i, col := range entryColumns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		if col != "slug" {
			updates = append(updates, fmt.Sprintf("%s = excluded.%s", col, col))
		}
	}
	return "INSERT INTO catalog_entries (" + strings.Join(entryColumns, ", ") + ") VALUES (" +
		strings.Join(placeholders, ", ") + ") ON CONFLICT (slug) DO UPDATE SET " +
		strings.Join(updates, ", ") +
		" WHERE catalog_entries.modified_at < excluded.modified_at"
}

// entryArgs flattens an entry into upsert arguments. List fields are JSON encoded.
func entryArgs(e *models.CatalogEntry) ([]any, error) {
	lists := []any{e.Directors, e.Cast, e.Formats, e.Genres, e.Years, e.Countries}
	encoded := make([]any, len(lists))
	for i, l := range lists {
		b, err := json.Marshal(l)
		if err != nil {
			return nil, fmt.Errorf("encode list column: %w", err)
		}
		encoded[i] = string(b)
	}

	args := []any{
		e.Slug, e.Title, e.OriginalTitle, e.Description,
		e.PosterURL, e.ThumbURL, e.TrailerURL,
		e.Type, e.Status, e.EpisodeCurrent, e.EpisodeTotal,
		e.Runtime, e.Quality, e.Language, e.Year,
	}
	args = append(args, encoded...)
	return append(args, e.CreatedAt.UTC(), e.ModifiedAt.UTC(), e.SyncedAt.UTC()), nil
}

// rowScanner is satisfied by *sql.Row and pgx.Row.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*models.CatalogEntry, error) {
	var (
		e                                 models.CatalogEntry
		directors, cast                   string
		formats, genres, years, countries string
	)
	if err := row.Scan(
		&e.Slug, &e.Title, &e.OriginalTitle, &e.Description,
		&e.PosterURL, &e.ThumbURL, &e.TrailerURL,
		&e.Type, &e.Status, &e.EpisodeCurrent, &e.EpisodeTotal,
		&e.Runtime, &e.Quality, &e.Language, &e.Year,
		&directors, &cast,
		&formats, &genres, &years, &countries,
		&e.CreatedAt, &e.ModifiedAt, &e.SyncedAt,
	); err != nil {
		return nil, err
	}

	decode := []struct {
		raw string
		dst any
	}{
		{directors, &e.Directors},
		{cast, &e.Cast},
		{formats, &e.Formats},
		{genres, &e.Genres},
		{years, &e.Years},
		{countries, &e.Countries},
	}
	for _, d := range decode {
		if d.raw == "" {
			continue
		}
		if err := json.Unmarshal([]byte(d.raw), d.dst); err != nil {
			return nil, fmt.Errorf("decode list column for %s: %w", e.Slug, err)
		}
	}
	return &e, nil
}
