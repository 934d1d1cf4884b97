// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

package models

import (
	"slices"
	"time"
)

// CategoryRef is one classified category value, kept verbatim from the remote source.
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Categories holds the four fixed category buckets of an entry.
// Each list preserves the order reported by the remote source.
type Categories struct {
	Formats   []CategoryRef `json:"formats"`
	Genres    []CategoryRef `json:"genres"`
	Years     []CategoryRef `json:"years"`
	Countries []CategoryRef `json:"countries"`
}

// CatalogEntry is the local copy of one remote title.
//
// Entries are created the first time a sync run observes the slug and are
// only ever rewritten by the sync engine. ModifiedAt is the remote
// modification time and doubles as the sync watermark field.
type CatalogEntry struct {
	Slug          string `json:"slug"`
	Title         string `json:"title"`
	OriginalTitle string `json:"original_title"`
	Description   string `json:"description"`
	PosterURL     string `json:"poster_url"`
	ThumbURL      string `json:"thumb_url"`
	TrailerURL    string `json:"trailer_url,omitempty"`

	Type           string   `json:"type"`
	Status         string   `json:"status"`
	EpisodeCurrent string   `json:"episode_current"`
	EpisodeTotal   string   `json:"episode_total"`
	Runtime        string   `json:"runtime"`
	Quality        string   `json:"quality"`
	Language       string   `json:"language"`
	Year           int      `json:"year"`
	Directors      []string `json:"directors"`
	Cast           []string `json:"cast"`

	Categories

	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`

	// SyncedAt is the local time of the last upsert.
	SyncedAt time.Time `json:"synced_at"`
}

// Clone returns a deep copy; the copy shares no slices with e.
func (e *CatalogEntry) Clone() *CatalogEntry {
	c := *e
	c.Directors = slices.Clone(e.Directors)
	c.Cast = slices.Clone(e.Cast)
	c.Formats = slices.Clone(e.Formats)
	c.Genres = slices.Clone(e.Genres)
	c.Years = slices.Clone(e.Years)
	c.Countries = slices.Clone(e.Countries)
	return &c
}

// Summary returns the lightweight record reported by a sync run.
func (e *CatalogEntry) Summary() EntrySummary {
	return EntrySummary{
		Slug:       e.Slug,
		Title:      e.Title,
		PosterURL:  e.PosterURL,
		ModifiedAt: e.ModifiedAt,
	}
}

// Watermark returns the (slug, modified_at) pair of the entry.
func (e *CatalogEntry) Watermark() Watermark {
	return Watermark{Slug: e.Slug, ModifiedAt: e.ModifiedAt}
}

// EntrySummary is the per-film item of the sync trigger response.
type EntrySummary struct {
	Slug       string    `json:"slug"`
	Title      string    `json:"title"`
	PosterURL  string    `json:"poster_url"`
	ModifiedAt time.Time `json:"modified_at"`
}

// Watermark identifies the most recently modified entry known locally.
// It is derived from the store at the start of every run and never persisted.
type Watermark struct {
	Slug       string    `json:"slug"`
	ModifiedAt time.Time `json:"modified_at"`
}
