// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

package sync

import (
	"context"
	"errors"
	"time"

	"github.com/leemjnnkdzuy/rophim/internal/catalog"
	"github.com/leemjnnkdzuy/rophim/internal/logging"
	"github.com/leemjnnkdzuy/rophim/internal/models"
	"github.com/leemjnnkdzuy/rophim/internal/models/remote"
)

// Outcome is what happened to one candidate item.
type Outcome int

const (
	// OutcomeUpserted: the entry was inserted or replaced.
	OutcomeUpserted Outcome = iota

	// OutcomeSkipped: the stored copy is at least as fresh.
	OutcomeSkipped

	// OutcomeMissing: the remote answered 404 for the detail record.
	OutcomeMissing

	// OutcomeFetchFailed: the detail fetch failed after retries.
	OutcomeFetchFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUpserted:
		return "upserted"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeMissing:
		return "missing"
	case OutcomeFetchFailed:
		return "fetch_failed"
	default:
		return "unknown"
	}
}

// Resolution is the result of resolving one item.
type Resolution struct {
	Outcome Outcome

	// Entry is set for OutcomeUpserted.
	Entry *models.CatalogEntry

	// Err carries the remote failure for OutcomeFetchFailed.
	Err error

	// RemoteCalled reports whether a detail request was made.
	RemoteCalled bool
}

// Resolver fetches, normalizes and upserts candidate items.
type Resolver struct {
	store      catalog.Store
	remote     RemoteCatalog
	retry      RetryPolicy
	normalizer *CategoryNormalizer
	now        func() time.Time
}

// NewResolver creates a resolver. A nil normalizer uses the default labels.
func NewResolver(store catalog.Store, rc RemoteCatalog, policy RetryPolicy, normalizer *CategoryNormalizer) *Resolver {
	if normalizer == nil {
		normalizer = DefaultCategoryNormalizer()
	}
	return &Resolver{
		store:      store,
		remote:     rc,
		retry:      policy,
		normalizer: normalizer,
		now:        time.Now,
	}
}

// Resolve merges one listing item into the store.
//
// The returned error is always a *StoreError; remote failures are reported
// through the Resolution so the caller can end the walk gracefully.
func (r *Resolver) Resolve(ctx context.Context, item *remote.ListItem) (Resolution, error) {
	stored, err := r.store.FindBySlug(ctx, item.Slug)
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		stored = nil
	case err != nil:
		return Resolution{}, &StoreError{Op: "find", Slug: item.Slug, Err: err}
	}

	if stored != nil && !stored.ModifiedAt.Before(item.ModifiedAt()) {
		return Resolution{Outcome: OutcomeSkipped}, nil
	}

	detail, err := withRetry(ctx, r.retry, "detail", func() (*remote.DetailItem, error) {
		return r.remote.FetchDetail(ctx, item.Slug)
	})
	if errors.Is(err, ErrRemoteNotFound) {
		logging.Ctx(ctx).Warn().Str("slug", item.Slug).Msg("Detail record not found upstream, skipping")
		return Resolution{Outcome: OutcomeMissing, RemoteCalled: true}, nil
	}
	if err != nil {
		return Resolution{Outcome: OutcomeFetchFailed, Err: err, RemoteCalled: true}, nil
	}

	entry := r.buildEntry(item, detail)
	applied, err := r.store.Upsert(ctx, entry)
	if err != nil {
		return Resolution{}, &StoreError{Op: "upsert", Slug: item.Slug, Err: err}
	}
	if !applied {
		return Resolution{Outcome: OutcomeSkipped, RemoteCalled: true}, nil
	}
	return Resolution{Outcome: OutcomeUpserted, Entry: entry, RemoteCalled: true}, nil
}

// buildEntry maps a detail record onto a catalog entry. Listing values fill
// the gaps the detail record leaves empty.
func (r *Resolver) buildEntry(item *remote.ListItem, d *remote.DetailItem) *models.CatalogEntry {
	modified := d.Modified.Time
	if modified.IsZero() {
		modified = item.ModifiedAt()
	}
	created := d.Created.Time
	if created.IsZero() {
		created = modified
	}

	return &models.CatalogEntry{
		Slug:           item.Slug,
		Title:          firstNonEmpty(d.Name, item.Name),
		OriginalTitle:  firstNonEmpty(d.OriginName, item.OriginName),
		Description:    d.Content,
		PosterURL:      firstNonEmpty(d.PosterURL, item.PosterURL),
		ThumbURL:       firstNonEmpty(d.ThumbURL, item.ThumbURL),
		TrailerURL:     d.TrailerURL,
		Type:           d.Type,
		Status:         d.Status,
		EpisodeCurrent: d.EpisodeCurrent,
		EpisodeTotal:   d.EpisodeTotal,
		Runtime:        d.Time,
		Quality:        d.Quality,
		Language:       d.Lang,
		Year:           firstNonZero(d.Year, item.Year),
		Directors:      nonNil(d.Director),
		Cast:           nonNil(d.Actor),
		Categories:     r.normalizer.Normalize(d.Category),
		CreatedAt:      created.UTC(),
		ModifiedAt:     modified.UTC(),
		SyncedAt:       r.now().UTC(),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonZero(a, b int) int {
	if a != 0 {
		return a
	}
	return b
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
