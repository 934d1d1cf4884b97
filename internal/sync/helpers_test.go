// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/leemjnnkdzuy/rophim/internal/catalog"
	"github.com/leemjnnkdzuy/rophim/internal/config"
	"github.com/leemjnnkdzuy/rophim/internal/models"
	"github.com/leemjnnkdzuy/rophim/internal/testinfra"
)

// jan returns a fixed January 2024 timestamp on the given day.
func jan(day int) time.Time {
	return time.Date(2024, 1, day, 12, 0, 0, 0, time.UTC)
}

func testSyncConfig() *config.SyncConfig {
	return &config.SyncConfig{
		MaxPages:       10,
		RetryAttempts:  3,
		RetryBaseDelay: time.Millisecond,
		CategoryLabels: config.DefaultCategoryLabels(),
	}
}

func newTestStore(t *testing.T) *catalog.BadgerStore {
	t.Helper()
	store, err := catalog.NewBadgerStore("", catalog.WithInMemory())
	if err != nil {
		t.Fatalf("open in-memory store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newTestClient(fc *testinfra.FakeCatalog) *CatalogClient {
	return NewCatalogClient(&config.CatalogConfig{
		ListingURL: fc.ListingURL(),
		DetailURL:  fc.DetailURL(),
		Timeout:    5 * time.Second,
	})
}

// newTestManager wires a manager to the fake catalog without pacing delays.
func newTestManager(t *testing.T, fc *testinfra.FakeCatalog, store catalog.Store, cfg *config.SyncConfig) *Manager {
	t.Helper()
	if cfg == nil {
		cfg = testSyncConfig()
	}
	return NewManager(cfg, store, newTestClient(fc))
}

func seedEntry(t *testing.T, store catalog.Store, slug string, modified time.Time) {
	t.Helper()
	entry := &models.CatalogEntry{
		Slug:       slug,
		Title:      "Stored " + slug,
		Categories: models.Categories{},
		CreatedAt:  modified,
		ModifiedAt: modified,
		SyncedAt:   modified,
	}
	if _, err := store.Upsert(context.Background(), entry); err != nil {
		t.Fatalf("seed %s: %v", slug, err)
	}
}

func filmSlugs(films []models.EntrySummary) []string {
	out := make([]string, 0, len(films))
	for _, f := range films {
		out = append(out, f.Slug)
	}
	return out
}

func checkStrings(t *testing.T, field string, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Errorf("%s: expected %v, got %v", field, want, got)
		return
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s: expected %v, got %v", field, want, got)
			return
		}
	}
}

func checkInts(t *testing.T, field string, got, want []int) {
	t.Helper()
	if len(got) != len(want) {
		t.Errorf("%s: expected %v, got %v", field, want, got)
		return
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s: expected %v, got %v", field, want, got)
			return
		}
	}
}

// failingStore wraps a store and fails selected operations.
type failingStore struct {
	catalog.Store
	failFind   bool
	failUpsert bool
	failLatest bool
}

var errDiskFull = errors.New("disk full")

func (s *failingStore) FindBySlug(ctx context.Context, slug string) (*models.CatalogEntry, error) {
	if s.failFind {
		return nil, errDiskFull
	}
	return s.Store.FindBySlug(ctx, slug)
}

func (s *failingStore) Upsert(ctx context.Context, entry *models.CatalogEntry) (bool, error) {
	if s.failUpsert {
		return false, errDiskFull
	}
	return s.Store.Upsert(ctx, entry)
}

func (s *failingStore) Latest(ctx context.Context) (*models.CatalogEntry, error) {
	if s.failLatest {
		return nil, errDiskFull
	}
	return s.Store.Latest(ctx)
}

// recordingPublisher captures published events.
type recordingPublisher struct {
	entries []models.EntrySummary
	reports []*Report
}

func (p *recordingPublisher) PublishEntrySynced(_ context.Context, s models.EntrySummary) error {
	p.entries = append(p.entries, s)
	return nil
}

func (p *recordingPublisher) PublishSyncCompleted(_ context.Context, r *Report) error {
	p.reports = append(p.reports, r)
	return nil
}
