// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

package testinfra

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/leemjnnkdzuy/rophim/internal/models/remote"
)

const (
	listingPath = "/danh-sach/phim-moi-cap-nhat"
	detailPath  = "/phim/"
)

// AlwaysFail makes a scripted failure permanent.
const AlwaysFail = -1

// FakeCatalog is a scripted remote catalog API.
type FakeCatalog struct {
	Server *httptest.Server

	mu             sync.Mutex
	pages          [][]remote.ListItem
	details        map[string]remote.DetailItem
	detailFailures map[string]int
	pageFailures   map[int]int
	missing        map[string]bool
	endless        bool
	listRequests   []int
	detailRequests []string
}

// NewFakeCatalog starts a fake catalog server that is closed with the test.
func NewFakeCatalog(t *testing.T) *FakeCatalog {
	t.Helper()

	fc := &FakeCatalog{
		details:        make(map[string]remote.DetailItem),
		detailFailures: make(map[string]int),
		pageFailures:   make(map[int]int),
		missing:        make(map[string]bool),
	}

	mux := http.NewServeMux()
	mux.HandleFunc(listingPath, fc.handleListing)
	mux.HandleFunc(detailPath, fc.handleDetail)
	fc.Server = httptest.NewServer(mux)
	t.Cleanup(fc.Server.Close)

	return fc
}

// ListingURL returns the listing endpoint base URL.
func (fc *FakeCatalog) ListingURL() string {
	return fc.Server.URL + listingPath
}

// DetailURL returns the detail endpoint base URL; the slug is appended as a path segment.
func (fc *FakeCatalog) DetailURL() string {
	return fc.Server.URL + strings.TrimSuffix(detailPath, "/")
}

// AddPage appends one listing page. An empty call adds an explicitly empty page.
func (fc *FakeCatalog) AddPage(items ...remote.ListItem) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.pages = append(fc.pages, items)
}

// SetDetail overrides the detail record served for item.Slug.
func (fc *FakeCatalog) SetDetail(item remote.DetailItem) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.details[item.Slug] = item
}

// FailDetail answers 500 for the next n detail requests of slug (AlwaysFail for every request).
func (fc *FakeCatalog) FailDetail(slug string, n int) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.detailFailures[slug] = n
}

// FailPage answers 503 for the next n requests of a listing page.
func (fc *FakeCatalog) FailPage(page, n int) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.pageFailures[page] = n
}

// MarkMissing answers 404 for detail requests of slug.
func (fc *FakeCatalog) MarkMissing(slug string) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.missing[slug] = true
}

// SetEndless makes every page past the scripted ones return fresh generated items.
func (fc *FakeCatalog) SetEndless(endless bool) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.endless = endless
}

// PageRequests returns the listing page numbers requested, in order.
func (fc *FakeCatalog) PageRequests() []int {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return append([]int(nil), fc.listRequests...)
}

// DetailRequests returns the slugs whose detail was requested, in order.
func (fc *FakeCatalog) DetailRequests() []string {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return append([]string(nil), fc.detailRequests...)
}

// Reset clears the recorded requests.
func (fc *FakeCatalog) Reset() {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.listRequests = nil
	fc.detailRequests = nil
}

func (fc *FakeCatalog) handleListing(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		http.Error(w, "invalid page", http.StatusBadRequest)
		return
	}

	fc.mu.Lock()
	fc.listRequests = append(fc.listRequests, page)
	if consumeFailure(fc.pageFailures, page) {
		fc.mu.Unlock()
		http.Error(w, "listing unavailable", http.StatusServiceUnavailable)
		return
	}

	var items []remote.ListItem
	switch {
	case page <= len(fc.pages):
		items = fc.pages[page-1]
	case fc.endless:
		items = endlessPage(page)
	}
	totalPages := len(fc.pages)
	fc.mu.Unlock()

	if items == nil {
		items = []remote.ListItem{}
	}
	writeJSON(w, http.StatusOK, remote.ListResponse{
		Status: true,
		Items:  items,
		Pagination: remote.Pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
		},
	})
}

func (fc *FakeCatalog) handleDetail(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimPrefix(r.URL.Path, detailPath)

	fc.mu.Lock()
	fc.detailRequests = append(fc.detailRequests, slug)
	if fc.missing[slug] {
		fc.mu.Unlock()
		writeJSON(w, http.StatusNotFound, remote.DetailResponse{Status: "error", Message: "not found"})
		return
	}
	if consumeFailure(fc.detailFailures, slug) {
		fc.mu.Unlock()
		http.Error(w, "upstream error", http.StatusInternalServerError)
		return
	}

	detail, ok := fc.details[slug]
	if !ok {
		detail, ok = fc.derivedDetail(slug)
	}
	fc.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, remote.DetailResponse{Status: "error", Message: "not found"})
		return
	}
	writeJSON(w, http.StatusOK, remote.DetailResponse{
		Status: "success",
		Data:   remote.DetailData{Item: detail},
	})
}

// derivedDetail builds a detail record from the listing entry for slug. Must be called with mu held.
func (fc *FakeCatalog) derivedDetail(slug string) (remote.DetailItem, bool) {
	for _, page := range fc.pages {
		for _, item := range page {
			if item.Slug == slug {
				return DetailFor(item), true
			}
		}
	}
	if fc.endless && strings.HasPrefix(slug, "endless-") {
		return DetailFor(remote.ListItem{Slug: slug, Name: slug, Modified: remote.Timestamp{Time: time.Now().UTC()}}), true
	}
	return remote.DetailItem{}, false
}

// consumeFailure decrements a scripted failure counter and reports whether to fail.
func consumeFailure[K comparable](failures map[K]int, key K) bool {
	n, ok := failures[key]
	if !ok || n == 0 {
		return false
	}
	if n > 0 {
		failures[key] = n - 1
	}
	return true
}

// endlessPage generates items that are always newer than any fixed test watermark.
func endlessPage(page int) []remote.ListItem {
	base := time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC).Add(-time.Duration(page) * time.Hour)
	return []remote.ListItem{
		ListItem(fmt.Sprintf("endless-p%d-a", page), base),
		ListItem(fmt.Sprintf("endless-p%d-b", page), base.Add(-time.Minute)),
	}
}

// ListItem builds a listing record.
func ListItem(slug string, modified time.Time) remote.ListItem {
	return remote.ListItem{
		ID:        "id-" + slug,
		Slug:      slug,
		Name:      "Name " + slug,
		ThumbURL:  slug + "-thumb.jpg",
		PosterURL: slug + "-poster.jpg",
		Modified:  remote.Timestamp{Time: modified},
	}
}

// DetailFor builds a plausible detail record matching a listing item.
func DetailFor(item remote.ListItem) remote.DetailItem {
	return remote.DetailItem{
		ID:         item.ID,
		Slug:       item.Slug,
		Name:       item.Name,
		OriginName: "Origin " + item.Slug,
		Content:    "Synopsis of " + item.Slug,
		Type:       "single",
		Status:     "completed",
		ThumbURL:   item.ThumbURL,
		PosterURL:  item.PosterURL,
		Quality:    "FHD",
		Lang:       "Vietsub",
		Year:       item.Modified.Time.Year(),
		Director:   []string{"Director"},
		Actor:      []string{"Actor"},
		Created:    item.Modified,
		Modified:   item.Modified,
		Category: map[string]remote.RawCategoryGroup{
			"1": {
				Group: remote.CategoryGroupHeader{ID: "g1", Name: "Thể loại"},
				List:  []remote.CategoryValue{{ID: "1", Name: "Hành Động"}},
			},
			"2": {
				Group: remote.CategoryGroupHeader{ID: "g2", Name: "Quốc gia"},
				List:  []remote.CategoryValue{{ID: "vn", Name: "Việt Nam"}},
			},
		},
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
