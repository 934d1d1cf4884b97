// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

package remote

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
)

const listingFixture = `{
  "status": true,
  "items": [
    {"_id": "a1", "slug": "movie-a", "name": "Movie A", "origin_name": "A", "year": 2024,
     "modified": {"time": "2024-03-01T12:00:00.000Z"}}
  ],
  "pagination": {"totalItems": 1, "totalItemsPerPage": 24, "currentPage": 1, "totalPages": 1}
}`

const detailFixture = `{
  "status": "success",
  "msg": "",
  "data": {"item": {
    "slug": "movie-a", "name": "Movie A", "time": "120 phút", "year": 2024,
    "director": ["D"], "actor": ["X", "Y"],
    "created": {"time": "2024-01-01T00:00:00.000Z"},
    "modified": {"time": "2024-03-01T12:00:00.000Z"},
    "category": {
      "1": {"group": {"id": "1", "name": "Định dạng"}, "list": [{"id": "f", "name": "Phim lẻ"}]}
    }
  }}
}`

func TestListResponse_Decode(t *testing.T) {
	t.Parallel()

	var resp ListResponse
	if err := json.Unmarshal([]byte(listingFixture), &resp); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(resp.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(resp.Items))
	}
	item := resp.Items[0]
	want := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	if item.Slug != "movie-a" || !item.ModifiedAt().Equal(want) {
		t.Errorf("unexpected item: %+v", item)
	}
	if resp.Pagination.TotalPages != 1 || resp.Pagination.TotalItemsPage != 24 {
		t.Errorf("unexpected pagination: %+v", resp.Pagination)
	}
}

func TestDetailResponse_Decode(t *testing.T) {
	t.Parallel()

	var resp DetailResponse
	if err := json.Unmarshal([]byte(detailFixture), &resp); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	d := resp.Data.Item
	if d.Time != "120 phút" || len(d.Actor) != 2 || d.Created.Time.IsZero() {
		t.Errorf("unexpected detail: %+v", d)
	}
	group, ok := d.Category["1"]
	if !ok || group.Group.Name != "Định dạng" || len(group.List) != 1 {
		t.Errorf("unexpected category map: %+v", d.Category)
	}
}
