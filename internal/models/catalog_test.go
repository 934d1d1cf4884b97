// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

package models

import (
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestCatalogEntry_SummaryAndWatermark(t *testing.T) {
	t.Parallel()

	modified := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	e := &CatalogEntry{
		Slug:       "movie-a",
		Title:      "Movie A",
		PosterURL:  "https://img.example/a.jpg",
		ModifiedAt: modified,
		Directors:  []string{"someone"},
	}

	s := e.Summary()
	if s.Slug != "movie-a" || s.Title != "Movie A" || s.PosterURL != e.PosterURL || !s.ModifiedAt.Equal(modified) {
		t.Errorf("unexpected summary: %+v", s)
	}

	wm := e.Watermark()
	if wm.Slug != "movie-a" || !wm.ModifiedAt.Equal(modified) {
		t.Errorf("unexpected watermark: %+v", wm)
	}
}

func TestCatalogEntry_Clone(t *testing.T) {
	t.Parallel()

	orig := &CatalogEntry{
		Slug:      "movie-a",
		Directors: []string{"d"},
		Cast:      []string{"a", "b"},
		Categories: Categories{
			Genres:    []CategoryRef{{ID: "g", Name: "Drama"}},
			Countries: []CategoryRef{{ID: "kr", Name: "Korea"}},
		},
	}

	c := orig.Clone()
	c.Slug = "other"
	c.Directors[0] = "x"
	c.Cast[1] = "x"
	c.Genres[0].Name = "x"
	c.Countries[0].ID = "x"

	if orig.Slug != "movie-a" || orig.Directors[0] != "d" || orig.Cast[1] != "b" ||
		orig.Genres[0].Name != "Drama" || orig.Countries[0].ID != "kr" {
		t.Errorf("clone shares state with the original: %+v", orig)
	}
	if c.Formats != nil || c.Years != nil {
		t.Errorf("nil slices should stay nil, got %v %v", c.Formats, c.Years)
	}
}

func TestCatalogEntry_JSONFlattensCategories(t *testing.T) {
	t.Parallel()

	e := CatalogEntry{
		Slug: "movie-a",
		Categories: Categories{
			Genres: []CategoryRef{{ID: "g1", Name: "Hành Động"}},
		},
	}
	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	out := string(data)
	for _, key := range []string{`"genres":[{"id":"g1","name":"Hành Động"}]`, `"formats":null`, `"modified_at"`} {
		if !strings.Contains(out, key) {
			t.Errorf("expected %s in %s", key, out)
		}
	}
	if strings.Contains(out, `"Categories"`) || strings.Contains(out, `"trailer_url"`) {
		t.Errorf("unexpected keys in %s", out)
	}
}
