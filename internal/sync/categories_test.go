// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

package sync

import (
	"sort"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/leemjnnkdzuy/rophim/internal/config"
	"github.com/leemjnnkdzuy/rophim/internal/metrics"
	"github.com/leemjnnkdzuy/rophim/internal/models"
	"github.com/leemjnnkdzuy/rophim/internal/models/remote"
)

func group(label string, values ...remote.CategoryValue) remote.RawCategoryGroup {
	return remote.RawCategoryGroup{
		Group: remote.CategoryGroupHeader{ID: "g-" + label, Name: label},
		List:  values,
	}
}

func checkRefs(t *testing.T, field string, got, want []models.CategoryRef) {
	t.Helper()
	if got == nil {
		t.Errorf("%s: expected non-nil list", field)
		return
	}
	if len(got) != len(want) {
		t.Errorf("%s: expected %v, got %v", field, want, got)
		return
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s[%d]: expected %v, got %v", field, i, want[i], got[i])
		}
	}
}

func TestNormalize_GenresRoundTrip(t *testing.T) {
	t.Parallel()

	out := DefaultCategoryNormalizer().Normalize(map[string]remote.RawCategoryGroup{
		"x7": group("Genres", remote.CategoryValue{ID: "1", Name: "Action"}),
	})

	checkRefs(t, "genres", out.Genres, []models.CategoryRef{{ID: "1", Name: "Action"}})
	checkRefs(t, "formats", out.Formats, nil)
	checkRefs(t, "years", out.Years, nil)
	checkRefs(t, "countries", out.Countries, nil)
}

func TestNormalize_DropsUnknownGroups(t *testing.T) {
	t.Parallel()

	out := DefaultCategoryNormalizer().Normalize(map[string]remote.RawCategoryGroup{
		"a": group("Soundtrack", remote.CategoryValue{ID: "s1", Name: "OST"}),
		"b": group("Quốc gia", remote.CategoryValue{ID: "kr", Name: "Hàn Quốc"}),
	})

	total := len(out.Formats) + len(out.Genres) + len(out.Years) + len(out.Countries)
	if total != 1 {
		t.Errorf("expected only the country value to survive, got %+v", out)
	}
	checkRefs(t, "countries", out.Countries, []models.CategoryRef{{ID: "kr", Name: "Hàn Quốc"}})
}

func TestNormalize_SourceLocaleLabels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		label  string
		bucket func(models.Categories) []models.CategoryRef
	}{
		{"Định dạng", func(c models.Categories) []models.CategoryRef { return c.Formats }},
		{"Thể loại", func(c models.Categories) []models.CategoryRef { return c.Genres }},
		{"Năm", func(c models.Categories) []models.CategoryRef { return c.Years }},
		{"Quốc gia", func(c models.Categories) []models.CategoryRef { return c.Countries }},
		{"Format", func(c models.Categories) []models.CategoryRef { return c.Formats }},
		{"Years", func(c models.Categories) []models.CategoryRef { return c.Years }},
		{"Country", func(c models.Categories) []models.CategoryRef { return c.Countries }},
	}

	n := DefaultCategoryNormalizer()
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			t.Parallel()
			value := remote.CategoryValue{ID: "v", Name: "value"}
			out := n.Normalize(map[string]remote.RawCategoryGroup{"k": group(tt.label, value)})
			checkRefs(t, tt.label, tt.bucket(out), []models.CategoryRef{{ID: "v", Name: "value"}})
		})
	}
}

func TestNormalize_ExactMatchOnly(t *testing.T) {
	t.Parallel()

	out := DefaultCategoryNormalizer().Normalize(map[string]remote.RawCategoryGroup{
		"a": group("genres", remote.CategoryValue{ID: "1", Name: "Action"}),
		"b": group(" Genres", remote.CategoryValue{ID: "2", Name: "Drama"}),
	})
	if len(out.Genres) != 0 {
		t.Errorf("labels differing in case or spacing must be dropped, got %v", out.Genres)
	}
}

func TestNormalize_PreservesOrderAcrossGroups(t *testing.T) {
	t.Parallel()

	out := DefaultCategoryNormalizer().Normalize(map[string]remote.RawCategoryGroup{
		"2": group("Genre", remote.CategoryValue{ID: "3", Name: "Horror"}),
		"1": group("Thể loại",
			remote.CategoryValue{ID: "2", Name: "Drama"},
			remote.CategoryValue{ID: "1", Name: "Action"},
		),
	})

	checkRefs(t, "genres", out.Genres, []models.CategoryRef{
		{ID: "2", Name: "Drama"},
		{ID: "1", Name: "Action"},
		{ID: "3", Name: "Horror"},
	})
}

func TestNormalize_NumericKeyOrder(t *testing.T) {
	t.Parallel()

	out := DefaultCategoryNormalizer().Normalize(map[string]remote.RawCategoryGroup{
		"10": group("Genres", remote.CategoryValue{ID: "10", Name: "Ten"}),
		"2":  group("Genres", remote.CategoryValue{ID: "2", Name: "Two"}),
		"b":  group("Genres", remote.CategoryValue{ID: "b", Name: "Bee"}),
		"a":  group("Genres", remote.CategoryValue{ID: "a", Name: "Ay"}),
		"1":  group("Genres", remote.CategoryValue{ID: "1", Name: "One"}),
	})

	checkRefs(t, "genres", out.Genres, []models.CategoryRef{
		{ID: "1", Name: "One"},
		{ID: "2", Name: "Two"},
		{ID: "10", Name: "Ten"},
		{ID: "a", Name: "Ay"},
		{ID: "b", Name: "Bee"},
	})
}

func TestCategoryKeyLess(t *testing.T) {
	t.Parallel()

	keys := []string{"b", "10", "01", "2", "", "a", "0", "4294967296", "9"}
	sort.Slice(keys, func(i, j int) bool { return categoryKeyLess(keys[i], keys[j]) })

	want := []string{"0", "2", "9", "10", "", "01", "4294967296", "a", "b"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("expected %q, got %q", want, keys)
		}
	}
}

func TestNormalize_DroppedGroupsUseFixedSeries(t *testing.T) {
	t.Parallel()

	before := testutil.ToFloat64(metrics.CategoryGroupsDropped)
	DefaultCategoryNormalizer().Normalize(map[string]remote.RawCategoryGroup{
		"1": group("Soundtrack"),
		"2": group("Studio"),
		"3": group("anything-the-remote-sends"),
	})

	if delta := testutil.ToFloat64(metrics.CategoryGroupsDropped) - before; delta < 3 {
		t.Errorf("expected at least 3 drops counted, got %v", delta)
	}
	if n := testutil.CollectAndCount(metrics.CategoryGroupsDropped); n != 1 {
		t.Errorf("expected a single series, got %d", n)
	}
}

func TestNormalize_EmptyInput(t *testing.T) {
	t.Parallel()

	out := DefaultCategoryNormalizer().Normalize(nil)
	checkRefs(t, "formats", out.Formats, nil)
	checkRefs(t, "genres", out.Genres, nil)
	checkRefs(t, "years", out.Years, nil)
	checkRefs(t, "countries", out.Countries, nil)
}

func TestNewCategoryNormalizer_CustomLabels(t *testing.T) {
	t.Parallel()

	n := NewCategoryNormalizer(config.CategoryLabelsConfig{
		Genres:    []string{"Kind"},
		Countries: []string{"Kind", "Origin"},
	})
	out := n.Normalize(map[string]remote.RawCategoryGroup{
		"a": group("Kind", remote.CategoryValue{ID: "1", Name: "Action"}),
		"b": group("Origin", remote.CategoryValue{ID: "us", Name: "USA"}),
		"c": group("Genres", remote.CategoryValue{ID: "9", Name: "Ignored"}),
	})

	checkRefs(t, "genres", out.Genres, []models.CategoryRef{{ID: "1", Name: "Action"}})
	checkRefs(t, "countries", out.Countries, []models.CategoryRef{{ID: "us", Name: "USA"}})
}
