// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

package sync

import (
	"sort"
	"strconv"

	"github.com/leemjnnkdzuy/rophim/internal/config"
	"github.com/leemjnnkdzuy/rophim/internal/logging"
	"github.com/leemjnnkdzuy/rophim/internal/metrics"
	"github.com/leemjnnkdzuy/rophim/internal/models"
	"github.com/leemjnnkdzuy/rophim/internal/models/remote"
)

// categoryBucket is one of the four fixed classifications.
type categoryBucket int

const (
	bucketFormat categoryBucket = iota
	bucketGenre
	bucketYear
	bucketCountry
)

// CategoryNormalizer classifies raw remote category groups by exact label match.
// Groups with an unknown label are dropped.
type CategoryNormalizer struct {
	labels map[string]categoryBucket
}

// NewCategoryNormalizer builds a normalizer from configured labels. When a
// label is listed under two buckets the earlier bucket (format, genre, year,
// country) wins.
func NewCategoryNormalizer(cfg config.CategoryLabelsConfig) *CategoryNormalizer {
	n := &CategoryNormalizer{labels: make(map[string]categoryBucket)}
	for bucket, labels := range [][]string{cfg.Formats, cfg.Genres, cfg.Years, cfg.Countries} {
		for _, label := range labels {
			if _, taken := n.labels[label]; !taken {
				n.labels[label] = categoryBucket(bucket)
			}
		}
	}
	return n
}

// DefaultCategoryNormalizer recognizes the source-locale labels and their English aliases.
func DefaultCategoryNormalizer() *CategoryNormalizer {
	return NewCategoryNormalizer(config.DefaultCategoryLabels())
}

// Normalize maps raw groups into the four buckets. Keys are ignored except to
// fix the visiting order; list order and id/name pairs are kept verbatim.
func (n *CategoryNormalizer) Normalize(raw map[string]remote.RawCategoryGroup) models.Categories {
	out := models.Categories{
		Formats:   []models.CategoryRef{},
		Genres:    []models.CategoryRef{},
		Years:     []models.CategoryRef{},
		Countries: []models.CategoryRef{},
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return categoryKeyLess(keys[i], keys[j]) })

	for _, k := range keys {
		group := raw[k]
		bucket, ok := n.labels[group.Group.Name]
		if !ok {
			metrics.CategoryGroupsDropped.Inc()
			logging.Debug().Str("label", group.Group.Name).Msg("Dropping unrecognized category group")
			continue
		}

		refs := make([]models.CategoryRef, 0, len(group.List))
		for _, v := range group.List {
			refs = append(refs, models.CategoryRef{ID: v.ID, Name: v.Name})
		}

		switch bucket {
		case bucketFormat:
			out.Formats = append(out.Formats, refs...)
		case bucketGenre:
			out.Genres = append(out.Genres, refs...)
		case bucketYear:
			out.Years = append(out.Years, refs...)
		case bucketCountry:
			out.Countries = append(out.Countries, refs...)
		}
	}

	return out
}

// categoryKeyLess orders group keys the way the source API's JSON objects
// enumerate them: integer keys first in numeric order, then the rest
// lexically.
func categoryKeyLess(a, b string) bool {
	ai, aNum := integerKey(a)
	bi, bNum := integerKey(b)
	switch {
	case aNum && bNum:
		return ai < bi
	case aNum != bNum:
		return aNum
	default:
		return a < b
	}
}

// integerKey accepts canonical non-negative integers only, so "01" and "+1"
// sort as strings.
func integerKey(k string) (uint64, bool) {
	if k == "" || (len(k) > 1 && k[0] == '0') {
		return 0, false
	}
	n, err := strconv.ParseUint(k, 10, 32)
	if err != nil {
		return 0, false
	}
	return n, true
}
