// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

package remote

// DetailResponse wraps a single title record.
type DetailResponse struct {
	Status  string     `json:"status"`
	Message string     `json:"msg"`
	Data    DetailData `json:"data"`
}

type DetailData struct {
	Item DetailItem `json:"item"`
}

// DetailItem is the full remote record for one slug.
type DetailItem struct {
	ID             string    `json:"_id"`
	Slug           string    `json:"slug"`
	Name           string    `json:"name"`
	OriginName     string    `json:"origin_name"`
	Content        string    `json:"content"`
	Type           string    `json:"type"`
	Status         string    `json:"status"`
	ThumbURL       string    `json:"thumb_url"`
	PosterURL      string    `json:"poster_url"`
	TrailerURL     string    `json:"trailer_url"`
	Time           string    `json:"time"` // runtime, e.g. "120 phút"
	EpisodeCurrent string    `json:"episode_current"`
	EpisodeTotal   string    `json:"episode_total"`
	Quality        string    `json:"quality"`
	Lang           string    `json:"lang"`
	Year           int       `json:"year"`
	Director       []string  `json:"director"`
	Actor          []string  `json:"actor"`
	Created        Timestamp `json:"created"`
	Modified       Timestamp `json:"modified"`

	// Category maps arbitrary keys to raw groups.
	Category map[string]RawCategoryGroup `json:"category"`
}

// RawCategoryGroup is one loosely typed category grouping.
type RawCategoryGroup struct {
	Group CategoryGroupHeader `json:"group"`
	List  []CategoryValue     `json:"list"`
}

type CategoryGroupHeader struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CategoryValue struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
