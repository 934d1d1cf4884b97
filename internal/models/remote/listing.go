// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

package remote

import (
	"time"
)

// Timestamp wraps the {"time": "..."} objects the remote API uses for dates.
type Timestamp struct {
	Time time.Time `json:"time"`
}

// ListResponse is one page of the recently updated listing.
type ListResponse struct {
	Status     bool       `json:"status"`
	Items      []ListItem `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// Pagination is informational only; the walker stops on an empty page.
type Pagination struct {
	TotalItems     int `json:"totalItems"`
	TotalItemsPage int `json:"totalItemsPerPage"`
	CurrentPage    int `json:"currentPage"`
	TotalPages     int `json:"totalPages"`
}

// ListItem is the lightweight listing record used to decide whether to fetch detail.
type ListItem struct {
	ID         string    `json:"_id"`
	Slug       string    `json:"slug"`
	Name       string    `json:"name"`
	OriginName string    `json:"origin_name"`
	ThumbURL   string    `json:"thumb_url"`
	PosterURL  string    `json:"poster_url"`
	Year       int       `json:"year"`
	Modified   Timestamp `json:"modified"`
}

// ModifiedAt returns the remote modification time of the item.
func (i *ListItem) ModifiedAt() time.Time {
	return i.Modified.Time
}
