// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

// Package remote contains the wire types of the third-party catalog API.
//
// Two endpoints are consumed:
//
//	GET {listing_url}?page=N   recently updated titles, newest first
//	GET {detail_url}/{slug}    full record for one title
//
// Only the fields the sync engine reads are modelled. Category groups arrive
// as a map keyed by unstable identifiers and are classified by group name.
package remote
