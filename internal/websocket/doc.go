// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

/*
Package websocket pushes catalog sync notifications to admin dashboards.

The Hub runs as a supervised service and fans each broadcast out to every
connected Client. Frames are JSON:

	{"type": "sync_completed", "data": {"run_id": "...", "stop_reason": "watermark_reached", ...}}
	{"type": "entry_synced",   "data": {"slug": "...", "title": "...", "poster_url": "...", "modified_at": "..."}}

Clients may send {"type":"ping"} and receive {"type":"pong"}. A client that
falls behind (full send buffer) is disconnected rather than slowing the hub.
*/
package websocket
