// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/leemjnnkdzuy/rophim/internal/models"
)

// HealthLive answers 200 while the process is up, whatever its dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	start := time.Now()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	}, start)
}

// HealthReady answers 200 only when the catalog store responds.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), h.readyTimeout)
	defer cancel()
	if err := h.store.Ping(ctx); err != nil {
		respondError(w, r, http.StatusServiceUnavailable, &models.APIError{
			Code:    codeUnavailable,
			Message: "Catalog store is not reachable",
		}, err)
		return
	}

	data := map[string]interface{}{
		"ready":   true,
		"syncing": h.syncer.IsSyncing(),
	}
	if h.clients != nil {
		data["websocket_clients"] = h.clients.GetClientCount()
	}
	if last := h.syncer.LastReport(); last != nil {
		data["last_sync"] = last.StartedAt
		data["last_stop_reason"] = last.StopReason
	}
	respondJSON(w, http.StatusOK, data, start)
}
