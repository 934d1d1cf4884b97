// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/leemjnnkdzuy/rophim/internal/auth"
	"github.com/leemjnnkdzuy/rophim/internal/logging"
	"github.com/leemjnnkdzuy/rophim/internal/models"
	catalogsync "github.com/leemjnnkdzuy/rophim/internal/sync"
)

// SyncTriggerResponse is the body of POST /api/v1/admin/catalog/sync.
// Films is always present on success, as [] when nothing changed.
type SyncTriggerResponse struct {
	Success    bool                  `json:"success"`
	Message    string                `json:"message"`
	Films      []models.EntrySummary `json:"films"`
	TotalPages int                   `json:"totalPages"`
	StopReason string                `json:"stopReason,omitempty"`
	RunID      string                `json:"runId,omitempty"`
	Error      string                `json:"error,omitempty"`
}

// syncFailureResponse is the 500 body; it carries no films.
type syncFailureResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Error      string `json:"error"`
	TotalPages int    `json:"totalPages,omitempty"`
	StopReason string `json:"stopReason,omitempty"`
	RunID      string `json:"runId,omitempty"`
}

// SyncStatus is the data of GET /api/v1/admin/catalog/sync/status.
type SyncStatus struct {
	Running    bool                `json:"running"`
	LastReport *catalogsync.Report `json:"last_report,omitempty"`
}

// TriggerCatalogSync runs one catalog sync and answers when it is done.
// A trigger that arrives while a run is in flight waits for that run and
// gets its result.
//
// The run is detached from the request context: a client that disconnects
// does not abort a walk that may be shared with other callers. sync.run_timeout
// bounds it instead.
func (h *Handler) TriggerCatalogSync(w http.ResponseWriter, r *http.Request) {
	log := logging.Ctx(r.Context())
	if subject := auth.SubjectFromContext(r.Context()); subject != nil {
		log.Info().Str("user", subject.Username).Msg("Catalog sync requested")
	}

	report, err := h.syncer.TriggerSync(context.WithoutCancel(r.Context()))
	if err != nil {
		resp := syncFailureResponse{
			Success: false,
			Message: "Catalog sync failed: local store error",
			Error:   err.Error(),
		}
		if report != nil {
			resp.TotalPages = report.TotalPages
			resp.StopReason = string(report.StopReason)
			resp.RunID = report.RunID
		}
		writeJSON(w, http.StatusInternalServerError, resp)
		return
	}

	films := report.Films
	if films == nil {
		films = []models.EntrySummary{}
	}
	writeJSON(w, http.StatusOK, SyncTriggerResponse{
		Success:    true,
		Message:    syncMessage(report),
		Films:      films,
		TotalPages: report.TotalPages,
		StopReason: string(report.StopReason),
		RunID:      report.RunID,
	})
}

func syncMessage(report *catalogsync.Report) string {
	return fmt.Sprintf("Catalog sync finished: %d films updated across %d pages (%s)",
		len(report.Films), report.TotalPages, report.StopReason)
}

// CatalogSyncStatus reports whether a run is in flight and the last report.
func (h *Handler) CatalogSyncStatus(w http.ResponseWriter, _ *http.Request) {
	start := time.Now()
	respondJSON(w, http.StatusOK, SyncStatus{
		Running:    h.syncer.IsSyncing(),
		LastReport: h.syncer.LastReport(),
	}, start)
}
