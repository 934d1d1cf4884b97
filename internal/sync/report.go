// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

package sync

import (
	"time"

	"github.com/leemjnnkdzuy/rophim/internal/models"
)

// StopReason is the terminal state of a sync run.
type StopReason string

const (
	// StopWatermarkReached: the walk caught up with already known data.
	StopWatermarkReached StopReason = "watermark_reached"

	// StopListingExhausted: the remote listing has no more pages.
	StopListingExhausted StopReason = "listing_exhausted"

	// StopSafetyBound: max_pages pages were walked without catching up.
	StopSafetyBound StopReason = "safety_bound_reached"

	// StopRecoverableFetchFailure: a page or detail fetch failed after retries.
	StopRecoverableFetchFailure StopReason = "recoverable_fetch_failure"

	// StopCanceled: the run context ended (shutdown or run timeout).
	StopCanceled StopReason = "canceled"

	// StopFatalError: the local store failed. The run returns an error.
	StopFatalError StopReason = "fatal_error"
)

// Report is the result of one sync run.
type Report struct {
	RunID      string                `json:"run_id"`
	Films      []models.EntrySummary `json:"films"`
	TotalPages int                   `json:"total_pages"`
	StopReason StopReason            `json:"stop_reason"`
	Skipped    int                   `json:"skipped"`
	Missing    int                   `json:"missing"`
	StartedAt  time.Time             `json:"started_at"`
	Duration   time.Duration         `json:"duration"`

	// Watermark is the watermark the run started from; nil for an empty store.
	Watermark *models.Watermark `json:"watermark,omitempty"`

	// Error holds the fatal store error message, if any.
	Error string `json:"error,omitempty"`
}

// Succeeded reports whether the run ended without a local store failure.
func (r *Report) Succeeded() bool {
	return r.StopReason != StopFatalError
}
