// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

package events

import (
	"time"

	"github.com/leemjnnkdzuy/rophim/internal/models"
	catalogsync "github.com/leemjnnkdzuy/rophim/internal/sync"
)

// Topics on the in-process bus.
const (
	TopicSyncCompleted = "catalog.sync.completed"
	TopicEntrySynced   = "catalog.entry.synced"
)

// Metadata keys set on every message.
const (
	MetadataEventType = "event_type"
	MetadataRunID     = "run_id"
)

// SyncCompleted is published once per finished run.
type SyncCompleted struct {
	RunID      string    `json:"run_id"`
	StopReason string    `json:"stop_reason"`
	Films      int       `json:"films"`
	TotalPages int       `json:"total_pages"`
	Skipped    int       `json:"skipped"`
	Missing    int       `json:"missing"`
	StartedAt  time.Time `json:"started_at"`
	DurationMs int64     `json:"duration_ms"`
	Error      string    `json:"error,omitempty"`
}

// NewSyncCompleted summarizes a run report.
func NewSyncCompleted(r *catalogsync.Report) SyncCompleted {
	return SyncCompleted{
		RunID:      r.RunID,
		StopReason: string(r.StopReason),
		Films:      len(r.Films),
		TotalPages: r.TotalPages,
		Skipped:    r.Skipped,
		Missing:    r.Missing,
		StartedAt:  r.StartedAt,
		DurationMs: r.Duration.Milliseconds(),
		Error:      r.Error,
	}
}

// EntrySynced is published for every upserted entry.
type EntrySynced struct {
	RunID string `json:"run_id,omitempty"`
	models.EntrySummary
}
