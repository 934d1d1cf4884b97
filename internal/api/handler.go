// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

package api

import (
	"context"
	"time"

	"github.com/leemjnnkdzuy/rophim/internal/catalog"
	catalogsync "github.com/leemjnnkdzuy/rophim/internal/sync"
)

// SyncRunner is the part of *sync.Manager the handlers use.
type SyncRunner interface {
	TriggerSync(ctx context.Context) (*catalogsync.Report, error)
	IsSyncing() bool
	LastReport() *catalogsync.Report
}

// Handler serves the catalog and sync endpoints.
type Handler struct {
	store     catalog.Store
	syncer    SyncRunner
	clients   ClientCounter
	startTime time.Time

	// readyTimeout bounds the store ping in the readiness probe.
	readyTimeout time.Duration
}

// ClientCounter reports connected WebSocket clients; *websocket.Hub
// implements it. Optional.
type ClientCounter interface {
	GetClientCount() int
}

// NewHandler creates the API handler. clients may be nil.
func NewHandler(store catalog.Store, syncer SyncRunner, clients ClientCounter) *Handler {
	return &Handler{
		store:        store,
		syncer:       syncer,
		clients:      clients,
		startTime:    time.Now(),
		readyTimeout: 2 * time.Second,
	}
}
