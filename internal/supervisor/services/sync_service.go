// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

package services

import (
	"context"
	"fmt"
)

// SyncScheduler is the lifecycle of *sync.Manager: Start launches the
// periodic and startup runs, Stop waits for them.
type SyncScheduler interface {
	Start(ctx context.Context) error
	Stop() error
}

// SyncSchedulerService adapts the catalog sync scheduler to suture.
//
// On-demand runs triggered over HTTP are not owned by this service; they
// keep running through a restart and are joined by the next trigger.
type SyncSchedulerService struct {
	scheduler SyncScheduler
}

func NewSyncSchedulerService(scheduler SyncScheduler) *SyncSchedulerService {
	return &SyncSchedulerService{scheduler: scheduler}
}

// Serve starts the scheduler, blocks until ctx is done, then stops it.
func (s *SyncSchedulerService) Serve(ctx context.Context) error {
	if err := s.scheduler.Start(ctx); err != nil {
		return fmt.Errorf("sync scheduler start failed: %w", err)
	}
	<-ctx.Done()
	if err := s.scheduler.Stop(); err != nil {
		return fmt.Errorf("sync scheduler stop failed: %w", err)
	}
	return ctx.Err()
}

func (s *SyncSchedulerService) String() string {
	return "catalog-sync-scheduler"
}
