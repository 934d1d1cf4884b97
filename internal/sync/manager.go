// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

/*
manager.go - Sync Orchestrator

The Manager runs the incremental catalog walk:

	INIT -> WALKING(page=1) -> [RESOLVING item]* -> WALKING(page+1) -> ... -> STOPPED(reason) -> DONE

A run resolves the watermark once, then walks the newest-first listing page by
page. Every item goes through EvaluateStop; candidates go to the Resolver.
Pages and items are processed strictly in listing order, one at a time.

Stop reasons:
  - watermark_reached: EvaluateStop fired
  - listing_exhausted: a page came back empty or was the last page
  - safety_bound_reached: max_pages pages were walked
  - recoverable_fetch_failure: a page or detail fetch failed after retries
  - canceled: the run context ended
  - fatal_error: the local store failed; the only outcome returned as an error

Concurrent triggers share one in-flight run (singleflight). An optional
ticker loop started with Start runs the same walk periodically.
*/

//nolint:staticcheck // File documentation, not package doc
package sync

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/leemjnnkdzuy/rophim/internal/catalog"
	"github.com/leemjnnkdzuy/rophim/internal/config"
	"github.com/leemjnnkdzuy/rophim/internal/logging"
	"github.com/leemjnnkdzuy/rophim/internal/metrics"
	"github.com/leemjnnkdzuy/rophim/internal/models"
)

const syncFlightKey = "catalog-sync"

// EventPublisher receives sync notifications. Implemented by events.Bus.
type EventPublisher interface {
	PublishEntrySynced(ctx context.Context, summary models.EntrySummary) error
	PublishSyncCompleted(ctx context.Context, report *Report) error
}

// Manager orchestrates catalog synchronization runs.
type Manager struct {
	cfg      *config.SyncConfig
	store    catalog.Store
	remote   RemoteCatalog
	resolver *Resolver

	group   singleflight.Group
	syncing atomic.Bool

	mu         sync.RWMutex
	lastReport *Report
	publisher  EventPublisher
	running    bool
	stopChan   chan struct{}
	wg         sync.WaitGroup

	// sleep waits between remote calls; replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewManager creates a sync manager over store and the remote catalog.
func NewManager(cfg *config.SyncConfig, store catalog.Store, rc RemoteCatalog) *Manager {
	policy := RetryPolicy{Attempts: cfg.RetryAttempts, BaseDelay: cfg.RetryBaseDelay}

	logging.Info().
		Int("max_pages", cfg.MaxPages).
		Int("retry_attempts", cfg.RetryAttempts).
		Dur("retry_base_delay", cfg.RetryBaseDelay).
		Dur("inter_item_delay", cfg.InterItemDelay).
		Dur("inter_page_delay", cfg.InterPageDelay).
		Dur("interval", cfg.Interval).
		Msg("Sync manager config loaded")

	return &Manager{
		cfg:      cfg,
		store:    store,
		remote:   rc,
		resolver: NewResolver(store, rc, policy, NewCategoryNormalizer(cfg.CategoryLabels)),
		stopChan: make(chan struct{}),
		sleep:    sleepContext,
	}
}

// SetEventPublisher sets the optional event publisher. nil disables publishing.
func (m *Manager) SetEventPublisher(publisher EventPublisher) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.publisher = publisher
}

// Start begins the periodic sync loop when sync.interval is set, and an
// initial run when sync.on_startup is set.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return fmt.Errorf("sync manager is already running")
	}
	m.running = true
	m.stopChan = make(chan struct{})
	m.mu.Unlock()

	logging.Info().Msg("Starting sync manager...")

	if m.cfg.OnStartup {
		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			if _, err := m.TriggerSync(ctx); err != nil {
				logging.Warn().Err(err).Msg("Initial sync failed (will retry)")
			}
		}()
	}

	if m.cfg.Interval > 0 {
		m.wg.Add(1)
		go m.syncLoop(ctx)
		logging.Info().Dur("interval", m.cfg.Interval).Msg("Periodic catalog sync enabled")
	} else {
		logging.Info().Msg("Periodic catalog sync disabled, runs are triggered on demand")
	}
	return nil
}

// Stop ends the periodic loop and waits for background runs to finish.
func (m *Manager) Stop() error {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return fmt.Errorf("sync manager is not running")
	}
	m.running = false
	stop := m.stopChan
	m.mu.Unlock()

	logging.Info().Msg("Stopping sync manager...")
	close(stop)
	m.wg.Wait()
	logging.Info().Msg("Sync manager stopped")
	return nil
}

func (m *Manager) syncLoop(ctx context.Context) {
	defer m.wg.Done()

	m.mu.RLock()
	stop := m.stopChan
	m.mu.RUnlock()

	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			if _, err := m.TriggerSync(ctx); err != nil {
				logging.Error().Err(err).Msg("Scheduled sync failed")
			}
		}
	}
}

// IsSyncing reports whether a run is in flight.
func (m *Manager) IsSyncing() bool {
	return m.syncing.Load()
}

// LastReport returns the report of the most recent finished run, or nil.
func (m *Manager) LastReport() *Report {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastReport
}

// TriggerSync runs one sync, or joins the run already in flight.
//
// The report is always returned. The error is non-nil only for a local
// store failure (errors.Is(err, ErrStoreFailure)).
func (m *Manager) TriggerSync(ctx context.Context) (*Report, error) {
	v, err, shared := m.group.Do(syncFlightKey, func() (interface{}, error) {
		return m.run(ctx)
	})
	if shared {
		logging.Ctx(ctx).Debug().Msg("Joined in-flight catalog sync")
	}
	report, _ := v.(*Report)
	return report, err
}

// run executes one full walk.
func (m *Manager) run(ctx context.Context) (*Report, error) {
	m.syncing.Store(true)
	metrics.SyncInProgress.Set(1)
	defer func() {
		m.syncing.Store(false)
		metrics.SyncInProgress.Set(0)
	}()

	if m.cfg.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.cfg.RunTimeout)
		defer cancel()
	}

	report := &Report{
		RunID:     uuid.New().String(),
		Films:     []models.EntrySummary{},
		StartedAt: time.Now(),
	}
	ctx = logging.ContextWithCorrelationID(ctx, report.RunID)
	log := logging.Ctx(ctx)

	log.Info().Msg("Starting catalog sync")

	err := m.walk(ctx, report)
	report.Duration = time.Since(report.StartedAt)
	if err != nil {
		report.StopReason = StopFatalError
		report.Error = err.Error()
		log.Error().Err(err).Int("films", len(report.Films)).Msg("Catalog sync failed")
	} else {
		log.Info().
			Str("stop_reason", string(report.StopReason)).
			Int("films", len(report.Films)).
			Int("pages", report.TotalPages).
			Int("skipped", report.Skipped).
			Int("missing", report.Missing).
			Dur("duration", report.Duration).
			Msg("Catalog sync completed")
	}

	metrics.RecordSyncRun(string(report.StopReason), report.Duration, len(report.Films), report.TotalPages)

	m.mu.Lock()
	m.lastReport = report
	publisher := m.publisher
	m.mu.Unlock()

	if publisher != nil {
		if perr := publisher.PublishSyncCompleted(context.WithoutCancel(ctx), report); perr != nil {
			log.Warn().Err(perr).Msg("Failed to publish sync completion")
		}
	}

	return report, err
}

// walk drives the state machine and fills report. Only store failures are returned.
func (m *Manager) walk(ctx context.Context, report *Report) error {
	wm, err := catalog.ResolveWatermark(ctx, m.store)
	if err != nil {
		if isCanceled(ctx, err) {
			report.StopReason = StopCanceled
			return nil
		}
		return &StoreError{Op: "watermark", Err: err}
	}
	report.Watermark = wm

	log := logging.Ctx(ctx)
	if wm != nil {
		log.Debug().Str("slug", wm.Slug).Time("modified_at", wm.ModifiedAt).Msg("Resolved watermark")
	} else {
		log.Debug().Msg("Empty catalog, walking without watermark")
	}

	policy := RetryPolicy{Attempts: m.cfg.RetryAttempts, BaseDelay: m.cfg.RetryBaseDelay}

	for page := 1; page <= m.cfg.MaxPages; page++ {
		if page > 1 {
			if err := m.sleep(ctx, m.cfg.InterPageDelay); err != nil {
				report.StopReason = StopCanceled
				return nil
			}
		}

		listing, err := withRetry(ctx, policy, "listing", func() (*ListingPage, error) {
			return m.remote.ListRecent(ctx, page)
		})
		if err != nil {
			report.StopReason = m.fetchFailureReason(ctx, err)
			log.Warn().Err(err).Int("page", page).Msg("Listing page fetch failed, ending run")
			return nil
		}
		report.TotalPages = page

		if len(listing.Items) == 0 {
			report.StopReason = StopListingExhausted
			return nil
		}

		stop, err := m.walkPage(ctx, listing, wm, report)
		if err != nil || stop {
			return err
		}

		if listing.Last {
			report.StopReason = StopListingExhausted
			return nil
		}
	}

	report.StopReason = StopSafetyBound
	log.Warn().Int("max_pages", m.cfg.MaxPages).Msg("Safety bound reached before catching up with the watermark")
	return nil
}

// walkPage processes the items of one page in order. It reports whether the run must stop.
func (m *Manager) walkPage(ctx context.Context, listing *ListingPage, wm *models.Watermark, report *Report) (bool, error) {
	log := logging.Ctx(ctx)

	for i := range listing.Items {
		item := &listing.Items[i]

		if d := EvaluateStop(item, wm); d.Action == ActionStop {
			log.Debug().Str("slug", item.Slug).Str("reason", d.Reason).Msg("Caught up with watermark")
			report.StopReason = StopWatermarkReached
			return true, nil
		}

		res, err := m.resolver.Resolve(ctx, item)
		if err != nil {
			if isCanceled(ctx, err) {
				report.StopReason = StopCanceled
				return true, nil
			}
			return true, err
		}

		switch res.Outcome {
		case OutcomeUpserted:
			summary := res.Entry.Summary()
			report.Films = append(report.Films, summary)
			metrics.SyncFilmsUpserted.Inc()
			m.publishEntry(ctx, summary)
		case OutcomeSkipped:
			report.Skipped++
		case OutcomeMissing:
			report.Missing++
		case OutcomeFetchFailed:
			report.StopReason = m.fetchFailureReason(ctx, res.Err)
			log.Warn().Err(res.Err).Str("slug", item.Slug).Msg("Detail fetch failed, ending run")
			return true, nil
		}

		if res.RemoteCalled && i < len(listing.Items)-1 {
			if err := m.sleep(ctx, m.cfg.InterItemDelay); err != nil {
				report.StopReason = StopCanceled
				return true, nil
			}
		}
	}
	return false, nil
}

func (m *Manager) fetchFailureReason(ctx context.Context, err error) StopReason {
	if isCanceled(ctx, err) {
		return StopCanceled
	}
	return StopRecoverableFetchFailure
}

func (m *Manager) publishEntry(ctx context.Context, summary models.EntrySummary) {
	m.mu.RLock()
	publisher := m.publisher
	m.mu.RUnlock()

	if publisher == nil {
		return
	}
	if err := publisher.PublishEntrySynced(ctx, summary); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("slug", summary.Slug).Msg("Failed to publish entry event")
	}
}

// sleepContext waits for d or until ctx ends.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
