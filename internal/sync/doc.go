// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

/*
Package sync pulls newly published or modified titles from the third-party
catalog API and merges them into the local catalog store.

Key Components:

  - Manager: the run orchestrator (watermark, page walk, stop reasons, report)
  - EvaluateStop: the stopping policy deciding when the walk has caught up
  - Resolver: per-item freshness check, detail fetch, normalization and upsert
  - CategoryNormalizer: classifies raw category groups into four buckets
  - CatalogClient: HTTP client for the listing and detail endpoints
  - CircuitBreakerClient: gobreaker wrapper around any RemoteCatalog
  - withRetry: bounded retry with linear backoff (retry-go)

Run Flow:

 1. Resolve the watermark (most recently modified stored entry) once
 2. Fetch listing page N through the retry wrapper
 3. For each item, in order: stop at the watermark, or resolve it
 4. Pace 100ms between resolved items and 500ms between pages (configurable)
 5. Stop on watermark, empty/last page, max_pages, fetch failure or cancellation

Remote failures never fail a run: they end it early with partial results.
Only local store failures are returned as errors.

Usage Example:

	client := sync.NewCatalogClient(&cfg.Catalog)
	mgr := sync.NewManager(&cfg.Sync, store, sync.NewCircuitBreakerClient(client, sync.BreakerSettings{}))

	report, err := mgr.TriggerSync(ctx)
	if errors.Is(err, sync.ErrStoreFailure) {
	    // local persistence failed
	}
	fmt.Println(report.StopReason, len(report.Films))

Thread Safety:

Runs are strictly sequential internally. Concurrent TriggerSync calls join
the run already in flight instead of starting a second walk.
*/
package sync
