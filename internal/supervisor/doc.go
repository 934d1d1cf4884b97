// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

/*
Package supervisor runs the long-lived parts of the server under a suture v4
supervisor tree.

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddSyncService(services.NewSyncSchedulerService(manager))
	tree.AddMessagingService(hub)
	tree.AddMessagingService(events.NewForwarder(bus, hub))
	tree.AddAPIService(services.NewHTTPServerService(srv, cfg.Server.ShutdownTimeout))

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree stopped")
	}

A service that returns from Serve while its context is still live is
restarted with backoff. Returning suture.ErrDoNotRestart ends it for good.
Supervisor events (restarts, backoff, timeouts) are logged through
sutureslog, which writes to the zerolog logger via logging.NewSlogLogger.

See the services subpackage for the HTTP server and sync scheduler adapters.
*/
package supervisor
