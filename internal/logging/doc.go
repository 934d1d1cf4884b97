// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

// Package logging is the zerolog-based structured logger used across the
// service.
//
// # Setup
//
//	logging.Init(logging.Config{
//	    Level:     cfg.Logging.Level,
//	    Format:    cfg.Logging.Format,
//	    Caller:    cfg.Logging.Caller,
//	    Timestamp: true,
//	})
//
// Until Init is called the package logs JSON at info level to stderr.
//
// # Context
//
// A sync run stores its run id as the correlation id; HTTP handlers store
// the request id. Ctx attaches both to every entry:
//
//	ctx = logging.ContextWithCorrelationID(ctx, runID)
//	logging.Ctx(ctx).Info().Int("page", page).Msg("Listing page fetched")
//
// # slog
//
// Libraries that take an *slog.Logger (the suture supervisor via
// sutureslog, the watermill event bus) get one from NewSlogLogger, which
// writes through the same zerolog logger.
//
// Always finish an event with Msg or Send; an unfinished event is dropped.
package logging
