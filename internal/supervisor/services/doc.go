// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

// Package services adapts blocking components to suture.Service.
//
// The WebSocket hub and the event forwarder already expose
// Serve(context.Context) error and are added to the tree directly.
package services
