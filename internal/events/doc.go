// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

// Package events carries sync notifications over an in-process watermill
// GoChannel.
//
// Bus implements sync.EventPublisher: the Manager publishes one
// catalog.entry.synced message per upserted entry and one
// catalog.sync.completed message per run. Messages carry the run id as
// watermill correlation id. Forwarder relays both topics to the websocket
// hub. Delivery is best effort; nothing is persisted.
package events
