// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

package sync

import (
	"github.com/leemjnnkdzuy/rophim/internal/models"
	"github.com/leemjnnkdzuy/rophim/internal/models/remote"
)

// Action is what the walker does with one listing item.
type Action int

const (
	// ActionResolve hands the item to the resolver.
	ActionResolve Action = iota

	// ActionStop ends the walk: the item is already known.
	ActionStop
)

func (a Action) String() string {
	if a == ActionStop {
		return "stop"
	}
	return "resolve"
}

// Decision is the stopping policy verdict for one item.
type Decision struct {
	Action Action
	Reason string
}

// EvaluateStop decides whether the walk has caught up with the store.
//
// The walk stops at the watermark entry itself or at the first item whose
// modification time is not strictly after the watermark. With no watermark
// (empty store) every item is resolved. The listing is assumed to be
// newest-first; the walk does not verify that.
func EvaluateStop(item *remote.ListItem, wm *models.Watermark) Decision {
	if wm == nil {
		return Decision{Action: ActionResolve, Reason: "no watermark"}
	}
	if item.Slug == wm.Slug {
		return Decision{Action: ActionStop, Reason: "watermark entry reached"}
	}
	if !item.ModifiedAt().After(wm.ModifiedAt) {
		return Decision{Action: ActionStop, Reason: "item not newer than watermark"}
	}
	return Decision{Action: ActionResolve, Reason: "newer than watermark"}
}
