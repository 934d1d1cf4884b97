// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/leemjnnkdzuy/rophim/internal/models"
)

// ResolveWatermark returns the (slug, modified_at) of the most recently
// modified entry, or nil when the store is empty.
func ResolveWatermark(ctx context.Context, store Store) (*models.Watermark, error) {
	latest, err := store.Latest(ctx)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve watermark: %w", err)
	}

	wm := latest.Watermark()
	return &wm, nil
}
