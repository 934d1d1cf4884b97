// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

package sync

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrRemoteNotFound marks a confirmed remote 404. It is never retried.
	ErrRemoteNotFound = errors.New("remote catalog: not found")

	// ErrStoreFailure matches every *StoreError via errors.Is.
	ErrStoreFailure = errors.New("catalog store failure")
)

// HTTPStatusError is a non-success response from the remote catalog.
type HTTPStatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("%s request failed with status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// StoreError is a failure of the local catalog store. It is the only error
// that fails a sync run.
type StoreError struct {
	Op   string
	Slug string
	Err  error
}

func (e *StoreError) Error() string {
	if e.Slug != "" {
		return fmt.Sprintf("catalog store %s %s: %v", e.Op, e.Slug, e.Err)
	}
	return fmt.Sprintf("catalog store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrStoreFailure) match any StoreError.
func (e *StoreError) Is(target error) bool {
	return target == ErrStoreFailure
}

// isRetryable reports whether a remote failure is worth another attempt.
func isRetryable(err error) bool {
	switch {
	case errors.Is(err, ErrRemoteNotFound):
		return false
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	}
	return true
}

// isCanceled reports whether err comes from the run context ending.
func isCanceled(ctx context.Context, err error) bool {
	return ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded))
}
