// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

package sync

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestLinearDelay(t *testing.T) {
	t.Parallel()

	delay := LinearDelay(time.Second)
	for n, want := range map[uint]time.Duration{1: time.Second, 2: 2 * time.Second, 3: 3 * time.Second} {
		if got := delay(n, nil, nil); got != want {
			t.Errorf("retry %d: expected %v, got %v", n, want, got)
		}
	}
}

func TestWithRetry(t *testing.T) {
	t.Parallel()

	transient := errors.New("connection reset")

	tests := []struct {
		name      string
		attempts  int
		failures  int
		failWith  error
		wantCalls int
		wantErr   error
	}{
		{name: "first try succeeds", attempts: 3, failures: 0, wantCalls: 1},
		{name: "succeeds on last attempt", attempts: 3, failures: 2, failWith: transient, wantCalls: 3},
		{name: "exhausted", attempts: 3, failures: 5, failWith: transient, wantCalls: 3, wantErr: transient},
		{name: "not found is not retried", attempts: 3, failures: 5, failWith: fmt.Errorf("%w: x", ErrRemoteNotFound), wantCalls: 1, wantErr: ErrRemoteNotFound},
		{name: "zero attempts still calls once", attempts: 0, failures: 5, failWith: transient, wantCalls: 1, wantErr: transient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			calls := 0
			got, err := withRetry(context.Background(), RetryPolicy{Attempts: tt.attempts, BaseDelay: time.Millisecond}, "test",
				func() (int, error) {
					calls++
					if calls <= tt.failures {
						return 0, tt.failWith
					}
					return 42, nil
				})

			if calls != tt.wantCalls {
				t.Errorf("calls: expected %d, got %d", tt.wantCalls, calls)
			}
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != 42 {
				t.Errorf("result: expected 42, got %d", got)
			}
		})
	}
}

func TestWithRetry_BackoffGrowsLinearly(t *testing.T) {
	t.Parallel()

	base := 20 * time.Millisecond
	var stamps []time.Time

	_, _ = withRetry(context.Background(), RetryPolicy{Attempts: 3, BaseDelay: base}, "test", func() (struct{}, error) {
		stamps = append(stamps, time.Now())
		return struct{}{}, errors.New("boom")
	})

	if len(stamps) != 3 {
		t.Fatalf("expected 3 attempts, got %d", len(stamps))
	}
	if gap := stamps[1].Sub(stamps[0]); gap < base {
		t.Errorf("first retry waited %v, expected at least %v", gap, base)
	}
	if gap := stamps[2].Sub(stamps[1]); gap < 2*base {
		t.Errorf("second retry waited %v, expected at least %v", gap, 2*base)
	}
}

func TestWithRetry_StopsOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := withRetry(ctx, RetryPolicy{Attempts: 5, BaseDelay: time.Hour}, "test", func() (int, error) {
		calls++
		cancel()
		return 0, errors.New("boom")
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Errorf("calls: expected 1, got %d", calls)
	}
}
