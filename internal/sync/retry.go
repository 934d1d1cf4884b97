// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

package sync

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/leemjnnkdzuy/rophim/internal/logging"
	"github.com/leemjnnkdzuy/rophim/internal/metrics"
)

// RetryPolicy bounds retries of a single remote call.
type RetryPolicy struct {
	// Attempts is the total number of tries, first call included.
	Attempts int

	// BaseDelay is multiplied by the retry index: retry i waits i*BaseDelay.
	BaseDelay time.Duration
}

// DefaultRetryPolicy is 3 attempts with 1s, 2s waits.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: 3, BaseDelay: time.Second}
}

func (p RetryPolicy) attempts() uint {
	if p.Attempts < 1 {
		return 1
	}
	return uint(p.Attempts)
}

// LinearDelay waits n*base before retry n. retry-go numbers retries from 1.
func LinearDelay(base time.Duration) retry.DelayTypeFunc {
	return func(n uint, _ error, _ *retry.Config) time.Duration {
		return time.Duration(n) * base
	}
}

// withRetry runs fn under the policy. Not-found and context errors end the
// loop immediately; otherwise the last error is returned once attempts run out.
func withRetry[T any](ctx context.Context, p RetryPolicy, op string, fn func() (T, error)) (T, error) {
	return retry.DoWithData(
		fn,
		retry.Context(ctx),
		retry.Attempts(p.attempts()),
		retry.DelayType(LinearDelay(p.BaseDelay)),
		retry.RetryIf(isRetryable),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			if !isRetryable(err) || n+1 >= p.attempts() {
				return
			}
			metrics.RemoteRetries.WithLabelValues(op).Inc()
			logging.Ctx(ctx).Warn().
				Err(err).
				Str("operation", op).
				Uint("attempt", n+1).
				Int("max_attempts", int(p.attempts())).
				Dur("delay", time.Duration(n+1)*p.BaseDelay).
				Msg("Retry attempt")
		}),
	)
}
