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

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/leemjnnkdzuy/rophim/internal/models/remote"
)

// stubRemote returns scripted errors.
type stubRemote struct {
	err   error
	calls int
}

func (s *stubRemote) ListRecent(_ context.Context, page int) (*ListingPage, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &ListingPage{Page: page}, nil
}

func (s *stubRemote) FetchDetail(_ context.Context, slug string) (*remote.DetailItem, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &remote.DetailItem{Slug: slug}, nil
}

func TestCircuitBreaker_OpensAfterFailures(t *testing.T) {
	t.Parallel()

	stub := &stubRemote{err: errors.New("upstream down")}
	cbc := NewCircuitBreakerClient(stub, BreakerSettings{MinRequests: 5, Timeout: time.Hour})

	if cbc.cb.State() != gobreaker.StateClosed {
		t.Fatalf("expected closed breaker, got %s", cbc.State())
	}

	for i := 0; i < 6; i++ {
		_, _ = cbc.ListRecent(context.Background(), 1)
	}

	if cbc.cb.State() != gobreaker.StateOpen {
		t.Fatalf("expected open breaker after repeated failures, got %s", cbc.State())
	}

	calls := stub.calls
	_, err := cbc.FetchDetail(context.Background(), "movie-a")
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("expected ErrOpenState, got %v", err)
	}
	if stub.calls != calls {
		t.Error("open breaker must not reach the remote")
	}
}

func TestCircuitBreaker_NotFoundCountsAsSuccess(t *testing.T) {
	t.Parallel()

	stub := &stubRemote{err: fmt.Errorf("%w: movie-x", ErrRemoteNotFound)}
	cbc := NewCircuitBreakerClient(stub, BreakerSettings{MinRequests: 3})

	for i := 0; i < 10; i++ {
		if _, err := cbc.FetchDetail(context.Background(), "movie-x"); !errors.Is(err, ErrRemoteNotFound) {
			t.Fatalf("expected ErrRemoteNotFound, got %v", err)
		}
	}
	if cbc.State() != "closed" {
		t.Errorf("404s must not open the breaker, state %s", cbc.State())
	}
}

func TestCircuitBreaker_PassesResults(t *testing.T) {
	t.Parallel()

	cbc := NewCircuitBreakerClient(&stubRemote{}, BreakerSettings{})

	page, err := cbc.ListRecent(context.Background(), 4)
	if err != nil || page.Page != 4 {
		t.Errorf("ListRecent: expected page 4, got %+v, %v", page, err)
	}
	detail, err := cbc.FetchDetail(context.Background(), "movie-a")
	if err != nil || detail.Slug != "movie-a" {
		t.Errorf("FetchDetail: expected movie-a, got %+v, %v", detail, err)
	}
}

func TestCastResult_WrongType(t *testing.T) {
	t.Parallel()

	if _, err := castResult[ListingPage]("not a page", nil); err == nil {
		t.Error("expected type error")
	}
}

func TestStateConversions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state gobreaker.State
		str   string
		value float64
	}{
		{gobreaker.StateClosed, "closed", 0},
		{gobreaker.StateHalfOpen, "half-open", 1},
		{gobreaker.StateOpen, "open", 2},
	}
	for _, tt := range tests {
		if got := stateToString(tt.state); got != tt.str {
			t.Errorf("stateToString(%v): expected %q, got %q", tt.state, tt.str, got)
		}
		if got := stateToFloat(tt.state); got != tt.value {
			t.Errorf("stateToFloat(%v): expected %v, got %v", tt.state, tt.value, got)
		}
	}
}
