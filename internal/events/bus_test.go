// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/goccy/go-json"

	"github.com/leemjnnkdzuy/rophim/internal/config"
	"github.com/leemjnnkdzuy/rophim/internal/logging"
	"github.com/leemjnnkdzuy/rophim/internal/models"
	catalogsync "github.com/leemjnnkdzuy/rophim/internal/sync"
)

func newTestBus(t *testing.T) *Bus {
	t.Helper()
	bus := NewBus(&config.EventsConfig{Enabled: true, BufferSize: 16})
	t.Cleanup(func() { _ = bus.Close() })
	return bus
}

func next(t *testing.T, ch <-chan *message.Message) *message.Message {
	t.Helper()
	select {
	case msg := <-ch:
		msg.Ack()
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
	}
	return nil
}

func TestBus_PublishEntrySynced(t *testing.T) {
	t.Parallel()

	bus := newTestBus(t)
	ch, err := bus.Subscribe(t.Context(), TopicEntrySynced)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	modified := time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)
	ctx := logging.ContextWithCorrelationID(context.Background(), "run-1")
	err = bus.PublishEntrySynced(ctx, models.EntrySummary{
		Slug: "spirited-away", Title: "Spirited Away", ModifiedAt: modified,
	})
	if err != nil {
		t.Fatalf("PublishEntrySynced: %v", err)
	}

	msg := next(t, ch)
	var got EntrySynced
	if err := json.Unmarshal(msg.Payload, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Slug != "spirited-away" || got.RunID != "run-1" || !got.ModifiedAt.Equal(modified) {
		t.Errorf("unexpected payload: %+v", got)
	}
	if msg.Metadata.Get(MetadataEventType) != TopicEntrySynced {
		t.Errorf("event_type: got %q", msg.Metadata.Get(MetadataEventType))
	}
	if middleware.MessageCorrelationID(msg) != "run-1" {
		t.Errorf("correlation id: got %q", middleware.MessageCorrelationID(msg))
	}
}

func TestBus_PublishSyncCompleted(t *testing.T) {
	t.Parallel()

	bus := newTestBus(t)
	ch, err := bus.Subscribe(t.Context(), TopicSyncCompleted)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	report := &catalogsync.Report{
		RunID:      "run-2",
		Films:      []models.EntrySummary{{Slug: "a"}, {Slug: "b"}},
		TotalPages: 3,
		StopReason: catalogsync.StopWatermarkReached,
		Skipped:    1,
		Duration:   1500 * time.Millisecond,
	}
	if err := bus.PublishSyncCompleted(context.Background(), report); err != nil {
		t.Fatalf("PublishSyncCompleted: %v", err)
	}

	var got SyncCompleted
	if err := json.Unmarshal(next(t, ch).Payload, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := SyncCompleted{
		RunID: "run-2", StopReason: "watermark_reached", Films: 2,
		TotalPages: 3, Skipped: 1, DurationMs: 1500,
	}
	if got != want {
		t.Errorf("payload:\nexpected %+v\ngot      %+v", want, got)
	}
}

func TestBus_NoSubscriberDoesNotBlock(t *testing.T) {
	t.Parallel()

	bus := newTestBus(t)
	done := make(chan error, 1)
	go func() {
		done <- bus.PublishEntrySynced(context.Background(), models.EntrySummary{Slug: "x"})
	}()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked without subscribers")
	}
}

type recordingBroadcaster struct {
	mu   sync.Mutex
	msgs []broadcast
}

type broadcast struct {
	msgType string
	data    json.RawMessage
}

func (r *recordingBroadcaster) BroadcastJSON(messageType string, data interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	raw, _ := data.(json.RawMessage)
	r.msgs = append(r.msgs, broadcast{msgType: messageType, data: raw})
}

func (r *recordingBroadcaster) snapshot() []broadcast {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]broadcast(nil), r.msgs...)
}

func TestForwarder_RelaysToBroadcaster(t *testing.T) {
	t.Parallel()

	bus := newTestBus(t)
	out := &recordingBroadcaster{}
	fwd := NewForwarder(bus, out)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- fwd.Serve(ctx) }()

	// Subscriptions are created asynchronously; publish until one arrives.
	deadline := time.Now().Add(2 * time.Second)
	for len(out.snapshot()) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("forwarder relayed nothing")
		}
		_ = bus.PublishSyncCompleted(context.Background(), &catalogsync.Report{RunID: "run-3", StopReason: catalogsync.StopListingExhausted})
		time.Sleep(20 * time.Millisecond)
	}

	got := out.snapshot()[0]
	if got.msgType != "sync_completed" {
		t.Errorf("type: expected sync_completed, got %q", got.msgType)
	}
	var payload SyncCompleted
	if err := json.Unmarshal(got.data, &payload); err != nil {
		t.Fatalf("decode relayed payload: %v", err)
	}
	if payload.RunID != "run-3" || payload.StopReason != "listing_exhausted" {
		t.Errorf("unexpected relayed payload: %+v", payload)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not stop")
	}
	if fwd.String() != "event-forwarder" {
		t.Errorf("String: got %q", fwd.String())
	}
}
