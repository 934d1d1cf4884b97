// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

package events

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"

	"github.com/leemjnnkdzuy/rophim/internal/config"
	"github.com/leemjnnkdzuy/rophim/internal/logging"
	"github.com/leemjnnkdzuy/rophim/internal/metrics"
	"github.com/leemjnnkdzuy/rophim/internal/models"
	catalogsync "github.com/leemjnnkdzuy/rophim/internal/sync"
)

var _ catalogsync.EventPublisher = (*Bus)(nil)

// Bus is the in-process event bus backed by a watermill GoChannel.
// Messages published with no subscriber are dropped.
type Bus struct {
	pubsub *gochannel.GoChannel
}

// NewBus creates a bus. BufferSize bounds each subscriber's queue.
func NewBus(cfg *config.EventsConfig) *Bus {
	logger := watermill.NewSlogLogger(logging.NewSlogLogger())
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: cfg.BufferSize,
		}, logger),
	}
}

// PublishEntrySynced implements sync.EventPublisher.
func (b *Bus) PublishEntrySynced(ctx context.Context, entry models.EntrySummary) error {
	runID := logging.CorrelationIDFromContext(ctx)
	return b.publish(ctx, TopicEntrySynced, runID, EntrySynced{RunID: runID, EntrySummary: entry})
}

// PublishSyncCompleted implements sync.EventPublisher.
func (b *Bus) PublishSyncCompleted(ctx context.Context, report *catalogsync.Report) error {
	return b.publish(ctx, TopicSyncCompleted, report.RunID, NewSyncCompleted(report))
}

func (b *Bus) publish(ctx context.Context, topic, runID string, payload interface{}) (err error) {
	defer func() { metrics.RecordEventPublish(topic, err) }()

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.SetContext(ctx)
	msg.Metadata.Set(MetadataEventType, topic)
	if runID != "" {
		msg.Metadata.Set(MetadataRunID, runID)
		middleware.SetCorrelationID(runID, msg)
	}

	if err := b.pubsub.Publish(topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// Subscribe returns a channel of messages for topic. Every message must be
// acked or nacked.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return b.pubsub.Subscribe(ctx, topic)
}

// Close closes every subscription.
func (b *Bus) Close() error {
	return b.pubsub.Close()
}
