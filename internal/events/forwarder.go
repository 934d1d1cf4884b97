// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

package events

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"

	"github.com/leemjnnkdzuy/rophim/internal/logging"
	"github.com/leemjnnkdzuy/rophim/internal/websocket"
)

// Broadcaster is the websocket.Hub side used by the forwarder.
type Broadcaster interface {
	BroadcastJSON(messageType string, data interface{})
}

// Forwarder relays bus events to WebSocket clients.
type Forwarder struct {
	bus *Bus
	out Broadcaster
}

func NewForwarder(bus *Bus, out Broadcaster) *Forwarder {
	return &Forwarder{bus: bus, out: out}
}

// forwardedTopics maps bus topics to WebSocket message types.
var forwardedTopics = map[string]string{
	TopicSyncCompleted: websocket.MessageTypeSyncCompleted,
	TopicEntrySynced:   websocket.MessageTypeEntrySynced,
}

// Serve subscribes to the forwarded topics and relays until ctx is done.
// It implements suture.Service.
func (f *Forwarder) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	merged := make(chan relayed)
	for topic, msgType := range forwardedTopics {
		ch, err := f.bus.Subscribe(ctx, topic)
		if err != nil {
			return fmt.Errorf("subscribe %s: %w", topic, err)
		}
		go pipe(ctx, ch, msgType, merged)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case r := <-merged:
			f.relay(r)
		}
	}
}

type relayed struct {
	msgType string
	msg     *message.Message
}

func pipe(ctx context.Context, in <-chan *message.Message, msgType string, out chan<- relayed) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-in:
			if !ok {
				return
			}
			select {
			case out <- relayed{msgType: msgType, msg: msg}:
			case <-ctx.Done():
				msg.Nack()
				return
			}
		}
	}
}

func (f *Forwarder) relay(r relayed) {
	defer r.msg.Ack()

	var data json.RawMessage
	if err := json.Unmarshal(r.msg.Payload, &data); err != nil {
		logging.Warn().Err(err).Str("type", r.msgType).Str("uuid", r.msg.UUID).Msg("Dropping malformed event")
		return
	}
	f.out.BroadcastJSON(r.msgType, data)
}

func (f *Forwarder) String() string {
	return "event-forwarder"
}
