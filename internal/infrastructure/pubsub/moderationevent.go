package pubsub

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/orris-inc/moderation/internal/domain/shared/events"
	"github.com/orris-inc/moderation/internal/shared/logger"
)

// DefaultModerationChannel is used when no channel is configured.
const DefaultModerationChannel = "moderation:events"

// EventEnvelope is the wire form of a moderation event. Payload holds the
// full event as published.
type EventEnvelope struct {
	Type        string         `json:"type"`
	AggregateID string         `json:"aggregate_id"`
	OccurredAt  time.Time      `json:"occurred_at"`
	Version     int            `json:"version"`
	InstanceID  string         `json:"instance_id,omitempty"`
	Payload     map[string]any `json:"payload"`
}

// ReceivedEvent is an envelope decoded by a subscriber. It satisfies
// events.DomainEvent so it can be fed to a dispatcher.
type ReceivedEvent struct {
	EventEnvelope
}

func (e *ReceivedEvent) GetAggregateID() string   { return e.AggregateID }
func (e *ReceivedEvent) GetEventType() string     { return e.Type }
func (e *ReceivedEvent) GetOccurredAt() time.Time { return e.OccurredAt }
func (e *ReceivedEvent) GetVersion() int          { return e.Version }

// ModerationEventHandler is called for each decoded event.
type ModerationEventHandler func(ctx context.Context, event *ReceivedEvent)

// RedisModerationEventBus publishes moderation events on a Redis Pub/Sub
// channel and lets out-of-process workers subscribe to them.
type RedisModerationEventBus struct {
	client     redis.UniversalClient
	channel    string
	logger     logger.Interface
	instanceID string
}

// NewRedisModerationEventBus creates a new Redis-based moderation event bus.
func NewRedisModerationEventBus(client redis.UniversalClient, channel string, logger logger.Interface) *RedisModerationEventBus {
	if channel == "" {
		channel = DefaultModerationChannel
	}
	return &RedisModerationEventBus{
		client:     client,
		channel:    channel,
		logger:     logger,
		instanceID: uuid.NewString(),
	}
}

// Publish sends every event in one pipeline. Events that fail to encode
// abort the whole batch.
func (b *RedisModerationEventBus) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	if len(evts) == 0 {
		return nil
	}

	messages := make([][]byte, 0, len(evts))
	for _, evt := range evts {
		data, err := b.encode(evt)
		if err != nil {
			return err
		}
		messages = append(messages, data)
	}

	pipe := b.client.Pipeline()
	for _, data := range messages {
		pipe.Publish(ctx, b.channel, data)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		b.logger.Errorw("failed to publish moderation events",
			"channel", b.channel,
			"count", len(evts),
			"error", err,
		)
		return fmt.Errorf("failed to publish moderation events: %w", err)
	}

	b.logger.Debugw("moderation events published to Redis",
		"channel", b.channel,
		"count", len(evts),
	)
	return nil
}

func (b *RedisModerationEventBus) encode(evt events.DomainEvent) ([]byte, error) {
	raw, err := sonic.Marshal(evt)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s event: %w", evt.GetEventType(), err)
	}
	var payload map[string]any
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to flatten %s event: %w", evt.GetEventType(), err)
	}

	envelope := EventEnvelope{
		Type:        evt.GetEventType(),
		AggregateID: evt.GetAggregateID(),
		OccurredAt:  evt.GetOccurredAt().UTC(),
		Version:     evt.GetVersion(),
		InstanceID:  b.instanceID,
		Payload:     payload,
	}
	data, err := sonic.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event envelope: %w", err)
	}
	return data, nil
}

// Subscribe blocks delivering events to handler until ctx is done,
// reconnecting with exponential backoff. Handlers run on the receiving
// goroutine, so events are delivered in publish order.
func (b *RedisModerationEventBus) Subscribe(ctx context.Context, handler ModerationEventHandler) error {
	return b.subscribeWithReconnect(ctx, func(payload string) {
		var envelope EventEnvelope
		if err := sonic.UnmarshalString(payload, &envelope); err != nil {
			b.logger.Warnw("failed to unmarshal moderation event",
				"payload", payload,
				"error", err,
			)
			return
		}
		if envelope.Type == "" {
			b.logger.Warnw("dropping moderation event without type", "payload", payload)
			return
		}
		handler(ctx, &ReceivedEvent{EventEnvelope: envelope})
	})
}

// subscribeWithReconnect wraps subscribe with automatic reconnection and exponential backoff.
func (b *RedisModerationEventBus) subscribeWithReconnect(ctx context.Context, handler func(payload string)) error {
	backoff := time.Second
	maxBackoff := 30 * time.Second

	for {
		err := b.subscribe(ctx, handler)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		b.logger.Warnw("moderation subscription disconnected, reconnecting",
			"channel", b.channel,
			"error", err,
			"backoff", backoff,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff = min(backoff*2, maxBackoff)
	}
}

func (b *RedisModerationEventBus) subscribe(ctx context.Context, handler func(payload string)) error {
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to channel %s: %w", b.channel, err)
	}

	b.logger.Infow("subscribed to moderation event channel", "channel", b.channel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			b.logger.Infow("moderation event subscriber stopped",
				"channel", b.channel,
				"reason", ctx.Err(),
			)
			return ctx.Err()

		case msg, ok := <-ch:
			if !ok {
				b.logger.Warnw("moderation event channel closed", "channel", b.channel)
				return nil
			}
			handler(msg.Payload)
		}
	}
}

// NopPublisher drops events. It is used when no Redis is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ...events.DomainEvent) error { return nil }
