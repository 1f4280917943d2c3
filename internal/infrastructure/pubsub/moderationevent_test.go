package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/moderation/internal/domain/moderation"
	"github.com/orris-inc/moderation/internal/domain/shared/events"
	"github.com/orris-inc/moderation/internal/shared/logger"
)

func setupTestBus(t *testing.T) (*miniredis.Miniredis, *RedisModerationEventBus) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisModerationEventBus(client, "", logger.NewLogger())
}

func testTicketEvent() moderation.TicketEscalatedEvent {
	at := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	return moderation.NewTicketEscalatedEvent(&moderation.Ticket{ID: "t-1"}, "abuse", "mod-1", at)
}

func TestNewRedisModerationEventBus_DefaultChannel(t *testing.T) {
	_, bus := setupTestBus(t)
	assert.Equal(t, DefaultModerationChannel, bus.channel)
	assert.NotEmpty(t, bus.instanceID)
}

func TestRedisModerationEventBus_Encode(t *testing.T) {
	_, bus := setupTestBus(t)
	evt := testTicketEvent()

	data, err := bus.encode(evt)
	require.NoError(t, err)

	var envelope EventEnvelope
	require.NoError(t, sonic.Unmarshal(data, &envelope))
	assert.Equal(t, moderation.EventTicketEscalated, envelope.Type)
	assert.Equal(t, "t-1", envelope.AggregateID)
	assert.Equal(t, 1, envelope.Version)
	assert.Equal(t, bus.instanceID, envelope.InstanceID)
	assert.True(t, envelope.OccurredAt.Equal(evt.OccurredAt))
	assert.Equal(t, "abuse", envelope.Payload["reason"])
	assert.Equal(t, "mod-1", envelope.Payload["actor"])
}

func TestRedisModerationEventBus_PublishNoEvents(t *testing.T) {
	_, bus := setupTestBus(t)
	assert.NoError(t, bus.Publish(context.Background()))
}

func TestRedisModerationEventBus_PublishUnavailable(t *testing.T) {
	mr, bus := setupTestBus(t)
	mr.Close()

	err := bus.Publish(context.Background(), testTicketEvent())
	assert.Error(t, err)
}

func TestRedisModerationEventBus_SubscribeReceivesInOrder(t *testing.T) {
	_, bus := setupTestBus(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan *ReceivedEvent, 4)
	done := make(chan error, 1)
	go func() {
		done <- bus.Subscribe(ctx, func(_ context.Context, evt *ReceivedEvent) {
			received <- evt
		})
	}()

	// Wait for the subscription before publishing; Pub/Sub drops messages
	// sent to a channel without subscribers.
	require.Eventually(t, func() bool {
		n, err := bus.client.PubSubNumSub(ctx, bus.channel).Result()
		return err == nil && n[bus.channel] > 0
	}, 2*time.Second, 10*time.Millisecond)

	first := testTicketEvent()
	second := moderation.NewTicketEscalatedEvent(&moderation.Ticket{ID: "t-2"}, "spam", "mod-2", first.OccurredAt)
	require.NoError(t, bus.Publish(ctx, first, second))

	var got []events.DomainEvent
	for len(got) < 2 {
		select {
		case evt := <-received:
			got = append(got, evt)
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for events")
		}
	}
	assert.Equal(t, "t-1", got[0].GetAggregateID())
	assert.Equal(t, "t-2", got[1].GetAggregateID())
	assert.Equal(t, moderation.EventTicketEscalated, got[1].GetEventType())

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber did not stop")
	}
}

func TestRedisModerationEventBus_SubscribeDropsMalformed(t *testing.T) {
	_, bus := setupTestBus(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan *ReceivedEvent, 4)
	go func() {
		_ = bus.Subscribe(ctx, func(_ context.Context, evt *ReceivedEvent) {
			received <- evt
		})
	}()
	require.Eventually(t, func() bool {
		n, err := bus.client.PubSubNumSub(ctx, bus.channel).Result()
		return err == nil && n[bus.channel] > 0
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, bus.client.Publish(ctx, bus.channel, "not json").Err())
	require.NoError(t, bus.client.Publish(ctx, bus.channel, `{"aggregate_id":"x"}`).Err())
	require.NoError(t, bus.Publish(ctx, testTicketEvent()))

	select {
	case evt := <-received:
		assert.Equal(t, "t-1", evt.GetAggregateID())
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	assert.Empty(t, received)
}

func TestNopPublisher(t *testing.T) {
	var p NopPublisher
	assert.NoError(t, p.Publish(context.Background(), testTicketEvent()))
}
