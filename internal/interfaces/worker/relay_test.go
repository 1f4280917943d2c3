package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/orris-inc/moderation/internal/domain/moderation"
	"github.com/orris-inc/moderation/internal/domain/shared/events"
	"github.com/orris-inc/moderation/internal/infrastructure/pubsub"
	"github.com/orris-inc/moderation/internal/shared/logger"
)

type fakeSource struct {
	events []*pubsub.ReceivedEvent
}

func (f *fakeSource) Subscribe(ctx context.Context, handler pubsub.ModerationEventHandler) error {
	for _, evt := range f.events {
		handler(ctx, evt)
	}
	<-ctx.Done()
	return ctx.Err()
}

// recordingLogger captures Infow/Warnw calls; other methods are unused here.
type recordingLogger struct {
	logger.Interface
	mu    sync.Mutex
	infos []string
	warns []string
}

func (l *recordingLogger) Infow(msg string, _ ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, msg)
}

func (l *recordingLogger) Warnw(msg string, _ ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}

func (l *recordingLogger) Errorw(string, ...interface{}) {}

func (l *recordingLogger) counts() (int, int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.infos), len(l.warns)
}

func received(eventType, aggregateID string) *pubsub.ReceivedEvent {
	return &pubsub.ReceivedEvent{EventEnvelope: pubsub.EventEnvelope{
		Type:        eventType,
		AggregateID: aggregateID,
		OccurredAt:  time.Now().UTC(),
		Version:     1,
		Payload:     map[string]any{"user_id": aggregateID},
	}}
}

func TestRelay_DispatchesUntilCancelled(t *testing.T) {
	dispatcher := events.NewInMemoryEventDispatcher(10, events.WithMaxHandlers(2))

	var mu sync.Mutex
	var got []string
	done := make(chan struct{}, 2)
	require.NoError(t, dispatcher.Subscribe(domain.EventSanctionIssued,
		events.NewSimpleEventHandler(domain.EventSanctionIssued, func(evt events.DomainEvent) error {
			mu.Lock()
			got = append(got, evt.GetAggregateID())
			mu.Unlock()
			done <- struct{}{}
			return nil
		})))

	source := &fakeSource{events: []*pubsub.ReceivedEvent{
		received(domain.EventSanctionIssued, "u1"),
		received(domain.EventSanctionIssued, "u2"),
		received("moderation.unknown", "u3"),
	}}
	relay := NewRelay(source, dispatcher, &recordingLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- relay.Run(ctx) }()

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for dispatched events")
		}
	}
	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("relay did not stop")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []string{"u1", "u2"}, got)
}

func TestRegisterAuditHandlers(t *testing.T) {
	log := &recordingLogger{}
	dispatcher := events.NewInMemoryEventDispatcher(10)
	require.NoError(t, RegisterAuditHandlers(dispatcher, log))
	require.NoError(t, dispatcher.Start())

	require.NoError(t, dispatcher.Publish(received(domain.EventContentDecided, "c1")))
	require.NoError(t, dispatcher.Publish(received(domain.EventUserAutoBanned, "u1")))
	require.NoError(t, dispatcher.Stop())

	infos, warns := log.counts()
	assert.Equal(t, 1, infos)
	assert.Equal(t, 1, warns)
}
