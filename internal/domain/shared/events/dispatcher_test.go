package events

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvent(eventType string) BaseEvent {
	return BaseEvent{AggregateID: "agg-1", EventType: eventType, OccurredAt: time.Now(), Version: 1}
}

func TestInMemoryEventDispatcher_DeliversToMatchingHandlers(t *testing.T) {
	d := NewInMemoryEventDispatcher(10)

	var mu sync.Mutex
	var got []string
	record := func(e DomainEvent) error {
		mu.Lock()
		got = append(got, e.GetEventType())
		mu.Unlock()
		return nil
	}
	require.NoError(t, d.Subscribe("a", NewSimpleEventHandler("a", record)))
	require.NoError(t, d.Subscribe("b", NewSimpleEventHandler("b", record)))

	require.NoError(t, d.Start())
	require.NoError(t, d.PublishAll([]DomainEvent{testEvent("a"), testEvent("b"), testEvent("c")}))
	require.NoError(t, d.Stop())

	assert.ElementsMatch(t, []string{"a", "b"}, got)
}

func TestInMemoryEventDispatcher_NotRunning(t *testing.T) {
	d := NewInMemoryEventDispatcher(1)
	assert.Error(t, d.Publish(testEvent("a")))
	assert.Error(t, d.Stop())

	require.NoError(t, d.Start())
	assert.Error(t, d.Start())
	require.NoError(t, d.Stop())
}

func TestInMemoryEventDispatcher_BoundsConcurrency(t *testing.T) {
	d := NewInMemoryEventDispatcher(50, WithMaxHandlers(2))

	var active, peak atomic.Int32
	handler := NewSimpleEventHandler("work", func(DomainEvent) error {
		n := active.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		active.Add(-1)
		return nil
	})
	require.NoError(t, d.Subscribe("work", handler))
	require.NoError(t, d.Start())
	for i := 0; i < 10; i++ {
		require.NoError(t, d.Publish(testEvent("work")))
	}
	require.NoError(t, d.Stop())

	assert.LessOrEqual(t, peak.Load(), int32(2))
	assert.Positive(t, peak.Load())
}

func TestInMemoryEventDispatcher_ReportsErrorsAndPanics(t *testing.T) {
	var mu sync.Mutex
	var errs []error
	d := NewInMemoryEventDispatcher(10, WithErrorHandler(func(_ DomainEvent, err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}))

	require.NoError(t, d.Subscribe("fail", NewSimpleEventHandler("fail", func(DomainEvent) error {
		return errors.New("boom")
	})))
	require.NoError(t, d.Subscribe("panic", NewSimpleEventHandler("panic", func(DomainEvent) error {
		panic("handler exploded")
	})))

	require.NoError(t, d.Start())
	require.NoError(t, d.Publish(testEvent("fail")))
	require.NoError(t, d.Publish(testEvent("panic")))
	require.NoError(t, d.Stop())

	require.Len(t, errs, 2)
	var messages []string
	for _, err := range errs {
		messages = append(messages, err.Error())
	}
	assert.ElementsMatch(t, []string{"boom", "handler panic: handler exploded"}, messages)
}

func TestInMemoryEventDispatcher_Unsubscribe(t *testing.T) {
	d := NewInMemoryEventDispatcher(10)
	var calls atomic.Int32
	h := NewSimpleEventHandler("a", func(DomainEvent) error {
		calls.Add(1)
		return nil
	})
	require.NoError(t, d.Subscribe("a", h))
	require.NoError(t, d.Unsubscribe("a", h))
	assert.Error(t, d.Subscribe("", h))

	require.NoError(t, d.Start())
	require.NoError(t, d.Publish(testEvent("a")))
	require.NoError(t, d.Stop())
	assert.Zero(t, calls.Load())
}
