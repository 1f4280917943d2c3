// Package worker relays moderation events from the Redis bus to in-process
// handlers.
package worker

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/orris-inc/moderation/internal/domain/moderation"
	"github.com/orris-inc/moderation/internal/domain/shared/events"
	"github.com/orris-inc/moderation/internal/infrastructure/pubsub"
	"github.com/orris-inc/moderation/internal/shared/logger"
)

// EventSource delivers published events until ctx is done.
type EventSource interface {
	Subscribe(ctx context.Context, handler pubsub.ModerationEventHandler) error
}

// Relay feeds events from an EventSource into a dispatcher. Handlers run on
// the dispatcher's bounded pool, so a slow handler never stalls the
// subscription.
type Relay struct {
	source     EventSource
	dispatcher *events.InMemoryEventDispatcher
	logger     logger.Interface
}

func NewRelay(source EventSource, dispatcher *events.InMemoryEventDispatcher, log logger.Interface) *Relay {
	return &Relay{
		source:     source,
		dispatcher: dispatcher,
		logger:     log,
	}
}

// Run starts the dispatcher and blocks until ctx is cancelled. Queued events
// are drained before it returns.
func (r *Relay) Run(ctx context.Context) error {
	if err := r.dispatcher.Start(); err != nil {
		return fmt.Errorf("failed to start event dispatcher: %w", err)
	}
	defer func() {
		if err := r.dispatcher.Stop(); err != nil {
			r.logger.Errorw("failed to stop event dispatcher", "error", err)
		}
	}()

	err := r.source.Subscribe(ctx, func(_ context.Context, evt *pubsub.ReceivedEvent) {
		if err := r.dispatcher.Publish(evt); err != nil {
			r.logger.Warnw("failed to dispatch moderation event",
				"type", evt.GetEventType(),
				"aggregate_id", evt.GetAggregateID(),
				"error", err,
			)
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// RegisterAuditHandlers writes one structured log line per moderation event.
// Auto-bans are logged at warn so they surface in alerting.
func RegisterAuditHandlers(dispatcher *events.InMemoryEventDispatcher, log logger.Interface) error {
	for _, eventType := range domain.EventTypes() {
		handler := events.NewSimpleEventHandler(eventType, func(evt events.DomainEvent) error {
			fields := []any{
				"type", evt.GetEventType(),
				"aggregate_id", evt.GetAggregateID(),
				"occurred_at", evt.GetOccurredAt(),
			}
			if received, ok := evt.(*pubsub.ReceivedEvent); ok {
				fields = append(fields, "payload", received.Payload)
			}
			if evt.GetEventType() == domain.EventUserAutoBanned {
				log.Warnw("user auto-banned", fields...)
				return nil
			}
			log.Infow("moderation event", fields...)
			return nil
		})
		if err := dispatcher.Subscribe(eventType, handler); err != nil {
			return fmt.Errorf("failed to subscribe audit handler for %s: %w", eventType, err)
		}
	}
	return nil
}
