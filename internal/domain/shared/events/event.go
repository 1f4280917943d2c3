// Package events defines the domain event contract and an in-process
// dispatcher that fans events out to handlers.
package events

import (
	"time"
)

// DomainEvent is implemented by every event a domain package emits.
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetOccurredAt() time.Time
	// GetVersion is the payload schema version of the event type.
	GetVersion() int
}

// BaseEvent carries the envelope fields. Event structs embed it so the
// fields serialize flat next to the payload.
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	OccurredAt  time.Time `json:"occurred_at"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetAggregateID() string   { return e.AggregateID }
func (e BaseEvent) GetEventType() string     { return e.EventType }
func (e BaseEvent) GetOccurredAt() time.Time { return e.OccurredAt }
func (e BaseEvent) GetVersion() int          { return e.Version }

// EventHandler processes events of the types it accepts.
type EventHandler interface {
	Handle(event DomainEvent) error
	CanHandle(eventType string) bool
}
