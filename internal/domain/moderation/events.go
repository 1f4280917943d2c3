package moderation

import (
	"time"

	"github.com/google/uuid"

	"github.com/orris-inc/moderation/internal/domain/shared/events"
)

const (
	EventSanctionIssued  = "moderation.sanction.issued"
	EventUserAutoBanned  = "moderation.user.auto_banned"
	EventContentDecided  = "moderation.content.decided"
	EventAppealDecided   = "moderation.appeal.decided"
	EventTicketEscalated = "moderation.ticket.escalated"
)

const eventVersion = 1

// EventTypes lists every event the service publishes.
func EventTypes() []string {
	return []string{
		EventSanctionIssued,
		EventUserAutoBanned,
		EventContentDecided,
		EventAppealDecided,
		EventTicketEscalated,
	}
}

func newBaseEvent(eventType, aggregateID string, at time.Time) events.BaseEvent {
	return events.BaseEvent{
		AggregateID: aggregateID,
		EventType:   eventType,
		OccurredAt:  at,
		Version:     eventVersion,
	}
}

type SanctionIssuedEvent struct {
	events.BaseEvent
	EventID      string `json:"event_id"`
	SanctionID   string `json:"sanction_id"`
	UserID       string `json:"user_id"`
	SanctionType string `json:"sanction_type"`
	Status       string `json:"status"`
	IssuedBy     string `json:"issued_by"`
}

func NewSanctionIssuedEvent(sn *Sanction, at time.Time) SanctionIssuedEvent {
	return SanctionIssuedEvent{
		BaseEvent:    newBaseEvent(EventSanctionIssued, sn.UserID, at),
		EventID:      uuid.NewString(),
		SanctionID:   sn.ID,
		UserID:       sn.UserID,
		SanctionType: sn.Type.String(),
		Status:       sn.Status.String(),
		IssuedBy:     sn.IssuedBy,
	}
}

type UserAutoBannedEvent struct {
	events.BaseEvent
	EventID      string `json:"event_id"`
	UserID       string `json:"user_id"`
	SanctionID   string `json:"sanction_id"`
	WarningCount int    `json:"warning_count"`
}

func NewUserAutoBannedEvent(ban *Sanction, warnings int, at time.Time) UserAutoBannedEvent {
	return UserAutoBannedEvent{
		BaseEvent:    newBaseEvent(EventUserAutoBanned, ban.UserID, at),
		EventID:      uuid.NewString(),
		UserID:       ban.UserID,
		SanctionID:   ban.ID,
		WarningCount: warnings,
	}
}

type ContentDecidedEvent struct {
	events.BaseEvent
	EventID   string `json:"event_id"`
	ContentID string `json:"content_id"`
	Action    string `json:"action"`
	Status    string `json:"status"`
	Actor     string `json:"actor"`
}

func NewContentDecidedEvent(c *Content, action, actor string, at time.Time) ContentDecidedEvent {
	return ContentDecidedEvent{
		BaseEvent: newBaseEvent(EventContentDecided, c.ID, at),
		EventID:   uuid.NewString(),
		ContentID: c.ID,
		Action:    action,
		Status:    c.Status.String(),
		Actor:     actor,
	}
}

type AppealDecidedEvent struct {
	events.BaseEvent
	EventID    string `json:"event_id"`
	AppealID   string `json:"appeal_id"`
	SanctionID string `json:"sanction_id"`
	Status     string `json:"status"`
	DecidedBy  string `json:"decided_by"`
}

func NewAppealDecidedEvent(a *Appeal, at time.Time) AppealDecidedEvent {
	return AppealDecidedEvent{
		BaseEvent:  newBaseEvent(EventAppealDecided, a.ID, at),
		EventID:    uuid.NewString(),
		AppealID:   a.ID,
		SanctionID: a.TargetID,
		Status:     a.Status.String(),
		DecidedBy:  a.DecidedBy,
	}
}

type TicketEscalatedEvent struct {
	events.BaseEvent
	EventID  string `json:"event_id"`
	TicketID string `json:"ticket_id"`
	Reason   string `json:"reason"`
	Actor    string `json:"actor"`
}

func NewTicketEscalatedEvent(t *Ticket, reason, actor string, at time.Time) TicketEscalatedEvent {
	return TicketEscalatedEvent{
		BaseEvent: newBaseEvent(EventTicketEscalated, t.ID, at),
		EventID:   uuid.NewString(),
		TicketID:  t.ID,
		Reason:    reason,
		Actor:     actor,
	}
}
