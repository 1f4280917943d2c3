package moderation

import (
	"time"

	vo "github.com/orris-inc/moderation/internal/domain/moderation/valueobjects"
)

// Ticket is a support conversation between a user and moderators.
type Ticket struct {
	ID            string
	Title         string
	Priority      vo.TicketPriority
	AuthorID      string
	AssigneeID    string
	Status        vo.TicketStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
	LastMessageAt *time.Time
	UnreadCount   int
	MessageIDs    []string
	Meta          map[string]any
}

// TicketMessage is one message on a ticket. Internal messages are visible
// to moderators only and never count as unread.
type TicketMessage struct {
	ID          string
	TicketID    string
	AuthorID    string
	Text        string
	Attachments []string
	Internal    bool
	AuthorName  string
	CreatedAt   time.Time
}

// ApplyMessage bumps the ticket's timestamps and unread counter for msg.
func (t *Ticket) ApplyMessage(msg *TicketMessage, incrementUnread bool) {
	at := msg.CreatedAt
	t.LastMessageAt = &at
	t.UpdatedAt = at
	if incrementUnread && !msg.Internal {
		t.UnreadCount++
	}
}

// SetUnreadCount overrides the unread counter, clamping at zero.
func (t *Ticket) SetUnreadCount(n int) {
	if n < 0 {
		n = 0
	}
	t.UnreadCount = n
}
