package dto

import (
	"time"

	domain "github.com/orris-inc/moderation/internal/domain/moderation"
)

type TicketDTO struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Priority      string         `json:"priority"`
	AuthorID      string         `json:"author_id"`
	AssigneeID    string         `json:"assignee_id,omitempty"`
	Status        string         `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	LastMessageAt *time.Time     `json:"last_message_at,omitempty"`
	UnreadCount   int            `json:"unread_count"`
	MessageCount  int            `json:"message_count"`
	Meta          map[string]any `json:"meta"`
}

type TicketMessageDTO struct {
	ID          string    `json:"id"`
	TicketID    string    `json:"ticket_id"`
	AuthorID    string    `json:"author_id"`
	AuthorName  string    `json:"author_name,omitempty"`
	Text        string    `json:"text"`
	HTML        string    `json:"html,omitempty"`
	Attachments []string  `json:"attachments"`
	Internal    bool      `json:"internal"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateTicketRequest struct {
	Title      string         `json:"title" binding:"required"`
	Priority   string         `json:"priority"`
	AuthorID   string         `json:"author_id" binding:"required"`
	AssigneeID string         `json:"assignee_id"`
	Meta       map[string]any `json:"meta"`
}

type AddTicketMessageRequest struct {
	Text            string   `json:"text" binding:"required"`
	Attachments     []string `json:"attachments"`
	Internal        bool     `json:"internal"`
	AuthorName      string   `json:"author_name"`
	IncrementUnread *bool    `json:"increment_unread"`
}

type UpdateTicketRequest struct {
	Status      *string        `json:"status"`
	Priority    *string        `json:"priority"`
	AssigneeID  *string        `json:"assignee_id"`
	UnreadCount *int           `json:"unread_count"`
	Meta        map[string]any `json:"meta"`
}

type EscalateTicketRequest struct {
	Reason string `json:"reason"`
}

type TicketFilter struct {
	Status     string
	Priority   string
	AssigneeID string
	AuthorID   string
	Limit      int
	Cursor     string
}

func ToTicketDTO(t *domain.Ticket) TicketDTO {
	return TicketDTO{
		ID:            t.ID,
		Title:         t.Title,
		Priority:      t.Priority.String(),
		AuthorID:      t.AuthorID,
		AssigneeID:    t.AssigneeID,
		Status:        t.Status.String(),
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
		LastMessageAt: copyTime(t.LastMessageAt),
		UnreadCount:   t.UnreadCount,
		MessageCount:  len(t.MessageIDs),
		Meta:          domain.MergeMeta(nil, t.Meta),
	}
}

func ToTicketMessageDTO(m *domain.TicketMessage) TicketMessageDTO {
	return TicketMessageDTO{
		ID:          m.ID,
		TicketID:    m.TicketID,
		AuthorID:    m.AuthorID,
		AuthorName:  m.AuthorName,
		Text:        m.Text,
		Attachments: nonNilStrings(m.Attachments),
		Internal:    m.Internal,
		CreatedAt:   m.CreatedAt,
	}
}

func TicketMessageDTOFromRow(row *domain.TicketMessageRow) TicketMessageDTO {
	return TicketMessageDTO{
		ID:          row.ID,
		TicketID:    row.TicketID,
		AuthorID:    row.AuthorID,
		AuthorName:  row.AuthorName,
		Text:        row.Text,
		Attachments: nonNilStrings(row.Attachments),
		Internal:    row.Internal,
		CreatedAt:   row.CreatedAt,
	}
}
