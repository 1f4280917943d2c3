package dto

import (
	"time"

	domain "github.com/orris-inc/moderation/internal/domain/moderation"
	"github.com/orris-inc/moderation/internal/shared/mapper"
)

type UserDTO struct {
	ID            string         `json:"id"`
	Username      string         `json:"username"`
	Email         string         `json:"email,omitempty"`
	Roles         []string       `json:"roles"`
	Status        string         `json:"status"`
	RegisteredAt  *time.Time     `json:"registered_at,omitempty"`
	LastSeenAt    *time.Time     `json:"last_seen_at,omitempty"`
	Meta          map[string]any `json:"meta"`
	SanctionCount int            `json:"sanction_count"`
	NoteCount     int            `json:"note_count"`
	ReportCount   int            `json:"report_count"`
	TicketCount   int            `json:"ticket_count"`
}

// UserDetailDTO expands a user with its owned records, newest first.
type UserDetailDTO struct {
	UserDTO
	Sanctions []SanctionDTO `json:"sanctions"`
	Notes     []NoteDTO     `json:"notes"`
	Reports   []ReportDTO   `json:"reports"`
	TicketIDs []string      `json:"ticket_ids"`
}

type NoteDTO struct {
	ID         string         `json:"id"`
	UserID     string         `json:"user_id"`
	Text       string         `json:"text"`
	CreatedAt  time.Time      `json:"created_at"`
	AuthorID   string         `json:"author_id"`
	AuthorName string         `json:"author_name,omitempty"`
	Pinned     bool           `json:"pinned"`
	Meta       map[string]any `json:"meta"`
}

type AddNoteRequest struct {
	Text       string         `json:"text" binding:"required"`
	Pinned     bool           `json:"pinned"`
	AuthorName string         `json:"author_name"`
	Meta       map[string]any `json:"meta"`
}

type UpdateRolesRequest struct {
	Add    []string `json:"add"`
	Remove []string `json:"remove"`
}

type UserFilter struct {
	Query  string
	Role   string
	Status string
	Limit  int
	Cursor string
}

type WarningsCountDTO struct {
	UserID string `json:"user_id"`
	Days   int    `json:"days"`
	Count  int    `json:"count"`
}

func nonNilStrings(list []string) []string {
	if list == nil {
		return []string{}
	}
	return append([]string(nil), list...)
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func ToUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		Roles:         nonNilStrings(u.Roles),
		Status:        u.Status.String(),
		RegisteredAt:  optionalTime(u.RegisteredAt),
		LastSeenAt:    copyTime(u.LastSeenAt),
		Meta:          domain.MergeMeta(nil, u.Meta),
		SanctionCount: len(u.SanctionIDs),
		NoteCount:     len(u.NoteIDs),
		ReportCount:   len(u.ReportIDs),
		TicketCount:   len(u.TicketIDs),
	}
}

func ToNoteDTO(n *domain.Note) NoteDTO {
	return NoteDTO{
		ID:         n.ID,
		UserID:     n.UserID,
		Text:       n.Text,
		CreatedAt:  n.CreatedAt,
		AuthorID:   n.AuthorID,
		AuthorName: n.AuthorName,
		Pinned:     n.Pinned,
		Meta:       domain.MergeMeta(nil, n.Meta),
	}
}

func ToNoteDTOs(notes []*domain.Note) []NoteDTO {
	return mapper.MapSlice(notes, ToNoteDTO)
}
