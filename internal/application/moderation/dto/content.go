package dto

import (
	"time"

	domain "github.com/orris-inc/moderation/internal/domain/moderation"
)

type ContentDTO struct {
	ID                string           `json:"id"`
	ContentType       string           `json:"content_type"`
	AuthorID          string           `json:"author_id"`
	CreatedAt         *time.Time       `json:"created_at,omitempty"`
	Title             string           `json:"title,omitempty"`
	Preview           string           `json:"preview"`
	AILabels          []string         `json:"ai_labels"`
	Status            string           `json:"status"`
	NodeStatus        string           `json:"node_status,omitempty"`
	ReportIDs         []string         `json:"report_ids"`
	ModerationHistory []map[string]any `json:"moderation_history"`
	Meta              map[string]any   `json:"meta"`
	Source            string           `json:"source"`
}

type ContentDecisionRequest struct {
	Action string `json:"action" binding:"required"`
	Reason string `json:"reason"`
	Notes  string `json:"notes"`
}

type UpsertContentRequest struct {
	ID          string         `json:"id"`
	ContentType string         `json:"content_type" binding:"required"`
	AuthorID    string         `json:"author_id" binding:"required"`
	Preview     string         `json:"preview"`
	AILabels    []string       `json:"ai_labels"`
	CreatedAt   *time.Time     `json:"created_at"`
	Meta        map[string]any `json:"meta"`
}

type ContentFilter struct {
	ContentType string
	Status      string
	AILabel     string
	HasReports  *bool
	AuthorID    string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Cursor      string
}

// Content sources.
const (
	SourceMemory = "memory"
	SourceSQL    = "sql"
)

func ToContentDTO(c *domain.Content) ContentDTO {
	history := domain.CloneMaps(c.ModerationHistory)
	if history == nil {
		history = []map[string]any{}
	}
	return ContentDTO{
		ID:                c.ID,
		ContentType:       c.ContentType.String(),
		AuthorID:          c.AuthorID,
		CreatedAt:         optionalTime(c.CreatedAt),
		Preview:           c.Preview,
		AILabels:          nonNilStrings(c.AILabels),
		Status:            c.Status.String(),
		ReportIDs:         nonNilStrings(c.ReportIDs),
		ModerationHistory: history,
		Meta:              domain.MergeMeta(nil, c.Meta),
		Source:            SourceMemory,
	}
}
