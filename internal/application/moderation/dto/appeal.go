package dto

import (
	"time"

	domain "github.com/orris-inc/moderation/internal/domain/moderation"
)

type AppealDTO struct {
	ID             string         `json:"id"`
	TargetType     string         `json:"target_type"`
	TargetID       string         `json:"target_id"`
	UserID         string         `json:"user_id"`
	Text           string         `json:"text"`
	Status         string         `json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
	DecidedAt      *time.Time     `json:"decided_at,omitempty"`
	DecidedBy      string         `json:"decided_by,omitempty"`
	DecisionReason string         `json:"decision_reason,omitempty"`
	Meta           map[string]any `json:"meta"`
}

type CreateAppealRequest struct {
	TargetType string         `json:"target_type"`
	TargetID   string         `json:"target_id" binding:"required"`
	UserID     string         `json:"user_id"`
	Text       string         `json:"text" binding:"required"`
	Meta       map[string]any `json:"meta"`
}

type DecideAppealRequest struct {
	Result string `json:"result"`
	Reason string `json:"reason"`
}

type AppealFilter struct {
	Status   string
	UserID   string
	TargetID string
	Limit    int
	Cursor   string
}

func ToAppealDTO(a *domain.Appeal) AppealDTO {
	return AppealDTO{
		ID:             a.ID,
		TargetType:     a.TargetType,
		TargetID:       a.TargetID,
		UserID:         a.UserID,
		Text:           a.Text,
		Status:         a.Status.String(),
		CreatedAt:      a.CreatedAt,
		DecidedAt:      copyTime(a.DecidedAt),
		DecidedBy:      a.DecidedBy,
		DecisionReason: a.DecisionReason,
		Meta:           domain.MergeMeta(nil, a.Meta),
	}
}
