package dto

import (
	"time"

	domain "github.com/orris-inc/moderation/internal/domain/moderation"
	"github.com/orris-inc/moderation/internal/shared/mapper"
)

type AIRuleDTO struct {
	ID          string             `json:"id"`
	Category    string             `json:"category"`
	Thresholds  map[string]float64 `json:"thresholds"`
	Actions     map[string]any     `json:"actions"`
	Enabled     bool               `json:"enabled"`
	UpdatedBy   string             `json:"updated_by"`
	UpdatedAt   time.Time          `json:"updated_at"`
	Description string             `json:"description,omitempty"`
	History     []RuleChangeDTO    `json:"history"`
}

type RuleChangeDTO struct {
	UpdatedAt time.Time      `json:"updated_at"`
	UpdatedBy string         `json:"updated_by"`
	Changes   map[string]any `json:"changes"`
}

// RuleHistoryEntryDTO is a change entry flattened across all rules.
type RuleHistoryEntryDTO struct {
	RuleID   string `json:"rule_id"`
	Category string `json:"category"`
	RuleChangeDTO
}

type CreateRuleRequest struct {
	Category    string             `json:"category" binding:"required"`
	Thresholds  map[string]float64 `json:"thresholds"`
	Actions     map[string]any     `json:"actions"`
	Enabled     *bool              `json:"enabled"`
	Description string             `json:"description"`
}

type UpdateRuleRequest struct {
	Category    *string            `json:"category"`
	Thresholds  map[string]float64 `json:"thresholds"`
	Actions     map[string]any     `json:"actions"`
	Enabled     *bool              `json:"enabled"`
	Description *string            `json:"description"`
}

// TestRuleRequest carries classifier scores. Scores are decoded loosely:
// missing or malformed values count as zero.
type TestRuleRequest struct {
	RuleID string         `json:"rule_id"`
	Scores map[string]any `json:"scores"`
}

type TestRuleResult struct {
	RuleID   string             `json:"rule_id,omitempty"`
	Category string             `json:"category,omitempty"`
	Decision string             `json:"decision"`
	Labels   []string           `json:"labels"`
	Scores   map[string]float64 `json:"scores"`
}

type RuleFilter struct {
	Category string
	Enabled  *bool
	Limit    int
	Cursor   string
}

func ToRuleChangeDTO(c domain.RuleChange) RuleChangeDTO {
	return RuleChangeDTO{
		UpdatedAt: c.UpdatedAt,
		UpdatedBy: c.UpdatedBy,
		Changes:   domain.MergeMeta(nil, c.Changes),
	}
}

func ToAIRuleDTO(r *domain.AIRule) AIRuleDTO {
	thresholds := make(map[string]float64, len(r.Thresholds))
	for k, v := range r.Thresholds {
		thresholds[k] = v
	}
	history := mapper.MapSlice(r.History, ToRuleChangeDTO)
	return AIRuleDTO{
		ID:          r.ID,
		Category:    r.Category,
		Thresholds:  thresholds,
		Actions:     domain.MergeMeta(nil, r.Actions),
		Enabled:     r.Enabled,
		UpdatedBy:   r.UpdatedBy,
		UpdatedAt:   r.UpdatedAt,
		Description: r.Description,
		History:     history,
	}
}
