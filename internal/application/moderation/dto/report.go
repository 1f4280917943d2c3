package dto

import (
	"time"

	domain "github.com/orris-inc/moderation/internal/domain/moderation"
	"github.com/orris-inc/moderation/internal/shared/mapper"
)

type ReportDTO struct {
	ID         string           `json:"id"`
	ObjectType string           `json:"object_type"`
	ObjectID   string           `json:"object_id"`
	ReporterID string           `json:"reporter_id"`
	Category   string           `json:"category"`
	Text       string           `json:"text"`
	Status     string           `json:"status"`
	Source     string           `json:"source"`
	CreatedAt  time.Time        `json:"created_at"`
	ResolvedAt *time.Time       `json:"resolved_at,omitempty"`
	Decision   string           `json:"decision,omitempty"`
	Notes      string           `json:"notes,omitempty"`
	Updates    []map[string]any `json:"updates"`
	Meta       map[string]any   `json:"meta"`
}

type CreateReportRequest struct {
	ObjectType string         `json:"object_type" binding:"required,oneof=user content"`
	ObjectID   string         `json:"object_id" binding:"required"`
	ReporterID string         `json:"reporter_id"`
	Category   string         `json:"category" binding:"required"`
	Text       string         `json:"text"`
	Source     string         `json:"source"`
	Meta       map[string]any `json:"meta"`
}

type ResolveReportRequest struct {
	Result   string `json:"result"`
	Decision string `json:"decision"`
	Notes    string `json:"notes"`
}

type ReportFilter struct {
	Status     string
	Category   string
	Source     string
	ObjectType string
	ObjectID   string
	ReporterID string
	Limit      int
	Cursor     string
}

func ToReportDTO(r *domain.Report) ReportDTO {
	updates := domain.CloneMaps(r.Updates)
	if updates == nil {
		updates = []map[string]any{}
	}
	return ReportDTO{
		ID:         r.ID,
		ObjectType: r.ObjectType,
		ObjectID:   r.ObjectID,
		ReporterID: r.ReporterID,
		Category:   r.Category,
		Text:       r.Text,
		Status:     r.Status.String(),
		Source:     r.Source,
		CreatedAt:  r.CreatedAt,
		ResolvedAt: copyTime(r.ResolvedAt),
		Decision:   r.Decision,
		Notes:      r.Notes,
		Updates:    updates,
		Meta:       domain.MergeMeta(nil, r.Meta),
	}
}

func ToReportDTOs(list []*domain.Report) []ReportDTO {
	return mapper.MapSlice(list, ToReportDTO)
}
