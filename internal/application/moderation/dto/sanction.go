package dto

import (
	"time"

	domain "github.com/orris-inc/moderation/internal/domain/moderation"
	"github.com/orris-inc/moderation/internal/shared/mapper"
)

type SanctionDTO struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Type      string         `json:"type"`
	Status    string         `json:"status"`
	Reason    string         `json:"reason"`
	IssuedBy  string         `json:"issued_by"`
	IssuedAt  time.Time      `json:"issued_at"`
	StartsAt  time.Time      `json:"starts_at"`
	EndsAt    *time.Time     `json:"ends_at"`
	Evidence  []string       `json:"evidence"`
	Meta      map[string]any `json:"meta"`
	RevokedAt *time.Time     `json:"revoked_at,omitempty"`
	RevokedBy string         `json:"revoked_by,omitempty"`
}

type IssueSanctionRequest struct {
	Type          string         `json:"type"`
	Status        string         `json:"status"`
	Reason        string         `json:"reason"`
	StartsAt      *time.Time     `json:"starts_at"`
	EndsAt        *time.Time     `json:"ends_at"`
	DurationHours *float64       `json:"duration_hours" binding:"omitempty,gt=0"`
	Evidence      []string       `json:"evidence"`
	Meta          map[string]any `json:"meta"`
}

type UpdateSanctionRequest struct {
	Status   *string        `json:"status"`
	Reason   *string        `json:"reason"`
	EndsAt   *time.Time     `json:"ends_at"`
	Evidence []string       `json:"evidence"`
	Meta     map[string]any `json:"meta"`
	Revoke   bool           `json:"revoke"`
}

func ToSanctionDTO(s *domain.Sanction) SanctionDTO {
	return SanctionDTO{
		ID:        s.ID,
		UserID:    s.UserID,
		Type:      s.Type.String(),
		Status:    s.Status.String(),
		Reason:    s.Reason,
		IssuedBy:  s.IssuedBy,
		IssuedAt:  s.IssuedAt,
		StartsAt:  s.StartsAt,
		EndsAt:    copyTime(s.EndsAt),
		Evidence:  nonNilStrings(s.Evidence),
		Meta:      domain.MergeMeta(nil, s.Meta),
		RevokedAt: copyTime(s.RevokedAt),
		RevokedBy: s.RevokedBy,
	}
}

func ToSanctionDTOs(list []*domain.Sanction) []SanctionDTO {
	return mapper.MapSlice(list, ToSanctionDTO)
}
