package moderation

import (
	"time"

	vo "github.com/orris-inc/moderation/internal/domain/moderation/valueobjects"
)

const (
	ObjectTypeUser    = "user"
	ObjectTypeContent = "content"
)

// Report is a complaint about a user or a content record.
type Report struct {
	ID         string
	ObjectType string
	ObjectID   string
	ReporterID string
	Category   string
	Text       string
	Status     vo.ReportStatus
	Source     string
	CreatedAt  time.Time
	ResolvedAt *time.Time
	Decision   string
	Notes      string
	Updates    []map[string]any
	Meta       map[string]any
}

// ResolutionHours returns the time between filing and resolution.
func (r *Report) ResolutionHours() (float64, bool) {
	if r.ResolvedAt == nil || r.CreatedAt.IsZero() {
		return 0, false
	}
	return r.ResolvedAt.Sub(r.CreatedAt).Hours(), true
}
