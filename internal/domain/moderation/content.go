package moderation

import (
	"strings"
	"time"

	vo "github.com/orris-inc/moderation/internal/domain/moderation/valueobjects"
)

// Content summarizes a piece of user-generated content under review.
// ModerationHistory is kept newest first.
type Content struct {
	ID                string
	ContentType       vo.ContentType
	AuthorID          string
	CreatedAt         time.Time
	Preview           string
	AILabels          []string
	Status            vo.ContentStatus
	ReportIDs         []string
	ModerationHistory []map[string]any
	Meta              map[string]any
}

// HasLabel reports whether the content carries label, ignoring case.
func (c *Content) HasLabel(label string) bool {
	for _, l := range c.AILabels {
		if strings.EqualFold(l, label) {
			return true
		}
	}
	return false
}

// RecordDecision applies a moderator decision and prepends it to the history.
func (c *Content) RecordDecision(action, reason, actor, notes string, at time.Time) map[string]any {
	entry := map[string]any{
		"action":     action,
		"reason":     reason,
		"actor":      actor,
		"decided_at": formatTime(at),
		"notes":      notes,
	}
	c.Status = vo.ContentStatusForAction(action)
	c.ModerationHistory = append([]map[string]any{entry}, c.ModerationHistory...)
	if c.Meta == nil {
		c.Meta = map[string]any{}
	}
	c.Meta["last_decision"] = CloneMap(entry)
	return entry
}
