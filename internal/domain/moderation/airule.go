package moderation

import (
	"sort"
	"time"
)

// AIRule flags content whose classifier scores meet per-label thresholds.
// History is kept in chronological order.
type AIRule struct {
	ID          string
	Category    string
	Thresholds  map[string]float64
	Actions     map[string]any
	Enabled     bool
	UpdatedBy   string
	UpdatedAt   time.Time
	Description string
	History     []RuleChange
}

// RuleChange is one entry of an AI rule's change log.
type RuleChange struct {
	UpdatedAt time.Time
	UpdatedBy string
	Changes   map[string]any
}

// Evaluate returns the labels whose score meets or exceeds the threshold,
// sorted by name. Missing scores count as zero.
func (r *AIRule) Evaluate(scores map[string]float64) []string {
	labels := make([]string, 0)
	for label, threshold := range r.Thresholds {
		if scores[label] >= threshold {
			labels = append(labels, label)
		}
	}
	sort.Strings(labels)
	return labels
}

// RecordChange stamps the rule and appends a history entry.
func (r *AIRule) RecordChange(actor string, at time.Time, changes map[string]any) {
	r.UpdatedBy = actor
	r.UpdatedAt = at
	r.History = append(r.History, RuleChange{
		UpdatedAt: at,
		UpdatedBy: actor,
		Changes:   changes,
	})
}
