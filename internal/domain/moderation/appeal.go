package moderation

import (
	"time"

	vo "github.com/orris-inc/moderation/internal/domain/moderation/valueobjects"
)

const AppealTargetSanction = "sanction"

// Appeal is a user's request to reverse a sanction. Decision events are
// appended to Meta["history"].
type Appeal struct {
	ID             string
	TargetType     string
	TargetID       string
	UserID         string
	Text           string
	Status         vo.AppealStatus
	CreatedAt      time.Time
	DecidedAt      *time.Time
	DecidedBy      string
	DecisionReason string
	Meta           map[string]any
}

// Decide records the decision and appends it to the appeal history.
func (a *Appeal) Decide(status vo.AppealStatus, reason, actor string, at time.Time) {
	decidedAt := at
	a.Status = status
	a.DecidedAt = &decidedAt
	a.DecidedBy = actor
	a.DecisionReason = reason
	if a.Meta == nil {
		a.Meta = map[string]any{}
	}
	AppendMeta(a.Meta, "history", map[string]any{
		"status":     status.String(),
		"reason":     reason,
		"decided_by": actor,
		"decided_at": formatTime(at),
	})
}
