package moderation

import (
	"time"

	vo "github.com/orris-inc/moderation/internal/domain/moderation/valueobjects"
)

// Sanction is a restriction applied to a user. A nil EndsAt means the
// sanction never ends on its own.
type Sanction struct {
	ID        string
	UserID    string
	Type      vo.SanctionType
	Status    vo.SanctionStatus
	Reason    string
	IssuedBy  string
	IssuedAt  time.Time
	StartsAt  time.Time
	EndsAt    *time.Time
	Evidence  []string
	Meta      map[string]any
	RevokedAt *time.Time
	RevokedBy string
}

// HasEnded reports whether the sanction's end time is at or before now.
func (s *Sanction) HasEnded(now time.Time) bool {
	return s.EndsAt != nil && !s.EndsAt.After(now)
}

// RefreshExpiry flips an active sanction whose end time passed to expired.
// It reports whether the status changed.
func (s *Sanction) RefreshExpiry(now time.Time) bool {
	if s.Status.IsActive() && s.HasEnded(now) {
		s.Status = vo.SanctionStatusExpired
		return true
	}
	return false
}

// Cancel marks the sanction canceled and stamps who revoked it.
func (s *Sanction) Cancel(actor string, at time.Time) {
	s.Status = vo.SanctionStatusCanceled
	revokedAt := at
	s.RevokedAt = &revokedAt
	s.RevokedBy = actor
}

// IsActiveBan reports whether this sanction currently bans its owner.
func (s *Sanction) IsActiveBan() bool {
	return s.Type.IsBan() && s.Status.IsActive()
}

// AppealIDs returns the appeal back-pointers recorded in meta.
func (s *Sanction) AppealIDs() []string {
	return MetaStrings(s.Meta, "appeal_ids")
}

// Note is a moderator note attached to a user.
type Note struct {
	ID         string
	UserID     string
	Text       string
	CreatedAt  time.Time
	AuthorID   string
	AuthorName string
	Pinned     bool
	Meta       map[string]any
}
