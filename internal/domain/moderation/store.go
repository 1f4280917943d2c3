package moderation

import (
	"time"

	vo "github.com/orris-inc/moderation/internal/domain/moderation/valueobjects"
	"github.com/orris-inc/moderation/internal/shared/id"
)

// Store is the in-memory aggregate graph. Records reference each other by
// id only, so every map can be serialized independently. Store is not safe
// for concurrent use; callers serialize access.
type Store struct {
	Users          map[string]*User
	Sanctions      map[string]*Sanction
	Notes          map[string]*Note
	Reports        map[string]*Report
	Content        map[string]*Content
	Tickets        map[string]*Ticket
	TicketMessages map[string]*TicketMessage
	Appeals        map[string]*Appeal
	AIRules        map[string]*AIRule
	// Idempotency maps a caller-supplied key to the sanction it created.
	Idempotency map[string]string
}

func NewStore() *Store {
	return &Store{
		Users:          make(map[string]*User),
		Sanctions:      make(map[string]*Sanction),
		Notes:          make(map[string]*Note),
		Reports:        make(map[string]*Report),
		Content:        make(map[string]*Content),
		Tickets:        make(map[string]*Ticket),
		TicketMessages: make(map[string]*TicketMessage),
		Appeals:        make(map[string]*Appeal),
		AIRules:        make(map[string]*AIRule),
		Idempotency:    make(map[string]string),
	}
}

func prepend(ids []string, id string) []string {
	return append([]string{id}, ids...)
}

// AddUser registers u, replacing any user with the same id.
func (s *Store) AddUser(u *User) *User {
	if u.ID == "" {
		u.ID = id.NewUserID()
	}
	if u.Meta == nil {
		u.Meta = map[string]any{}
	}
	if u.Status == "" {
		u.Status = vo.UserStatusActive
	}
	s.Users[u.ID] = u
	return u
}

// EnsureUser returns the user with userID, creating a stub when absent.
// The boolean reports whether a stub was created.
func (s *Store) EnsureUser(userID string, now time.Time) (*User, bool) {
	if u, ok := s.Users[userID]; ok {
		return u, false
	}
	return s.AddUser(NewUserStub(userID, now)), true
}

// AddSanction registers sn and prepends it to its owner's sanction list.
// The owner must already exist.
func (s *Store) AddSanction(sn *Sanction) *Sanction {
	if sn.ID == "" {
		sn.ID = id.NewSanctionID()
	}
	if sn.Meta == nil {
		sn.Meta = map[string]any{}
	}
	s.Sanctions[sn.ID] = sn
	if u, ok := s.Users[sn.UserID]; ok {
		u.SanctionIDs = prepend(u.SanctionIDs, sn.ID)
	}
	return sn
}

// AddNote registers n and prepends it to its user's note list.
func (s *Store) AddNote(n *Note) *Note {
	if n.ID == "" {
		n.ID = id.NewNoteID()
	}
	if n.Meta == nil {
		n.Meta = map[string]any{}
	}
	s.Notes[n.ID] = n
	if u, ok := s.Users[n.UserID]; ok {
		u.NoteIDs = prepend(u.NoteIDs, n.ID)
	}
	return n
}

// AddReport registers r. Reports about users are prepended to that user's
// report list; reports about content are appended to the content's report
// ids and prepended to the content author's report list.
func (s *Store) AddReport(r *Report) *Report {
	if r.ID == "" {
		r.ID = id.NewReportID()
	}
	if r.Meta == nil {
		r.Meta = map[string]any{}
	}
	if r.Status == "" {
		r.Status = vo.ReportStatusNew
	}
	s.Reports[r.ID] = r

	switch r.ObjectType {
	case ObjectTypeUser:
		if u, ok := s.Users[r.ObjectID]; ok {
			u.ReportIDs = prepend(u.ReportIDs, r.ID)
		}
	case ObjectTypeContent:
		if c, ok := s.Content[r.ObjectID]; ok {
			c.ReportIDs = append(c.ReportIDs, r.ID)
			if u, ok := s.Users[c.AuthorID]; ok {
				u.ReportIDs = prepend(u.ReportIDs, r.ID)
			}
		}
	}
	return r
}

// AddContent registers c, keeping report ids of a record it replaces.
func (s *Store) AddContent(c *Content) *Content {
	if c.ID == "" {
		c.ID = id.NewContentID()
	}
	if c.Meta == nil {
		c.Meta = map[string]any{}
	}
	if c.Status == "" {
		c.Status = vo.ContentStatusPending
	}
	if existing, ok := s.Content[c.ID]; ok && c.ReportIDs == nil {
		c.ReportIDs = existing.ReportIDs
	}
	s.Content[c.ID] = c
	return c
}

// AddTicket registers t and appends it to its author's ticket list.
func (s *Store) AddTicket(t *Ticket) *Ticket {
	if t.ID == "" {
		t.ID = id.NewTicketID()
	}
	if t.Meta == nil {
		t.Meta = map[string]any{}
	}
	s.Tickets[t.ID] = t
	if u, ok := s.Users[t.AuthorID]; ok {
		u.TicketIDs = append(u.TicketIDs, t.ID)
	}
	return t
}

// AddTicketMessage registers m and appends it to its ticket's message list.
func (s *Store) AddTicketMessage(m *TicketMessage) *TicketMessage {
	if m.ID == "" {
		m.ID = id.NewTicketMessageID()
	}
	s.TicketMessages[m.ID] = m
	if t, ok := s.Tickets[m.TicketID]; ok {
		t.MessageIDs = append(t.MessageIDs, m.ID)
	}
	return m
}

// AddAppeal registers a and records it in the target sanction's
// meta.appeal_ids.
func (s *Store) AddAppeal(a *Appeal) *Appeal {
	if a.ID == "" {
		a.ID = id.NewAppealID()
	}
	if a.Meta == nil {
		a.Meta = map[string]any{}
	}
	if a.Status == "" {
		a.Status = vo.AppealStatusNew
	}
	s.Appeals[a.ID] = a
	if a.TargetType == AppealTargetSanction {
		if sn, ok := s.Sanctions[a.TargetID]; ok {
			if sn.Meta == nil {
				sn.Meta = map[string]any{}
			}
			AppendMeta(sn.Meta, "appeal_ids", a.ID)
		}
	}
	return a
}

// AddRule registers r.
func (s *Store) AddRule(r *AIRule) *AIRule {
	if r.ID == "" {
		r.ID = id.NewAIRuleID()
	}
	if r.Thresholds == nil {
		r.Thresholds = map[string]float64{}
	}
	if r.Actions == nil {
		r.Actions = map[string]any{}
	}
	s.AIRules[r.ID] = r
	return r
}

// DeleteRule removes the rule and reports whether it existed. Rules are
// the only records that are ever hard-deleted.
func (s *Store) DeleteRule(ruleID string) bool {
	if _, ok := s.AIRules[ruleID]; !ok {
		return false
	}
	delete(s.AIRules, ruleID)
	return true
}

// UserSanction returns the sanction only when it belongs to userID.
func (s *Store) UserSanction(userID, sanctionID string) (*Sanction, bool) {
	sn, ok := s.Sanctions[sanctionID]
	if !ok || sn.UserID != userID {
		return nil, false
	}
	return sn, true
}

// RecomputeUserStatus expires lapsed sanctions of the user and derives the
// user's status from the remaining active bans.
func (s *Store) RecomputeUserStatus(userID string, now time.Time) {
	u, ok := s.Users[userID]
	if !ok {
		return
	}
	banned := false
	for _, sid := range u.SanctionIDs {
		sn, ok := s.Sanctions[sid]
		if !ok {
			continue
		}
		sn.RefreshExpiry(now)
		if sn.IsActiveBan() {
			banned = true
		}
	}
	if banned {
		u.Status = vo.UserStatusBanned
	} else {
		u.Status = vo.UserStatusActive
	}
}

// HasIndefiniteBan reports whether the user has an active ban without an
// end time. Lapsed sanctions are expired first.
func (s *Store) HasIndefiniteBan(userID string, now time.Time) bool {
	u, ok := s.Users[userID]
	if !ok {
		return false
	}
	for _, sid := range u.SanctionIDs {
		sn, ok := s.Sanctions[sid]
		if !ok {
			continue
		}
		sn.RefreshExpiry(now)
		if sn.IsActiveBan() && sn.EndsAt == nil {
			return true
		}
	}
	return false
}

// CountRecentWarnings counts the user's active warnings issued at or after
// now minus window.
func (s *Store) CountRecentWarnings(userID string, now time.Time, window time.Duration) int {
	u, ok := s.Users[userID]
	if !ok {
		return 0
	}
	since := now.Add(-window)
	count := 0
	for _, sid := range u.SanctionIDs {
		sn, ok := s.Sanctions[sid]
		if !ok || !sn.Type.IsWarning() {
			continue
		}
		sn.RefreshExpiry(now)
		if sn.Status.IsActive() && !sn.IssuedAt.Before(since) {
			count++
		}
	}
	return count
}
