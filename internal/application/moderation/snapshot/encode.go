// Package snapshot converts the moderation aggregate graph to and from the
// flat, JSON-shaped payload kept by snapshot stores. It performs no I/O.
package snapshot

import (
	"time"

	domain "github.com/orris-inc/moderation/internal/domain/moderation"
	"github.com/orris-inc/moderation/internal/shared/biztime"
)

// Top-level payload keys.
const (
	KeyUsers          = "users"
	KeySanctions      = "sanctions"
	KeyNotes          = "notes"
	KeyReports        = "reports"
	KeyContent        = "content"
	KeyTickets        = "tickets"
	KeyTicketMessages = "ticket_messages"
	KeyAppeals        = "appeals"
	KeyAIRules        = "ai_rules"
	KeyIdempotency    = "idempotency"
)

// Encode deep-copies the store into a payload. The result shares no
// mutable state with st.
func Encode(st *domain.Store) domain.Payload {
	payload := domain.Payload{
		KeyUsers:          encodeAll(st.Users, encodeUser),
		KeySanctions:      encodeAll(st.Sanctions, encodeSanction),
		KeyNotes:          encodeAll(st.Notes, encodeNote),
		KeyReports:        encodeAll(st.Reports, encodeReport),
		KeyContent:        encodeAll(st.Content, encodeContent),
		KeyTickets:        encodeAll(st.Tickets, encodeTicket),
		KeyTicketMessages: encodeAll(st.TicketMessages, encodeTicketMessage),
		KeyAppeals:        encodeAll(st.Appeals, encodeAppeal),
		KeyAIRules:        encodeAll(st.AIRules, encodeRule),
	}

	idem := make(map[string]any, len(st.Idempotency))
	for k, v := range st.Idempotency {
		idem[k] = v
	}
	payload[KeyIdempotency] = idem

	return payload
}

func encodeAll[T any](records map[string]*T, fn func(*T) map[string]any) map[string]any {
	out := make(map[string]any, len(records))
	for id, rec := range records {
		out[id] = fn(rec)
	}
	return out
}

func ts(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return biztime.FormatISO(t)
}

func tsPtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return ts(*t)
}

func strList(list []string) []any {
	out := make([]any, len(list))
	for i, s := range list {
		out[i] = s
	}
	return out
}

func mapList(list []map[string]any) []any {
	out := make([]any, len(list))
	for i, m := range list {
		out[i] = domain.CloneMap(m)
	}
	return out
}

func meta(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return domain.CloneMap(m)
}

func encodeUser(u *domain.User) map[string]any {
	return map[string]any{
		"id":            u.ID,
		"username":      u.Username,
		"email":         u.Email,
		"roles":         strList(u.Roles),
		"status":        u.Status.String(),
		"registered_at": ts(u.RegisteredAt),
		"last_seen_at":  tsPtr(u.LastSeenAt),
		"meta":          meta(u.Meta),
		"sanction_ids":  strList(u.SanctionIDs),
		"note_ids":      strList(u.NoteIDs),
		"report_ids":    strList(u.ReportIDs),
		"ticket_ids":    strList(u.TicketIDs),
	}
}

func encodeSanction(s *domain.Sanction) map[string]any {
	return map[string]any{
		"id":         s.ID,
		"user_id":    s.UserID,
		"type":       s.Type.String(),
		"status":     s.Status.String(),
		"reason":     s.Reason,
		"issued_by":  s.IssuedBy,
		"issued_at":  ts(s.IssuedAt),
		"starts_at":  ts(s.StartsAt),
		"ends_at":    tsPtr(s.EndsAt),
		"evidence":   strList(s.Evidence),
		"meta":       meta(s.Meta),
		"revoked_at": tsPtr(s.RevokedAt),
		"revoked_by": s.RevokedBy,
	}
}

func encodeNote(n *domain.Note) map[string]any {
	return map[string]any{
		"id":          n.ID,
		"user_id":     n.UserID,
		"text":        n.Text,
		"created_at":  ts(n.CreatedAt),
		"author_id":   n.AuthorID,
		"author_name": n.AuthorName,
		"pinned":      n.Pinned,
		"meta":        meta(n.Meta),
	}
}

func encodeReport(r *domain.Report) map[string]any {
	return map[string]any{
		"id":          r.ID,
		"object_type": r.ObjectType,
		"object_id":   r.ObjectID,
		"reporter_id": r.ReporterID,
		"category":    r.Category,
		"text":        r.Text,
		"status":      r.Status.String(),
		"source":      r.Source,
		"created_at":  ts(r.CreatedAt),
		"resolved_at": tsPtr(r.ResolvedAt),
		"decision":    r.Decision,
		"notes":       r.Notes,
		"updates":     mapList(r.Updates),
		"meta":        meta(r.Meta),
	}
}

func encodeContent(c *domain.Content) map[string]any {
	return map[string]any{
		"id":                 c.ID,
		"content_type":       c.ContentType.String(),
		"author_id":          c.AuthorID,
		"created_at":         ts(c.CreatedAt),
		"preview":            c.Preview,
		"ai_labels":          strList(c.AILabels),
		"status":             c.Status.String(),
		"report_ids":         strList(c.ReportIDs),
		"moderation_history": mapList(c.ModerationHistory),
		"meta":               meta(c.Meta),
	}
}

func encodeTicket(t *domain.Ticket) map[string]any {
	return map[string]any{
		"id":              t.ID,
		"title":           t.Title,
		"priority":        t.Priority.String(),
		"author_id":       t.AuthorID,
		"assignee_id":     t.AssigneeID,
		"status":          t.Status.String(),
		"created_at":      ts(t.CreatedAt),
		"updated_at":      ts(t.UpdatedAt),
		"last_message_at": tsPtr(t.LastMessageAt),
		"unread_count":    t.UnreadCount,
		"message_ids":     strList(t.MessageIDs),
		"meta":            meta(t.Meta),
	}
}

func encodeTicketMessage(m *domain.TicketMessage) map[string]any {
	return map[string]any{
		"id":          m.ID,
		"ticket_id":   m.TicketID,
		"author_id":   m.AuthorID,
		"text":        m.Text,
		"attachments": strList(m.Attachments),
		"internal":    m.Internal,
		"author_name": m.AuthorName,
		"created_at":  ts(m.CreatedAt),
	}
}

func encodeAppeal(a *domain.Appeal) map[string]any {
	return map[string]any{
		"id":              a.ID,
		"target_type":     a.TargetType,
		"target_id":       a.TargetID,
		"user_id":         a.UserID,
		"text":            a.Text,
		"status":          a.Status.String(),
		"created_at":      ts(a.CreatedAt),
		"decided_at":      tsPtr(a.DecidedAt),
		"decided_by":      a.DecidedBy,
		"decision_reason": a.DecisionReason,
		"meta":            meta(a.Meta),
	}
}

func encodeRule(r *domain.AIRule) map[string]any {
	thresholds := make(map[string]any, len(r.Thresholds))
	for label, v := range r.Thresholds {
		thresholds[label] = v
	}
	history := make([]any, len(r.History))
	for i, h := range r.History {
		history[i] = map[string]any{
			"updated_at": ts(h.UpdatedAt),
			"updated_by": h.UpdatedBy,
			"changes":    meta(h.Changes),
		}
	}
	return map[string]any{
		"id":          r.ID,
		"category":    r.Category,
		"thresholds":  thresholds,
		"actions":     meta(r.Actions),
		"enabled":     r.Enabled,
		"updated_by":  r.UpdatedBy,
		"updated_at":  ts(r.UpdatedAt),
		"description": r.Description,
		"history":     history,
	}
}
