package snapshot

import (
	"encoding/json"
	"fmt"
	"time"

	domain "github.com/orris-inc/moderation/internal/domain/moderation"
	vo "github.com/orris-inc/moderation/internal/domain/moderation/valueobjects"
	"github.com/orris-inc/moderation/internal/shared/biztime"
)

// Decode rebuilds a store from a payload. It accepts payloads produced by
// Encode directly as well as payloads that went through a JSON round trip.
// Missing sections decode as empty.
func Decode(payload domain.Payload) (*domain.Store, error) {
	st := domain.NewStore()

	if err := decodeSection(payload, KeyUsers, st.Users, decodeUser); err != nil {
		return nil, err
	}
	if err := decodeSection(payload, KeySanctions, st.Sanctions, decodeSanction); err != nil {
		return nil, err
	}
	if err := decodeSection(payload, KeyNotes, st.Notes, decodeNote); err != nil {
		return nil, err
	}
	if err := decodeSection(payload, KeyReports, st.Reports, decodeReport); err != nil {
		return nil, err
	}
	if err := decodeSection(payload, KeyContent, st.Content, decodeContent); err != nil {
		return nil, err
	}
	if err := decodeSection(payload, KeyTickets, st.Tickets, decodeTicket); err != nil {
		return nil, err
	}
	if err := decodeSection(payload, KeyTicketMessages, st.TicketMessages, decodeTicketMessage); err != nil {
		return nil, err
	}
	if err := decodeSection(payload, KeyAppeals, st.Appeals, decodeAppeal); err != nil {
		return nil, err
	}
	if err := decodeSection(payload, KeyAIRules, st.AIRules, decodeRule); err != nil {
		return nil, err
	}

	if raw, ok := payload[KeyIdempotency]; ok && raw != nil {
		idem, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("snapshot section %s: expected object, got %T", KeyIdempotency, raw)
		}
		for k, v := range idem {
			if s, ok := v.(string); ok {
				st.Idempotency[k] = s
			}
		}
	}

	return st, nil
}

func decodeSection[T any](payload domain.Payload, key string, dst map[string]*T, fn func(*reader) *T) error {
	raw, ok := payload[key]
	if !ok || raw == nil {
		return nil
	}
	section, ok := raw.(map[string]any)
	if !ok {
		return fmt.Errorf("snapshot section %s: expected object, got %T", key, raw)
	}
	for id, item := range section {
		fields, ok := item.(map[string]any)
		if !ok {
			return fmt.Errorf("snapshot %s[%s]: expected object, got %T", key, id, item)
		}
		r := &reader{fields: fields, where: key + "[" + id + "]"}
		rec := fn(r)
		if r.err != nil {
			return r.err
		}
		dst[id] = rec
	}
	return nil
}

// reader extracts typed fields from a decoded record, keeping the first error.
type reader struct {
	fields map[string]any
	where  string
	err    error
}

func (r *reader) fail(key string, format string, args ...any) {
	if r.err == nil {
		r.err = fmt.Errorf("snapshot %s.%s: %s", r.where, key, fmt.Sprintf(format, args...))
	}
}

func (r *reader) str(key string) string {
	switch v := r.fields[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		r.fail(key, "expected string, got %T", v)
		return ""
	}
}

func (r *reader) flag(key string) bool {
	switch v := r.fields[key].(type) {
	case nil:
		return false
	case bool:
		return v
	default:
		r.fail(key, "expected bool, got %T", v)
		return false
	}
}

func (r *reader) number(key string) int {
	switch v := r.fields[key].(type) {
	case nil:
		return 0
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			r.fail(key, "invalid number %q", v)
		}
		return int(n)
	default:
		r.fail(key, "expected number, got %T", v)
		return 0
	}
}

func (r *reader) timestampPtr(key string) *time.Time {
	s := r.str(key)
	if s == "" {
		return nil
	}
	t, err := biztime.ParseISO(s)
	if err != nil {
		r.fail(key, "%v", err)
		return nil
	}
	return &t
}

func (r *reader) timestamp(key string) time.Time {
	if t := r.timestampPtr(key); t != nil {
		return *t
	}
	return time.Time{}
}

func (r *reader) stringList(key string) []string {
	switch v := r.fields[key].(type) {
	case nil:
		return nil
	case []string:
		if len(v) == 0 {
			return nil
		}
		return append([]string(nil), v...)
	case []any:
		if len(v) == 0 {
			return nil
		}
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				r.fail(key, "expected string item, got %T", item)
				return nil
			}
			out = append(out, s)
		}
		return out
	default:
		r.fail(key, "expected list, got %T", v)
		return nil
	}
}

func (r *reader) objects(key string) []map[string]any {
	var items []any
	switch v := r.fields[key].(type) {
	case nil:
		return nil
	case []map[string]any:
		return domain.CloneMaps(v)
	case []any:
		items = v
	default:
		r.fail(key, "expected list, got %T", v)
		return nil
	}
	if len(items) == 0 {
		return nil
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			r.fail(key, "expected object item, got %T", item)
			return nil
		}
		out = append(out, domain.CloneMap(m))
	}
	return out
}

func (r *reader) object(key string) map[string]any {
	switch v := r.fields[key].(type) {
	case nil:
		return map[string]any{}
	case map[string]any:
		return domain.CloneMap(v)
	default:
		r.fail(key, "expected object, got %T", v)
		return map[string]any{}
	}
}

func (r *reader) floatMap(key string) map[string]float64 {
	out := map[string]float64{}
	switch v := r.fields[key].(type) {
	case nil:
	case map[string]float64:
		for k, f := range v {
			out[k] = f
		}
	case map[string]any:
		for k, item := range v {
			switch n := item.(type) {
			case float64:
				out[k] = n
			case int:
				out[k] = float64(n)
			case json.Number:
				f, err := n.Float64()
				if err != nil {
					r.fail(key, "invalid number %q", n)
				}
				out[k] = f
			default:
				r.fail(key, "expected number for %s, got %T", k, item)
			}
		}
	default:
		r.fail(key, "expected object, got %T", v)
	}
	return out
}

// enum parses a value object, recording a decode error on bad input.
func enum[T any](r *reader, key string, parse func(string) (T, error)) T {
	v, err := parse(r.str(key))
	if err != nil {
		r.fail(key, "%v", err)
	}
	return v
}

func decodeUser(r *reader) *domain.User {
	return &domain.User{
		ID:           r.str("id"),
		Username:     r.str("username"),
		Email:        r.str("email"),
		Roles:        r.stringList("roles"),
		Status:       enum(r, "status", vo.NewUserStatus),
		RegisteredAt: r.timestamp("registered_at"),
		LastSeenAt:   r.timestampPtr("last_seen_at"),
		Meta:         r.object("meta"),
		SanctionIDs:  r.stringList("sanction_ids"),
		NoteIDs:      r.stringList("note_ids"),
		ReportIDs:    r.stringList("report_ids"),
		TicketIDs:    r.stringList("ticket_ids"),
	}
}

func decodeSanction(r *reader) *domain.Sanction {
	return &domain.Sanction{
		ID:        r.str("id"),
		UserID:    r.str("user_id"),
		Type:      enum(r, "type", vo.NewSanctionType),
		Status:    enum(r, "status", vo.NewSanctionStatus),
		Reason:    r.str("reason"),
		IssuedBy:  r.str("issued_by"),
		IssuedAt:  r.timestamp("issued_at"),
		StartsAt:  r.timestamp("starts_at"),
		EndsAt:    r.timestampPtr("ends_at"),
		Evidence:  r.stringList("evidence"),
		Meta:      r.object("meta"),
		RevokedAt: r.timestampPtr("revoked_at"),
		RevokedBy: r.str("revoked_by"),
	}
}

func decodeNote(r *reader) *domain.Note {
	return &domain.Note{
		ID:         r.str("id"),
		UserID:     r.str("user_id"),
		Text:       r.str("text"),
		CreatedAt:  r.timestamp("created_at"),
		AuthorID:   r.str("author_id"),
		AuthorName: r.str("author_name"),
		Pinned:     r.flag("pinned"),
		Meta:       r.object("meta"),
	}
}

func decodeReport(r *reader) *domain.Report {
	return &domain.Report{
		ID:         r.str("id"),
		ObjectType: r.str("object_type"),
		ObjectID:   r.str("object_id"),
		ReporterID: r.str("reporter_id"),
		Category:   r.str("category"),
		Text:       r.str("text"),
		Status:     enum(r, "status", vo.NewReportStatus),
		Source:     r.str("source"),
		CreatedAt:  r.timestamp("created_at"),
		ResolvedAt: r.timestampPtr("resolved_at"),
		Decision:   r.str("decision"),
		Notes:      r.str("notes"),
		Updates:    r.objects("updates"),
		Meta:       r.object("meta"),
	}
}

func decodeContent(r *reader) *domain.Content {
	return &domain.Content{
		ID:                r.str("id"),
		ContentType:       enum(r, "content_type", vo.NewContentType),
		AuthorID:          r.str("author_id"),
		CreatedAt:         r.timestamp("created_at"),
		Preview:           r.str("preview"),
		AILabels:          r.stringList("ai_labels"),
		Status:            enum(r, "status", vo.NewContentStatus),
		ReportIDs:         r.stringList("report_ids"),
		ModerationHistory: r.objects("moderation_history"),
		Meta:              r.object("meta"),
	}
}

func decodeTicket(r *reader) *domain.Ticket {
	return &domain.Ticket{
		ID:            r.str("id"),
		Title:         r.str("title"),
		Priority:      enum(r, "priority", vo.NewTicketPriority),
		AuthorID:      r.str("author_id"),
		AssigneeID:    r.str("assignee_id"),
		Status:        enum(r, "status", vo.NewTicketStatus),
		CreatedAt:     r.timestamp("created_at"),
		UpdatedAt:     r.timestamp("updated_at"),
		LastMessageAt: r.timestampPtr("last_message_at"),
		UnreadCount:   r.number("unread_count"),
		MessageIDs:    r.stringList("message_ids"),
		Meta:          r.object("meta"),
	}
}

func decodeTicketMessage(r *reader) *domain.TicketMessage {
	return &domain.TicketMessage{
		ID:          r.str("id"),
		TicketID:    r.str("ticket_id"),
		AuthorID:    r.str("author_id"),
		Text:        r.str("text"),
		Attachments: r.stringList("attachments"),
		Internal:    r.flag("internal"),
		AuthorName:  r.str("author_name"),
		CreatedAt:   r.timestamp("created_at"),
	}
}

func decodeAppeal(r *reader) *domain.Appeal {
	return &domain.Appeal{
		ID:             r.str("id"),
		TargetType:     r.str("target_type"),
		TargetID:       r.str("target_id"),
		UserID:         r.str("user_id"),
		Text:           r.str("text"),
		Status:         enum(r, "status", vo.NewAppealStatus),
		CreatedAt:      r.timestamp("created_at"),
		DecidedAt:      r.timestampPtr("decided_at"),
		DecidedBy:      r.str("decided_by"),
		DecisionReason: r.str("decision_reason"),
		Meta:           r.object("meta"),
	}
}

func decodeRule(r *reader) *domain.AIRule {
	rule := &domain.AIRule{
		ID:          r.str("id"),
		Category:    r.str("category"),
		Thresholds:  r.floatMap("thresholds"),
		Actions:     r.object("actions"),
		Enabled:     r.flag("enabled"),
		UpdatedBy:   r.str("updated_by"),
		UpdatedAt:   r.timestamp("updated_at"),
		Description: r.str("description"),
	}
	for _, entry := range r.objects("history") {
		hr := &reader{fields: entry, where: r.where + ".history"}
		rule.History = append(rule.History, domain.RuleChange{
			UpdatedAt: hr.timestamp("updated_at"),
			UpdatedBy: hr.str("updated_by"),
			Changes:   hr.object("changes"),
		})
		if hr.err != nil && r.err == nil {
			r.err = hr.err
		}
	}
	return rule
}
