package moderation

import (
	"context"
	"strings"
	"time"

	"github.com/orris-inc/moderation/internal/application/moderation/dto"
	domain "github.com/orris-inc/moderation/internal/domain/moderation"
	vo "github.com/orris-inc/moderation/internal/domain/moderation/valueobjects"
	"github.com/orris-inc/moderation/internal/shared/biztime"
	"github.com/orris-inc/moderation/internal/shared/utils"
)

func parseTicketStatus(s string) (vo.TicketStatus, error) {
	status, err := vo.NewTicketStatus(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return "", domain.ErrInvalidValue("ticket status", err)
	}
	return status, nil
}

func parseTicketPriority(s string) (vo.TicketPriority, error) {
	priority, err := vo.NewTicketPriority(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return "", domain.ErrInvalidValue("ticket priority", err)
	}
	return priority, nil
}

func matchesTicketFilter(t *domain.Ticket, filter dto.TicketFilter) bool {
	switch {
	case filter.Status != "" && !strings.EqualFold(t.Status.String(), filter.Status):
		return false
	case filter.Priority != "" && !strings.EqualFold(t.Priority.String(), filter.Priority):
		return false
	case filter.AssigneeID != "" && t.AssigneeID != filter.AssigneeID:
		return false
	case filter.AuthorID != "" && t.AuthorID != filter.AuthorID:
		return false
	}
	return true
}

// ListTickets lists tickets by most recent activity. Rows known to the SQL
// ticket store are laid over the page.
func (s *Service) ListTickets(ctx context.Context, filter dto.TicketFilter) (*dto.Page[dto.TicketDTO], error) {
	if filter.Status != "" {
		if _, err := parseTicketStatus(filter.Status); err != nil {
			return nil, err
		}
	}
	if filter.Priority != "" {
		if _, err := parseTicketPriority(filter.Priority); err != nil {
			return nil, err
		}
	}

	page, err := query(ctx, s, "list_tickets", func(t *tx) (*dto.Page[dto.TicketDTO], error) {
		items := make([]*domain.Ticket, 0, len(t.store.Tickets))
		for _, tk := range t.store.Tickets {
			if matchesTicketFilter(tk, filter) {
				items = append(items, tk)
			}
		}
		sortNewestFirst(items,
			func(tk *domain.Ticket) time.Time { return tk.UpdatedAt },
			func(tk *domain.Ticket) string { return tk.ID },
		)
		window, err := paginate(s, items, filter.Limit, filter.Cursor)
		if err != nil {
			return nil, err
		}
		out := make([]dto.TicketDTO, len(window.Items))
		for i, tk := range window.Items {
			out[i] = dto.ToTicketDTO(tk)
		}
		return &dto.Page[dto.TicketDTO]{Items: out, NextCursor: window.NextCursor, Total: window.Total}, nil
	})
	if err != nil {
		return nil, err
	}

	if s.tickets != nil && len(page.Items) > 0 {
		ids := make([]string, len(page.Items))
		for i, item := range page.Items {
			ids[i] = item.ID
		}
		rows, err := s.tickets.FetchMany(ctx, ids)
		if err != nil {
			s.repoFailed("tickets", "fetch_many", err)
		} else {
			for i := range page.Items {
				mergeTicketRow(&page.Items[i], rows[page.Items[i].ID])
			}
		}
	}
	return page, nil
}

func (s *Service) GetTicket(ctx context.Context, ticketID string) (*dto.TicketDTO, error) {
	out, err := query(ctx, s, "get_ticket", func(t *tx) (*dto.TicketDTO, error) {
		tk, ok := t.store.Tickets[ticketID]
		if !ok {
			return nil, domain.ErrTicketNotFound(ticketID)
		}
		d := dto.ToTicketDTO(tk)
		return &d, nil
	})
	if err != nil {
		return nil, err
	}
	if s.tickets != nil {
		row, err := s.tickets.FetchTicket(ctx, ticketID)
		if err != nil {
			s.repoFailed("tickets", "fetch_ticket", err)
		} else {
			mergeTicketRow(out, row)
		}
	}
	return out, nil
}

// CreateTicket opens a ticket on behalf of its author.
func (s *Service) CreateTicket(ctx context.Context, req dto.CreateTicketRequest, actorID string) (*dto.TicketDTO, error) {
	title := s.markdown.PlainText(req.Title)
	if title == "" {
		return nil, domain.ErrRequired("title")
	}
	authorID := strings.TrimSpace(req.AuthorID)
	if authorID == "" {
		authorID = actorID
	}
	priority := vo.TicketPriorityNormal
	if req.Priority != "" {
		parsed, err := parseTicketPriority(req.Priority)
		if err != nil {
			return nil, err
		}
		priority = parsed
	}

	out, err := mutate(ctx, s, "create_ticket", func(t *tx) (*dto.TicketDTO, error) {
		tk := t.store.AddTicket(&domain.Ticket{
			Title:      title,
			Priority:   priority,
			AuthorID:   authorID,
			AssigneeID: strings.TrimSpace(req.AssigneeID),
			Status:     vo.TicketStatusNew,
			CreatedAt:  t.now,
			UpdatedAt:  t.now,
			Meta:       domain.MergeMeta(nil, req.Meta),
		})
		d := dto.ToTicketDTO(tk)
		return &d, nil
	})
	if err != nil {
		return nil, err
	}
	s.recordTicketUpdate(ctx, out)
	return out, nil
}

// ListTicketMessages returns messages in posting order. A non-empty page
// from the SQL ticket store takes precedence.
func (s *Service) ListTicketMessages(ctx context.Context, ticketID string, limit int, cursor string) (*dto.Page[dto.TicketMessageDTO], error) {
	page, err := query(ctx, s, "list_ticket_messages", func(t *tx) (*dto.Page[dto.TicketMessageDTO], error) {
		tk, ok := t.store.Tickets[ticketID]
		if !ok {
			return nil, domain.ErrTicketNotFound(ticketID)
		}
		msgs := make([]*domain.TicketMessage, 0, len(tk.MessageIDs))
		for _, mid := range tk.MessageIDs {
			if m, ok := t.store.TicketMessages[mid]; ok {
				msgs = append(msgs, m)
			}
		}
		window, err := paginate(s, msgs, limit, cursor)
		if err != nil {
			return nil, err
		}
		out := make([]dto.TicketMessageDTO, len(window.Items))
		for i, m := range window.Items {
			out[i] = dto.ToTicketMessageDTO(m)
		}
		return &dto.Page[dto.TicketMessageDTO]{Items: out, NextCursor: window.NextCursor, Total: window.Total}, nil
	})
	if err != nil {
		return nil, err
	}

	if s.tickets != nil {
		limit = utils.ClampLimit(limit, s.policy.DefaultPageLimit, s.policy.MaxPageLimit)
		rows, err := s.tickets.ListMessages(ctx, ticketID, limit, cursor)
		switch {
		case err != nil:
			s.repoFailed("tickets", "list_messages", err)
		case len(rows.Items) > 0:
			items := make([]dto.TicketMessageDTO, len(rows.Items))
			for i, row := range rows.Items {
				items[i] = dto.TicketMessageDTOFromRow(row)
			}
			page = &dto.Page[dto.TicketMessageDTO]{Items: items, NextCursor: rows.NextCursor, Total: len(items)}
		}
	}

	for i := range page.Items {
		page.Items[i].HTML = s.renderMessage(page.Items[i].Text)
	}
	return page, nil
}

func (s *Service) renderMessage(text string) string {
	rendered, err := s.markdown.RenderHTML(text)
	if err != nil {
		s.logger.Warnw("failed to render ticket message", "error", err)
		return ""
	}
	return rendered
}

// AddTicketMessage appends a message and bumps the ticket's activity
// timestamps. Unread count grows unless the message is internal or the
// caller opts out.
func (s *Service) AddTicketMessage(ctx context.Context, ticketID string, req dto.AddTicketMessageRequest, actorID string) (*dto.TicketMessageDTO, error) {
	text := s.markdown.PlainText(req.Text)
	if text == "" {
		return nil, domain.ErrRequired("text")
	}
	increment := true
	if req.IncrementUnread != nil {
		increment = *req.IncrementUnread
	}

	msg, err := mutate(ctx, s, "add_ticket_message", func(t *tx) (*dto.TicketMessageDTO, error) {
		tk, ok := t.store.Tickets[ticketID]
		if !ok {
			return nil, domain.ErrTicketNotFound(ticketID)
		}
		msg := t.store.AddTicketMessage(&domain.TicketMessage{
			TicketID:    ticketID,
			AuthorID:    actorID,
			Text:        text,
			Attachments: append([]string(nil), req.Attachments...),
			Internal:    req.Internal,
			AuthorName:  strings.TrimSpace(req.AuthorName),
			CreatedAt:   t.now,
		})
		tk.ApplyMessage(msg, increment)
		m := dto.ToTicketMessageDTO(msg)
		return &m, nil
	})
	if err != nil {
		return nil, err
	}

	if s.tickets != nil {
		row := domain.TicketMessageRow{
			ID:          msg.ID,
			TicketID:    ticketID,
			AuthorID:    actorID,
			AuthorName:  msg.AuthorName,
			Text:        msg.Text,
			Attachments: msg.Attachments,
			Internal:    msg.Internal,
			CreatedAt:   msg.CreatedAt,
		}
		if err := s.tickets.RecordMessage(ctx, row, increment); err != nil {
			s.repoFailed("tickets", "record_message", err)
		}
	}

	msg.HTML = s.renderMessage(msg.Text)
	return msg, nil
}

// UpdateTicket changes status, priority, assignee, unread count and meta.
func (s *Service) UpdateTicket(ctx context.Context, ticketID string, req dto.UpdateTicketRequest, actorID string) (*dto.TicketDTO, error) {
	var status vo.TicketStatus
	if req.Status != nil {
		parsed, err := parseTicketStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}
	var priority vo.TicketPriority
	if req.Priority != nil {
		parsed, err := parseTicketPriority(*req.Priority)
		if err != nil {
			return nil, err
		}
		priority = parsed
	}

	out, err := mutate(ctx, s, "update_ticket", func(t *tx) (*dto.TicketDTO, error) {
		tk, ok := t.store.Tickets[ticketID]
		if !ok {
			return nil, domain.ErrTicketNotFound(ticketID)
		}
		if status != "" {
			tk.Status = status
		}
		if priority != "" {
			tk.Priority = priority
		}
		if req.AssigneeID != nil {
			tk.AssigneeID = strings.TrimSpace(*req.AssigneeID)
		}
		if req.UnreadCount != nil {
			tk.SetUnreadCount(*req.UnreadCount)
		}
		if req.Meta != nil {
			tk.Meta = domain.MergeMeta(tk.Meta, req.Meta)
		}
		tk.Meta["updated_by"] = actorID
		tk.UpdatedAt = t.now
		d := dto.ToTicketDTO(tk)
		return &d, nil
	})
	if err != nil {
		return nil, err
	}
	s.recordTicketUpdate(ctx, out)
	return out, nil
}

// EscalateTicket forces the ticket to escalated and records the escalation
// in meta.escalations.
func (s *Service) EscalateTicket(ctx context.Context, ticketID string, req dto.EscalateTicketRequest, actorID string) (*dto.TicketDTO, error) {
	reason := s.markdown.PlainText(req.Reason)

	out, err := mutate(ctx, s, "escalate_ticket", func(t *tx) (*dto.TicketDTO, error) {
		tk, ok := t.store.Tickets[ticketID]
		if !ok {
			return nil, domain.ErrTicketNotFound(ticketID)
		}
		tk.Status = vo.TicketStatusEscalated
		tk.UpdatedAt = t.now
		domain.AppendMeta(tk.Meta, "escalations", map[string]any{
			"reason": reason,
			"actor":  actorID,
			"at":     biztime.FormatISO(t.now),
		})
		t.emit(domain.NewTicketEscalatedEvent(tk, reason, actorID, t.now))
		d := dto.ToTicketDTO(tk)
		return &d, nil
	})
	if err != nil {
		return nil, err
	}
	s.recordTicketUpdate(ctx, out)
	s.logger.Infow("ticket escalated", "ticket_id", ticketID, "actor_id", actorID)
	return out, nil
}

// recordTicketUpdate writes the ticket's current fields to the SQL store
// and lays the stored row back over the DTO.
func (s *Service) recordTicketUpdate(ctx context.Context, out *dto.TicketDTO) {
	if s.tickets == nil {
		return
	}
	row, err := s.tickets.RecordTicketUpdate(ctx, domain.TicketUpdate{
		TicketID:    out.ID,
		Status:      out.Status,
		Priority:    out.Priority,
		AssigneeID:  out.AssigneeID,
		UnreadCount: out.UnreadCount,
		UpdatedAt:   out.UpdatedAt,
		Meta:        out.Meta,
	})
	if err != nil {
		s.repoFailed("tickets", "record_ticket_update", err)
		return
	}
	mergeTicketRow(out, row)
}
