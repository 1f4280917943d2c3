package moderation

import (
	"context"
	"strings"
	"time"

	"github.com/orris-inc/moderation/internal/application/moderation/dto"
	domain "github.com/orris-inc/moderation/internal/domain/moderation"
	vo "github.com/orris-inc/moderation/internal/domain/moderation/valueobjects"
)

func matchesContentFilter(c *domain.Content, filter dto.ContentFilter) bool {
	if filter.ContentType != "" && !strings.EqualFold(c.ContentType.String(), filter.ContentType) {
		return false
	}
	if filter.Status != "" && !strings.EqualFold(c.Status.String(), filter.Status) {
		return false
	}
	if filter.AILabel != "" && !c.HasLabel(filter.AILabel) {
		return false
	}
	if filter.HasReports != nil && (len(c.ReportIDs) > 0) != *filter.HasReports {
		return false
	}
	if filter.AuthorID != "" && c.AuthorID != filter.AuthorID {
		return false
	}
	if filter.CreatedFrom != nil && c.CreatedAt.Before(*filter.CreatedFrom) {
		return false
	}
	if filter.CreatedTo != nil && c.CreatedAt.After(*filter.CreatedTo) {
		return false
	}
	return true
}

func validateContentFilter(filter dto.ContentFilter) error {
	if filter.ContentType != "" {
		if _, err := vo.NewContentType(strings.ToLower(filter.ContentType)); err != nil {
			return domain.ErrInvalidValue("content type", err)
		}
	}
	if filter.Status != "" {
		if _, err := vo.NewContentStatus(strings.ToLower(filter.Status)); err != nil {
			return domain.ErrInvalidValue("content status", err)
		}
	}
	return nil
}

// ListContent lists the moderation queue newest first. The SQL content
// queue serves the page when configured and non-empty, unless the filter
// needs AI labels or report presence, which only the in-memory graph knows.
func (s *Service) ListContent(ctx context.Context, filter dto.ContentFilter) (*dto.Page[dto.ContentDTO], error) {
	if err := validateContentFilter(filter); err != nil {
		return nil, err
	}

	if s.content != nil && filter.AILabel == "" && filter.HasReports == nil {
		page, err := s.content.ListQueue(ctx, domain.ContentQueueFilter{
			ContentType: filter.ContentType,
			Status:      filter.Status,
			AuthorID:    filter.AuthorID,
			CreatedFrom: filter.CreatedFrom,
			CreatedTo:   filter.CreatedTo,
			Limit:       filter.Limit,
			Cursor:      filter.Cursor,
		})
		switch {
		case err != nil:
			s.repoFailed("content", "list_queue", err)
		case len(page.Items) > 0:
			return s.mergeContentPage(ctx, page)
		}
	}

	return query(ctx, s, "list_content", func(t *tx) (*dto.Page[dto.ContentDTO], error) {
		items := make([]*domain.Content, 0, len(t.store.Content))
		for _, c := range t.store.Content {
			if matchesContentFilter(c, filter) {
				items = append(items, c)
			}
		}
		sortNewestFirst(items,
			func(c *domain.Content) time.Time { return c.CreatedAt },
			func(c *domain.Content) string { return c.ID },
		)
		page, err := paginate(s, items, filter.Limit, filter.Cursor)
		if err != nil {
			return nil, err
		}
		out := make([]dto.ContentDTO, len(page.Items))
		for i, c := range page.Items {
			out[i] = dto.ToContentDTO(c)
		}
		return &dto.Page[dto.ContentDTO]{Items: out, NextCursor: page.NextCursor, Total: page.Total}, nil
	})
}

func (s *Service) mergeContentPage(ctx context.Context, page *domain.ContentQueuePage) (*dto.Page[dto.ContentDTO], error) {
	return query(ctx, s, "list_content", func(t *tx) (*dto.Page[dto.ContentDTO], error) {
		items := make([]dto.ContentDTO, 0, len(page.Items))
		for _, row := range page.Items {
			if c, ok := t.store.Content[row.ID]; ok {
				out := dto.ToContentDTO(c)
				mergeContentRow(&out, row)
				items = append(items, out)
				continue
			}
			items = append(items, contentDTOFromRow(row))
		}
		return &dto.Page[dto.ContentDTO]{Items: items, NextCursor: page.NextCursor, Total: len(items)}, nil
	})
}

// loadContentRow fetches SQL details outside the graph lock.
func (s *Service) loadContentRow(ctx context.Context, contentID string) *domain.ContentRow {
	if s.content == nil {
		return nil
	}
	row, err := s.content.LoadContentDetails(ctx, contentID)
	if err != nil {
		s.repoFailed("content", "load_content_details", err)
		return nil
	}
	return row
}

// GetContent returns the content record with SQL details laid over it.
func (s *Service) GetContent(ctx context.Context, contentID string) (*dto.ContentDTO, error) {
	mem, err := query(ctx, s, "get_content", func(t *tx) (*dto.ContentDTO, error) {
		c, ok := t.store.Content[contentID]
		if !ok {
			return nil, nil
		}
		out := dto.ToContentDTO(c)
		return &out, nil
	})
	if err != nil {
		return nil, err
	}

	row := s.loadContentRow(ctx, contentID)
	switch {
	case mem != nil:
		mergeContentRow(mem, row)
		return mem, nil
	case row != nil:
		out := contentDTOFromRow(row)
		return &out, nil
	default:
		return nil, domain.ErrContentNotFound(contentID)
	}
}

// contentFromRow builds an in-memory record for content known only to SQL
// so a decision can be recorded against it.
func contentFromRow(row *domain.ContentRow, now time.Time) *domain.Content {
	c := &domain.Content{
		ID:        row.ID,
		CreatedAt: now,
		Status:    vo.ContentStatusPending,
		Meta:      map[string]any{"source": dto.SourceSQL},
	}
	if row.ContentType != nil {
		if ct, err := vo.NewContentType(*row.ContentType); err == nil {
			c.ContentType = ct
		}
	}
	if c.ContentType == "" {
		c.ContentType = vo.ContentTypeNode
	}
	if row.AuthorID != nil {
		c.AuthorID = *row.AuthorID
	}
	if row.CreatedAt != nil {
		c.CreatedAt = row.CreatedAt.UTC()
	}
	if row.Title != nil {
		c.Preview = *row.Title
	}
	if row.ModerationStatus != nil {
		if st, err := vo.NewContentStatus(*row.ModerationStatus); err == nil {
			c.Status = st
		}
	}
	return c
}

type decisionResult struct {
	content *dto.ContentDTO
	entry   map[string]any
}

// DecideContent applies a moderator action, prepends it to the moderation
// history and mirrors it into meta.last_decision.
func (s *Service) DecideContent(ctx context.Context, contentID string, req dto.ContentDecisionRequest, actorID string) (*dto.ContentDTO, error) {
	action := strings.ToLower(strings.TrimSpace(req.Action))
	if action == "" {
		return nil, domain.ErrRequired("action")
	}
	s.logger.Debugw("deciding content", "content_id", contentID, "action", action, "actor_id", actorID)

	row := s.loadContentRow(ctx, contentID)

	res, err := mutate(ctx, s, "decide_content", func(t *tx) (*decisionResult, error) {
		c, ok := t.store.Content[contentID]
		if !ok {
			if row == nil {
				return nil, domain.ErrContentNotFound(contentID)
			}
			c = t.store.AddContent(contentFromRow(row, t.now))
		}
		entry := c.RecordDecision(action, strings.TrimSpace(req.Reason), actorID, strings.TrimSpace(req.Notes), t.now)
		t.emit(domain.NewContentDecidedEvent(c, action, actorID, t.now))

		out := dto.ToContentDTO(c)
		return &decisionResult{content: &out, entry: domain.CloneMap(entry)}, nil
	})
	if err != nil {
		return nil, err
	}

	if s.content != nil {
		saved, err := s.content.RecordDecision(ctx, domain.ContentDecision{
			ContentID: contentID,
			Action:    action,
			Reason:    strings.TrimSpace(req.Reason),
			ActorID:   actorID,
			Payload:   res.entry,
		})
		if err != nil {
			s.repoFailed("content", "record_decision", err)
		} else {
			mergeContentRow(res.content, saved)
		}
	}

	s.logger.Infow("content decided", "content_id", contentID, "action", action, "status", res.content.Status)
	return res.content, nil
}

// EditContent merges patch into the content meta without touching status.
func (s *Service) EditContent(ctx context.Context, contentID string, patch map[string]any) (*dto.ContentDTO, error) {
	return mutate(ctx, s, "edit_content", func(t *tx) (*dto.ContentDTO, error) {
		c, ok := t.store.Content[contentID]
		if !ok {
			return nil, domain.ErrContentNotFound(contentID)
		}
		c.Meta = domain.MergeMeta(c.Meta, patch)
		out := dto.ToContentDTO(c)
		return &out, nil
	})
}

// UpsertContent registers content for review or refreshes its summary.
// Status, history and report ids of an existing record are kept.
func (s *Service) UpsertContent(ctx context.Context, req dto.UpsertContentRequest) (*dto.ContentDTO, error) {
	contentType, err := vo.NewContentType(strings.ToLower(strings.TrimSpace(req.ContentType)))
	if err != nil {
		return nil, domain.ErrInvalidValue("content type", err)
	}
	authorID := strings.TrimSpace(req.AuthorID)
	if authorID == "" {
		return nil, domain.ErrRequired("author_id")
	}

	return mutate(ctx, s, "upsert_content", func(t *tx) (*dto.ContentDTO, error) {
		c, ok := t.store.Content[req.ID]
		if !ok || req.ID == "" {
			createdAt := t.now
			if req.CreatedAt != nil {
				createdAt = req.CreatedAt.UTC()
			}
			c = t.store.AddContent(&domain.Content{
				ID:          req.ID,
				ContentType: contentType,
				AuthorID:    authorID,
				CreatedAt:   createdAt,
				Preview:     s.markdown.PlainText(req.Preview),
				AILabels:    append([]string(nil), req.AILabels...),
				Meta:        domain.MergeMeta(nil, req.Meta),
			})
		} else {
			c.ContentType = contentType
			c.AuthorID = authorID
			c.Preview = s.markdown.PlainText(req.Preview)
			if req.AILabels != nil {
				c.AILabels = append([]string(nil), req.AILabels...)
			}
			if req.CreatedAt != nil {
				c.CreatedAt = req.CreatedAt.UTC()
			}
			c.Meta = domain.MergeMeta(c.Meta, req.Meta)
		}
		out := dto.ToContentDTO(c)
		return &out, nil
	})
}
