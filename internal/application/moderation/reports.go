package moderation

import (
	"context"
	"strings"
	"time"

	"github.com/orris-inc/moderation/internal/application/moderation/dto"
	domain "github.com/orris-inc/moderation/internal/domain/moderation"
	vo "github.com/orris-inc/moderation/internal/domain/moderation/valueobjects"
	"github.com/orris-inc/moderation/internal/shared/biztime"
	"github.com/orris-inc/moderation/internal/shared/errors"
)

const defaultReportSource = "user"

func matchesReportFilter(r *domain.Report, filter dto.ReportFilter) bool {
	switch {
	case filter.Status != "" && !strings.EqualFold(r.Status.String(), filter.Status):
		return false
	case filter.Category != "" && !strings.EqualFold(r.Category, filter.Category):
		return false
	case filter.Source != "" && !strings.EqualFold(r.Source, filter.Source):
		return false
	case filter.ObjectType != "" && r.ObjectType != filter.ObjectType:
		return false
	case filter.ObjectID != "" && r.ObjectID != filter.ObjectID:
		return false
	case filter.ReporterID != "" && r.ReporterID != filter.ReporterID:
		return false
	}
	return true
}

// ListReports lists reports newest first.
func (s *Service) ListReports(ctx context.Context, filter dto.ReportFilter) (*dto.Page[dto.ReportDTO], error) {
	if filter.Status != "" {
		if _, err := vo.NewReportStatus(strings.ToLower(filter.Status)); err != nil {
			return nil, domain.ErrInvalidValue("report status", err)
		}
	}
	return query(ctx, s, "list_reports", func(t *tx) (*dto.Page[dto.ReportDTO], error) {
		items := make([]*domain.Report, 0, len(t.store.Reports))
		for _, r := range t.store.Reports {
			if matchesReportFilter(r, filter) {
				items = append(items, r)
			}
		}
		sortNewestFirst(items,
			func(r *domain.Report) time.Time { return r.CreatedAt },
			func(r *domain.Report) string { return r.ID },
		)
		page, err := paginate(s, items, filter.Limit, filter.Cursor)
		if err != nil {
			return nil, err
		}
		return &dto.Page[dto.ReportDTO]{Items: dto.ToReportDTOs(page.Items), NextCursor: page.NextCursor, Total: page.Total}, nil
	})
}

func (s *Service) GetReport(ctx context.Context, reportID string) (*dto.ReportDTO, error) {
	return query(ctx, s, "get_report", func(t *tx) (*dto.ReportDTO, error) {
		r, ok := t.store.Reports[reportID]
		if !ok {
			return nil, domain.ErrReportNotFound(reportID)
		}
		out := dto.ToReportDTO(r)
		return &out, nil
	})
}

// CreateReport files a report about a user or content record that exists
// in the graph.
func (s *Service) CreateReport(ctx context.Context, req dto.CreateReportRequest, actorID string) (*dto.ReportDTO, error) {
	objectType := strings.ToLower(strings.TrimSpace(req.ObjectType))
	if objectType != domain.ObjectTypeUser && objectType != domain.ObjectTypeContent {
		return nil, errors.NewValidationError("invalid object type", req.ObjectType)
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		return nil, domain.ErrRequired("category")
	}
	reporterID := strings.TrimSpace(req.ReporterID)
	if reporterID == "" {
		reporterID = actorID
	}
	source := strings.ToLower(strings.TrimSpace(req.Source))
	if source == "" {
		source = defaultReportSource
	}
	text := s.markdown.PlainText(req.Text)

	return mutate(ctx, s, "create_report", func(t *tx) (*dto.ReportDTO, error) {
		switch objectType {
		case domain.ObjectTypeUser:
			if _, ok := t.store.Users[req.ObjectID]; !ok {
				return nil, domain.ErrUserNotFound(req.ObjectID)
			}
		case domain.ObjectTypeContent:
			if _, ok := t.store.Content[req.ObjectID]; !ok {
				return nil, domain.ErrContentNotFound(req.ObjectID)
			}
		}
		r := t.store.AddReport(&domain.Report{
			ObjectType: objectType,
			ObjectID:   req.ObjectID,
			ReporterID: reporterID,
			Category:   category,
			Text:       text,
			Status:     vo.ReportStatusNew,
			Source:     source,
			CreatedAt:  t.now,
			Updates: []map[string]any{{
				"status": vo.ReportStatusNew.String(),
				"actor":  actorID,
				"at":     biztime.FormatISO(t.now),
			}},
			Meta: domain.MergeMeta(nil, req.Meta),
		})
		out := dto.ToReportDTO(r)
		return &out, nil
	})
}

// ResolveReport closes a report with a result (resolved by default) and
// appends the resolution to its audit trail.
func (s *Service) ResolveReport(ctx context.Context, reportID string, req dto.ResolveReportRequest, actorID string) (*dto.ReportDTO, error) {
	status := vo.ReportStatusResolved
	if result := strings.ToLower(strings.TrimSpace(req.Result)); result != "" {
		parsed, err := vo.NewReportStatus(result)
		if err != nil {
			return nil, domain.ErrInvalidValue("report result", err)
		}
		if parsed.IsNew() {
			return nil, errors.NewValidationError("invalid report result", result)
		}
		status = parsed
	}

	return mutate(ctx, s, "resolve_report", func(t *tx) (*dto.ReportDTO, error) {
		r, ok := t.store.Reports[reportID]
		if !ok {
			return nil, domain.ErrReportNotFound(reportID)
		}
		resolvedAt := t.now
		r.Status = status
		r.ResolvedAt = &resolvedAt
		r.Decision = strings.TrimSpace(req.Decision)
		r.Notes = s.markdown.PlainText(req.Notes)
		r.Updates = append(r.Updates, map[string]any{
			"status":   status.String(),
			"actor":    actorID,
			"at":       biztime.FormatISO(t.now),
			"decision": r.Decision,
			"notes":    r.Notes,
		})
		out := dto.ToReportDTO(r)
		return &out, nil
	})
}
