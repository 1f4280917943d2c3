package moderation

import (
	"context"
	"strings"
	"time"

	"github.com/orris-inc/moderation/internal/application/moderation/dto"
	domain "github.com/orris-inc/moderation/internal/domain/moderation"
	vo "github.com/orris-inc/moderation/internal/domain/moderation/valueobjects"
	"github.com/orris-inc/moderation/internal/shared/errors"
)

func matchesAppealFilter(a *domain.Appeal, filter dto.AppealFilter) bool {
	switch {
	case filter.Status != "" && !strings.EqualFold(a.Status.String(), filter.Status):
		return false
	case filter.UserID != "" && a.UserID != filter.UserID:
		return false
	case filter.TargetID != "" && a.TargetID != filter.TargetID:
		return false
	}
	return true
}

// ListAppeals lists appeals newest first with SQL decisions laid over them.
func (s *Service) ListAppeals(ctx context.Context, filter dto.AppealFilter) (*dto.Page[dto.AppealDTO], error) {
	if filter.Status != "" {
		if _, err := vo.NewAppealStatus(strings.ToLower(filter.Status)); err != nil {
			return nil, domain.ErrInvalidValue("appeal status", err)
		}
	}

	page, err := query(ctx, s, "list_appeals", func(t *tx) (*dto.Page[dto.AppealDTO], error) {
		items := make([]*domain.Appeal, 0, len(t.store.Appeals))
		for _, a := range t.store.Appeals {
			if matchesAppealFilter(a, filter) {
				items = append(items, a)
			}
		}
		sortNewestFirst(items,
			func(a *domain.Appeal) time.Time { return a.CreatedAt },
			func(a *domain.Appeal) string { return a.ID },
		)
		window, err := paginate(s, items, filter.Limit, filter.Cursor)
		if err != nil {
			return nil, err
		}
		out := make([]dto.AppealDTO, len(window.Items))
		for i, a := range window.Items {
			out[i] = dto.ToAppealDTO(a)
		}
		return &dto.Page[dto.AppealDTO]{Items: out, NextCursor: window.NextCursor, Total: window.Total}, nil
	})
	if err != nil {
		return nil, err
	}

	if s.appeals != nil && len(page.Items) > 0 {
		ids := make([]string, len(page.Items))
		for i, item := range page.Items {
			ids[i] = item.ID
		}
		rows, err := s.appeals.FetchMany(ctx, ids)
		if err != nil {
			s.repoFailed("appeals", "fetch_many", err)
		} else {
			for i := range page.Items {
				mergeAppealRow(&page.Items[i], rows[page.Items[i].ID])
			}
		}
	}
	return page, nil
}

func (s *Service) GetAppeal(ctx context.Context, appealID string) (*dto.AppealDTO, error) {
	out, err := query(ctx, s, "get_appeal", func(t *tx) (*dto.AppealDTO, error) {
		a, ok := t.store.Appeals[appealID]
		if !ok {
			return nil, domain.ErrAppealNotFound(appealID)
		}
		d := dto.ToAppealDTO(a)
		return &d, nil
	})
	if err != nil {
		return nil, err
	}
	if s.appeals != nil {
		row, err := s.appeals.FetchAppeal(ctx, appealID)
		if err != nil {
			s.repoFailed("appeals", "fetch_appeal", err)
		} else {
			mergeAppealRow(out, row)
		}
	}
	return out, nil
}

// CreateAppeal files an appeal against a sanction. The appeal is recorded
// in the sanction's meta.appeal_ids.
func (s *Service) CreateAppeal(ctx context.Context, req dto.CreateAppealRequest, actorID string) (*dto.AppealDTO, error) {
	targetType := strings.ToLower(strings.TrimSpace(req.TargetType))
	if targetType == "" {
		targetType = domain.AppealTargetSanction
	}
	if targetType != domain.AppealTargetSanction {
		return nil, errors.NewValidationError("invalid appeal target type", req.TargetType)
	}
	text := s.markdown.PlainText(req.Text)
	if text == "" {
		return nil, domain.ErrRequired("text")
	}

	return mutate(ctx, s, "create_appeal", func(t *tx) (*dto.AppealDTO, error) {
		sn, ok := t.store.Sanctions[req.TargetID]
		if !ok {
			return nil, domain.ErrSanctionNotFound(req.TargetID)
		}
		userID := strings.TrimSpace(req.UserID)
		if userID == "" {
			userID = sn.UserID
		}
		if userID != sn.UserID {
			return nil, domain.ErrSanctionNotFound(req.TargetID)
		}
		a := t.store.AddAppeal(&domain.Appeal{
			TargetType: targetType,
			TargetID:   sn.ID,
			UserID:     userID,
			Text:       text,
			Status:     vo.AppealStatusNew,
			CreatedAt:  t.now,
			Meta:       domain.MergeMeta(map[string]any{"submitted_by": actorID}, req.Meta),
		})
		out := dto.ToAppealDTO(a)
		return &out, nil
	})
}

type appealResult struct {
	appeal   *dto.AppealDTO
	decision domain.AppealDecision
	canceled *domain.SanctionRecord
}

// DecideAppeal records a decision, approved by default. Approving cancels
// the appealed sanction if it still exists and recomputes its owner.
func (s *Service) DecideAppeal(ctx context.Context, appealID string, req dto.DecideAppealRequest, actorID string) (*dto.AppealDTO, error) {
	status := vo.AppealStatusApproved
	if result := strings.ToLower(strings.TrimSpace(req.Result)); result != "" {
		parsed, err := vo.NewAppealStatus(result)
		if err != nil {
			return nil, domain.ErrInvalidValue("appeal result", err)
		}
		status = parsed
	}
	reason := strings.TrimSpace(req.Reason)
	s.logger.Debugw("deciding appeal", "appeal_id", appealID, "result", status, "actor_id", actorID)

	res, err := mutate(ctx, s, "decide_appeal", func(t *tx) (*appealResult, error) {
		a, ok := t.store.Appeals[appealID]
		if !ok {
			return nil, domain.ErrAppealNotFound(appealID)
		}
		a.Decide(status, reason, actorID, t.now)

		var canceled *domain.SanctionRecord
		if status.IsApproved() {
			if sn, ok := t.store.Sanctions[a.TargetID]; ok {
				sn.Cancel(actorID, *a.DecidedAt)
				t.store.RecomputeUserStatus(sn.UserID, t.now)
				record := sanctionRecord(sn)
				canceled = &record
			}
		}
		t.emit(domain.NewAppealDecidedEvent(a, t.now))

		out := dto.ToAppealDTO(a)
		return &appealResult{
			appeal: &out,
			decision: domain.AppealDecision{
				AppealID:       a.ID,
				Status:         a.Status.String(),
				DecidedAt:      *a.DecidedAt,
				DecidedBy:      a.DecidedBy,
				DecisionReason: a.DecisionReason,
				Meta:           domain.CloneMap(a.Meta),
			},
			canceled: canceled,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	if s.appeals != nil {
		row, err := s.appeals.RecordDecision(ctx, res.decision)
		if err != nil {
			s.repoFailed("appeals", "record_decision", err)
		} else {
			mergeAppealRow(res.appeal, row)
		}
	}
	if res.canceled != nil {
		s.persistSanctions(ctx, []domain.SanctionRecord{*res.canceled})
	}

	s.logger.Infow("appeal decided", "appeal_id", appealID, "status", res.appeal.Status)
	return res.appeal, nil
}
