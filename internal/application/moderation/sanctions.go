package moderation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/orris-inc/moderation/internal/application/moderation/dto"
	domain "github.com/orris-inc/moderation/internal/domain/moderation"
	vo "github.com/orris-inc/moderation/internal/domain/moderation/valueobjects"
	"github.com/orris-inc/moderation/internal/shared/errors"
)

const (
	autoBanActor  = "system:auto_ban"
	autoBanSource = "auto_ban"
)

type issueResult struct {
	sanction *dto.SanctionDTO
	records  []domain.SanctionRecord
}

// IssueSanction creates a sanction for the user. A repeated idempotency key
// returns the sanction created by the first call. An active warning that
// brings the user's recent warnings to the policy threshold also issues an
// indefinite ban.
func (s *Service) IssueSanction(ctx context.Context, userID string, req dto.IssueSanctionRequest, actorID, idempotencyKey string) (*dto.SanctionDTO, error) {
	s.logger.Debugw("issuing sanction", "user_id", userID, "type", req.Type, "actor_id", actorID)

	row, err := s.bootstrapUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	res, err := mutate(ctx, s, "issue_sanction", func(t *tx) (*issueResult, error) {
		_, anchored, err := anchorUser(t, userID, row)
		if err != nil {
			return nil, err
		}

		key := strings.TrimSpace(idempotencyKey)
		if key != "" {
			if sid, ok := t.store.Idempotency[key]; ok {
				if prior, ok := t.store.Sanctions[sid]; ok {
					if prior.UserID != userID {
						return nil, errors.NewValidationError("idempotency key already used for another user", key)
					}
					if !anchored {
						t.noop()
					}
					out := dto.ToSanctionDTO(prior)
					return &issueResult{sanction: &out}, nil
				}
			}
		}

		sn, err := buildSanction(userID, req, actorID, t.now)
		if err != nil {
			return nil, err
		}
		t.store.AddSanction(sn)
		if key != "" {
			t.store.Idempotency[key] = sn.ID
		}
		t.emit(domain.NewSanctionIssuedEvent(sn, t.now))
		s.metrics.RecordSanctionIssued(sn.Type.String())

		records := []domain.SanctionRecord{sanctionRecord(sn)}
		if ban := s.applyAutoBan(t, sn, actorID); ban != nil {
			records = append(records, sanctionRecord(ban))
		}
		t.store.RecomputeUserStatus(userID, t.now)

		out := dto.ToSanctionDTO(sn)
		return &issueResult{sanction: &out, records: records}, nil
	})
	if err != nil {
		return nil, err
	}

	s.persistSanctions(ctx, res.records)
	s.logger.Infow("sanction issued", "sanction_id", res.sanction.ID, "user_id", userID, "type", res.sanction.Type)
	return res.sanction, nil
}

func buildSanction(userID string, req dto.IssueSanctionRequest, actorID string, now time.Time) (*domain.Sanction, error) {
	sanctionType := vo.SanctionTypeBan
	if req.Type != "" {
		parsed, err := vo.NewSanctionType(strings.ToLower(strings.TrimSpace(req.Type)))
		if err != nil {
			return nil, domain.ErrInvalidValue("sanction type", err)
		}
		sanctionType = parsed
	}

	status := vo.SanctionStatusActive
	if req.Status != "" {
		parsed, err := vo.NewSanctionStatus(strings.ToLower(strings.TrimSpace(req.Status)))
		if err != nil {
			return nil, domain.ErrInvalidValue("sanction status", err)
		}
		status = parsed
	}

	startsAt := now
	if req.StartsAt != nil {
		startsAt = req.StartsAt.UTC()
	}

	var endsAt *time.Time
	switch {
	case req.EndsAt != nil:
		end := req.EndsAt.UTC()
		endsAt = &end
	case req.DurationHours != nil:
		if *req.DurationHours <= 0 {
			return nil, errors.NewValidationError("duration_hours must be positive")
		}
		end := startsAt.Add(time.Duration(*req.DurationHours * float64(time.Hour))).Truncate(time.Microsecond)
		endsAt = &end
	}

	sn := &domain.Sanction{
		UserID:   userID,
		Type:     sanctionType,
		Status:   status,
		Reason:   strings.TrimSpace(req.Reason),
		IssuedBy: actorID,
		IssuedAt: now,
		StartsAt: startsAt,
		EndsAt:   endsAt,
		Evidence: append([]string(nil), req.Evidence...),
		Meta:     domain.MergeMeta(nil, req.Meta),
	}
	sn.RefreshExpiry(now)
	if status.IsCanceled() {
		sn.Cancel(actorID, now)
	}
	return sn, nil
}

// applyAutoBan escalates an active warning into a ban once the user's
// recent active warnings reach the threshold. Users already under an
// indefinite ban are left alone; a timed ban does not block escalation.
func (s *Service) applyAutoBan(t *tx, warning *domain.Sanction, actorID string) *domain.Sanction {
	if !warning.Type.IsWarning() || !warning.Status.IsActive() {
		return nil
	}
	if t.store.HasIndefiniteBan(warning.UserID, t.now) {
		return nil
	}

	count := t.store.CountRecentWarnings(warning.UserID, t.now, s.policy.WarningWindow)
	if count < s.policy.WarningThreshold {
		return nil
	}

	ban := t.store.AddSanction(&domain.Sanction{
		UserID:   warning.UserID,
		Type:     vo.SanctionTypeBan,
		Status:   vo.SanctionStatusActive,
		Reason:   fmt.Sprintf("auto_ban_three_warnings (%d/%d)", count, s.policy.WarningThreshold),
		IssuedBy: autoBanActor,
		IssuedAt: t.now,
		StartsAt: t.now,
		Meta: map[string]any{
			"source":           autoBanSource,
			"trigger_id":       warning.ID,
			"triggered_by":     actorID,
			"warnings_counted": float64(count),
		},
	})
	warning.Meta["auto_ban_id"] = ban.ID

	t.emit(domain.NewSanctionIssuedEvent(ban, t.now))
	t.emit(domain.NewUserAutoBannedEvent(ban, count, t.now))
	s.metrics.RecordSanctionIssued(ban.Type.String())
	s.metrics.RecordAutoBan()
	s.logger.Infow("user auto-banned after repeated warnings",
		"user_id", warning.UserID,
		"warnings", count,
		"ban_id", ban.ID,
	)
	return ban
}

// UpdateSanction changes a sanction owned by userID. Revoking or setting
// status canceled stamps the revocation. The owner's status is recomputed
// afterwards.
func (s *Service) UpdateSanction(ctx context.Context, userID, sanctionID string, req dto.UpdateSanctionRequest, actorID string) (*dto.SanctionDTO, error) {
	s.logger.Debugw("updating sanction", "user_id", userID, "sanction_id", sanctionID, "actor_id", actorID)

	res, err := mutate(ctx, s, "update_sanction", func(t *tx) (*issueResult, error) {
		if _, ok := t.store.Users[userID]; !ok {
			return nil, domain.ErrUserNotFound(userID)
		}
		sn, ok := t.store.UserSanction(userID, sanctionID)
		if !ok {
			return nil, domain.ErrSanctionNotFound(sanctionID)
		}

		var status vo.SanctionStatus
		if req.Status != nil {
			parsed, err := vo.NewSanctionStatus(strings.ToLower(strings.TrimSpace(*req.Status)))
			if err != nil {
				return nil, domain.ErrInvalidValue("sanction status", err)
			}
			status = parsed
		}

		if req.Reason != nil {
			sn.Reason = strings.TrimSpace(*req.Reason)
		}
		if req.EndsAt != nil {
			end := req.EndsAt.UTC()
			sn.EndsAt = &end
		}
		if req.Evidence != nil {
			sn.Evidence = append([]string(nil), req.Evidence...)
		}
		if req.Meta != nil {
			sn.Meta = domain.MergeMeta(sn.Meta, req.Meta)
		}

		switch {
		case req.Revoke || status.IsCanceled():
			sn.Cancel(actorID, t.now)
		case status != "":
			sn.Status = status
		}

		sn.RefreshExpiry(t.now)
		t.store.RecomputeUserStatus(userID, t.now)

		out := dto.ToSanctionDTO(sn)
		return &issueResult{sanction: &out, records: []domain.SanctionRecord{sanctionRecord(sn)}}, nil
	})
	if err != nil {
		return nil, err
	}

	s.persistSanctions(ctx, res.records)
	s.logger.Infow("sanction updated", "sanction_id", sanctionID, "status", res.sanction.Status)
	return res.sanction, nil
}

// AddNote attaches a moderator note to the user.
func (s *Service) AddNote(ctx context.Context, userID string, req dto.AddNoteRequest, actorID string) (*dto.NoteDTO, error) {
	text := s.markdown.PlainText(req.Text)
	if text == "" {
		return nil, domain.ErrRequired("text")
	}

	row, err := s.bootstrapUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	note, err := mutate(ctx, s, "add_note", func(t *tx) (*dto.NoteDTO, error) {
		if _, _, err := anchorUser(t, userID, row); err != nil {
			return nil, err
		}
		n := t.store.AddNote(&domain.Note{
			UserID:     userID,
			Text:       text,
			CreatedAt:  t.now,
			AuthorID:   actorID,
			AuthorName: strings.TrimSpace(req.AuthorName),
			Pinned:     req.Pinned,
			Meta:       domain.MergeMeta(nil, req.Meta),
		})
		out := dto.ToNoteDTO(n)
		return &out, nil
	})
	if err != nil {
		return nil, err
	}

	if s.users != nil {
		record := domain.NoteRecord{
			ID:        note.ID,
			UserID:    userID,
			Text:      note.Text,
			AuthorID:  actorID,
			Pinned:    note.Pinned,
			CreatedAt: note.CreatedAt,
		}
		if err := s.users.AddNote(ctx, record); err != nil {
			s.repoFailed("users", "add_note", err)
		}
	}
	return note, nil
}

// WarningsCountRecent counts the user's active warnings issued within the
// trailing number of days. Days below one use the auto-ban window.
func (s *Service) WarningsCountRecent(ctx context.Context, userID string, days int) (*dto.WarningsCountDTO, error) {
	window := s.policy.WarningWindow
	if days > 0 {
		window = time.Duration(days) * 24 * time.Hour
	}
	return query(ctx, s, "warnings_count_recent", func(t *tx) (*dto.WarningsCountDTO, error) {
		u, ok := t.store.Users[userID]
		if !ok {
			return nil, domain.ErrUserNotFound(userID)
		}
		before := snapshotStatuses(t.store, u.SanctionIDs)
		count := t.store.CountRecentWarnings(userID, t.now, window)
		if statusesChanged(t.store, before) {
			t.store.RecomputeUserStatus(userID, t.now)
			t.touch()
		}
		return &dto.WarningsCountDTO{
			UserID: userID,
			Days:   int(window / (24 * time.Hour)),
			Count:  count,
		}, nil
	})
}

func sanctionRecord(sn *domain.Sanction) domain.SanctionRecord {
	return domain.SanctionRecord{
		ID:        sn.ID,
		UserID:    sn.UserID,
		Type:      sn.Type.String(),
		Status:    sn.Status.String(),
		Reason:    sn.Reason,
		IssuedBy:  sn.IssuedBy,
		IssuedAt:  sn.IssuedAt,
		EndsAt:    sn.EndsAt,
		RevokedAt: sn.RevokedAt,
		RevokedBy: sn.RevokedBy,
	}
}

func (s *Service) persistSanctions(ctx context.Context, records []domain.SanctionRecord) {
	if s.users == nil {
		return
	}
	for _, record := range records {
		if err := s.users.PersistSanction(ctx, record); err != nil {
			s.repoFailed("users", "persist_sanction", err)
		}
	}
}

// snapshotStatuses captures sanction statuses so a read can tell whether
// lazy expiry changed anything.
func snapshotStatuses(st *domain.Store, ids []string) map[string]vo.SanctionStatus {
	out := make(map[string]vo.SanctionStatus, len(ids))
	for _, sid := range ids {
		if sn, ok := st.Sanctions[sid]; ok {
			out[sid] = sn.Status
		}
	}
	return out
}

func statusesChanged(st *domain.Store, before map[string]vo.SanctionStatus) bool {
	for sid, status := range before {
		if sn, ok := st.Sanctions[sid]; ok && sn.Status != status {
			return true
		}
	}
	return false
}
