package moderation

import (
	"context"
	"slices"

	"github.com/orris-inc/moderation/internal/application/moderation/dto"
	domain "github.com/orris-inc/moderation/internal/domain/moderation"
	"github.com/orris-inc/moderation/internal/shared/errors"
)

// Merge helpers apply only the fields a repository row actually carries.
// Nil pointers and nil maps never clear in-memory values.

func mergeAppealRow(out *dto.AppealDTO, row *domain.AppealRow) {
	if row == nil {
		return
	}
	if row.Status != nil && *row.Status != "" {
		out.Status = *row.Status
	}
	if row.DecidedAt != nil {
		at := row.DecidedAt.UTC()
		out.DecidedAt = &at
	}
	if row.DecidedBy != nil {
		out.DecidedBy = *row.DecidedBy
	}
	if row.DecisionReason != nil {
		out.DecisionReason = *row.DecisionReason
	}
	if row.Meta != nil {
		out.Meta = domain.MergeMeta(out.Meta, row.Meta)
	}
}

func mergeContentRow(out *dto.ContentDTO, row *domain.ContentRow) {
	if row == nil {
		return
	}
	out.Source = dto.SourceSQL
	if row.ContentType != nil && *row.ContentType != "" {
		out.ContentType = *row.ContentType
	}
	if row.AuthorID != nil && *row.AuthorID != "" {
		out.AuthorID = *row.AuthorID
	}
	if row.CreatedAt != nil {
		at := row.CreatedAt.UTC()
		out.CreatedAt = &at
	}
	if row.Title != nil {
		out.Title = *row.Title
	}
	if row.ModerationStatus != nil && *row.ModerationStatus != "" {
		out.Status = *row.ModerationStatus
	}
	if row.NodeStatus != nil {
		out.NodeStatus = *row.NodeStatus
	}
	if row.History != nil {
		out.ModerationHistory = domain.CloneMaps(row.History)
	}
}

// contentDTOFromRow builds a DTO for content only the SQL store knows.
func contentDTOFromRow(row *domain.ContentRow) dto.ContentDTO {
	out := dto.ContentDTO{
		ID:                row.ID,
		Status:            "pending",
		AILabels:          []string{},
		ReportIDs:         []string{},
		ModerationHistory: []map[string]any{},
		Meta:              map[string]any{},
	}
	mergeContentRow(&out, row)
	return out
}

func mergeTicketRow(out *dto.TicketDTO, row *domain.TicketRow) {
	if row == nil {
		return
	}
	if row.Status != nil && *row.Status != "" {
		out.Status = *row.Status
	}
	if row.Priority != nil && *row.Priority != "" {
		out.Priority = *row.Priority
	}
	if row.AssigneeID != nil {
		out.AssigneeID = *row.AssigneeID
	}
	if row.UnreadCount != nil {
		out.UnreadCount = max(*row.UnreadCount, 0)
	}
	if row.UpdatedAt != nil {
		out.UpdatedAt = row.UpdatedAt.UTC()
	}
	if row.Meta != nil {
		out.Meta = domain.MergeMeta(out.Meta, row.Meta)
	}
}

func mergeUserRow(out *dto.UserDTO, row *domain.UserRow) {
	if row == nil {
		return
	}
	if row.Username != nil && *row.Username != "" {
		out.Username = *row.Username
	}
	if row.Email != nil {
		out.Email = *row.Email
	}
	if row.Roles != nil {
		out.Roles = domain.SortRoles(row.Roles)
	}
	if row.Status != nil && *row.Status != "" {
		out.Status = *row.Status
	}
	if row.RegisteredAt != nil {
		at := row.RegisteredAt.UTC()
		out.RegisteredAt = &at
	}
	if row.LastSeenAt != nil {
		at := row.LastSeenAt.UTC()
		out.LastSeenAt = &at
	}
}

func userDTOFromRow(row *domain.UserRow) dto.UserDTO {
	out := dto.UserDTO{
		ID:     row.ID,
		Roles:  []string{},
		Status: "active",
		Meta:   map[string]any{},
	}
	mergeUserRow(&out, row)
	return out
}

// applyUserRow copies identity fields into the cached in-memory user.
// Status stays derived from sanctions.
// applyUserRow copies repository identity fields onto the cached user and
// reports whether any of them differed.
func applyUserRow(u *domain.User, row *domain.UserRow) bool {
	if row == nil {
		return false
	}
	changed := false
	if row.Username != nil && *row.Username != "" && u.Username != *row.Username {
		u.Username = *row.Username
		changed = true
	}
	if row.Email != nil && u.Email != *row.Email {
		u.Email = *row.Email
		changed = true
	}
	if row.Roles != nil {
		if roles := domain.SortRoles(row.Roles); !slices.Equal(u.Roles, roles) {
			u.Roles = roles
			changed = true
		}
	}
	if row.RegisteredAt != nil && !u.RegisteredAt.Equal(*row.RegisteredAt) {
		u.RegisteredAt = row.RegisteredAt.UTC()
		changed = true
	}
	if row.LastSeenAt != nil && (u.LastSeenAt == nil || !u.LastSeenAt.Equal(*row.LastSeenAt)) {
		at := row.LastSeenAt.UTC()
		u.LastSeenAt = &at
		changed = true
	}
	return changed
}

// bootstrapUser asks the user repository for the authoritative identity
// before the graph lock is taken. A missing user is not-found; other
// repository errors fall back to the in-memory graph.
func (s *Service) bootstrapUser(ctx context.Context, userID string) (*domain.UserRow, error) {
	if s.users == nil {
		return nil, nil
	}
	row, err := s.users.BootstrapUserStub(ctx, userID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, domain.ErrUserNotFound(userID)
		}
		s.repoFailed("users", "bootstrap_user_stub", err)
		return nil, nil
	}
	return row, nil
}

// anchorUser returns the in-memory user, creating a cached stub when the
// user repository vouched for it. changed reports whether the graph was
// modified along the way.
func anchorUser(t *tx, userID string, row *domain.UserRow) (*domain.User, bool, error) {
	if row != nil {
		u, created := t.store.EnsureUser(userID, t.now)
		updated := applyUserRow(u, row)
		return u, created || updated, nil
	}
	u, ok := t.store.Users[userID]
	if !ok {
		return nil, false, domain.ErrUserNotFound(userID)
	}
	return u, false, nil
}
