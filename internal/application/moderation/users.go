package moderation

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/orris-inc/moderation/internal/application/moderation/dto"
	domain "github.com/orris-inc/moderation/internal/domain/moderation"
	vo "github.com/orris-inc/moderation/internal/domain/moderation/valueobjects"
	"github.com/orris-inc/moderation/internal/shared/errors"
)

// UpdateRoles adds and removes roles. The user repository is authoritative
// when configured and its result is mirrored into the cached user.
func (s *Service) UpdateRoles(ctx context.Context, userID string, req dto.UpdateRolesRequest) (*dto.UserDTO, error) {
	s.logger.Debugw("updating roles", "user_id", userID, "add", req.Add, "remove", req.Remove)

	var repoRoles []string
	if s.users != nil {
		roles, err := s.users.UpdateRoles(ctx, userID, req.Add, req.Remove)
		switch {
		case err == nil:
			if roles == nil {
				roles = []string{}
			}
			repoRoles = roles
		case errors.IsNotFoundError(err):
			return nil, domain.ErrUserNotFound(userID)
		default:
			s.repoFailed("users", "update_roles", err)
		}
	}

	return mutate(ctx, s, "update_roles", func(t *tx) (*dto.UserDTO, error) {
		var u *domain.User
		if repoRoles != nil {
			u, _ = t.store.EnsureUser(userID, t.now)
			u.Roles = domain.SortRoles(repoRoles)
		} else {
			var ok bool
			if u, ok = t.store.Users[userID]; !ok {
				return nil, domain.ErrUserNotFound(userID)
			}
			u.Roles = domain.ApplyRoleChanges(u.Roles, req.Add, req.Remove)
		}
		out := dto.ToUserDTO(u)
		return &out, nil
	})
}

// EnsureUserStub creates a minimal active user when none exists.
func (s *Service) EnsureUserStub(ctx context.Context, userID string) (*dto.UserDTO, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, domain.ErrRequired("user_id")
	}
	return mutate(ctx, s, "ensure_user_stub", func(t *tx) (*dto.UserDTO, error) {
		u, created := t.store.EnsureUser(userID, t.now)
		if !created {
			t.noop()
		}
		out := dto.ToUserDTO(u)
		return &out, nil
	})
}

func matchesUserFilter(u *domain.User, filter dto.UserFilter) bool {
	if q := strings.ToLower(strings.TrimSpace(filter.Query)); q != "" {
		if !strings.Contains(strings.ToLower(u.ID), q) &&
			!strings.Contains(strings.ToLower(u.Username), q) &&
			!strings.Contains(strings.ToLower(u.Email), q) {
			return false
		}
	}
	if filter.Role != "" && !u.HasRole(filter.Role) {
		return false
	}
	if filter.Status != "" && !strings.EqualFold(u.Status.String(), filter.Status) {
		return false
	}
	return true
}

// ListUsers lists users newest first. A configured user repository serves
// the page and cached users only fill in moderation fields.
func (s *Service) ListUsers(ctx context.Context, filter dto.UserFilter) (*dto.Page[dto.UserDTO], error) {
	if filter.Status != "" {
		if _, err := vo.NewUserStatus(strings.ToLower(filter.Status)); err != nil {
			return nil, domain.ErrInvalidValue("user status", err)
		}
	}

	if s.users != nil {
		page, err := s.users.ListUsers(ctx, domain.UserFilter{
			Query:  filter.Query,
			Role:   filter.Role,
			Status: filter.Status,
			Limit:  filter.Limit,
			Cursor: filter.Cursor,
		})
		if err == nil {
			return s.mergeUserPage(ctx, page)
		}
		s.repoFailed("users", "list_users", err)
	}

	return query(ctx, s, "list_users", func(t *tx) (*dto.Page[dto.UserDTO], error) {
		users := make([]*domain.User, 0, len(t.store.Users))
		for _, u := range t.store.Users {
			if matchesUserFilter(u, filter) {
				users = append(users, u)
			}
		}
		sortNewestFirst(users,
			func(u *domain.User) time.Time { return u.RegisteredAt },
			func(u *domain.User) string { return u.ID },
		)
		page, err := paginate(s, users, filter.Limit, filter.Cursor)
		if err != nil {
			return nil, err
		}
		items := make([]dto.UserDTO, len(page.Items))
		for i, u := range page.Items {
			items[i] = dto.ToUserDTO(u)
		}
		return &dto.Page[dto.UserDTO]{Items: items, NextCursor: page.NextCursor, Total: page.Total}, nil
	})
}

func (s *Service) mergeUserPage(ctx context.Context, page *domain.UserPage) (*dto.Page[dto.UserDTO], error) {
	return query(ctx, s, "list_users", func(t *tx) (*dto.Page[dto.UserDTO], error) {
		items := make([]dto.UserDTO, 0, len(page.Items))
		for _, row := range page.Items {
			var out dto.UserDTO
			if u, ok := t.store.Users[row.ID]; ok {
				out = dto.ToUserDTO(u)
				mergeUserRow(&out, row)
			} else {
				out = userDTOFromRow(row)
			}
			items = append(items, out)
		}
		return &dto.Page[dto.UserDTO]{Items: items, NextCursor: page.NextCursor, Total: len(items)}, nil
	})
}

// GetUser returns the user with sanctions, notes and reports expanded.
// Pinned notes come first.
func (s *Service) GetUser(ctx context.Context, userID string) (*dto.UserDetailDTO, error) {
	detail, err := query(ctx, s, "get_user", func(t *tx) (*dto.UserDetailDTO, error) {
		u, ok := t.store.Users[userID]
		if !ok {
			return nil, nil
		}
		before := snapshotStatuses(t.store, u.SanctionIDs)
		t.store.RecomputeUserStatus(userID, t.now)
		if statusesChanged(t.store, before) {
			t.touch()
		}
		return buildUserDetail(t.store, u), nil
	})
	if err != nil {
		return nil, err
	}

	var row *domain.UserRow
	if s.users != nil {
		row, err = s.users.GetUser(ctx, userID)
		if err != nil {
			if !errors.IsNotFoundError(err) {
				s.repoFailed("users", "get_user", err)
			}
			row = nil
		}
	}

	switch {
	case detail != nil:
		mergeUserRow(&detail.UserDTO, row)
		return detail, nil
	case row != nil:
		return &dto.UserDetailDTO{
			UserDTO:   userDTOFromRow(row),
			Sanctions: []dto.SanctionDTO{},
			Notes:     []dto.NoteDTO{},
			Reports:   []dto.ReportDTO{},
			TicketIDs: []string{},
		}, nil
	default:
		return nil, domain.ErrUserNotFound(userID)
	}
}

func buildUserDetail(st *domain.Store, u *domain.User) *dto.UserDetailDTO {
	sanctions := make([]*domain.Sanction, 0, len(u.SanctionIDs))
	for _, sid := range u.SanctionIDs {
		if sn, ok := st.Sanctions[sid]; ok {
			sanctions = append(sanctions, sn)
		}
	}
	notes := make([]*domain.Note, 0, len(u.NoteIDs))
	for _, nid := range u.NoteIDs {
		if n, ok := st.Notes[nid]; ok {
			notes = append(notes, n)
		}
	}
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].Pinned && !notes[j].Pinned
	})
	reports := make([]*domain.Report, 0, len(u.ReportIDs))
	for _, rid := range u.ReportIDs {
		if r, ok := st.Reports[rid]; ok {
			reports = append(reports, r)
		}
	}
	return &dto.UserDetailDTO{
		UserDTO:   dto.ToUserDTO(u),
		Sanctions: dto.ToSanctionDTOs(sanctions),
		Notes:     dto.ToNoteDTOs(notes),
		Reports:   dto.ToReportDTOs(reports),
		TicketIDs: append([]string{}, u.TicketIDs...),
	}
}
