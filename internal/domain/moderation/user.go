package moderation

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"

	vo "github.com/orris-inc/moderation/internal/domain/moderation/valueobjects"
)

var roleFolder = cases.Fold()

// User is the moderation view of an account. Sanction, note and report id
// lists are kept newest first; ticket ids are kept in creation order.
type User struct {
	ID           string
	Username     string
	Email        string
	Roles        []string
	Status       vo.UserStatus
	RegisteredAt time.Time
	LastSeenAt   *time.Time
	Meta         map[string]any
	SanctionIDs  []string
	NoteIDs      []string
	ReportIDs    []string
	TicketIDs    []string
}

// NewUserStub builds a minimal active user that exists only to anchor
// sanctions and notes until richer data is known.
func NewUserStub(id string, now time.Time) *User {
	return &User{
		ID:           id,
		Username:     id,
		Status:       vo.UserStatusActive,
		RegisteredAt: now,
		Meta:         map[string]any{"stub": true},
	}
}

// HasRole reports whether the user holds role, ignoring case.
func (u *User) HasRole(role string) bool {
	folded := FoldRole(role)
	for _, r := range u.Roles {
		if FoldRole(r) == folded {
			return true
		}
	}
	return false
}

// IsBanned reports whether the derived status is banned.
func (u *User) IsBanned() bool {
	return u.Status.IsBanned()
}

// FoldRole normalizes a role name for case-insensitive comparison.
func FoldRole(role string) string {
	return roleFolder.String(strings.TrimSpace(role))
}

// SortRoles returns a copy ordered case-insensitively, dropping blanks and
// case-insensitive duplicates. The first spelling of a role wins.
func SortRoles(roles []string) []string {
	out := make([]string, 0, len(roles))
	seen := make(map[string]bool, len(roles))
	for _, r := range roles {
		r = strings.TrimSpace(r)
		folded := FoldRole(r)
		if r == "" || seen[folded] {
			continue
		}
		seen[folded] = true
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		fi, fj := FoldRole(out[i]), FoldRole(out[j])
		if fi != fj {
			return fi < fj
		}
		return out[i] < out[j]
	})
	return out
}

// ApplyRoleChanges adds roles that are not held yet and drops roles matching
// remove case-insensitively. Removal wins over addition.
func ApplyRoleChanges(current, add, remove []string) []string {
	removed := make(map[string]bool, len(remove))
	for _, r := range remove {
		removed[FoldRole(r)] = true
	}
	next := make([]string, 0, len(current)+len(add))
	for _, r := range append(append([]string{}, current...), add...) {
		if !removed[FoldRole(r)] {
			next = append(next, r)
		}
	}
	return SortRoles(next)
}
