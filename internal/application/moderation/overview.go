package moderation

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/orris-inc/moderation/internal/application/moderation/dto"
	domain "github.com/orris-inc/moderation/internal/domain/moderation"
)

// GetOverview aggregates queue sizes and analytics from the graph.
func (s *Service) GetOverview(ctx context.Context) (*dto.OverviewDTO, error) {
	return query(ctx, s, "get_overview", func(t *tx) (*dto.OverviewDTO, error) {
		st := t.store
		if expireLapsed(st, t.now) {
			t.touch()
		}
		out := &dto.OverviewDTO{
			Reports:         dto.ReportSummary{ByCategory: map[string]int{}},
			PendingContent:  map[string]int{},
			RecentSanctions: []dto.SanctionDTO{},
			ComplaintSource: map[string]int{},
			FlaggedUsers:    []dto.FlaggedUserCard{},
		}

		var resolutionTotal float64
		resolved := 0
		for _, r := range st.Reports {
			if r.Status.IsNew() {
				out.Reports.New++
				out.Reports.ByCategory[r.Category]++
			}
			source := r.Source
			if source == "" {
				source = "unknown"
			}
			out.ComplaintSource[source]++
			if hours, ok := r.ResolutionHours(); ok {
				resolutionTotal += hours
				resolved++
			}
		}
		if resolved > 0 {
			mean := resolutionTotal / float64(resolved)
			out.Analytics.MeanResolutionHours = &mean
		}

		for _, tk := range st.Tickets {
			switch {
			case tk.Status.IsOpen():
				out.Queues.OpenTickets++
			case tk.Status.IsWaiting():
				out.Queues.WaitingTickets++
			}
		}
		for _, a := range st.Appeals {
			if a.Status.IsOpen() {
				out.Queues.OpenAppeals++
			}
		}

		aiDecisions := 0
		for _, c := range st.Content {
			if c.Status.IsPending() {
				out.PendingContent[c.ContentType.String()]++
			}
			for _, entry := range c.ModerationHistory {
				out.Analytics.TotalDecisions++
				if actor, _ := entry["actor"].(string); strings.Contains(strings.ToLower(actor), "ai") {
					aiDecisions++
				}
			}
		}
		if out.Analytics.TotalDecisions > 0 {
			out.Analytics.AIDecisionShare = float64(aiDecisions) / float64(out.Analytics.TotalDecisions)
		}

		out.RecentSanctions = recentSanctions(st, s.policy.RecentSanctions)
		out.FlaggedUsers = flaggedUsers(st, s.policy.FlaggedUsers)
		return out, nil
	})
}

// expireLapsed flips every lapsed sanction to expired and rederives the
// owners' status. It reports whether anything changed.
func expireLapsed(st *domain.Store, now time.Time) bool {
	owners := map[string]struct{}{}
	for _, sn := range st.Sanctions {
		if sn.RefreshExpiry(now) {
			owners[sn.UserID] = struct{}{}
		}
	}
	for userID := range owners {
		st.RecomputeUserStatus(userID, now)
	}
	return len(owners) > 0
}

func recentSanctions(st *domain.Store, n int) []dto.SanctionDTO {
	all := make([]*domain.Sanction, 0, len(st.Sanctions))
	for _, sn := range st.Sanctions {
		all = append(all, sn)
	}
	sort.SliceStable(all, func(i, j int) bool {
		if !all[i].IssuedAt.Equal(all[j].IssuedAt) {
			return all[i].IssuedAt.After(all[j].IssuedAt)
		}
		return all[i].ID < all[j].ID
	})
	if len(all) > n {
		all = all[:n]
	}
	return dto.ToSanctionDTOs(all)
}

// flaggedUsers returns cards for users holding at least one active
// sanction, ordered by user id.
func flaggedUsers(st *domain.Store, n int) []dto.FlaggedUserCard {
	ids := make([]string, 0, len(st.Users))
	for id := range st.Users {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	cards := []dto.FlaggedUserCard{}
	for _, id := range ids {
		if len(cards) >= n {
			break
		}
		u := st.Users[id]
		var active []string
		for _, sid := range u.SanctionIDs {
			if sn, ok := st.Sanctions[sid]; ok && sn.Status.IsActive() {
				active = append(active, sn.Type.String())
			}
		}
		if len(active) == 0 {
			continue
		}
		cards = append(cards, dto.FlaggedUserCard{
			UserID:          u.ID,
			Username:        u.Username,
			Status:          u.Status.String(),
			ActiveSanctions: active,
		})
	}
	return cards
}
