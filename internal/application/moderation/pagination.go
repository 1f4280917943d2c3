package moderation

import (
	"sort"
	"time"

	"github.com/orris-inc/moderation/internal/application/moderation/dto"
	"github.com/orris-inc/moderation/internal/shared/utils"
)

// paginate cuts one window out of an already filtered and sorted sequence.
func paginate[T any](s *Service, items []T, limit int, cursor string) (*dto.Page[T], error) {
	offset, err := utils.DecodeCursor(cursor)
	if err != nil {
		return nil, err
	}
	limit = utils.ClampLimit(limit, s.policy.DefaultPageLimit, s.policy.MaxPageLimit)
	start, end := utils.ApplyPagination(len(items), offset, limit)

	window := make([]T, end-start)
	copy(window, items[start:end])
	return &dto.Page[T]{
		Items:      window,
		NextCursor: utils.NextCursor(len(items), end),
		Total:      len(items),
	}, nil
}

// sortNewestFirst orders items by a timestamp descending, breaking ties by
// id so pagination is stable across calls.
func sortNewestFirst[T any](items []T, at func(T) time.Time, id func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		ti, tj := at(items[i]), at(items[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return id(items[i]) < id(items[j])
	})
}
