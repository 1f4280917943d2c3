package utils

import (
	"strconv"
	"strings"

	"github.com/orris-inc/moderation/internal/shared/errors"
)

// ClampLimit normalizes a page size. Values below 1 fall back to
// defaultLimit and values above maxLimit are capped.
func ClampLimit(limit, defaultLimit, maxLimit int) int {
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return limit
}

// EncodeCursor renders an offset as an opaque cursor.
func EncodeCursor(offset int) string {
	return strconv.Itoa(offset)
}

// DecodeCursor parses a cursor produced by EncodeCursor. The empty cursor
// is offset zero.
func DecodeCursor(cursor string) (int, error) {
	cursor = strings.TrimSpace(cursor)
	if cursor == "" {
		return 0, nil
	}
	offset, err := strconv.Atoi(cursor)
	if err != nil || offset < 0 {
		return 0, errors.NewValidationError("invalid cursor", cursor)
	}
	return offset, nil
}

// ApplyPagination calculates slice indices for an offset window.
// Returns (start, end) indices for slicing: slice[start:end]
func ApplyPagination(total, offset, limit int) (start, end int) {
	start = offset
	end = start + limit

	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return start, end
}

// NextCursor returns the cursor following a window ending at end, or the
// empty string when the window reached the end of the sequence.
func NextCursor(total, end int) string {
	if end >= total {
		return ""
	}
	return EncodeCursor(end)
}
