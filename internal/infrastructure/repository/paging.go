package repository

import (
	"github.com/orris-inc/moderation/internal/shared/constants"
	"github.com/orris-inc/moderation/internal/shared/utils"
)

// pageWindow resolves an opaque cursor and requested limit into an
// offset/limit pair.
func pageWindow(cursor string, limit int) (offset, size int, err error) {
	offset, err = utils.DecodeCursor(cursor)
	if err != nil {
		return 0, 0, err
	}
	return offset, utils.ClampLimit(limit, constants.DefaultPageLimit, constants.MaxPageLimit), nil
}

// nextPageCursor expects fetched to come from a query limited to size+1.
func nextPageCursor(offset, size, fetched int) string {
	if fetched <= size {
		return ""
	}
	return utils.EncodeCursor(offset + size)
}
