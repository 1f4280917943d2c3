package dto

// Page is one page of a filtered, sorted listing. NextCursor is empty when
// the listing is exhausted.
type Page[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"next_cursor,omitempty"`
	Total      int    `json:"total"`
}
