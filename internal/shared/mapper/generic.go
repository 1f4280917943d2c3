// Package mapper holds small generic helpers for DTO conversion.
package mapper

// MapSlice converts each element with mapFunc. A nil input maps to an
// empty, non-nil slice so JSON responses render [] instead of null.
func MapSlice[T any, R any](items []T, mapFunc func(T) R) []R {
	result := make([]R, 0, len(items))
	for _, item := range items {
		result = append(result, mapFunc(item))
	}
	return result
}
