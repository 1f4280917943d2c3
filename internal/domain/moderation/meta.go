package moderation

import (
	"time"

	"github.com/orris-inc/moderation/internal/shared/biztime"
)

func formatTime(t time.Time) string {
	return biztime.FormatISO(t)
}

// CloneMap deep-copies a JSON-shaped map.
func CloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = CloneValue(v)
	}
	return out
}

// CloneMaps deep-copies a list of JSON-shaped maps.
func CloneMaps(list []map[string]any) []map[string]any {
	if list == nil {
		return nil
	}
	out := make([]map[string]any, len(list))
	for i, m := range list {
		out[i] = CloneMap(m)
	}
	return out
}

// CloneValue deep-copies maps and slices nested inside v.
func CloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return CloneMap(val)
	case []map[string]any:
		return CloneMaps(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = CloneValue(item)
		}
		return out
	case []string:
		return append([]string(nil), val...)
	case map[string]float64:
		out := make(map[string]float64, len(val))
		for k, f := range val {
			out[k] = f
		}
		return out
	default:
		return v
	}
}

// MergeMeta shallow-merges patch into dst, allocating dst when nil.
func MergeMeta(dst, patch map[string]any) map[string]any {
	if dst == nil {
		dst = map[string]any{}
	}
	for k, v := range patch {
		dst[k] = CloneValue(v)
	}
	return dst
}

// AppendMeta appends item to the list stored under key.
func AppendMeta(meta map[string]any, key string, item any) {
	var list []any
	switch existing := meta[key].(type) {
	case []any:
		list = existing
	case []string:
		for _, s := range existing {
			list = append(list, s)
		}
	case []map[string]any:
		for _, m := range existing {
			list = append(list, m)
		}
	}
	meta[key] = append(list, item)
}

// MetaStrings returns the string items of the list stored under key.
func MetaStrings(meta map[string]any, key string) []string {
	var out []string
	switch list := meta[key].(type) {
	case []any:
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
	case []string:
		out = append(out, list...)
	}
	return out
}
