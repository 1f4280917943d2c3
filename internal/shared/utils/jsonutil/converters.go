// Package jsonutil provides conversions for loosely typed JSON values.
package jsonutil

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ToFloat64 converts a decoded JSON value to float64. Strings are parsed,
// json.Number is supported, and NaN or infinite values are rejected.
//
// Example:
//
//	0.9        -> 0.9, true
//	"0.9"      -> 0.9, true
//	"high"     -> 0, false
//	nil        -> 0, false
func ToFloat64(v any) (float64, bool) {
	var f float64
	switch val := v.(type) {
	case float64:
		f = val
	case float32:
		f = float64(val)
	case int:
		f = float64(val)
	case int64:
		f = float64(val)
	case json.Number:
		parsed, err := val.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// FloatMap converts a map of loosely typed scores. Values that cannot be
// converted become zero.
func FloatMap(m map[string]any) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		f, _ := ToFloat64(v)
		out[k] = f
	}
	return out
}
