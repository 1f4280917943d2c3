package mappers

import (
	"github.com/bytedance/sonic"
	"gorm.io/datatypes"
)

// decodeObject reads a JSON object column. Empty or malformed columns
// decode to nil so they never override in-memory values.
func decodeObject(raw datatypes.JSON) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	var out map[string]any
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

func decodeStrings(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var out []string
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

// EncodeJSON marshals v for a JSON column. Nil values become SQL NULL.
func EncodeJSON(v any) (datatypes.JSON, error) {
	if v == nil {
		return nil, nil
	}
	b, err := sonic.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

func stringPtr(s string) *string {
	return &s
}
