package snapshot

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	domain "github.com/orris-inc/moderation/internal/domain/moderation"
)

func samplePayload() domain.Payload {
	return domain.Payload{
		"users": map[string]any{
			"u-1": map[string]any{"id": "u-1", "status": "active", "roles": []any{"user"}},
		},
		"idempotency": map[string]any{"k-1": "san_1"},
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name   string
		format string
		decode func([]byte) (map[string]any, error)
	}{
		{
			name:   "json",
			format: "json",
			decode: func(b []byte) (map[string]any, error) {
				var out map[string]any
				return out, json.Unmarshal(b, &out)
			},
		},
		{
			name:   "yaml",
			format: "yaml",
			decode: func(b []byte) (map[string]any, error) {
				var out map[string]any
				return out, yaml.Unmarshal(b, &out)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Encode(samplePayload(), tt.format)
			require.NoError(t, err)

			out, err := tt.decode(data)
			require.NoError(t, err)

			users, ok := out["users"].(map[string]any)
			require.True(t, ok)
			u1, ok := users["u-1"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, "active", u1["status"])
			assert.Equal(t, map[string]any{"k-1": "san_1"}, out["idempotency"])
		})
	}
}

func TestEncode_UnknownFormat(t *testing.T) {
	_, err := Encode(samplePayload(), "xml")
	assert.ErrorContains(t, err, "unsupported format")
}
