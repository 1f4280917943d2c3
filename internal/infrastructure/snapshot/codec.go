// Package snapshot provides the pluggable stores that keep the moderation
// graph snapshot between restarts.
package snapshot

import (
	"fmt"

	"github.com/bytedance/sonic"

	domain "github.com/orris-inc/moderation/internal/domain/moderation"
)

func marshalPayload(payload domain.Payload) ([]byte, error) {
	data, err := sonic.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return data, nil
}

// unmarshalPayload treats an empty value as "nothing saved".
func unmarshalPayload(data []byte) (domain.Payload, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var payload domain.Payload
	if err := sonic.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return payload, nil
}
