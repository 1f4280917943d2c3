package snapshot

import (
	"context"
	"sync"

	domain "github.com/orris-inc/moderation/internal/domain/moderation"
)

// MemoryStore keeps the last snapshot in process memory as encoded bytes,
// so callers never share maps with the stored copy.
type MemoryStore struct {
	mu   sync.RWMutex
	data []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Enabled() bool { return true }

func (s *MemoryStore) Load(_ context.Context) (domain.Payload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return unmarshalPayload(s.data)
}

func (s *MemoryStore) Save(_ context.Context, payload domain.Payload) error {
	data, err := marshalPayload(payload)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

// DisabledStore turns persistence off.
type DisabledStore struct{}

func (DisabledStore) Enabled() bool { return false }

func (DisabledStore) Load(context.Context) (domain.Payload, error) { return nil, nil }

func (DisabledStore) Save(context.Context, domain.Payload) error { return nil }
