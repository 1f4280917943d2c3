package snapshot

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	domain "github.com/orris-inc/moderation/internal/domain/moderation"
)

// RedisStore keeps the snapshot under a single Redis key without expiry.
type RedisStore struct {
	client redis.UniversalClient
	key    string
}

// NewRedisStore creates a store writing to "<prefix>:snapshot".
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	return &RedisStore{
		client: client,
		key:    prefix + ":snapshot",
	}
}

func (s *RedisStore) Enabled() bool { return true }

func (s *RedisStore) Load(ctx context.Context) (domain.Payload, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load snapshot from redis: %w", err)
	}
	return unmarshalPayload(data)
}

func (s *RedisStore) Save(ctx context.Context, payload domain.Payload) error {
	data, err := marshalPayload(payload)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store snapshot in redis: %w", err)
	}
	return nil
}
