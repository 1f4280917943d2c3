package snapshot

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	domain "github.com/orris-inc/moderation/internal/domain/moderation"
	"github.com/orris-inc/moderation/internal/shared/config"
)

// Backends carries the connections a snapshot driver may need.
type Backends struct {
	DB    *gorm.DB
	Redis redis.UniversalClient
}

// NewStore builds the store selected by cfg.Driver. The returned close
// function releases resources owned by the store and is never nil.
func NewStore(cfg *config.SnapshotConfig, backends Backends) (domain.SnapshotStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Driver {
	case "", "memory":
		return NewMemoryStore(), noop, nil
	case "disabled":
		return DisabledStore{}, noop, nil
	case "sql":
		if backends.DB == nil {
			return nil, noop, fmt.Errorf("snapshot driver %q requires a database", cfg.Driver)
		}
		return NewSQLStore(backends.DB, cfg.Key), noop, nil
	case "redis":
		if backends.Redis == nil {
			return nil, noop, fmt.Errorf("snapshot driver %q requires redis", cfg.Driver)
		}
		return NewRedisStore(backends.Redis, cfg.Key), noop, nil
	case "bolt":
		store, err := OpenBoltStore(cfg.BoltPath, cfg.Key)
		if err != nil {
			return nil, noop, err
		}
		return store, store.Close, nil
	default:
		return nil, noop, fmt.Errorf("unsupported snapshot driver %q", cfg.Driver)
	}
}
