package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	domain "github.com/orris-inc/moderation/internal/domain/moderation"
)

// bucketSnapshots holds one value per snapshot key.
var bucketSnapshots = []byte("moderation_snapshots")

// BoltStore keeps the snapshot in a local bbolt file for single-node
// deployments without a database.
type BoltStore struct {
	db  *bolt.DB
	key []byte
}

// OpenBoltStore opens or creates the file at path. Parent directories are
// created as needed.
func OpenBoltStore(path, key string) (*BoltStore, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot file: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSnapshots)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create snapshot bucket: %w", err)
	}

	return &BoltStore{db: db, key: []byte(key)}, nil
}

func (s *BoltStore) Enabled() bool { return true }

func (s *BoltStore) Load(_ context.Context) (domain.Payload, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		// values are only valid inside the transaction
		if v := tx.Bucket(bucketSnapshots).Get(s.key); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return unmarshalPayload(data)
}

func (s *BoltStore) Save(_ context.Context, payload domain.Payload) error {
	data, err := marshalPayload(payload)
	if err != nil {
		return err
	}
	if err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSnapshots).Put(s.key, data)
	}); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *BoltStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
