package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/orris-inc/moderation/internal/domain/moderation"
	"github.com/orris-inc/moderation/internal/infrastructure/persistence/models"
	"github.com/orris-inc/moderation/internal/shared/biztime"
	"github.com/orris-inc/moderation/internal/shared/db"
)

// SQLStore keeps the snapshot as one row of moderation_snapshots.
type SQLStore struct {
	db  *gorm.DB
	key string
	now func() time.Time
}

func NewSQLStore(db *gorm.DB, key string) *SQLStore {
	return &SQLStore{db: db, key: key, now: biztime.NowUTC}
}

func (s *SQLStore) Enabled() bool { return true }

func (s *SQLStore) Load(ctx context.Context) (domain.Payload, error) {
	var model models.SnapshotModel
	if err := db.GetTxFromContext(ctx, s.db).
		Where("name = ?", s.key).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return unmarshalPayload(model.Payload)
}

func (s *SQLStore) Save(ctx context.Context, payload domain.Payload) error {
	data, err := marshalPayload(payload)
	if err != nil {
		return err
	}

	model := &models.SnapshotModel{Name: s.key, Payload: data, UpdatedAt: s.now()}
	if err := db.GetTxFromContext(ctx, s.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}
