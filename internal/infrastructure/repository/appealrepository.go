package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/orris-inc/moderation/internal/domain/moderation"
	"github.com/orris-inc/moderation/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/moderation/internal/infrastructure/persistence/models"
	"github.com/orris-inc/moderation/internal/shared/db"
)

// AppealRepository is the SQL system of record for appeal decisions.
type AppealRepository struct {
	db     *gorm.DB
	mapper mappers.AppealMapper
}

func NewAppealRepository(db *gorm.DB) *AppealRepository {
	return &AppealRepository{
		db:     db,
		mapper: mappers.NewAppealMapper(),
	}
}

func (r *AppealRepository) FetchMany(ctx context.Context, ids []string) (map[string]*domain.AppealRow, error) {
	out := make(map[string]*domain.AppealRow, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []models.AppealModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("id IN ?", ids).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch appeals: %w", err)
	}

	for i := range rows {
		out[rows[i].ID] = r.mapper.ToRow(&rows[i])
	}
	return out, nil
}

// FetchAppeal returns nil without error when the appeal has no row.
func (r *AppealRepository) FetchAppeal(ctx context.Context, appealID string) (*domain.AppealRow, error) {
	var model models.AppealModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("id = ?", appealID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch appeal: %w", err)
	}
	return r.mapper.ToRow(&model), nil
}

// RecordDecision upserts the decision, merging meta over the stored row.
func (r *AppealRepository) RecordDecision(ctx context.Context, decision domain.AppealDecision) (*domain.AppealRow, error) {
	var saved models.AppealModel

	err := db.RunInTransaction(ctx, r.db, func(_ context.Context, tx *gorm.DB) error {
		err := tx.Where("id = ?", decision.AppealID).
			First(&saved).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to load appeal: %w", err)
		}

		if err := r.mapper.ApplyDecision(&saved, decision); err != nil {
			return err
		}

		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "decided_at", "decided_by", "decision_reason", "meta", "updated_at"}),
		}).Create(&saved).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record appeal decision: %w", err)
	}

	return r.mapper.ToRow(&saved), nil
}
