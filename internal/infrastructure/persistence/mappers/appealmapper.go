package mappers

import (
	"fmt"

	domain "github.com/orris-inc/moderation/internal/domain/moderation"
	"github.com/orris-inc/moderation/internal/infrastructure/persistence/models"
)

// AppealMapper converts between appeal rows and persistence models.
type AppealMapper interface {
	ToRow(model *models.AppealModel) *domain.AppealRow
	ApplyDecision(model *models.AppealModel, decision domain.AppealDecision) error
}

type AppealMapperImpl struct{}

func NewAppealMapper() AppealMapper {
	return &AppealMapperImpl{}
}

func (m *AppealMapperImpl) ToRow(model *models.AppealModel) *domain.AppealRow {
	if model == nil {
		return nil
	}
	row := &domain.AppealRow{
		ID:             model.ID,
		Status:         stringPtr(model.Status),
		DecidedBy:      model.DecidedBy,
		DecisionReason: model.DecisionReason,
		Meta:           decodeObject(model.Meta),
	}
	if model.DecidedAt != nil {
		at := model.DecidedAt.UTC()
		row.DecidedAt = &at
	}
	return row
}

// ApplyDecision writes a decision onto model. Decision meta is merged over
// the stored meta.
func (m *AppealMapperImpl) ApplyDecision(model *models.AppealModel, decision domain.AppealDecision) error {
	meta := domain.MergeMeta(decodeObject(model.Meta), decision.Meta)
	raw, err := EncodeJSON(meta)
	if err != nil {
		return fmt.Errorf("failed to encode appeal meta: %w", err)
	}

	decidedAt := decision.DecidedAt.UTC()
	model.ID = decision.AppealID
	model.Status = decision.Status
	model.DecidedAt = &decidedAt
	model.DecidedBy = stringPtr(decision.DecidedBy)
	model.DecisionReason = stringPtr(decision.DecisionReason)
	model.Meta = raw
	return nil
}
