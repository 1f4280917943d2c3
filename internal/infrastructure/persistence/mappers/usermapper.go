package mappers

import (
	domain "github.com/orris-inc/moderation/internal/domain/moderation"
	"github.com/orris-inc/moderation/internal/infrastructure/persistence/models"
)

// UserMapper converts user, note and sanction models.
type UserMapper interface {
	ToRow(model *models.UserModel, roles []string) *domain.UserRow
	SanctionToModel(record domain.SanctionRecord) *models.UserSanctionModel
	NoteToModel(record domain.NoteRecord) *models.UserNoteModel
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

// ToRow uses roles as given; a nil slice means the schema has no roles.
func (m *UserMapperImpl) ToRow(model *models.UserModel, roles []string) *domain.UserRow {
	if model == nil {
		return nil
	}
	registeredAt := model.CreatedAt.UTC()
	row := &domain.UserRow{
		ID:           model.ID,
		Username:     stringPtr(model.Username),
		Email:        model.Email,
		Roles:        roles,
		Status:       stringPtr(model.Status),
		RegisteredAt: &registeredAt,
	}
	if model.LastSeenAt != nil {
		at := model.LastSeenAt.UTC()
		row.LastSeenAt = &at
	}
	return row
}

func (m *UserMapperImpl) SanctionToModel(record domain.SanctionRecord) *models.UserSanctionModel {
	model := &models.UserSanctionModel{
		ID:       record.ID,
		UserID:   record.UserID,
		Type:     record.Type,
		Status:   record.Status,
		Reason:   record.Reason,
		IssuedBy: record.IssuedBy,
		IssuedAt: record.IssuedAt.UTC(),
	}
	if record.EndsAt != nil {
		at := record.EndsAt.UTC()
		model.EndsAt = &at
	}
	if record.RevokedAt != nil {
		at := record.RevokedAt.UTC()
		model.RevokedAt = &at
	}
	if record.RevokedBy != "" {
		model.RevokedBy = stringPtr(record.RevokedBy)
	}
	return model
}

func (m *UserMapperImpl) NoteToModel(record domain.NoteRecord) *models.UserNoteModel {
	return &models.UserNoteModel{
		ID:        record.ID,
		UserID:    record.UserID,
		AuthorID:  record.AuthorID,
		Text:      record.Text,
		Pinned:    record.Pinned,
		CreatedAt: record.CreatedAt.UTC(),
	}
}
