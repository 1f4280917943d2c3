package mappers

import (
	"fmt"

	domain "github.com/orris-inc/moderation/internal/domain/moderation"
	"github.com/orris-inc/moderation/internal/infrastructure/persistence/models"
)

// TicketMapper handles the conversion between ticket rows and persistence models.
type TicketMapper interface {
	// ToRow converts a ticket model to the row the service merges.
	ToRow(model *models.ModerationTicketModel) *domain.TicketRow

	// ApplyUpdate writes an update onto model, merging meta.
	ApplyUpdate(model *models.ModerationTicketModel, update domain.TicketUpdate) error

	// MessageToModel converts a message row to a persistence model.
	MessageToModel(msg domain.TicketMessageRow) (*models.ModerationTicketMessageModel, error)

	// MessageToRow converts a message persistence model to a row.
	MessageToRow(model *models.ModerationTicketMessageModel) *domain.TicketMessageRow
}

// TicketMapperImpl is the concrete implementation of TicketMapper.
type TicketMapperImpl struct{}

// NewTicketMapper creates a new TicketMapper.
func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToRow(model *models.ModerationTicketModel) *domain.TicketRow {
	if model == nil {
		return nil
	}
	unread := model.UnreadCount
	updatedAt := model.UpdatedAt.UTC()
	return &domain.TicketRow{
		ID:          model.ID,
		Status:      stringPtr(model.Status),
		Priority:    stringPtr(model.Priority),
		AssigneeID:  model.AssigneeID,
		UnreadCount: &unread,
		UpdatedAt:   &updatedAt,
		Meta:        decodeObject(model.Meta),
	}
}

func (m *TicketMapperImpl) ApplyUpdate(model *models.ModerationTicketModel, update domain.TicketUpdate) error {
	meta := domain.MergeMeta(decodeObject(model.Meta), update.Meta)
	raw, err := EncodeJSON(meta)
	if err != nil {
		return fmt.Errorf("failed to encode ticket meta: %w", err)
	}

	model.ID = update.TicketID
	model.Status = update.Status
	model.Priority = update.Priority
	if update.AssigneeID != "" {
		model.AssigneeID = stringPtr(update.AssigneeID)
	} else {
		model.AssigneeID = nil
	}
	model.UnreadCount = max(update.UnreadCount, 0)
	model.UpdatedAt = update.UpdatedAt.UTC()
	model.Meta = raw
	return nil
}

func (m *TicketMapperImpl) MessageToModel(msg domain.TicketMessageRow) (*models.ModerationTicketMessageModel, error) {
	attachments := msg.Attachments
	if attachments == nil {
		attachments = []string{}
	}
	raw, err := EncodeJSON(attachments)
	if err != nil {
		return nil, fmt.Errorf("failed to encode message attachments: %w", err)
	}
	return &models.ModerationTicketMessageModel{
		ID:          msg.ID,
		TicketID:    msg.TicketID,
		AuthorID:    msg.AuthorID,
		AuthorName:  msg.AuthorName,
		Text:        msg.Text,
		Attachments: raw,
		Internal:    msg.Internal,
		CreatedAt:   msg.CreatedAt.UTC(),
	}, nil
}

func (m *TicketMapperImpl) MessageToRow(model *models.ModerationTicketMessageModel) *domain.TicketMessageRow {
	attachments := decodeStrings(model.Attachments)
	if attachments == nil {
		attachments = []string{}
	}
	return &domain.TicketMessageRow{
		ID:          model.ID,
		TicketID:    model.TicketID,
		AuthorID:    model.AuthorID,
		AuthorName:  model.AuthorName,
		Text:        model.Text,
		Attachments: attachments,
		Internal:    model.Internal,
		CreatedAt:   model.CreatedAt.UTC(),
	}
}
