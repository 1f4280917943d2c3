package mappers

import (
	domain "github.com/orris-inc/moderation/internal/domain/moderation"
	"github.com/orris-inc/moderation/internal/infrastructure/persistence/models"
	"github.com/orris-inc/moderation/internal/shared/biztime"
)

// NodeMapper converts nodes and their moderation history into content rows.
type NodeMapper interface {
	ToRow(model *models.NodeModel, history []models.NodeModerationHistoryModel) *domain.ContentRow
	HistoryEntry(model *models.NodeModerationHistoryModel) map[string]any
}

type NodeMapperImpl struct{}

func NewNodeMapper() NodeMapper {
	return &NodeMapperImpl{}
}

// ToRow expects history newest first.
func (m *NodeMapperImpl) ToRow(model *models.NodeModel, history []models.NodeModerationHistoryModel) *domain.ContentRow {
	if model == nil {
		return nil
	}
	createdAt := model.CreatedAt.UTC()
	row := &domain.ContentRow{
		ID:               model.ID,
		ContentType:      stringPtr(model.NodeType),
		AuthorID:         model.AuthorID,
		CreatedAt:        &createdAt,
		Title:            model.Title,
		ModerationStatus: stringPtr(model.ModerationStatus),
		NodeStatus:       stringPtr(model.Status),
		History:          make([]map[string]any, 0, len(history)),
	}
	for i := range history {
		row.History = append(row.History, m.HistoryEntry(&history[i]))
	}
	return row
}

// HistoryEntry lays the indexed columns over the stored payload.
func (m *NodeMapperImpl) HistoryEntry(model *models.NodeModerationHistoryModel) map[string]any {
	entry := decodeObject(model.Payload)
	if entry == nil {
		entry = map[string]any{}
	}
	entry["action"] = model.Action
	entry["reason"] = model.Reason
	entry["actor"] = model.ActorID
	entry["decided_at"] = biztime.FormatISO(model.CreatedAt)
	return entry
}
