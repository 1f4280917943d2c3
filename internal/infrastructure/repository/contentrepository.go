package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	domain "github.com/orris-inc/moderation/internal/domain/moderation"
	vo "github.com/orris-inc/moderation/internal/domain/moderation/valueobjects"
	"github.com/orris-inc/moderation/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/moderation/internal/infrastructure/persistence/models"
	"github.com/orris-inc/moderation/internal/shared/biztime"
	"github.com/orris-inc/moderation/internal/shared/db"
	apperrors "github.com/orris-inc/moderation/internal/shared/errors"
)

// ContentRepository reads the moderation queue from the nodes schema and
// records decisions into node_moderation_history.
type ContentRepository struct {
	db     *gorm.DB
	mapper mappers.NodeMapper
	now    func() time.Time
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{
		db:     db,
		mapper: mappers.NewNodeMapper(),
		now:    biztime.NowUTC,
	}
}

// ListQueue pages nodes newest first. An empty status filter lists the
// pending queue.
func (r *ContentRepository) ListQueue(ctx context.Context, filter domain.ContentQueueFilter) (*domain.ContentQueuePage, error) {
	offset, size, err := pageWindow(filter.Cursor, filter.Limit)
	if err != nil {
		return nil, err
	}

	status := strings.ToLower(strings.TrimSpace(filter.Status))
	if status == "" {
		status = vo.ContentStatusPending.String()
	}

	query := db.GetTxFromContext(ctx, r.db).
		Model(&models.NodeModel{}).
		Where("moderation_status = ?", status)
	if v := strings.ToLower(strings.TrimSpace(filter.ContentType)); v != "" {
		query = query.Where("node_type = ?", v)
	}
	if v := strings.TrimSpace(filter.AuthorID); v != "" {
		query = query.Where("author_id = ?", v)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", filter.CreatedFrom.UTC())
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", filter.CreatedTo.UTC())
	}

	var nodes []models.NodeModel
	if err := query.
		Order("created_at DESC").
		Order("id DESC").
		Offset(offset).
		Limit(size + 1).
		Find(&nodes).Error; err != nil {
		return nil, fmt.Errorf("failed to list content queue: %w", err)
	}

	page := &domain.ContentQueuePage{
		NextCursor: nextPageCursor(offset, size, len(nodes)),
	}
	if len(nodes) > size {
		nodes = nodes[:size]
	}

	history, err := r.loadHistory(ctx, nodeIDs(nodes)...)
	if err != nil {
		return nil, err
	}

	page.Items = make([]*domain.ContentRow, 0, len(nodes))
	for i := range nodes {
		page.Items = append(page.Items, r.mapper.ToRow(&nodes[i], history[nodes[i].ID]))
	}
	return page, nil
}

// LoadContentDetails returns nil without error when the node is unknown.
func (r *ContentRepository) LoadContentDetails(ctx context.Context, contentID string) (*domain.ContentRow, error) {
	var node models.NodeModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("id = ?", contentID).
		First(&node).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load content: %w", err)
	}

	history, err := r.loadHistory(ctx, node.ID)
	if err != nil {
		return nil, err
	}
	return r.mapper.ToRow(&node, history[node.ID]), nil
}

// RecordDecision appends a history row and moves the node's moderation
// status in one transaction.
func (r *ContentRepository) RecordDecision(ctx context.Context, decision domain.ContentDecision) (*domain.ContentRow, error) {
	payload, err := mappers.EncodeJSON(decision.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode decision payload: %w", err)
	}
	decidedAt := r.now()
	if raw, ok := decision.Payload["decided_at"].(string); ok {
		if at, err := biztime.ParseISO(raw); err == nil {
			decidedAt = at
		}
	}

	var node models.NodeModel
	err = db.RunInTransaction(ctx, r.db, func(_ context.Context, tx *gorm.DB) error {
		if err := tx.Where("id = ?", decision.ContentID).First(&node).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFoundError("content not found", decision.ContentID)
			}
			return fmt.Errorf("failed to load content: %w", err)
		}

		entry := &models.NodeModerationHistoryModel{
			NodeID:    node.ID,
			Action:    decision.Action,
			Reason:    decision.Reason,
			ActorID:   decision.ActorID,
			Payload:   payload,
			CreatedAt: decidedAt.UTC(),
		}
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("failed to insert moderation history: %w", err)
		}

		node.ModerationStatus = vo.ContentStatusForAction(decision.Action).String()
		return tx.Model(&node).
			Update("moderation_status", node.ModerationStatus).Error
	})
	if err != nil {
		return nil, err
	}

	history, err := r.loadHistory(ctx, node.ID)
	if err != nil {
		return nil, err
	}
	return r.mapper.ToRow(&node, history[node.ID]), nil
}

// loadHistory fetches history for ids in one query, newest first per node.
func (r *ContentRepository) loadHistory(ctx context.Context, ids ...string) (map[string][]models.NodeModerationHistoryModel, error) {
	out := make(map[string][]models.NodeModerationHistoryModel, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []models.NodeModerationHistoryModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("node_id IN ?", ids).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load moderation history: %w", err)
	}

	for _, row := range rows {
		out[row.NodeID] = append(out[row.NodeID], row)
	}
	return out, nil
}

func nodeIDs(nodes []models.NodeModel) []string {
	ids := make([]string, len(nodes))
	for i := range nodes {
		ids[i] = nodes[i].ID
	}
	return ids
}
