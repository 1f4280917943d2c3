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
	db "github.com/orris-inc/moderation/internal/shared/db"
)

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketRepository) FetchMany(ctx context.Context, ids []string) (map[string]*domain.TicketRow, error) {
	out := make(map[string]*domain.TicketRow, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []models.ModerationTicketModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("id IN ?", ids).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch tickets: %w", err)
	}

	for i := range rows {
		out[rows[i].ID] = r.mapper.ToRow(&rows[i])
	}
	return out, nil
}

// FetchTicket returns nil without error when the ticket has no row.
func (r *TicketRepository) FetchTicket(ctx context.Context, ticketID string) (*domain.TicketRow, error) {
	var model models.ModerationTicketModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("id = ?", ticketID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}
	return r.mapper.ToRow(&model), nil
}

// RecordTicketUpdate upserts every ticket field; meta is merged over the
// stored value.
func (r *TicketRepository) RecordTicketUpdate(ctx context.Context, update domain.TicketUpdate) (*domain.TicketRow, error) {
	var model models.ModerationTicketModel

	err := db.RunInTransaction(ctx, r.db, func(_ context.Context, tx *gorm.DB) error {
		err := tx.Where("id = ?", update.TicketID).First(&model).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to load ticket: %w", err)
		}

		if err := r.mapper.ApplyUpdate(&model, update); err != nil {
			return err
		}

		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "priority", "assignee_id", "unread_count", "meta", "updated_at"}),
		}).Create(&model).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update ticket: %w", err)
	}

	return r.mapper.ToRow(&model), nil
}

// RecordMessage stores a message and bumps the ticket's unread counter
// when requested. Tickets without a row only get the message.
func (r *TicketRepository) RecordMessage(ctx context.Context, msg domain.TicketMessageRow, incrementUnread bool) error {
	model, err := r.mapper.MessageToModel(msg)
	if err != nil {
		return err
	}

	return db.RunInTransaction(ctx, r.db, func(_ context.Context, tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to save ticket message: %w", err)
		}

		if !incrementUnread {
			return nil
		}

		if err := tx.Model(&models.ModerationTicketModel{}).
			Where("id = ?", msg.TicketID).
			Updates(map[string]any{
				"unread_count": gorm.Expr("unread_count + 1"),
				"updated_at":   model.CreatedAt,
			}).Error; err != nil {
			return fmt.Errorf("failed to increment ticket unread count: %w", err)
		}
		return nil
	})
}

// ListMessages pages a ticket's messages oldest first.
func (r *TicketRepository) ListMessages(ctx context.Context, ticketID string, limit int, cursor string) (*domain.TicketMessagePage, error) {
	offset, size, err := pageWindow(cursor, limit)
	if err != nil {
		return nil, err
	}

	var rows []models.ModerationTicketMessageModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Order("id ASC").
		Offset(offset).
		Limit(size + 1).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list ticket messages: %w", err)
	}

	page := &domain.TicketMessagePage{
		NextCursor: nextPageCursor(offset, size, len(rows)),
	}
	if len(rows) > size {
		rows = rows[:size]
	}
	page.Items = make([]*domain.TicketMessageRow, 0, len(rows))
	for i := range rows {
		page.Items = append(page.Items, r.mapper.MessageToRow(&rows[i]))
	}
	return page, nil
}
