package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"

	domain "github.com/orris-inc/moderation/internal/domain/moderation"
	vo "github.com/orris-inc/moderation/internal/domain/moderation/valueobjects"
	"github.com/orris-inc/moderation/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/moderation/internal/infrastructure/persistence/models"
	"github.com/orris-inc/moderation/internal/shared/biztime"
	"github.com/orris-inc/moderation/internal/shared/constants"
	"github.com/orris-inc/moderation/internal/shared/db"
	apperrors "github.com/orris-inc/moderation/internal/shared/errors"
	"github.com/orris-inc/moderation/internal/shared/logger"
)

// roleSchema is how role grants are stored.
type roleSchema int

const (
	roleSchemaUnknown roleSchema = iota
	roleSchemaTable              // user_roles rows
	roleSchemaColumn             // users.role
)

// UserRepository reads identities from the users table and owns roles,
// moderator notes and sanction mirrors. The roles layout is detected on
// first use; note and sanction tables are created when missing.
type UserRepository struct {
	db     *gorm.DB
	mapper mappers.UserMapper
	logger logger.Interface
	now    func() time.Time

	mu          sync.Mutex
	roles       roleSchema
	tablesReady bool
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB, logger logger.Interface) *UserRepository {
	return &UserRepository{
		db:     db,
		mapper: mappers.NewUserMapper(),
		logger: logger,
		now:    biztime.NowUTC,
	}
}

func (r *UserRepository) detectRoleSchema(ctx context.Context) roleSchema {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.roles == roleSchemaUnknown {
		if r.db.WithContext(ctx).Migrator().HasTable(constants.TableUserRoles) {
			r.roles = roleSchemaTable
		} else {
			r.roles = roleSchemaColumn
		}
		r.logger.Debugw("detected user role schema", "role_table", r.roles == roleSchemaTable)
	}
	return r.roles
}

// ensureTables creates the notes and sanctions tables on first write.
// A failed attempt is retried on the next call.
func (r *UserRepository) ensureTables(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.tablesReady {
		return nil
	}

	migrator := r.db.WithContext(ctx).Migrator()
	for _, model := range []schema.Tabler{&models.UserNoteModel{}, &models.UserSanctionModel{}} {
		if migrator.HasTable(model) {
			continue
		}
		if err := migrator.CreateTable(model); err != nil {
			return fmt.Errorf("failed to create moderation table: %w", err)
		}
		r.logger.Infow("created moderation table", "table", model.TableName())
	}

	r.tablesReady = true
	return nil
}

// ListUsers pages users newest first.
func (r *UserRepository) ListUsers(ctx context.Context, filter domain.UserFilter) (*domain.UserPage, error) {
	offset, size, err := pageWindow(filter.Cursor, filter.Limit)
	if err != nil {
		return nil, err
	}

	layout := r.detectRoleSchema(ctx)
	query := db.GetTxFromContext(ctx, r.db).Model(&models.UserModel{})

	if q := strings.ToLower(strings.TrimSpace(filter.Query)); q != "" {
		like := "%" + q + "%"
		query = query.Where("LOWER(id) LIKE ? OR LOWER(username) LIKE ? OR LOWER(email) LIKE ?", like, like, like)
	}
	if role := strings.ToLower(strings.TrimSpace(filter.Role)); role != "" {
		if layout == roleSchemaTable {
			sub := db.GetTxFromContext(ctx, r.db).
				Model(&models.UserRoleModel{}).
				Select("user_id").
				Where("LOWER(role) = ?", role)
			query = query.Where("id IN (?)", sub)
		} else {
			query = query.Where("LOWER(role) = ?", role)
		}
	}
	if status := strings.ToLower(strings.TrimSpace(filter.Status)); status != "" {
		query = query.Where("status = ?", status)
	}

	var users []models.UserModel
	if err := query.
		Order("created_at DESC").
		Order("id DESC").
		Offset(offset).
		Limit(size + 1).
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	page := &domain.UserPage{
		NextCursor: nextPageCursor(offset, size, len(users)),
	}
	if len(users) > size {
		users = users[:size]
	}

	roles, err := r.loadRoles(db.GetTxFromContext(ctx, r.db), layout, users)
	if err != nil {
		return nil, err
	}

	page.Items = make([]*domain.UserRow, 0, len(users))
	for i := range users {
		page.Items = append(page.Items, r.mapper.ToRow(&users[i], roles[users[i].ID]))
	}
	return page, nil
}

// GetUser returns a not-found AppError for unknown users.
func (r *UserRepository) GetUser(ctx context.Context, userID string) (*domain.UserRow, error) {
	user, err := r.findUser(db.GetTxFromContext(ctx, r.db), userID)
	if err != nil {
		return nil, err
	}

	roles, err := r.loadRoles(db.GetTxFromContext(ctx, r.db), r.detectRoleSchema(ctx), []models.UserModel{*user})
	if err != nil {
		return nil, err
	}

	row := r.mapper.ToRow(user, roles[user.ID])
	banned, err := r.hasActiveBan(ctx, userID)
	if err != nil {
		r.logger.Warnw("failed to check active bans", "user_id", userID, "error", err)
	} else if banned {
		row.Status = stringPtrOf(vo.UserStatusBanned.String())
	}
	return row, nil
}

// BootstrapUserStub confirms the user exists before the service caches it.
func (r *UserRepository) BootstrapUserStub(ctx context.Context, userID string) (*domain.UserRow, error) {
	return r.GetUser(ctx, userID)
}

// PersistSanction upserts the sanction mirror and syncs users.status with
// the user's active bans.
func (r *UserRepository) PersistSanction(ctx context.Context, record domain.SanctionRecord) error {
	if err := r.ensureTables(ctx); err != nil {
		return err
	}

	model := r.mapper.SanctionToModel(record)
	return db.RunInTransaction(ctx, r.db, func(_ context.Context, tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "reason", "ends_at", "revoked_at", "revoked_by", "updated_at"}),
		}).Create(model).Error; err != nil {
			return fmt.Errorf("failed to persist sanction: %w", err)
		}

		var bans int64
		if err := activeBans(tx, record.UserID, r.now()).Count(&bans).Error; err != nil {
			return fmt.Errorf("failed to count active bans: %w", err)
		}

		status := vo.UserStatusActive
		if bans > 0 {
			status = vo.UserStatusBanned
		}
		if err := tx.Model(&models.UserModel{}).
			Where("id = ?", record.UserID).
			Update("status", status.String()).Error; err != nil {
			return fmt.Errorf("failed to sync user status: %w", err)
		}
		return nil
	})
}

// UpdateRoles applies additions then removals case-insensitively and
// returns the resulting grants.
func (r *UserRepository) UpdateRoles(ctx context.Context, userID string, add, remove []string) ([]string, error) {
	layout := r.detectRoleSchema(ctx)
	var result []string

	err := db.RunInTransaction(ctx, r.db, func(_ context.Context, tx *gorm.DB) error {
		user, err := r.findUser(tx, userID)
		if err != nil {
			return err
		}

		current, err := r.loadRoles(tx, layout, []models.UserModel{*user})
		if err != nil {
			return err
		}
		result = domain.ApplyRoleChanges(current[userID], add, remove)

		if layout == roleSchemaColumn {
			var role *string
			if len(result) > 0 {
				role = stringPtrOf(result[0])
				result = result[:1]
			}
			return tx.Model(&models.UserModel{}).
				Where("id = ?", userID).
				Update("role", role).Error
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.UserRoleModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear user roles: %w", err)
		}
		if len(result) == 0 {
			return nil
		}
		grants := make([]models.UserRoleModel, 0, len(result))
		for _, role := range result {
			grants = append(grants, models.UserRoleModel{UserID: userID, Role: role, CreatedAt: r.now()})
		}
		if err := tx.Create(&grants).Error; err != nil {
			return fmt.Errorf("failed to save user roles: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *UserRepository) AddNote(ctx context.Context, record domain.NoteRecord) error {
	if err := r.ensureTables(ctx); err != nil {
		return err
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(r.mapper.NoteToModel(record)).Error; err != nil {
		return fmt.Errorf("failed to save user note: %w", err)
	}
	return nil
}

func (r *UserRepository) findUser(tx *gorm.DB, userID string) (*models.UserModel, error) {
	var user models.UserModel
	if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("user not found", userID)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

// loadRoles returns grants per user id. Users without grants map to an
// empty, non-nil slice.
func (r *UserRepository) loadRoles(tx *gorm.DB, layout roleSchema, users []models.UserModel) (map[string][]string, error) {
	out := make(map[string][]string, len(users))
	ids := make([]string, 0, len(users))
	for _, u := range users {
		out[u.ID] = []string{}
		ids = append(ids, u.ID)
		if layout == roleSchemaColumn && u.Role != nil && strings.TrimSpace(*u.Role) != "" {
			out[u.ID] = []string{strings.TrimSpace(*u.Role)}
		}
	}
	if layout == roleSchemaColumn || len(ids) == 0 {
		return out, nil
	}

	var grants []models.UserRoleModel
	if err := tx.
		Where("user_id IN ?", ids).
		Order("role ASC").
		Find(&grants).Error; err != nil {
		return nil, fmt.Errorf("failed to load user roles: %w", err)
	}
	for _, g := range grants {
		out[g.UserID] = append(out[g.UserID], g.Role)
	}
	return out, nil
}

func (r *UserRepository) hasActiveBan(ctx context.Context, userID string) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	if !tx.Migrator().HasTable(&models.UserSanctionModel{}) {
		return false, nil
	}
	var bans int64
	if err := activeBans(tx, userID, r.now()).Count(&bans).Error; err != nil {
		return false, err
	}
	return bans > 0, nil
}

func activeBans(tx *gorm.DB, userID string, now time.Time) *gorm.DB {
	return tx.Model(&models.UserSanctionModel{}).
		Where("user_id = ? AND type = ? AND status = ?", userID, vo.SanctionTypeBan.String(), vo.SanctionStatusActive.String()).
		Where("ends_at IS NULL OR ends_at > ?", now)
}

func stringPtrOf(s string) *string {
	return &s
}
