package migration

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/orris-inc/moderation/internal/shared/constants"
	"github.com/orris-inc/moderation/internal/shared/logger"
)

// Manager runs one migration strategy against a database.
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager uses AutoMigrate in development and the versioned goose
// scripts in every other environment.
func NewManager(environment string) *Manager {
	if strings.EqualFold(environment, constants.EnvDevelopment) {
		return NewManagerWithStrategy(NewGormAutoMigrateStrategy())
	}
	return NewManagerWithStrategy(NewGooseStrategy())
}

func NewManagerWithStrategy(strategy Strategy) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   logger.NewLogger().With("component", "migration.manager"),
	}
}

func (m *Manager) Migrate(ctx context.Context, db *gorm.DB) error {
	name := m.strategy.GetName()
	m.logger.Infow("starting database migration", "strategy", name)

	if err := m.strategy.Migrate(ctx, db); err != nil {
		m.logger.Errorw("migration failed", "strategy", name, "error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", name, err)
	}

	m.logger.Infow("database migration completed", "strategy", name)
	return nil
}

func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}
