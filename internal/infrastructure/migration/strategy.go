package migration

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"github.com/orris-inc/moderation/internal/infrastructure/persistence/models"
	"github.com/orris-inc/moderation/internal/shared/logger"
)

//go:embed scripts
var scriptsFS embed.FS

// Strategy defines the interface for different migration strategies
type Strategy interface {
	// Migrate executes the migration strategy
	Migrate(ctx context.Context, db *gorm.DB) error
	// GetName returns the strategy name
	GetName() string
}

// GormAutoMigrateStrategy creates or alters tables from the GORM models.
type GormAutoMigrateStrategy struct {
	models []any
	logger logger.Interface
}

// NewGormAutoMigrateStrategy creates an AutoMigrate strategy for every
// moderation model.
func NewGormAutoMigrateStrategy() *GormAutoMigrateStrategy {
	return &GormAutoMigrateStrategy{
		models: models.All(),
		logger: logger.NewLogger().With("component", "migration.auto"),
	}
}

func (s *GormAutoMigrateStrategy) Migrate(ctx context.Context, db *gorm.DB) error {
	s.logger.Infow("starting gorm auto migration", "models_count", len(s.models))

	if err := db.WithContext(ctx).AutoMigrate(s.models...); err != nil {
		s.logger.Errorw("auto migration failed", "error", err)
		return fmt.Errorf("failed to auto migrate: %w", err)
	}

	s.logger.Infow("auto migration completed successfully")
	return nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}

// GooseStrategy runs the embedded SQL scripts for the connection's dialect.
type GooseStrategy struct {
	scripts fs.FS
	logger  logger.Interface
}

// NewGooseStrategy uses the scripts embedded in the binary.
func NewGooseStrategy() *GooseStrategy {
	return NewGooseStrategyFS(scriptsFS)
}

// NewGooseStrategyFS reads scripts from fsys, which must contain one
// directory per dialect under scripts/.
func NewGooseStrategyFS(fsys fs.FS) *GooseStrategy {
	return &GooseStrategy{
		scripts: fsys,
		logger:  logger.NewLogger().With("component", "migration.goose"),
	}
}

func (s *GooseStrategy) GetName() string {
	return "goose"
}

// dialectFor maps a GORM dialector name onto goose's dialect and the
// scripts directory holding its migrations.
func dialectFor(name string) (goose.Dialect, string, error) {
	switch name {
	case "mysql":
		return goose.DialectMySQL, "scripts/mysql", nil
	case "postgres":
		return goose.DialectPostgres, "scripts/postgres", nil
	case "sqlite":
		return goose.DialectSQLite3, "scripts/sqlite", nil
	default:
		return "", "", fmt.Errorf("unsupported migration dialect: %s", name)
	}
}

func (s *GooseStrategy) provider(db *gorm.DB) (*goose.Provider, error) {
	dialect, dir, err := dialectFor(db.Dialector.Name())
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sub, err := fs.Sub(s.scripts, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open migration scripts %s: %w", dir, err)
	}

	p, err := goose.NewProvider(dialect, sqlDB, sub)
	if err != nil {
		return nil, fmt.Errorf("failed to create goose provider: %w", err)
	}
	return p, nil
}

func (s *GooseStrategy) Migrate(ctx context.Context, db *gorm.DB) error {
	p, err := s.provider(db)
	if err != nil {
		return err
	}

	currentVersion, err := p.GetDBVersion(ctx)
	if err != nil {
		s.logger.Errorw("failed to get current version", "error", err)
		return fmt.Errorf("failed to get current version: %w", err)
	}

	s.logger.Infow("current migration status",
		"dialect", db.Dialector.Name(),
		"version", currentVersion)

	results, err := p.Up(ctx)
	if err != nil {
		s.logger.Errorw("migration failed", "error", err)
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	finalVersion, err := p.GetDBVersion(ctx)
	if err != nil {
		s.logger.Errorw("failed to get final version", "error", err)
		return fmt.Errorf("failed to get final version: %w", err)
	}

	s.logger.Infow("migration completed successfully",
		"from_version", currentVersion,
		"to_version", finalVersion,
		"applied", len(results))

	return nil
}

// MigrateDown rolls back the given number of migrations. It stops early
// once nothing is left to roll back.
func (s *GooseStrategy) MigrateDown(ctx context.Context, db *gorm.DB, steps int) error {
	s.logger.Infow("starting down migration", "steps", steps)

	p, err := s.provider(db)
	if err != nil {
		return err
	}

	for i := 0; i < steps; i++ {
		if _, err := p.Down(ctx); err != nil {
			if errors.Is(err, goose.ErrNoNextVersion) {
				break
			}
			s.logger.Errorw("down migration failed", "error", err)
			return fmt.Errorf("failed to run down migration: %w", err)
		}
	}

	s.logger.Infow("down migration completed successfully")
	return nil
}

func (s *GooseStrategy) GetVersion(ctx context.Context, db *gorm.DB) (int64, error) {
	p, err := s.provider(db)
	if err != nil {
		return 0, err
	}

	version, err := p.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get version: %w", err)
	}

	return version, nil
}

// MigrationState describes one migration script and whether it has run.
type MigrationState struct {
	Version   int64
	Path      string
	Applied   bool
	AppliedAt string
}

func (s *GooseStrategy) Status(ctx context.Context, db *gorm.DB) ([]MigrationState, error) {
	p, err := s.provider(db)
	if err != nil {
		return nil, err
	}

	statuses, err := p.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}

	result := make([]MigrationState, 0, len(statuses))
	for _, st := range statuses {
		state := MigrationState{
			Version: st.Source.Version,
			Path:    st.Source.Path,
			Applied: st.State == goose.StateApplied,
		}
		if state.Applied {
			state.AppliedAt = st.AppliedAt.UTC().Format("2006-01-02 15:04:05")
		}
		result = append(result, state)
	}
	return result, nil
}
