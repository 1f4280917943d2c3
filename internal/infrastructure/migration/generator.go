package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/orris-inc/moderation/internal/shared/logger"
)

// Dialects lists the script directories every migration is written for.
var Dialects = []string{"mysql", "postgres", "sqlite"}

var scriptNamePattern = regexp.MustCompile(`^(\d+)_[a-z0-9_]+\.sql$`)
var migrationNamePattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// Generator handles creation of new migration files
type Generator struct {
	scriptsPath string
	logger      logger.Interface
	now         func() time.Time
}

// NewGenerator creates a generator writing under scriptsPath, which holds
// one directory per dialect.
func NewGenerator(scriptsPath string) *Generator {
	return &Generator{
		scriptsPath: scriptsPath,
		logger:      logger.NewLogger().With("component", "migration.generator"),
		now:         time.Now,
	}
}

// CreateMigration writes one goose script per dialect, all sharing the
// next free version number. It returns the created paths.
func (g *Generator) CreateMigration(name string) ([]string, error) {
	if !migrationNamePattern.MatchString(name) {
		return nil, fmt.Errorf("invalid migration name %q: use lowercase letters, digits and underscores", name)
	}

	g.logger.Infow("creating new migration", "name", name)

	version, err := g.nextVersion()
	if err != nil {
		return nil, err
	}

	fileName := fmt.Sprintf("%05d_%s.sql", version, name)
	content := g.template(name)

	created := make([]string, 0, len(Dialects))
	for _, dialect := range Dialects {
		dir := filepath.Join(g.scriptsPath, dialect)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return created, fmt.Errorf("failed to create scripts directory: %w", err)
		}
		path := filepath.Join(dir, fileName)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return created, fmt.Errorf("failed to write migration %s: %w", path, err)
		}
		created = append(created, path)
	}

	g.logger.Infow("migration files created successfully", "version", version, "files", created)
	return created, nil
}

// nextVersion scans every dialect directory so the dialects never drift apart.
func (g *Generator) nextVersion() (int64, error) {
	var versions []int64
	for _, dialect := range Dialects {
		entries, err := os.ReadDir(filepath.Join(g.scriptsPath, dialect))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return 0, fmt.Errorf("failed to read scripts directory: %w", err)
		}
		for _, e := range entries {
			m := scriptNamePattern.FindStringSubmatch(e.Name())
			if m == nil {
				continue
			}
			v, err := strconv.ParseInt(m[1], 10, 64)
			if err == nil {
				versions = append(versions, v)
			}
		}
	}
	if len(versions) == 0 {
		return 1, nil
	}
	sort.Slice(versions, func(i, j int) bool { return versions[i] < versions[j] })
	return versions[len(versions)-1] + 1, nil
}

func (g *Generator) template(name string) string {
	return fmt.Sprintf(`-- Migration: %s
-- Created: %s

-- +goose Up

-- +goose Down
`, name, g.now().UTC().Format("2006-01-02 15:04:05"))
}
