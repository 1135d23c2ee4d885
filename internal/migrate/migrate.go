package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/emiliopalmerini/codebuddy/internal/adapters/sqlstore"
	"github.com/emiliopalmerini/codebuddy/migrations"
)

// Migration represents a single database migration with up and down SQL.
type Migration struct {
	Version int
	Name    string
	UpSQL   string
	DownSQL string
}

// Migrator applies the embedded migrations for one dialect.
type Migrator struct {
	db      *sql.DB
	dialect sqlstore.Dialect
	fsys    fs.FS
	logger  *zap.Logger
}

// New returns a migrator over the embedded migration set.
func New(db *sqlstore.DB, logger *zap.Logger) *Migrator {
	return NewWithFS(db, migrations.FS, logger)
}

// NewWithFS returns a migrator reading migrations from fsys/<dialect>/.
func NewWithFS(db *sqlstore.DB, fsys fs.FS, logger *zap.Logger) *Migrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Migrator{db: db.DB, dialect: db.Dialect, fsys: fsys, logger: logger}
}

// EnsureMigrationsTable creates the schema_migrations table if it doesn't exist.
func (m *Migrator) EnsureMigrationsTable(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			dirty INTEGER NOT NULL DEFAULT 0
		)
	`)
	return err
}

// CurrentVersion returns the current migration version and dirty state.
func (m *Migrator) CurrentVersion(ctx context.Context) (int, bool, error) {
	var version int
	var dirty int

	err := m.db.QueryRowContext(ctx, `SELECT version, dirty FROM schema_migrations ORDER BY version DESC LIMIT 1`).Scan(&version, &dirty)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	return version, dirty == 1, nil
}

func (m *Migrator) setVersion(ctx context.Context, version int, dirty bool) error {
	dirtyInt := 0
	if dirty {
		dirtyInt = 1
	}

	_, err := m.db.ExecContext(ctx, `DELETE FROM schema_migrations`)
	if err != nil {
		return err
	}

	if version > 0 {
		_, err = m.db.ExecContext(ctx, m.dialect.Rebind(`INSERT INTO schema_migrations (version, dirty) VALUES (?, ?)`), version, dirtyInt)
	}
	return err
}

var upPattern = regexp.MustCompile(`^(\d+)_(.+)\.up\.sql$`)

// Load reads the dialect's migration files and returns them sorted by version.
func (m *Migrator) Load() ([]Migration, error) {
	dir := m.dialect.Name
	entries, err := fs.ReadDir(m.fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations for %s: %w", dir, err)
	}

	var result []Migration
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		matches := upPattern.FindStringSubmatch(entry.Name())
		if matches == nil {
			continue
		}

		version, _ := strconv.Atoi(matches[1])
		name := matches[2]

		upSQL, err := fs.ReadFile(m.fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", entry.Name(), err)
		}

		downSQL, err := fs.ReadFile(m.fsys, path.Join(dir, fmt.Sprintf("%03d_%s.down.sql", version, name)))
		if err != nil {
			downSQL = nil
		}

		result = append(result, Migration{
			Version: version,
			Name:    name,
			UpSQL:   string(upSQL),
			DownSQL: string(downSQL),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Version < result[j].Version
	})

	return result, nil
}

// Run executes a single migration (up or down).
func (m *Migrator) Run(ctx context.Context, mig Migration, up bool) error {
	direction := "up"
	sqlContent := mig.UpSQL
	if !up {
		direction = "down"
		sqlContent = mig.DownSQL
	}

	m.logger.Info("applying migration",
		zap.String("direction", direction),
		zap.Int("version", mig.Version),
		zap.String("name", mig.Name),
	)

	targetVersion := mig.Version
	if !up {
		targetVersion = mig.Version - 1
	}
	if err := m.setVersion(ctx, mig.Version, true); err != nil {
		return fmt.Errorf("failed to set dirty flag: %w", err)
	}

	for _, stmt := range SplitSQL(sqlContent) {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}

		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute migration %d %s: %w\nSQL: %s", mig.Version, direction, err, stmt)
		}
	}

	if err := m.setVersion(ctx, targetVersion, false); err != nil {
		return fmt.Errorf("failed to clear dirty flag: %w", err)
	}

	return nil
}

// SplitSQL splits a SQL string by semicolons.
func SplitSQL(sql string) []string {
	return strings.Split(sql, ";")
}

// UpTo runs up migrations until targetVersion. A negative target applies all.
func (m *Migrator) UpTo(ctx context.Context, all []Migration, currentVersion, targetVersion int) (int, error) {
	count := 0
	for _, mig := range all {
		if mig.Version <= currentVersion {
			continue
		}
		if targetVersion >= 0 && mig.Version > targetVersion {
			break
		}

		if err := m.Run(ctx, mig, true); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// DownTo runs down migrations until targetVersion.
func (m *Migrator) DownTo(ctx context.Context, all []Migration, currentVersion, targetVersion int) (int, error) {
	count := 0
	for i := len(all) - 1; i >= 0; i-- {
		mig := all[i]
		if mig.Version > currentVersion {
			continue
		}
		if mig.Version <= targetVersion {
			break
		}

		if mig.DownSQL == "" {
			return count, fmt.Errorf("no down migration for version %d", mig.Version)
		}

		if err := m.Run(ctx, mig, false); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// prepare ensures the bookkeeping table and refuses to touch a dirty schema.
func (m *Migrator) prepare(ctx context.Context) ([]Migration, int, error) {
	if err := m.EnsureMigrationsTable(ctx); err != nil {
		return nil, 0, fmt.Errorf("failed to create migrations table: %w", err)
	}

	currentVersion, dirty, err := m.CurrentVersion(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get current version: %w", err)
	}
	if dirty {
		return nil, 0, fmt.Errorf("database is in dirty state at version %d, manual intervention required", currentVersion)
	}

	all, err := m.Load()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load migrations: %w", err)
	}
	return all, currentVersion, nil
}

// RunAll runs all pending migrations. Safe to call on every startup.
func (m *Migrator) RunAll(ctx context.Context) (int, error) {
	all, current, err := m.prepare(ctx)
	if err != nil {
		return 0, err
	}
	return m.UpTo(ctx, all, current, -1)
}

// MigrateTo moves the schema up or down to targetVersion.
func (m *Migrator) MigrateTo(ctx context.Context, targetVersion int) (int, error) {
	all, current, err := m.prepare(ctx)
	if err != nil {
		return 0, err
	}
	switch {
	case targetVersion > current:
		return m.UpTo(ctx, all, current, targetVersion)
	case targetVersion < current:
		return m.DownTo(ctx, all, current, targetVersion)
	}
	return 0, nil
}

// Reset drops every migrated object and re-applies the schema from scratch.
func (m *Migrator) Reset(ctx context.Context) error {
	all, current, err := m.prepare(ctx)
	if err != nil {
		return err
	}
	if _, err := m.DownTo(ctx, all, current, 0); err != nil {
		return fmt.Errorf("failed to roll back schema: %w", err)
	}
	if _, err := m.UpTo(ctx, all, 0, -1); err != nil {
		return fmt.Errorf("failed to recreate schema: %w", err)
	}
	return nil
}
