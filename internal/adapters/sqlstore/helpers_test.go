package sqlstore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/emiliopalmerini/codebuddy/internal/adapters/sqlstore"
	"github.com/emiliopalmerini/codebuddy/internal/migrate"
)

// testDB opens a libsql database file in a temp dir with all migrations applied.
func testDB(t *testing.T) *sqlstore.DB {
	t.Helper()

	ctx := context.Background()
	db, err := sqlstore.Open(ctx, sqlstore.Options{
		Driver: "libsql",
		Path:   filepath.Join(t.TempDir(), "codebuddy.db"),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if _, err := migrate.New(db, nil).RunAll(ctx); err != nil {
		_ = db.Close()
		t.Fatalf("Failed to run migrations: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}
