package testfixtures

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/example/meeting-coordinator/internal/persistence"
	"github.com/example/meeting-coordinator/internal/persistence/sqlite"
)

// SQLiteHarness provides repository access backed by a temporary SQLite
// database for integration-style persistence tests.
type SQLiteHarness struct {
	Users    persistence.UserRepository
	Teams    persistence.TeamRepository
	Sessions persistence.SessionRepository

	cleanup func()
}

// Close releases resources associated with the harness.
func (h *SQLiteHarness) Close() {
	if h != nil && h.cleanup != nil {
		h.cleanup()
		h.cleanup = nil
	}
}

// NewSQLiteHarness constructs a SQLiteHarness using a temporary file that is
// migrated automatically. Callers may invoke Close themselves, but the helper
// also registers a cleanup callback with the provided testing.TB.
func NewSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()

	dir := tb.TempDir()
	dsn := "file:" + filepath.Join(dir, "coordinator.db") + "?_foreign_keys=on"

	db, err := sqlite.Open(dsn)
	if err != nil {
		tb.Fatalf("failed to open database: %v", err)
	}

	if err := db.Migrate(context.Background()); err != nil {
		_ = db.Close()
		tb.Fatalf("failed to migrate database: %v", err)
	}

	harness := &SQLiteHarness{
		Users:    sqlite.NewUserRepository(db),
		Teams:    sqlite.NewTeamRepository(db),
		Sessions: sqlite.NewSessionRepository(db),
		cleanup: func() {
			_ = db.Close()
		},
	}

	tb.Cleanup(harness.Close)
	return harness
}
