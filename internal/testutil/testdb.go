package testutil

import (
	"context"
	"database/sql"
	"testing"

	"tips-bot/internal/repository/sqlite"
)

// NewTestDB creates an in-memory SQLite database with migrations applied.
// The database is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	return db
}
