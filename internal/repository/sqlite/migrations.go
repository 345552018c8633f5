package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

const createShiftsTable = `
CREATE TABLE IF NOT EXISTS shifts (
    id TEXT PRIMARY KEY,
    employee_id INTEGER NOT NULL,
    date TEXT NOT NULL,
    clock_in TEXT,
    clock_out TEXT,
    quarters INTEGER NOT NULL CHECK (quarters >= 0),
    tokes_cash INTEGER NOT NULL DEFAULT 0 CHECK (tokes_cash >= 0),
    downs TEXT NOT NULL DEFAULT '0',
    venue TEXT NOT NULL,
    notes TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`

const createShiftsIndex = `
CREATE INDEX IF NOT EXISTS idx_shifts_employee_date ON shifts (employee_id, date);
`

const createEmployeesTable = `
CREATE TABLE IF NOT EXISTS employees (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    chat_id INTEGER NOT NULL,
    role TEXT NOT NULL,
    default_venue TEXT NOT NULL DEFAULT ''
);
`

// Databases created before default_venue existed get the column added.
const addEmployeesDefaultVenue = `ALTER TABLE employees ADD COLUMN default_venue TEXT NOT NULL DEFAULT ''`

func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range []string{createShiftsTable, createShiftsIndex, createEmployeesTable} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrating: %w", err)
		}
	}
	if _, err := db.ExecContext(ctx, addEmployeesDefaultVenue); err != nil && !strings.Contains(err.Error(), "duplicate column name") {
		return fmt.Errorf("migrating: %w", err)
	}
	return nil
}

// Open opens the database at path, creating its directory, and migrates it.
// ":memory:" gives a private in-memory database.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == ":memory:" {
		// Every new connection would get its own empty database.
		db.SetMaxOpenConns(1)
	}
	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
