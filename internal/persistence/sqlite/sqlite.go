package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/example/meeting-coordinator/internal/persistence"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite connection pool shared by the repositories.
type DB struct {
	db *sql.DB
}

// Open establishes a SQLite connection pool for the provided DSN.
func Open(dsn string) (*DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// modernc.org/sqlite serialises writes; a single connection avoids
	// SQLITE_BUSY churn under concurrent appends.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	return &DB{db: db}, nil
}

// Close releases the underlying connection pool.
func (d *DB) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}

// Ping verifies the database connection.
func (d *DB) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id             TEXT PRIMARY KEY,
		email          TEXT NOT NULL UNIQUE COLLATE NOCASE,
		display_name   TEXT NOT NULL,
		status         TEXT NOT NULL DEFAULT 'Available',
		photo_url      TEXT NOT NULL DEFAULT '',
		email_verified INTEGER NOT NULL DEFAULT 0,
		password_hash  TEXT NOT NULL,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS teams (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS team_members (
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		team_id TEXT NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		PRIMARY KEY (user_id, team_id)
	)`,
	`CREATE TABLE IF NOT EXISTS meetings (
		seq        INTEGER PRIMARY KEY AUTOINCREMENT,
		team_id    TEXT NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		name       TEXT NOT NULL,
		agenda     TEXT NOT NULL,
		time       INTEGER NOT NULL,
		token      TEXT NOT NULL CHECK (token <> ''),
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_meetings_team ON meetings(team_id)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		token      TEXT NOT NULL UNIQUE,
		expires_at TEXT NOT NULL,
		created_at TEXT NOT NULL,
		revoked_at TEXT
	)`,
}

// Migrate applies the schema. Statements are idempotent so repeated startup
// runs are safe.
func (d *DB) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := d.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// WithTransaction executes fn inside a transaction, rolling back when fn
// returns an error.
func (d *DB) WithTransaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction failed (rollback error: %v): %w", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// mapError translates driver failures into persistence sentinels.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return persistence.ErrNotFound
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("%w: %v", persistence.ErrAlreadyExists, err)
	}
	return fmt.Errorf("%w: %v", persistence.ErrUnavailable, err)
}
