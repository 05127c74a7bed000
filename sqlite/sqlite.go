// Package sqlite provides SQLite-based storage for movies, reviews and charts.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Wait up to 5 seconds on lock contention.
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// WAL is not supported for in-memory databases.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	// Reviews cascade with their movie.
	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	db.db = conn

	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, opts)
}

// Stats returns database statistics.
func (db *DB) Stats() sql.DBStats {
	return db.db.Stats()
}

// createSchema creates the database tables if they don't exist.
// Calendar dates are stored as YYYY-MM-DD and timestamps as RFC3339.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS movies (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			year INTEGER NOT NULL,
			release_date TEXT NOT NULL,
			budget REAL,
			gross REAL NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			poster_url TEXT NOT NULL DEFAULT '',
			poster_thumbnail_url TEXT NOT NULL DEFAULT '',
			review_count INTEGER NOT NULL,
			url TEXT NOT NULL,
			run_id TEXT NOT NULL,
			created_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS reviews (
			movie_id INTEGER NOT NULL REFERENCES movies(id) ON DELETE CASCADE,
			rank INTEGER NOT NULL,
			reviewer_id INTEGER NOT NULL,
			reviewer TEXT,
			title TEXT NOT NULL,
			date TEXT NOT NULL,
			score INTEGER,
			likes INTEGER,
			dislikes INTEGER,
			place TEXT,
			text TEXT NOT NULL,
			text_hash TEXT NOT NULL,
			spoilers INTEGER NOT NULL DEFAULT 0,
			url TEXT NOT NULL,
			PRIMARY KEY (movie_id, rank)
		);

		CREATE INDEX IF NOT EXISTS idx_reviews_reviewer_id ON reviews(reviewer_id);

		CREATE TABLE IF NOT EXISTS chart_entries (
			kind TEXT NOT NULL,
			year INTEGER NOT NULL,
			rank INTEGER NOT NULL,
			movie_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			movie_year INTEGER NOT NULL,
			PRIMARY KEY (kind, year, rank)
		);
	`

	_, err := db.db.Exec(schema)
	return err
}
