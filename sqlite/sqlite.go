// Package sqlite provides SQLite-based storage for extracted articles.
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

	// Wait on lock contention instead of failing immediately.
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// WAL speeds up writes and allows concurrent reads during writes.
	// Not supported for in-memory databases.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	// Child media tables cascade from articles.
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

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, nil)
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

// createSchema creates the database tables if they don't exist.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS articles (
			id TEXT PRIMARY KEY,
			url TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			main_text TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			author TEXT,
			publish_date TEXT,
			language TEXT,
			category TEXT,
			tags TEXT NOT NULL DEFAULT '[]',
			word_count INTEGER NOT NULL DEFAULT 0,
			reading_time INTEGER NOT NULL DEFAULT 1,
			content_hash TEXT NOT NULL DEFAULT '',
			fetched_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS article_images (
			article_id TEXT NOT NULL REFERENCES articles(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			url TEXT NOT NULL,
			alt TEXT NOT NULL DEFAULT '',
			caption TEXT NOT NULL DEFAULT '',
			width INTEGER,
			height INTEGER,
			is_main INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (article_id, position)
		);

		CREATE TABLE IF NOT EXISTS article_videos (
			article_id TEXT NOT NULL REFERENCES articles(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			url TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			duration TEXT,
			platform TEXT NOT NULL,
			platform_host TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (article_id, position)
		);

		CREATE TABLE IF NOT EXISTS article_links (
			article_id TEXT NOT NULL REFERENCES articles(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			url TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			is_external INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (article_id, position)
		);

		CREATE INDEX IF NOT EXISTS idx_articles_url ON articles(url);
		CREATE INDEX IF NOT EXISTS idx_articles_fetched_at ON articles(fetched_at);
	`

	_, err := db.db.Exec(schema)
	return err
}
