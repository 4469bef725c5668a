// Package sqlite provides SQLite-based storage for extracted brand insights.
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

	// One connection: SQLite serializes writers and :memory: is per connection.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Wait on lock contention instead of failing with "database is locked".
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// WAL keeps batch saves fast. In-memory databases cannot use it.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	// Child tables rely on ON DELETE CASCADE.
	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	db.db = conn

	// Create schema
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

// createSchema creates the database tables if they don't exist.
// Every child table cascades with its brand.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS brands (
			id TEXT PRIMARY KEY,
			store_url TEXT NOT NULL UNIQUE,
			privacy_policy TEXT NOT NULL DEFAULT '',
			return_refund_policy TEXT NOT NULL DEFAULT '',
			about_brand TEXT NOT NULL DEFAULT '',
			important_links TEXT NOT NULL DEFAULT '{}',
			metadata TEXT NOT NULL DEFAULT '{}',
			extracted_at TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS products (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			brand_id TEXT NOT NULL REFERENCES brands(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			product_id TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			price TEXT NOT NULL DEFAULT '',
			available INTEGER NOT NULL DEFAULT 0,
			url TEXT NOT NULL DEFAULT '',
			image_url TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS hero_products (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			brand_id TEXT NOT NULL REFERENCES brands(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			product_id TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			price TEXT NOT NULL DEFAULT '',
			available INTEGER NOT NULL DEFAULT 0,
			url TEXT NOT NULL DEFAULT '',
			image_url TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS faqs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			brand_id TEXT NOT NULL REFERENCES brands(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			question TEXT NOT NULL,
			answer TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS social_handles (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			brand_id TEXT NOT NULL REFERENCES brands(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			platform TEXT NOT NULL,
			url TEXT NOT NULL,
			handle TEXT
		);

		CREATE TABLE IF NOT EXISTS contact_info (
			brand_id TEXT PRIMARY KEY REFERENCES brands(id) ON DELETE CASCADE,
			emails TEXT NOT NULL DEFAULT '[]',
			phone_numbers TEXT NOT NULL DEFAULT '[]',
			addresses TEXT NOT NULL DEFAULT '[]'
		);

		CREATE INDEX IF NOT EXISTS idx_products_brand_id ON products(brand_id);
		CREATE INDEX IF NOT EXISTS idx_hero_products_brand_id ON hero_products(brand_id);
		CREATE INDEX IF NOT EXISTS idx_faqs_brand_id ON faqs(brand_id);
		CREATE INDEX IF NOT EXISTS idx_social_handles_brand_id ON social_handles(brand_id);
	`

	_, err := db.db.Exec(schema)
	return err
}
