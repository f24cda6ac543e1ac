package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Database owns the SQLite connection used by the repository.
type Database struct {
	db   *sql.DB
	path string
	mu   sync.RWMutex
}

// NewDatabase opens (creating if needed) the database at path.
// Call Migrate before using the repository on a fresh file.
func NewDatabase(path string) (*Database, error) {
	return NewDatabaseWithConfig(DefaultConnectionConfig(path))
}

// NewDatabaseWithConfig is NewDatabase with explicit connection settings.
func NewDatabaseWithConfig(config ConnectionConfig) (*Database, error) {
	if config.Path == "" {
		return nil, fmt.Errorf("database path is required")
	}

	dir := filepath.Dir(config.Path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
		}
	}

	conn, err := NewSQLiteConnection(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection: %w", err)
	}

	return &Database{db: conn, path: config.Path}, nil
}

// Open is NewDatabase followed by Migrate.
func Open(path string) (*Database, error) {
	database, err := NewDatabase(path)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// Migrate applies pending schema migrations. golang-migrate closes the
// connection it is handed, so migrations run on a separate one.
func (d *Database) Migrate() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := MigrateUpFromPath(d.path); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

// DB returns the underlying connection. Close the Database, not this.
func (d *Database) DB() *sql.DB {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.db
}

// Path returns the database file path.
func (d *Database) Path() string {
	return d.path
}

// Close closes the connection. Further use of d fails.
func (d *Database) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db == nil {
		return nil
	}
	if err := d.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	d.db = nil
	return nil
}

// Ping verifies the connection is alive.
func (d *Database) Ping(ctx context.Context) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.db == nil {
		return errClosed
	}
	return d.db.PingContext(ctx)
}

func (d *Database) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.db == nil {
		return nil, errClosed
	}
	return d.db.ExecContext(ctx, query, args...)
}

func (d *Database) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.db == nil {
		return nil, errClosed
	}
	return d.db.QueryContext(ctx, query, args...)
}

func (d *Database) queryRow(ctx context.Context, dest []any, query string, args ...any) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.db == nil {
		return errClosed
	}
	return d.db.QueryRowContext(ctx, query, args...).Scan(dest...)
}
