package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rpggio/deckgen/migrations"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// An in-memory database lives only as long as its connection.
	if dataSourceName == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// Open ensures the parent directory exists, opens the ledger at path and
// applies the embedded schema.
func Open(path string) (*DB, error) {
	if err := ensureDir(path); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	db, err := New(path)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// RunMigrations applies the embedded schema. It is safe to run repeatedly.
func (db *DB) RunMigrations() error {
	data, err := migrations.FS.ReadFile(migrations.Initial)
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}
	if _, err := db.Exec(string(data)); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func ensureDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
