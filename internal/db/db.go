package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DefaultPath is the default database location
const DefaultPath = "/var/lib/hostprobe/history.db"

// DB wraps the SQLite database connection
type DB struct {
	conn *sql.DB
}

// New opens or creates the SQLite database at the given path
func New(path string) (*DB, error) {
	if path == "" {
		path = DefaultPath
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.conn.Close()
}

// SchemaVersion returns the highest applied migration
func (d *DB) SchemaVersion() (int, error) {
	var version int
	err := d.conn.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	return version, err
}

// migrate runs the database schema migrations
func (d *DB) migrate() error {
	_, err := d.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return err
	}

	version, err := d.SchemaVersion()
	if err != nil {
		return err
	}

	migrations := []string{
		migrationV1,
		migrationV2,
	}

	for i, migration := range migrations {
		v := i + 1
		if v <= version {
			continue
		}

		tx, err := d.conn.Begin()
		if err != nil {
			return err
		}

		if _, err := tx.Exec(migration); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration v%d failed: %w", v, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", v); err != nil {
			tx.Rollback()
			return err
		}

		if err := tx.Commit(); err != nil {
			return err
		}
	}

	return nil
}

// migrationV1 creates the snapshot table
const migrationV1 = `
-- One row per collected inventory document
CREATE TABLE IF NOT EXISTS snapshots (
    id TEXT PRIMARY KEY,
    hostname TEXT NOT NULL,
    kernel_release TEXT,
    document TEXT NOT NULL,
    taken_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_snapshots_time ON snapshots(taken_at);
`

// migrationV2 adds per-section device counts for listing without decoding documents
const migrationV2 = `
ALTER TABLE snapshots ADD COLUMN pci_count INTEGER DEFAULT 0;
ALTER TABLE snapshots ADD COLUMN block_count INTEGER DEFAULT 0;
ALTER TABLE snapshots ADD COLUMN module_count INTEGER DEFAULT 0;

CREATE INDEX IF NOT EXISTS idx_snapshots_host ON snapshots(hostname, taken_at);
`
