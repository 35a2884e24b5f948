package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

type Database struct {
	db *sql.DB
}

var globalDB *Database

// Open creates a Database on the given SQLite file and prepares the schema.
// Tests use this directly; the running bot goes through Initialize.
func Open(dbPath string) (*Database, error) {
	// Pragmas ride in the DSN so every pooled connection gets them.
	// _txlock=immediate makes transactions take the write lock at BEGIN,
	// which CreateCase relies on for race-free case numbering.
	dsn := dbPath + "?_txlock=immediate" +
		"&_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=busy_timeout(5000)" +
		"&_pragma=foreign_keys(1)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	d := &Database{db: db}
	if err := d.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return d, nil
}

// Initialize opens the global database instance.
func Initialize(dbPath string) error {
	d, err := Open(dbPath)
	if err != nil {
		return err
	}
	globalDB = d
	return nil
}

// GetDB returns the global database instance.
func GetDB() *Database {
	return globalDB
}

// IsConnected checks if the database connection is alive.
func IsConnected() bool {
	if globalDB == nil || globalDB.db == nil {
		return false
	}
	return globalDB.db.Ping() == nil
}

// Close closes the global database connection.
func Close() error {
	if globalDB != nil && globalDB.db != nil {
		return globalDB.db.Close()
	}
	return nil
}

// Close closes this database's connection.
func (d *Database) Close() error {
	return d.db.Close()
}

// createTables creates all necessary database tables
func (d *Database) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS guild_config (
		guild_id TEXT PRIMARY KEY,
		prefix TEXT DEFAULT '-',
		log_channel_id TEXT DEFAULT '',
		manual_logging INTEGER DEFAULT 0,
		created_at INTEGER DEFAULT 0,
		updated_at INTEGER DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS mod_cases (
		guild_id TEXT NOT NULL,
		case_id INTEGER NOT NULL,
		user_id TEXT NOT NULL,
		moderator_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		reason TEXT NOT NULL,
		source TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		PRIMARY KEY (guild_id, case_id)
	);

	CREATE INDEX IF NOT EXISTS idx_mod_cases_user ON mod_cases(guild_id, user_id);
	CREATE INDEX IF NOT EXISTS idx_mod_cases_created ON mod_cases(created_at);
	`

	_, err := d.db.Exec(schema)
	return err
}
