// Package sqlite persists CRM records in a local SQLite database. It
// stands in for the hosted relational backend the bulk action handlers
// would otherwise call over the network.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

const schema = `
CREATE TABLE IF NOT EXISTS organizations (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	segment TEXT NOT NULL DEFAULT '',
	priority TEXT NOT NULL DEFAULT 'C',
	city TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	archived INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS contacts (
	id TEXT PRIMARY KEY,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	organization_id TEXT NOT NULL DEFAULT '',
	role TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL DEFAULT '',
	segment TEXT NOT NULL DEFAULT '',
	archived INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS products (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	principal TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL DEFAULT '',
	segment TEXT NOT NULL DEFAULT '',
	archived INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS opportunities (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	organization_id TEXT NOT NULL DEFAULT '',
	stage TEXT NOT NULL DEFAULT 'new_lead',
	probability INTEGER NOT NULL DEFAULT 0,
	segment TEXT NOT NULL DEFAULT '',
	archived INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS interactions (
	id TEXT PRIMARY KEY,
	organization_id TEXT NOT NULL DEFAULT '',
	contact_id TEXT NOT NULL DEFAULT '',
	type TEXT NOT NULL DEFAULT 'call',
	notes TEXT NOT NULL DEFAULT '',
	occurred_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	segment TEXT NOT NULL DEFAULT '',
	archived INTEGER NOT NULL DEFAULT 0
);
`

// Open opens (creating if needed) the database at path and applies the
// schema. Use ":memory:" for tests.
func Open(path string) (*sql.DB, error) {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = "file:" + path
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Verify connection works
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return db, nil
}
