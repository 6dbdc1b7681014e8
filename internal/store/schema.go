package store

import (
	"context"
	"database/sql"
	"fmt"
)

// SchemaVersion is the current SQLite schema version.
const SchemaVersion = 1

// schemaV1 is the initial schema for the SQLite store.
const schemaV1 = `
-- Stored circuits, one JSON document per name
CREATE TABLE IF NOT EXISTS circuits (
    name TEXT PRIMARY KEY,
    document TEXT NOT NULL,  -- JSON CircuitDocument
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

-- Append-only run history
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    circuit TEXT NOT NULL,
    stimulus TEXT NOT NULL,
    behavior TEXT NOT NULL,
    overall_score INTEGER NOT NULL DEFAULT 0,
    grade TEXT,
    created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_circuit ON runs(circuit);

-- Schema version
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TEXT NOT NULL
);
`

// InitSchema creates the tables on first open and applies migrations on
// later schema versions.
func InitSchema(ctx context.Context, db *sql.DB) error {
	currentVersion, err := getSchemaVersion(ctx, db)
	if err != nil {
		// No schema_version table yet: fresh database.
		return createSchema(ctx, db)
	}

	if currentVersion < SchemaVersion {
		return migrateSchema(ctx, db, currentVersion)
	}
	return nil
}

// getSchemaVersion returns the current schema version from the database.
func getSchemaVersion(ctx context.Context, db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRowContext(ctx, `SELECT MAX(version) FROM schema_version`).Scan(&version); err != nil {
		return 0, err
	}
	return version, nil
}

// createSchema creates the full schema and stamps the version.
func createSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaV1); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	_, err := db.ExecContext(ctx,
		`INSERT OR REPLACE INTO schema_version (version, applied_at) VALUES (?, datetime('now'))`,
		SchemaVersion)
	if err != nil {
		return fmt.Errorf("stamping schema version: %w", err)
	}
	return nil
}

// migrateSchema applies migrations from currentVersion up to SchemaVersion.
// Version 1 is the only schema so far.
func migrateSchema(ctx context.Context, db *sql.DB, currentVersion int) error {
	if currentVersion >= SchemaVersion {
		return nil
	}
	return fmt.Errorf("no migration path from schema version %d", currentVersion)
}
