package db

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// SchemaSQL is the complete schema for a fresh install. It reflects the state
// after every migration has run.
//
// Tests use this schema via GetSchemaSQL() rather than declaring their own
// tables, so a repository that references a missing column fails immediately
// with "no such column".
//
// When changing the schema:
//  1. Add a migration in migrations.go
//  2. Update SchemaSQL here
//  3. Bump nothing else; fresh installs mark every migration as applied
const SchemaSQL = `
-- Directed per-kind interaction counters. One row per (guild, actor, recipient, kind).
CREATE TABLE IF NOT EXISTS action_counter (
	guild_id INTEGER NOT NULL,
	member_id INTEGER NOT NULL,
	recipient_id INTEGER NOT NULL,
	action TEXT NOT NULL,
	count INTEGER NOT NULL DEFAULT 1 CHECK(count BETWEEN 0 AND 65535),
	PRIMARY KEY (guild_id, member_id, recipient_id, action)
);

CREATE INDEX IF NOT EXISTS idx_action_counter_recipient ON action_counter(guild_id, recipient_id);

-- Ships. id_one is the proposer, id_two the proposee.
CREATE TABLE IF NOT EXISTS ship (
	guild_id INTEGER NOT NULL,
	id_one INTEGER NOT NULL,
	id_two INTEGER NOT NULL,
	name TEXT NOT NULL DEFAULT 'Bluenose',
	created_at INTEGER NOT NULL,
	CHECK(id_one <> id_two)
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_ship_guild_one ON ship(guild_id, id_one);
CREATE UNIQUE INDEX IF NOT EXISTS idx_ship_guild_two ON ship(guild_id, id_two);

-- Per-guild member profile
CREATE TABLE IF NOT EXISTS member (
	guild_id INTEGER NOT NULL,
	member_id INTEGER NOT NULL,
	bio TEXT CHECK(bio IS NULL OR length(bio) <= 250),
	PRIMARY KEY (guild_id, member_id)
);
`

// InitSchema creates the schema on a fresh database or migrates an existing one.
func InitSchema(db *sql.DB, logger *zap.Logger) error {
	var tableCount int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}
	if tableCount > 0 {
		return RunMigrations(db, logger)
	}

	var legacyCount int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name IN ('action_counter', 'ship')").Scan(&legacyCount)
	if err != nil {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}
	if legacyCount > 0 {
		// Tables created before versioning existed; upgrade them in place.
		return RunMigrations(db, logger)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(SchemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if err := createVersionTable(tx); err != nil {
		return err
	}
	for _, m := range migrations {
		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
	}
	return tx.Commit()
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
func GetSchemaSQL() string {
	return SchemaSQL
}
