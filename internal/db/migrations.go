package db

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.Tx) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_action_counter_and_ship",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_member_bio",
		Up:      migrationV2,
	},
	{
		Version: 3,
		Name:    "enforce_ship_slot_uniqueness",
		Up:      migrationV3,
	},
}

// LatestVersion returns the version a fully migrated database reports.
func LatestVersion() int {
	return migrations[len(migrations)-1].Version
}

// CurrentVersion returns the highest applied migration, or 0 for an unversioned database.
func CurrentVersion(db *sql.DB) (int, error) {
	var exists int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&exists); err != nil {
		return 0, fmt.Errorf("failed to inspect schema: %w", err)
	}
	if exists == 0 {
		return 0, nil
	}
	var version int
	if err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get current schema version: %w", err)
	}
	return version, nil
}

// RunMigrations applies every pending migration, each in its own transaction.
func RunMigrations(db *sql.DB, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	if _, err := db.Exec(versionTableSQL); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	currentVersion, err := CurrentVersion(db)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		logger.Info("running migration", zap.Int("version", migration.Version), zap.String("name", migration.Name))

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

const versionTableSQL = `
	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)
`

func createVersionTable(tx *sql.Tx) error {
	if _, err := tx.Exec(versionTableSQL); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}
	return nil
}

// migrationV1 creates the tables the first release shipped with.
func migrationV1(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS action_counter (
			guild_id INTEGER NOT NULL,
			member_id INTEGER NOT NULL,
			recipient_id INTEGER NOT NULL,
			action TEXT NOT NULL,
			count INTEGER NOT NULL DEFAULT 1,
			PRIMARY KEY (guild_id, member_id, recipient_id, action)
		);

		CREATE TABLE IF NOT EXISTS ship (
			guild_id INTEGER NOT NULL,
			id_one INTEGER NOT NULL,
			id_two INTEGER NOT NULL,
			name TEXT NOT NULL DEFAULT 'Bluenose',
			created_at INTEGER NOT NULL
		);
	`)
	return err
}

func migrationV2(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS member (
			guild_id INTEGER NOT NULL,
			member_id INTEGER NOT NULL,
			bio TEXT CHECK(bio IS NULL OR length(bio) <= 250),
			PRIMARY KEY (guild_id, member_id)
		)
	`)
	return err
}

// migrationV3 rebuilds the counter and ship tables with range checks and the
// per-slot unique indexes. Duplicate ships left by the unconstrained schema
// are collapsed to the oldest row per slot.
func migrationV3(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE action_counter_new (
			guild_id INTEGER NOT NULL,
			member_id INTEGER NOT NULL,
			recipient_id INTEGER NOT NULL,
			action TEXT NOT NULL,
			count INTEGER NOT NULL DEFAULT 1 CHECK(count BETWEEN 0 AND 65535),
			PRIMARY KEY (guild_id, member_id, recipient_id, action)
		);
		INSERT INTO action_counter_new (guild_id, member_id, recipient_id, action, count)
			SELECT guild_id, member_id, recipient_id, action, MIN(MAX(count, 0), 65535) FROM action_counter;
		DROP TABLE action_counter;
		ALTER TABLE action_counter_new RENAME TO action_counter;
		CREATE INDEX IF NOT EXISTS idx_action_counter_recipient ON action_counter(guild_id, recipient_id);

		CREATE TABLE ship_new (
			guild_id INTEGER NOT NULL,
			id_one INTEGER NOT NULL,
			id_two INTEGER NOT NULL,
			name TEXT NOT NULL DEFAULT 'Bluenose',
			created_at INTEGER NOT NULL,
			CHECK(id_one <> id_two)
		);
		CREATE UNIQUE INDEX idx_ship_guild_one ON ship_new(guild_id, id_one);
		CREATE UNIQUE INDEX idx_ship_guild_two ON ship_new(guild_id, id_two);
		INSERT OR IGNORE INTO ship_new (guild_id, id_one, id_two, name, created_at)
			SELECT guild_id, id_one, id_two, name, created_at FROM ship
			WHERE id_one <> id_two
			ORDER BY created_at;
		DROP TABLE ship;
		ALTER TABLE ship_new RENAME TO ship;
	`)
	return err
}
