// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() to ensure tests run against
// the authoritative schema, preventing drift between test and production.
package sqlite_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/Chiitoi/Aurora/internal/db"
	"github.com/Chiitoi/Aurora/internal/models"
)

const (
	guild      models.GuildID = 500
	otherGuild models.GuildID = 501

	alice models.UserID = 1001
	bob   models.UserID = 1002
	carol models.UserID = 1003
	dave  models.UserID = 1004
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// Each connection to :memory: is a separate database.
	testDB.SetMaxOpenConns(1)

	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// setupFileDB opens a real database file through db.Open, for tests that
// need several concurrent connections.
func setupFileDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(filepath.Join(t.TempDir(), "aurora.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("failed to open file db: %v", err)
	}
	t.Cleanup(func() {
		conn.Close()
	})
	return conn
}

// seedShip inserts a ship directly.
func seedShip(t *testing.T, conn *sql.DB, g models.GuildID, one, two models.UserID, name string) {
	t.Helper()
	_, err := conn.Exec("INSERT INTO ship (guild_id, id_one, id_two, name, created_at) VALUES (?, ?, ?, ?, ?)", g, one, two, name, 1700000000000)
	if err != nil {
		t.Fatalf("failed to seed ship: %v", err)
	}
}

// seedCount inserts a counter row directly.
func seedCount(t *testing.T, conn *sql.DB, g models.GuildID, from, to models.UserID, action string, count int) {
	t.Helper()
	_, err := conn.Exec("INSERT INTO action_counter (guild_id, member_id, recipient_id, action, count) VALUES (?, ?, ?, ?, ?)", g, from, to, action, count)
	if err != nil {
		t.Fatalf("failed to seed counter: %v", err)
	}
}
