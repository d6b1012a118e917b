package db

import (
	"database/sql"
	"fmt"
	"time"
)

// Fixture IDs used by SeedFixtures. They look like real snowflakes so that
// the CLI and HTTP API can be exercised against a seeded database.
const (
	FixtureGuild  uint64 = 100000000000000001
	FixtureAlice  uint64 = 200000000000000001
	FixtureBob    uint64 = 200000000000000002
	FixtureCarol  uint64 = 200000000000000003
	FixtureDaniel uint64 = 200000000000000004
)

// SeedFixtures populates the database with development fixtures: one ship,
// a spread of action counters, and a bio.
func SeedFixtures(database *sql.DB) error {
	created := time.Now().Add(-26 * time.Hour).UnixMilli()

	if _, err := database.Exec(
		"INSERT INTO ship (guild_id, id_one, id_two, name, created_at) VALUES (?, ?, ?, ?, ?)",
		FixtureGuild, FixtureAlice, FixtureBob, "Bluenose", created,
	); err != nil {
		return fmt.Errorf("seed ship: %w", err)
	}

	counters := []struct {
		from, to uint64
		action   string
		count    int
	}{
		{FixtureAlice, FixtureBob, "hug", 3},
		{FixtureBob, FixtureAlice, "hug", 2},
		{FixtureAlice, FixtureBob, "kiss", 1},
		{FixtureBob, FixtureAlice, "cuddle", 4},
		{FixtureAlice, FixtureBob, "kill", 2},
		{FixtureBob, FixtureAlice, "kill", 5},
		{FixtureCarol, FixtureDaniel, "poke", 7},
	}
	for _, c := range counters {
		if _, err := database.Exec(
			"INSERT INTO action_counter (guild_id, member_id, recipient_id, action, count) VALUES (?, ?, ?, ?, ?)",
			FixtureGuild, c.from, c.to, c.action, c.count,
		); err != nil {
			return fmt.Errorf("seed action counters: %w", err)
		}
	}

	if _, err := database.Exec(
		"INSERT INTO member (guild_id, member_id, bio) VALUES (?, ?, ?)",
		FixtureGuild, FixtureCarol, "professional poker",
	); err != nil {
		return fmt.Errorf("seed members: %w", err)
	}

	return nil
}
