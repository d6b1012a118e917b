// Package models holds the platform identity types shared by every layer.
package models

import (
	"database/sql/driver"
	"fmt"
	"strconv"
)

// GuildID identifies a guild (one chat community). All counters and ships are scoped to it.
type GuildID uint64

// UserID identifies a platform user.
type UserID uint64

// ParseGuildID parses a snowflake string into a GuildID.
func ParseGuildID(s string) (GuildID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid guild id %q: %w", s, err)
	}
	return GuildID(v), nil
}

// ParseUserID parses a snowflake string into a UserID.
func ParseUserID(s string) (UserID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user id %q: %w", s, err)
	}
	return UserID(v), nil
}

func (g GuildID) String() string { return strconv.FormatUint(uint64(g), 10) }

func (u UserID) String() string { return strconv.FormatUint(uint64(u), 10) }

// Mention renders the user as a platform mention.
func (u UserID) Mention() string { return "<@" + u.String() + ">" }

// Snowflakes are stored bit-for-bit as signed 64-bit integers, since SQLite
// has no unsigned type. IDs at or above 1<<63 come back negative on disk.

// Value implements driver.Valuer.
func (g GuildID) Value() (driver.Value, error) { return int64(g), nil }

// Scan implements sql.Scanner.
func (g *GuildID) Scan(src any) error {
	v, err := scanSnowflake(src)
	if err != nil {
		return fmt.Errorf("scan guild id: %w", err)
	}
	*g = GuildID(v)
	return nil
}

// Value implements driver.Valuer.
func (u UserID) Value() (driver.Value, error) { return int64(u), nil }

// Scan implements sql.Scanner.
func (u *UserID) Scan(src any) error {
	v, err := scanSnowflake(src)
	if err != nil {
		return fmt.Errorf("scan user id: %w", err)
	}
	*u = UserID(v)
	return nil
}

func scanSnowflake(src any) (uint64, error) {
	switch v := src.(type) {
	case int64:
		return uint64(v), nil
	case []byte:
		return parseStored(string(v))
	case string:
		return parseStored(v)
	}
	return 0, fmt.Errorf("unsupported type %T", src)
}

func parseStored(s string) (uint64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint64(n), nil
}
