package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Chiitoi/Aurora/internal/models"
	"github.com/Chiitoi/Aurora/internal/ports/secondary"
)

// ShipRepository implements secondary.ShipRepository with SQLite.
type ShipRepository struct {
	db *sql.DB
}

// NewShipRepository creates a new SQLite ship repository.
func NewShipRepository(db *sql.DB) *ShipRepository {
	return &ShipRepository{db: db}
}

// GetByMember returns the ship containing memberID in either slot.
func (r *ShipRepository) GetByMember(ctx context.Context, guildID models.GuildID, memberID models.UserID) (*secondary.ShipRecord, error) {
	record := &secondary.ShipRecord{}
	err := r.db.QueryRowContext(ctx, `
		SELECT guild_id, id_one, id_two, name, created_at
		FROM ship
		WHERE guild_id = ? AND (id_one = ? OR id_two = ?)
		LIMIT 1`,
		guildID, memberID, memberID,
	).Scan(&record.GuildID, &record.MemberOne, &record.MemberTwo, &record.Name, &record.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, secondary.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ship: %w", err)
	}
	return record, nil
}

// InsertIfAbsent inserts the ship unless either member already appears in
// any slot. The per-slot unique indexes catch inserts that race this check.
func (r *ShipRepository) InsertIfAbsent(ctx context.Context, record *secondary.ShipRecord) error {
	if record.MemberOne == record.MemberTwo {
		return fmt.Errorf("ship members must differ")
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO ship (guild_id, id_one, id_two, name, created_at)
		SELECT ?, ?, ?, ?, ?
		WHERE NOT EXISTS (
			SELECT 1 FROM ship
			WHERE guild_id = ? AND (id_one IN (?, ?) OR id_two IN (?, ?))
		)`,
		record.GuildID, record.MemberOne, record.MemberTwo, record.Name, record.CreatedAt,
		record.GuildID, record.MemberOne, record.MemberTwo, record.MemberOne, record.MemberTwo,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return secondary.ErrConflict
		}
		return fmt.Errorf("failed to create ship: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to create ship: %w", err)
	}
	if n == 0 {
		return secondary.ErrConflict
	}
	return nil
}

// Rename sets the name of the ship containing memberID.
func (r *ShipRepository) Rename(ctx context.Context, guildID models.GuildID, memberID models.UserID, name string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE ship SET name = ? WHERE guild_id = ? AND (id_one = ? OR id_two = ?)",
		name, guildID, memberID, memberID,
	)
	if err != nil {
		return fmt.Errorf("failed to rename ship: %w", err)
	}
	return requireAffected(res, "rename ship")
}

// DeleteByMember removes the ship containing memberID.
func (r *ShipRepository) DeleteByMember(ctx context.Context, guildID models.GuildID, memberID models.UserID) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM ship WHERE guild_id = ? AND (id_one = ? OR id_two = ?)",
		guildID, memberID, memberID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete ship: %w", err)
	}
	return requireAffected(res, "delete ship")
}

// CountByGuild returns the number of ships in a guild.
func (r *ShipRepository) CountByGuild(ctx context.Context, guildID models.GuildID) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM ship WHERE guild_id = ?", guildID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count ships: %w", err)
	}
	return n, nil
}

func requireAffected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	if n == 0 {
		return secondary.ErrNotFound
	}
	return nil
}

var _ secondary.ShipRepository = (*ShipRepository)(nil)
