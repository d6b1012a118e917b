package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Chiitoi/Aurora/internal/models"
	"github.com/Chiitoi/Aurora/internal/ports/secondary"
)

// MemberRepository implements secondary.MemberRepository with SQLite.
type MemberRepository struct {
	db *sql.DB
}

// NewMemberRepository creates a new SQLite member repository.
func NewMemberRepository(db *sql.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// SetBio stores bio for the member, creating the member row if needed.
// A nil bio clears it.
func (r *MemberRepository) SetBio(ctx context.Context, guildID models.GuildID, memberID models.UserID, bio *string) error {
	var value sql.NullString
	if bio != nil {
		value = sql.NullString{String: *bio, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO member (guild_id, member_id, bio) VALUES (?, ?, ?)
		ON CONFLICT (guild_id, member_id) DO UPDATE SET bio = excluded.bio`,
		guildID, memberID, value,
	)
	if err != nil {
		return fmt.Errorf("failed to update bio: %w", err)
	}
	return nil
}

// GetBio returns the member's bio.
func (r *MemberRepository) GetBio(ctx context.Context, guildID models.GuildID, memberID models.UserID) (string, error) {
	var bio sql.NullString
	err := r.db.QueryRowContext(ctx,
		"SELECT bio FROM member WHERE guild_id = ? AND member_id = ?",
		guildID, memberID,
	).Scan(&bio)

	if errors.Is(err, sql.ErrNoRows) || (err == nil && !bio.Valid) {
		return "", secondary.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get bio: %w", err)
	}
	return bio.String, nil
}

var _ secondary.MemberRepository = (*MemberRepository)(nil)
