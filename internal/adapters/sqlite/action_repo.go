package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Chiitoi/Aurora/internal/models"
	"github.com/Chiitoi/Aurora/internal/ports/secondary"
)

// ActionRepository implements secondary.ActionRepository with SQLite.
type ActionRepository struct {
	db *sql.DB
}

// NewActionRepository creates a new SQLite action counter repository.
func NewActionRepository(db *sql.DB) *ActionRepository {
	return &ActionRepository{db: db}
}

// Increment adds one to the counter in a single upsert, saturating at 65535.
func (r *ActionRepository) Increment(ctx context.Context, key secondary.ActionKey) (uint16, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO action_counter (guild_id, member_id, recipient_id, action, count)
		VALUES (?, ?, ?, ?, 1)
		ON CONFLICT (guild_id, member_id, recipient_id, action)
		DO UPDATE SET count = MIN(count + 1, 65535)
		RETURNING count`,
		key.GuildID, key.MemberID, key.RecipientID, key.Action,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to increment %s counter: %w", key.Action, err)
	}
	return uint16(count), nil
}

// PairTotals sums both directions between a and b per action.
func (r *ActionRepository) PairTotals(ctx context.Context, guildID models.GuildID, a, b models.UserID, actions []string) (map[string]int64, error) {
	totals := make(map[string]int64, len(actions))
	if len(actions) == 0 {
		return totals, nil
	}

	args := []any{guildID, a, b, b, a}
	for _, name := range actions {
		args = append(args, name)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(actions)), ", ")

	rows, err := r.db.QueryContext(ctx, `
		SELECT action, SUM(count) AS total
		FROM action_counter
		WHERE guild_id = ?
			AND ((member_id = ? AND recipient_id = ?) OR (member_id = ? AND recipient_id = ?))
			AND action IN (`+placeholders+`)
		GROUP BY action`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query pair totals: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			name  string
			total int64
		)
		if err := rows.Scan(&name, &total); err != nil {
			return nil, fmt.Errorf("failed to scan pair total: %w", err)
		}
		totals[name] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read pair totals: %w", err)
	}
	return totals, nil
}

// DirectionalSums returns the counts for action from a to b and from b to a.
func (r *ActionRepository) DirectionalSums(ctx context.Context, guildID models.GuildID, a, b models.UserID, action string) (int64, int64, error) {
	var aToB, bToA int64
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN member_id = ? AND recipient_id = ? THEN count END), 0),
			COALESCE(SUM(CASE WHEN member_id = ? AND recipient_id = ? THEN count END), 0)
		FROM action_counter
		WHERE guild_id = ? AND action = ?`,
		a, b, b, a, guildID, action,
	).Scan(&aToB, &bToA)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read %s counts: %w", action, err)
	}
	return aToB, bToA, nil
}

var _ secondary.ActionRepository = (*ActionRepository)(nil)
