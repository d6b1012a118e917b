// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces through which the outside world drives the application.
package primary

import (
	"context"

	"github.com/Chiitoi/Aurora/internal/core/action"
	"github.com/Chiitoi/Aurora/internal/core/kill"
	"github.com/Chiitoi/Aurora/internal/models"
)

// LedgerService defines the primary port for the interaction counter ledger.
type LedgerService interface {
	// RecordAndCount records one interaction and returns the post-increment count.
	// Storage failures are not surfaced; the reported count falls back to 1.
	RecordAndCount(ctx context.Context, req RecordActionRequest) uint16

	// PairCounts returns the per-kind totals between two members, summed over both directions.
	PairCounts(ctx context.Context, guildID models.GuildID, a, b models.UserID) (*action.PairCounts, error)

	// DirectionalSums returns a kind's count from a to b and, separately, from b to a.
	DirectionalSums(ctx context.Context, guildID models.GuildID, a, b models.UserID, kind action.Kind) (aToB, bToA uint16, err error)
}

// RecordActionRequest contains parameters for recording an interaction.
type RecordActionRequest struct {
	GuildID  models.GuildID
	ActorID  models.UserID
	TargetID models.UserID
	Kind     action.Kind
}

// KillService defines the primary port for the kill command.
type KillService interface {
	// Fight resolves an attack. A scoring outcome records a kill for the winner.
	Fight(ctx context.Context, req FightRequest) (*FightResult, error)
}

// FightRequest contains parameters for a fight. Roll selects the outcome.
type FightRequest struct {
	GuildID    models.GuildID
	AttackerID models.UserID
	TargetID   models.UserID
	Roll       int
}

// FightResult contains the outcome and the rivalry score after it was applied.
type FightResult struct {
	// ChangedMind is set when attacker and target are the same member; nothing else is populated.
	ChangedMind   bool
	Outcome       kill.Outcome
	AttackerKills uint16
	TargetKills   uint16
}
