// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"errors"
	"time"

	"github.com/Chiitoi/Aurora/internal/models"
)

// Storage outcomes that are conditions rather than faults.
var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write violates a uniqueness constraint.
	ErrConflict = errors.New("conflict")
)

// ActionRepository defines the secondary port for interaction counters.
type ActionRepository interface {
	// Increment atomically adds one to the counter for key, creating it at 1,
	// and returns the new value.
	Increment(ctx context.Context, key ActionKey) (uint16, error)

	// PairTotals returns, per action name, the sum of both directions between a and b.
	// Only the requested actions are returned; actions with no rows are absent.
	PairTotals(ctx context.Context, guildID models.GuildID, a, b models.UserID, actions []string) (map[string]int64, error)

	// DirectionalSums returns the count for action from a to b and from b to a.
	DirectionalSums(ctx context.Context, guildID models.GuildID, a, b models.UserID, action string) (aToB, bToA int64, err error)
}

// ActionKey identifies one directed counter.
type ActionKey struct {
	GuildID     models.GuildID
	MemberID    models.UserID
	RecipientID models.UserID
	Action      string
}

// ShipRepository defines the secondary port for ship persistence.
type ShipRepository interface {
	// GetByMember returns the ship containing memberID in either slot, or ErrNotFound.
	GetByMember(ctx context.Context, guildID models.GuildID, memberID models.UserID) (*ShipRecord, error)

	// InsertIfAbsent creates a ship unless either member is already in one.
	// Returns ErrConflict when a ship would overlap an existing one.
	InsertIfAbsent(ctx context.Context, record *ShipRecord) error

	// Rename sets the name of the ship containing memberID, or returns ErrNotFound.
	Rename(ctx context.Context, guildID models.GuildID, memberID models.UserID, name string) error

	// DeleteByMember removes the ship containing memberID, or returns ErrNotFound.
	DeleteByMember(ctx context.Context, guildID models.GuildID, memberID models.UserID) error

	// CountByGuild returns the number of ships in a guild.
	CountByGuild(ctx context.Context, guildID models.GuildID) (int, error)
}

// ShipRecord represents a ship as stored in persistence.
type ShipRecord struct {
	GuildID   models.GuildID
	MemberOne models.UserID // proposer
	MemberTwo models.UserID // proposee
	Name      string
	CreatedAt int64 // unix milliseconds
}

// MemberRepository defines the secondary port for member profiles.
type MemberRepository interface {
	// SetBio stores bio, or clears it when bio is nil.
	SetBio(ctx context.Context, guildID models.GuildID, memberID models.UserID, bio *string) error

	// GetBio returns the stored bio, or ErrNotFound when none is set.
	GetBio(ctx context.Context, guildID models.GuildID, memberID models.UserID) (string, error)
}

// ProposalStore defines the secondary port for pending proposals. Proposals
// are ephemeral and need not survive a restart.
type ProposalStore interface {
	// Put stores a proposal under its ID.
	Put(ctx context.Context, record *ProposalRecord) error

	// Get returns the proposal without removing it, or ErrNotFound.
	Get(ctx context.Context, id string) (*ProposalRecord, error)

	// Take removes and returns the proposal. Exactly one caller wins; the rest get ErrNotFound.
	Take(ctx context.Context, id string) (*ProposalRecord, error)

	// RemoveOlderThan drops proposals created before cutoff and returns how many were dropped.
	RemoveOlderThan(ctx context.Context, cutoff time.Time) int
}

// ProposalRecord represents a pending proposal.
type ProposalRecord struct {
	ID           string
	GuildID      models.GuildID
	ProposerID   models.UserID
	ProposerName string
	ProposeeID   models.UserID
	CreatedAt    time.Time
}

// GIFProvider defines the secondary port for reaction images.
type GIFProvider interface {
	// Reaction returns an image URL for the reaction name.
	Reaction(ctx context.Context, reaction string) (string, error)
}
