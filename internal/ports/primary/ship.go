package primary

import (
	"context"
	"time"

	"github.com/Chiitoi/Aurora/internal/core/action"
	"github.com/Chiitoi/Aurora/internal/core/ship"
	"github.com/Chiitoi/Aurora/internal/models"
)

// ShipService defines the primary port for the pairing registry.
type ShipService interface {
	// Propose checks both members are free, records a pending proposal and
	// asks prompt to show it to the proposee.
	Propose(ctx context.Context, req ProposeRequest, prompt ProposalPrompt) (*ProposeResponse, error)

	// Respond resolves a pending proposal. On accept the ship is created only
	// after prompt has confirmed the decision.
	Respond(ctx context.Context, req RespondRequest, prompt ProposalPrompt) (*RespondResponse, error)

	// Rename changes the name of the member's ship.
	Rename(ctx context.Context, guildID models.GuildID, memberID models.UserID, name string) error

	// Show returns the member's ship with its age and pair counts.
	Show(ctx context.Context, guildID models.GuildID, memberID models.UserID) (*ShipView, error)

	// Dissolve deletes the member's ship.
	Dissolve(ctx context.Context, guildID models.GuildID, memberID models.UserID) error

	// CountShips returns the number of ships in a guild.
	CountShips(ctx context.Context, guildID models.GuildID) (int, error)

	// ExpireProposals drops proposals older than the proposal lifetime and
	// returns how many were dropped.
	ExpireProposals(ctx context.Context) int
}

// ProposalPrompt is the interactive channel a proposal is shown on. Adapters
// implement it per interaction.
type ProposalPrompt interface {
	// SendProposal shows the proposal to the proposee with accept and reject affordances.
	SendProposal(ctx context.Context, p Proposal) error

	// ConfirmDecision acknowledges the proposee's decision. An accepted ship is
	// only created once this returns nil.
	ConfirmDecision(ctx context.Context, p Proposal, decision ship.Decision) error

	// ReportConflict tells the members the ship could not be created because
	// one of them was paired in the meantime.
	ReportConflict(ctx context.Context, p Proposal) error
}

// Proposal is a pending proposal at the port boundary.
type Proposal struct {
	ID           string
	GuildID      models.GuildID
	ProposerID   models.UserID
	ProposerName string
	ProposeeID   models.UserID
	CreatedAt    time.Time
}

// ProposeRequest contains parameters for proposing a ship.
type ProposeRequest struct {
	GuildID      models.GuildID
	ProposerID   models.UserID
	ProposerName string
	ProposeeID   models.UserID
}

// ProposeResponse contains the handle of the pending proposal.
type ProposeResponse struct {
	Proposal Proposal
}

// RespondRequest contains parameters for answering a proposal.
type RespondRequest struct {
	ProposalID  string
	ResponderID models.UserID
	Decision    ship.Decision
}

// RespondOutcome is the result variant of a successful response.
type RespondOutcome string

const (
	OutcomeCreated  RespondOutcome = "created"
	OutcomeDeclined RespondOutcome = "declined"
)

// RespondResponse contains the result of answering a proposal.
type RespondResponse struct {
	Outcome  RespondOutcome
	Proposal Proposal
	Ship     *Ship // set when Outcome is OutcomeCreated
}

// Ship represents a ship at the port boundary.
type Ship struct {
	GuildID   models.GuildID
	MemberOne models.UserID
	MemberTwo models.UserID
	Name      string
	CreatedAt time.Time
}

// Partner returns the other member of the ship.
func (s *Ship) Partner(memberID models.UserID) models.UserID {
	if s.MemberOne == memberID {
		return s.MemberTwo
	}
	return s.MemberOne
}

// ShipView is a ship composed with its derived display values.
type ShipView struct {
	Ship            Ship
	AgeMilliseconds uint64
	Counts          action.PairCounts
}
