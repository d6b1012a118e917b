// Package ship contains the pure business logic for ships (pairings between two members).
// This is part of the Functional Core - no I/O, only pure functions.
package ship

import "fmt"

// DefaultName is the name a ship starts with.
const DefaultName = "Bluenose"

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string // Human-readable reason (populated when not allowed)
}

// Error returns the guard result as an error if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// ProposeContext provides context for proposal guards.
// Populated by the caller with the current pairing state of both members.
type ProposeContext struct {
	ProposerID     uint64
	ProposeeID     uint64
	ProposerPaired bool
	ProposeePaired bool
}

// Reasons returned by the guards. Callers map them to their own error values.
const (
	ReasonSelf           = "cannot ship yourself"
	ReasonProposerPaired = "proposer already paired"
	ReasonTargetPaired   = "target already paired"
	ReasonNotProposee    = "only the proposee can respond"
	ReasonNotPaired      = "not paired"
)

// CanPropose evaluates whether a proposal may be made.
// Rules, checked in order:
//   - members cannot propose to themselves
//   - the proposer must not be paired
//   - the proposee must not be paired
func CanPropose(ctx ProposeContext) GuardResult {
	if ctx.ProposerID == ctx.ProposeeID {
		return GuardResult{Allowed: false, Reason: ReasonSelf}
	}
	if ctx.ProposerPaired {
		return GuardResult{Allowed: false, Reason: ReasonProposerPaired}
	}
	if ctx.ProposeePaired {
		return GuardResult{Allowed: false, Reason: ReasonTargetPaired}
	}
	return GuardResult{Allowed: true}
}

// RespondContext provides context for responding to a proposal.
type RespondContext struct {
	ProposeeID  uint64
	ResponderID uint64
}

// CanRespond evaluates whether the responder may answer the proposal.
// Rule: only the member the proposal was addressed to.
func CanRespond(ctx RespondContext) GuardResult {
	if ctx.ResponderID != ctx.ProposeeID {
		return GuardResult{Allowed: false, Reason: ReasonNotProposee}
	}
	return GuardResult{Allowed: true}
}

// MembershipContext provides context for operations on an existing ship.
type MembershipContext struct {
	MemberID uint64
	HasShip  bool
}

// CanModify evaluates whether a member may rename, show, or sink a ship.
// Rule: the member must be in a ship.
func CanModify(ctx MembershipContext) GuardResult {
	if !ctx.HasShip {
		return GuardResult{Allowed: false, Reason: ReasonNotPaired}
	}
	return GuardResult{Allowed: true}
}
