package ship

import "time"

// ProposalState is the lifecycle state of a proposal.
type ProposalState string

const (
	StateNone     ProposalState = "none"
	StateProposed ProposalState = "proposed"
	StateAccepted ProposalState = "accepted"
	StateRejected ProposalState = "rejected"
	StateExpired  ProposalState = "expired"
)

// Decision is the proposee's answer.
type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

// ParseDecision maps a button identifier to a Decision.
func ParseDecision(s string) (Decision, bool) {
	switch Decision(s) {
	case DecisionAccept:
		return DecisionAccept, true
	case DecisionReject:
		return DecisionReject, true
	}
	return "", false
}

// Event drives a proposal transition.
type Event string

const (
	EventPropose Event = "propose"
	EventAccept  Event = "accept"
	EventReject  Event = "reject"
	EventExpire  Event = "expire"
)

// Terminal reports whether no further transitions leave s.
func (s ProposalState) Terminal() bool {
	return s == StateAccepted || s == StateRejected || s == StateExpired
}

// Transition applies ev to from. The second result is false when the
// event is not valid in that state; the state is then unchanged.
func Transition(from ProposalState, ev Event) (ProposalState, bool) {
	switch from {
	case StateNone:
		if ev == EventPropose {
			return StateProposed, true
		}
	case StateProposed:
		switch ev {
		case EventAccept:
			return StateAccepted, true
		case EventReject:
			return StateRejected, true
		case EventExpire:
			return StateExpired, true
		}
	}
	return from, false
}

// EventFor returns the transition event for a decision.
func EventFor(d Decision) Event {
	if d == DecisionAccept {
		return EventAccept
	}
	return EventReject
}

// Expired reports whether a proposal created at createdAt has outlived ttl at now.
func Expired(createdAt, now time.Time, ttl time.Duration) bool {
	return !now.Before(createdAt.Add(ttl))
}
