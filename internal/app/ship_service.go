package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	coreship "github.com/Chiitoi/Aurora/internal/core/ship"
	"github.com/Chiitoi/Aurora/internal/logging"
	"github.com/Chiitoi/Aurora/internal/models"
	"github.com/Chiitoi/Aurora/internal/ports/primary"
	"github.com/Chiitoi/Aurora/internal/ports/secondary"
)

// ShipServiceImpl implements the ShipService interface.
type ShipServiceImpl struct {
	shipRepo  secondary.ShipRepository
	proposals secondary.ProposalStore
	ledger    primary.LedgerService
	ttl       time.Duration
	logger    *zap.Logger

	now   func() time.Time
	newID func() string
}

// NewShipService creates a new ShipService with injected dependencies.
// Proposals not answered within ttl expire.
func NewShipService(
	shipRepo secondary.ShipRepository,
	proposals secondary.ProposalStore,
	ledger primary.LedgerService,
	ttl time.Duration,
	logger *zap.Logger,
) *ShipServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShipServiceImpl{
		shipRepo:  shipRepo,
		proposals: proposals,
		ledger:    ledger,
		ttl:       ttl,
		logger:    logger,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Propose records a pending proposal and shows it to the proposee.
func (s *ShipServiceImpl) Propose(ctx context.Context, req primary.ProposeRequest, prompt primary.ProposalPrompt) (*primary.ProposeResponse, error) {
	// 1. Check guard
	if err := s.checkFree(ctx, req.GuildID, req.ProposerID, req.ProposeeID); err != nil {
		return nil, err
	}

	// 2. Record the pending proposal
	state, ok := coreship.Transition(coreship.StateNone, coreship.EventPropose)
	if !ok {
		return nil, fmt.Errorf("invalid proposal event %q", coreship.EventPropose)
	}
	record := &secondary.ProposalRecord{
		ID:           s.newID(),
		GuildID:      req.GuildID,
		ProposerID:   req.ProposerID,
		ProposerName: req.ProposerName,
		ProposeeID:   req.ProposeeID,
		CreatedAt:    s.now(),
	}
	if err := s.proposals.Put(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store proposal: %w", err)
	}

	// 3. Show it; a proposal nobody can see is discarded
	proposal := recordToProposal(record)
	if err := prompt.SendProposal(ctx, proposal); err != nil {
		_, _ = s.proposals.Take(ctx, record.ID)
		return nil, fmt.Errorf("failed to send proposal: %w", err)
	}

	logging.WithContext(ctx, s.logger).Debug("proposal sent",
		zap.String("proposal_id", record.ID),
		zap.String("state", string(state)),
	)
	return &primary.ProposeResponse{Proposal: proposal}, nil
}

// Respond resolves a pending proposal.
func (s *ShipServiceImpl) Respond(ctx context.Context, req primary.RespondRequest, prompt primary.ProposalPrompt) (*primary.RespondResponse, error) {
	log := logging.WithContext(ctx, s.logger).With(zap.String("proposal_id", req.ProposalID))
	if _, ok := coreship.ParseDecision(string(req.Decision)); !ok {
		return nil, fmt.Errorf("invalid decision %q", req.Decision)
	}

	// 1. Look up the proposal without claiming it
	record, err := s.proposals.Get(ctx, req.ProposalID)
	if errors.Is(err, secondary.ErrNotFound) {
		return nil, primary.ErrProposalExpired
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get proposal: %w", err)
	}

	// 2. Only the proposee may answer; anyone else leaves it open
	guard := coreship.CanRespond(coreship.RespondContext{
		ProposeeID:  uint64(record.ProposeeID),
		ResponderID: uint64(req.ResponderID),
	})
	if !guard.Allowed {
		return nil, primary.ErrUnauthorized
	}

	// 3. Apply the transition
	event := coreship.EventFor(req.Decision)
	if coreship.Expired(record.CreatedAt, s.now(), s.ttl) {
		event = coreship.EventExpire
	}
	state, ok := coreship.Transition(coreship.StateProposed, event)
	if !ok {
		return nil, fmt.Errorf("invalid proposal event %q", event)
	}

	// 4. Accepting needs both members free; a storage fault leaves the proposal open
	var conflict error
	if state == coreship.StateAccepted {
		conflict = s.checkFree(ctx, record.GuildID, record.ProposerID, record.ProposeeID)
		if conflict != nil && !primary.IsBusiness(conflict) {
			return nil, conflict
		}
	}

	// 5. Claim it; a concurrent response may have won
	record, err = s.proposals.Take(ctx, req.ProposalID)
	if errors.Is(err, secondary.ErrNotFound) {
		return nil, primary.ErrProposalExpired
	}
	if err != nil {
		return nil, fmt.Errorf("failed to claim proposal: %w", err)
	}
	proposal := recordToProposal(record)
	log.Debug("proposal resolved", zap.String("state", string(state)))

	switch state {
	case coreship.StateExpired:
		return nil, primary.ErrProposalExpired

	case coreship.StateRejected:
		if err := prompt.ConfirmDecision(ctx, proposal, coreship.DecisionReject); err != nil {
			return nil, fmt.Errorf("failed to confirm rejection: %w", err)
		}
		return &primary.RespondResponse{Outcome: primary.OutcomeDeclined, Proposal: proposal}, nil
	}

	if conflict != nil {
		s.reportConflict(ctx, log, prompt, proposal)
		return nil, fmt.Errorf("%w: %w", primary.ErrAlreadyPaired, conflict)
	}

	// 6. The confirmation must be delivered before the ship exists
	if err := prompt.ConfirmDecision(ctx, proposal, coreship.DecisionAccept); err != nil {
		return nil, fmt.Errorf("failed to confirm acceptance: %w", err)
	}

	// 7. Create the ship; the store's per-slot constraints settle races
	shipRecord := &secondary.ShipRecord{
		GuildID:   record.GuildID,
		MemberOne: record.ProposerID,
		MemberTwo: record.ProposeeID,
		Name:      coreship.DefaultName,
		CreatedAt: s.now().UnixMilli(),
	}
	if err := s.shipRepo.InsertIfAbsent(ctx, shipRecord); err != nil {
		if errors.Is(err, secondary.ErrConflict) {
			s.reportConflict(ctx, log, prompt, proposal)
			return nil, primary.ErrAlreadyPaired
		}
		return nil, fmt.Errorf("failed to create ship: %w", err)
	}

	log.Info("ship created",
		zap.Stringer("member_one", shipRecord.MemberOne),
		zap.Stringer("member_two", shipRecord.MemberTwo),
	)
	return &primary.RespondResponse{
		Outcome:  primary.OutcomeCreated,
		Proposal: proposal,
		Ship:     recordToShip(shipRecord),
	}, nil
}

// Rename changes the name of the member's ship.
func (s *ShipServiceImpl) Rename(ctx context.Context, guildID models.GuildID, memberID models.UserID, name string) error {
	err := s.shipRepo.Rename(ctx, guildID, memberID, name)
	if guard := membership(memberID, err); !guard.Allowed {
		return primary.ErrNotPaired
	}
	if err != nil {
		return fmt.Errorf("failed to rename ship: %w", err)
	}
	return nil
}

// Show returns the member's ship with its age and pair counts.
func (s *ShipServiceImpl) Show(ctx context.Context, guildID models.GuildID, memberID models.UserID) (*primary.ShipView, error) {
	record, err := s.getShip(ctx, guildID, memberID)
	if err != nil {
		return nil, err
	}

	counts, err := s.ledger.PairCounts(ctx, guildID, record.MemberOne, record.MemberTwo)
	if err != nil {
		return nil, err
	}

	return &primary.ShipView{
		Ship:            *recordToShip(record),
		AgeMilliseconds: coreship.AgeMilliseconds(record.CreatedAt, s.now().UnixMilli()),
		Counts:          *counts,
	}, nil
}

// Dissolve deletes the member's ship.
func (s *ShipServiceImpl) Dissolve(ctx context.Context, guildID models.GuildID, memberID models.UserID) error {
	err := s.shipRepo.DeleteByMember(ctx, guildID, memberID)
	if guard := membership(memberID, err); !guard.Allowed {
		return primary.ErrNotPaired
	}
	if err != nil {
		return fmt.Errorf("failed to sink ship: %w", err)
	}
	return nil
}

// CountShips returns the number of ships in a guild.
func (s *ShipServiceImpl) CountShips(ctx context.Context, guildID models.GuildID) (int, error) {
	n, err := s.shipRepo.CountByGuild(ctx, guildID)
	if err != nil {
		return 0, fmt.Errorf("failed to count ships: %w", err)
	}
	return n, nil
}

// ExpireProposals drops proposals that outlived the proposal lifetime.
func (s *ShipServiceImpl) ExpireProposals(ctx context.Context) int {
	return s.proposals.RemoveOlderThan(ctx, s.now().Add(-s.ttl))
}

// Helper methods

func (s *ShipServiceImpl) getShip(ctx context.Context, guildID models.GuildID, memberID models.UserID) (*secondary.ShipRecord, error) {
	record, err := s.shipRepo.GetByMember(ctx, guildID, memberID)
	if guard := membership(memberID, err); !guard.Allowed {
		return nil, primary.ErrNotPaired
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ship: %w", err)
	}
	return record, nil
}

func (s *ShipServiceImpl) isPaired(ctx context.Context, guildID models.GuildID, memberID models.UserID) (bool, error) {
	_, err := s.shipRepo.GetByMember(ctx, guildID, memberID)
	if errors.Is(err, secondary.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get ship: %w", err)
	}
	return true, nil
}

// membership runs the modify guard against a repository lookup result.
func membership(memberID models.UserID, lookupErr error) coreship.GuardResult {
	return coreship.CanModify(coreship.MembershipContext{
		MemberID: uint64(memberID),
		HasShip:  !errors.Is(lookupErr, secondary.ErrNotFound),
	})
}

// checkFree runs the proposal guard against the current pairing state.
func (s *ShipServiceImpl) checkFree(ctx context.Context, guildID models.GuildID, proposerID, proposeeID models.UserID) error {
	guardCtx := coreship.ProposeContext{
		ProposerID: uint64(proposerID),
		ProposeeID: uint64(proposeeID),
	}
	if proposerID != proposeeID {
		var err error
		if guardCtx.ProposerPaired, err = s.isPaired(ctx, guildID, proposerID); err != nil {
			return err
		}
		if guardCtx.ProposeePaired, err = s.isPaired(ctx, guildID, proposeeID); err != nil {
			return err
		}
	}

	result := coreship.CanPropose(guardCtx)
	if result.Allowed {
		return nil
	}
	switch result.Reason {
	case coreship.ReasonSelf:
		return primary.ErrSelfShip
	case coreship.ReasonProposerPaired:
		return primary.ErrProposerPaired
	case coreship.ReasonTargetPaired:
		return primary.ErrTargetPaired
	}
	return result.Error()
}

func (s *ShipServiceImpl) reportConflict(ctx context.Context, log *zap.Logger, prompt primary.ProposalPrompt, p primary.Proposal) {
	if err := prompt.ReportConflict(ctx, p); err != nil {
		log.Warn("failed to report ship conflict", zap.Error(err))
	}
}

func recordToProposal(r *secondary.ProposalRecord) primary.Proposal {
	return primary.Proposal{
		ID:           r.ID,
		GuildID:      r.GuildID,
		ProposerID:   r.ProposerID,
		ProposerName: r.ProposerName,
		ProposeeID:   r.ProposeeID,
		CreatedAt:    r.CreatedAt,
	}
}

func recordToShip(r *secondary.ShipRecord) *primary.Ship {
	return &primary.Ship{
		GuildID:   r.GuildID,
		MemberOne: r.MemberOne,
		MemberTwo: r.MemberTwo,
		Name:      r.Name,
		CreatedAt: time.UnixMilli(r.CreatedAt),
	}
}

var _ primary.ShipService = (*ShipServiceImpl)(nil)
