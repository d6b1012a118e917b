package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Chiitoi/Aurora/internal/core/action"
	"github.com/Chiitoi/Aurora/internal/logging"
	"github.com/Chiitoi/Aurora/internal/models"
	"github.com/Chiitoi/Aurora/internal/ports/primary"
	"github.com/Chiitoi/Aurora/internal/ports/secondary"
)

// fallbackCount is reported when an increment fails. The stored row may
// still hold the correct value.
const fallbackCount = 1

// LedgerServiceImpl implements the LedgerService interface.
type LedgerServiceImpl struct {
	actionRepo secondary.ActionRepository
	logger     *zap.Logger
}

// NewLedgerService creates a new LedgerService with injected dependencies.
func NewLedgerService(actionRepo secondary.ActionRepository, logger *zap.Logger) *LedgerServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerServiceImpl{
		actionRepo: actionRepo,
		logger:     logger,
	}
}

// RecordAndCount records one interaction and returns the post-increment count.
func (s *LedgerServiceImpl) RecordAndCount(ctx context.Context, req primary.RecordActionRequest) uint16 {
	count, err := s.actionRepo.Increment(ctx, secondary.ActionKey{
		GuildID:     req.GuildID,
		MemberID:    req.ActorID,
		RecipientID: req.TargetID,
		Action:      string(req.Kind),
	})
	if err != nil {
		logging.WithContext(ctx, s.logger).Warn("failed to record action, reporting fallback count",
			zap.String("action", string(req.Kind)),
			zap.Stringer("target_id", req.TargetID),
			zap.Error(err),
		)
		return fallbackCount
	}
	return count
}

// PairCounts returns the unordered per-kind totals between a and b.
func (s *LedgerServiceImpl) PairCounts(ctx context.Context, guildID models.GuildID, a, b models.UserID) (*action.PairCounts, error) {
	names := make([]string, len(action.PairKinds))
	for i, k := range action.PairKinds {
		names[i] = string(k)
	}

	totals, err := s.actionRepo.PairTotals(ctx, guildID, a, b, names)
	if err != nil {
		return nil, fmt.Errorf("failed to read pair counts: %w", err)
	}

	counts := &action.PairCounts{}
	for _, k := range action.PairKinds {
		counts.Set(k, action.Saturate(totals[string(k)]))
	}
	return counts, nil
}

// DirectionalSums returns the count of kind from a to b and from b to a.
func (s *LedgerServiceImpl) DirectionalSums(ctx context.Context, guildID models.GuildID, a, b models.UserID, kind action.Kind) (uint16, uint16, error) {
	if !kind.Valid() {
		return 0, 0, fmt.Errorf("unknown action kind %q", kind)
	}
	aToB, bToA, err := s.actionRepo.DirectionalSums(ctx, guildID, a, b, string(kind))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read %s counts: %w", kind, err)
	}
	return action.Saturate(aToB), action.Saturate(bToA), nil
}

var _ primary.LedgerService = (*LedgerServiceImpl)(nil)
