package app

import (
	"context"

	"github.com/Chiitoi/Aurora/internal/core/action"
	"github.com/Chiitoi/Aurora/internal/core/kill"
	"github.com/Chiitoi/Aurora/internal/ports/primary"
)

// KillServiceImpl implements the KillService interface on top of the ledger.
type KillServiceImpl struct {
	ledger primary.LedgerService
}

// NewKillService creates a new KillService.
func NewKillService(ledger primary.LedgerService) *KillServiceImpl {
	return &KillServiceImpl{ledger: ledger}
}

// Fight resolves an attack and returns the rivalry score after it.
func (s *KillServiceImpl) Fight(ctx context.Context, req primary.FightRequest) (*primary.FightResult, error) {
	if req.AttackerID == req.TargetID {
		return &primary.FightResult{ChangedMind: true}, nil
	}

	outcome := kill.Pick(req.Roll)
	if outcome.Scores() {
		winner, loser := kill.Direction(outcome, req.AttackerID, req.TargetID)
		s.ledger.RecordAndCount(ctx, primary.RecordActionRequest{
			GuildID:  req.GuildID,
			ActorID:  winner,
			TargetID: loser,
			Kind:     action.KindKill,
		})
	}

	attackerKills, targetKills, err := s.ledger.DirectionalSums(ctx, req.GuildID, req.AttackerID, req.TargetID, action.KindKill)
	if err != nil {
		return nil, err
	}

	return &primary.FightResult{
		Outcome:       outcome,
		AttackerKills: attackerKills,
		TargetKills:   targetKills,
	}, nil
}

var _ primary.KillService = (*KillServiceImpl)(nil)
