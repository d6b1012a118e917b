package app

import (
	"context"
	"errors"
	"testing"

	"github.com/Chiitoi/Aurora/internal/core/action"
	"github.com/Chiitoi/Aurora/internal/core/kill"
	"github.com/Chiitoi/Aurora/internal/ports/primary"
	"github.com/Chiitoi/Aurora/internal/ports/secondary"
)

func newTestKillService() (*KillServiceImpl, *mockActionRepository) {
	repo := newMockActionRepository()
	return NewKillService(NewLedgerService(repo, nil)), repo
}

func TestFight_SelfChangesMind(t *testing.T) {
	service, repo := newTestKillService()

	result, err := service.Fight(context.Background(), primary.FightRequest{
		GuildID: testGuild, AttackerID: userOne, TargetID: userOne, Roll: 1,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !result.ChangedMind {
		t.Error("expected ChangedMind for a self target")
	}
	if len(repo.counts) != 0 {
		t.Error("expected no kill recorded")
	}
}

func TestFight_Outcomes(t *testing.T) {
	tests := []struct {
		name             string
		roll             int
		wantResult       kill.Result
		wantAttackerKill uint16
		wantTargetKill   uint16
	}{
		{name: "win records for attacker", roll: 1, wantResult: kill.ResultWin, wantAttackerKill: 1},
		{name: "loss records for target", roll: 2, wantResult: kill.ResultLoss, wantTargetKill: 1},
		{name: "miss records nothing", roll: 0, wantResult: kill.ResultMiss},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _ := newTestKillService()

			result, err := service.Fight(context.Background(), primary.FightRequest{
				GuildID: testGuild, AttackerID: userOne, TargetID: userTwo, Roll: tt.roll,
			})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if result.Outcome.Result != tt.wantResult {
				t.Errorf("Result = %v, want %v", result.Outcome.Result, tt.wantResult)
			}
			if result.AttackerKills != tt.wantAttackerKill || result.TargetKills != tt.wantTargetKill {
				t.Errorf("score = (%d, %d), want (%d, %d)",
					result.AttackerKills, result.TargetKills, tt.wantAttackerKill, tt.wantTargetKill)
			}
		})
	}
}

func TestFight_ScoreAccumulates(t *testing.T) {
	service, repo := newTestKillService()
	ctx := context.Background()

	repo.counts[secondary.ActionKey{GuildID: testGuild, MemberID: userTwo, RecipientID: userOne, Action: string(action.KindKill)}] = 4

	result, err := service.Fight(ctx, primary.FightRequest{GuildID: testGuild, AttackerID: userOne, TargetID: userTwo, Roll: 3})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.AttackerKills != 1 || result.TargetKills != 4 {
		t.Errorf("score = (%d, %d), want (1, 4)", result.AttackerKills, result.TargetKills)
	}
}

func TestFight_ReadError(t *testing.T) {
	service, repo := newTestKillService()
	repo.readErr = errStorage

	_, err := service.Fight(context.Background(), primary.FightRequest{GuildID: testGuild, AttackerID: userOne, TargetID: userTwo})
	if !errors.Is(err, errStorage) {
		t.Errorf("expected storage error, got %v", err)
	}
}
