package app

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Chiitoi/Aurora/internal/core/action"
	"github.com/Chiitoi/Aurora/internal/ports/primary"
)

func TestRecordAndCount_Sequential(t *testing.T) {
	repo := newMockActionRepository()
	service := NewLedgerService(repo, nil)
	ctx := context.Background()

	req := primary.RecordActionRequest{GuildID: testGuild, ActorID: userOne, TargetID: userTwo, Kind: action.KindKiss}
	for i := 1; i <= 3; i++ {
		if got := service.RecordAndCount(ctx, req); got != uint16(i) {
			t.Fatalf("call %d: RecordAndCount() = %d, want %d", i, got, i)
		}
	}
}

func TestRecordAndCount_DirectionalIsolation(t *testing.T) {
	repo := newMockActionRepository()
	service := NewLedgerService(repo, nil)
	ctx := context.Background()

	forward := primary.RecordActionRequest{GuildID: testGuild, ActorID: userOne, TargetID: userTwo, Kind: action.KindHug}
	reverse := primary.RecordActionRequest{GuildID: testGuild, ActorID: userTwo, TargetID: userOne, Kind: action.KindHug}

	service.RecordAndCount(ctx, forward)
	service.RecordAndCount(ctx, forward)

	if got := service.RecordAndCount(ctx, reverse); got != 1 {
		t.Errorf("reverse direction count = %d, want 1", got)
	}
}

func TestRecordAndCount_SelfAction(t *testing.T) {
	service := NewLedgerService(newMockActionRepository(), nil)

	got := service.RecordAndCount(context.Background(), primary.RecordActionRequest{
		GuildID: testGuild, ActorID: userOne, TargetID: userOne, Kind: action.KindPat,
	})
	if got != 1 {
		t.Errorf("RecordAndCount() for self = %d, want 1", got)
	}
}

func TestRecordAndCount_FallbackOnError(t *testing.T) {
	repo := newMockActionRepository()
	repo.incrementErr = errStorage

	core, logs := observer.New(zapcore.WarnLevel)
	service := NewLedgerService(repo, zap.New(core))

	got := service.RecordAndCount(context.Background(), primary.RecordActionRequest{
		GuildID: testGuild, ActorID: userOne, TargetID: userTwo, Kind: action.KindPoke,
	})

	if got != 1 {
		t.Errorf("RecordAndCount() on error = %d, want fallback 1", got)
	}
	if logs.FilterMessage("failed to record action, reporting fallback count").Len() != 1 {
		t.Error("expected a warning for the degraded increment")
	}
}

func TestPairCounts_SumsBothDirections(t *testing.T) {
	repo := newMockActionRepository()
	service := NewLedgerService(repo, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		service.RecordAndCount(ctx, primary.RecordActionRequest{GuildID: testGuild, ActorID: userOne, TargetID: userTwo, Kind: action.KindKiss})
	}
	service.RecordAndCount(ctx, primary.RecordActionRequest{GuildID: testGuild, ActorID: userTwo, TargetID: userOne, Kind: action.KindKiss})
	service.RecordAndCount(ctx, primary.RecordActionRequest{GuildID: testGuild, ActorID: userTwo, TargetID: userOne, Kind: action.KindHug})
	// Not a pair kind, and a different pair
	service.RecordAndCount(ctx, primary.RecordActionRequest{GuildID: testGuild, ActorID: userOne, TargetID: userTwo, Kind: action.KindPoke})
	service.RecordAndCount(ctx, primary.RecordActionRequest{GuildID: testGuild, ActorID: userOne, TargetID: userThree, Kind: action.KindCuddle})

	counts, err := service.PairCounts(ctx, testGuild, userOne, userTwo)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := action.PairCounts{Kiss: 4, Hug: 1}
	if *counts != want {
		t.Errorf("PairCounts() = %+v, want %+v", *counts, want)
	}
}

func TestPairCounts_Empty(t *testing.T) {
	service := NewLedgerService(newMockActionRepository(), nil)

	counts, err := service.PairCounts(context.Background(), testGuild, userOne, userTwo)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !counts.Empty() {
		t.Errorf("expected empty counts, got %+v", *counts)
	}
}

func TestPairCounts_Error(t *testing.T) {
	repo := newMockActionRepository()
	repo.readErr = errStorage
	service := NewLedgerService(repo, nil)

	_, err := service.PairCounts(context.Background(), testGuild, userOne, userTwo)
	if !errors.Is(err, errStorage) {
		t.Errorf("expected wrapped storage error, got %v", err)
	}
}

func TestDirectionalSums(t *testing.T) {
	repo := newMockActionRepository()
	service := NewLedgerService(repo, nil)
	ctx := context.Background()

	service.RecordAndCount(ctx, primary.RecordActionRequest{GuildID: testGuild, ActorID: userOne, TargetID: userTwo, Kind: action.KindKill})
	service.RecordAndCount(ctx, primary.RecordActionRequest{GuildID: testGuild, ActorID: userTwo, TargetID: userOne, Kind: action.KindKill})
	service.RecordAndCount(ctx, primary.RecordActionRequest{GuildID: testGuild, ActorID: userTwo, TargetID: userOne, Kind: action.KindKill})

	aToB, bToA, err := service.DirectionalSums(ctx, testGuild, userOne, userTwo, action.KindKill)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if aToB != 1 || bToA != 2 {
		t.Errorf("DirectionalSums() = (%d, %d), want (1, 2)", aToB, bToA)
	}

	aToB, bToA, err = service.DirectionalSums(ctx, testGuild, userOne, userThree, action.KindKill)
	if err != nil || aToB != 0 || bToA != 0 {
		t.Errorf("DirectionalSums() with no rows = (%d, %d, %v), want (0, 0, nil)", aToB, bToA, err)
	}
}

func TestDirectionalSums_UnknownKind(t *testing.T) {
	repo := newMockActionRepository()
	repo.readErr = errStorage
	service := NewLedgerService(repo, nil)

	_, _, err := service.DirectionalSums(context.Background(), testGuild, userOne, userTwo, action.Kind("wave"))
	if err == nil || errors.Is(err, errStorage) {
		t.Errorf("expected an unknown kind error before any read, got %v", err)
	}
}
