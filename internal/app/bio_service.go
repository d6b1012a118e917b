package app

import (
	"context"
	"errors"
	"fmt"

	corebio "github.com/Chiitoi/Aurora/internal/core/bio"
	"github.com/Chiitoi/Aurora/internal/models"
	"github.com/Chiitoi/Aurora/internal/ports/primary"
	"github.com/Chiitoi/Aurora/internal/ports/secondary"
)

// BioServiceImpl implements the BioService interface.
type BioServiceImpl struct {
	memberRepo secondary.MemberRepository
}

// NewBioService creates a new BioService with injected dependencies.
func NewBioService(memberRepo secondary.MemberRepository) *BioServiceImpl {
	return &BioServiceImpl{memberRepo: memberRepo}
}

// SetBio stores text as the member's bio.
func (s *BioServiceImpl) SetBio(ctx context.Context, guildID models.GuildID, memberID models.UserID, text string) error {
	if result := corebio.CanSetBio(text); !result.Allowed {
		return fmt.Errorf("%w: %s", primary.ErrBioTooLong, result.Reason)
	}
	if err := s.memberRepo.SetBio(ctx, guildID, memberID, &text); err != nil {
		return fmt.Errorf("failed to set bio: %w", err)
	}
	return nil
}

// ClearBio removes the member's bio.
func (s *BioServiceImpl) ClearBio(ctx context.Context, guildID models.GuildID, memberID models.UserID) error {
	if err := s.memberRepo.SetBio(ctx, guildID, memberID, nil); err != nil {
		return fmt.Errorf("failed to clear bio: %w", err)
	}
	return nil
}

// GetBio returns the member's bio.
func (s *BioServiceImpl) GetBio(ctx context.Context, guildID models.GuildID, memberID models.UserID) (string, error) {
	text, err := s.memberRepo.GetBio(ctx, guildID, memberID)
	if errors.Is(err, secondary.ErrNotFound) {
		return "", primary.ErrNoBio
	}
	if err != nil {
		return "", fmt.Errorf("failed to get bio: %w", err)
	}
	return text, nil
}

var _ primary.BioService = (*BioServiceImpl)(nil)
