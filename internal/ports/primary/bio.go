package primary

import (
	"context"

	"github.com/Chiitoi/Aurora/internal/models"
)

// BioService defines the primary port for member bios.
type BioService interface {
	// SetBio stores text as the member's bio. Returns ErrBioTooLong past the limit.
	SetBio(ctx context.Context, guildID models.GuildID, memberID models.UserID, text string) error

	// ClearBio removes the member's bio.
	ClearBio(ctx context.Context, guildID models.GuildID, memberID models.UserID) error

	// GetBio returns the member's bio, or ErrNoBio.
	GetBio(ctx context.Context, guildID models.GuildID, memberID models.UserID) (string, error)
}
