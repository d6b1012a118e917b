// Package memory contains in-process implementations of secondary ports.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Chiitoi/Aurora/internal/ports/secondary"
)

// ProposalBook implements secondary.ProposalStore in memory. Contents are
// lost on restart.
type ProposalBook struct {
	mu        sync.Mutex
	proposals map[string]*secondary.ProposalRecord
}

// NewProposalBook creates an empty proposal book.
func NewProposalBook() *ProposalBook {
	return &ProposalBook{proposals: make(map[string]*secondary.ProposalRecord)}
}

// Put stores a copy of record under its ID.
func (b *ProposalBook) Put(ctx context.Context, record *secondary.ProposalRecord) error {
	if record.ID == "" {
		return fmt.Errorf("proposal ID must be set")
	}
	copied := *record

	b.mu.Lock()
	defer b.mu.Unlock()
	b.proposals[record.ID] = &copied
	return nil
}

// Get returns a copy of the proposal.
func (b *ProposalBook) Get(ctx context.Context, id string) (*secondary.ProposalRecord, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	r, ok := b.proposals[id]
	if !ok {
		return nil, secondary.ErrNotFound
	}
	copied := *r
	return &copied, nil
}

// Take removes and returns the proposal.
func (b *ProposalBook) Take(ctx context.Context, id string) (*secondary.ProposalRecord, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	r, ok := b.proposals[id]
	if !ok {
		return nil, secondary.ErrNotFound
	}
	delete(b.proposals, id)
	return r, nil
}

// RemoveOlderThan drops proposals created before cutoff.
func (b *ProposalBook) RemoveOlderThan(ctx context.Context, cutoff time.Time) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := 0
	for id, r := range b.proposals {
		if r.CreatedAt.Before(cutoff) {
			delete(b.proposals, id)
			n++
		}
	}
	return n
}

var _ secondary.ProposalStore = (*ProposalBook)(nil)
