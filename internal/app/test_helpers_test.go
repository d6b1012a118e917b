package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	coreship "github.com/Chiitoi/Aurora/internal/core/ship"
	"github.com/Chiitoi/Aurora/internal/models"
	"github.com/Chiitoi/Aurora/internal/ports/primary"
	"github.com/Chiitoi/Aurora/internal/ports/secondary"
)

var errStorage = errors.New("database is locked")

// ============================================================================
// Mock Implementations
// ============================================================================

var _ secondary.ActionRepository = (*mockActionRepository)(nil)

// mockActionRepository implements secondary.ActionRepository for testing.
type mockActionRepository struct {
	counts       map[secondary.ActionKey]int64
	incrementErr error
	readErr      error
}

func newMockActionRepository() *mockActionRepository {
	return &mockActionRepository{counts: make(map[secondary.ActionKey]int64)}
}

func (m *mockActionRepository) Increment(ctx context.Context, key secondary.ActionKey) (uint16, error) {
	if m.incrementErr != nil {
		return 0, m.incrementErr
	}
	if m.counts[key] < 65535 {
		m.counts[key]++
	}
	return uint16(m.counts[key]), nil
}

func (m *mockActionRepository) PairTotals(ctx context.Context, guildID models.GuildID, a, b models.UserID, actions []string) (map[string]int64, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	totals := make(map[string]int64)
	for _, name := range actions {
		n := m.counts[secondary.ActionKey{GuildID: guildID, MemberID: a, RecipientID: b, Action: name}] +
			m.counts[secondary.ActionKey{GuildID: guildID, MemberID: b, RecipientID: a, Action: name}]
		if n > 0 {
			totals[name] = n
		}
	}
	return totals, nil
}

func (m *mockActionRepository) DirectionalSums(ctx context.Context, guildID models.GuildID, a, b models.UserID, action string) (int64, int64, error) {
	if m.readErr != nil {
		return 0, 0, m.readErr
	}
	return m.counts[secondary.ActionKey{GuildID: guildID, MemberID: a, RecipientID: b, Action: action}],
		m.counts[secondary.ActionKey{GuildID: guildID, MemberID: b, RecipientID: a, Action: action}], nil
}

var _ secondary.ShipRepository = (*mockShipRepository)(nil)

// mockShipRepository implements secondary.ShipRepository for testing.
type mockShipRepository struct {
	ships     []*secondary.ShipRecord
	getErr    error
	insertErr error
	// beforeInsert runs before the conflict check, to simulate a racing writer.
	beforeInsert func()
}

func newMockShipRepository() *mockShipRepository {
	return &mockShipRepository{}
}

func (m *mockShipRepository) find(guildID models.GuildID, memberID models.UserID) int {
	for i, s := range m.ships {
		if s.GuildID == guildID && (s.MemberOne == memberID || s.MemberTwo == memberID) {
			return i
		}
	}
	return -1
}

func (m *mockShipRepository) GetByMember(ctx context.Context, guildID models.GuildID, memberID models.UserID) (*secondary.ShipRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if i := m.find(guildID, memberID); i >= 0 {
		copied := *m.ships[i]
		return &copied, nil
	}
	return nil, secondary.ErrNotFound
}

func (m *mockShipRepository) InsertIfAbsent(ctx context.Context, record *secondary.ShipRecord) error {
	if m.beforeInsert != nil {
		m.beforeInsert()
	}
	if m.insertErr != nil {
		return m.insertErr
	}
	if m.find(record.GuildID, record.MemberOne) >= 0 || m.find(record.GuildID, record.MemberTwo) >= 0 {
		return secondary.ErrConflict
	}
	copied := *record
	m.ships = append(m.ships, &copied)
	return nil
}

func (m *mockShipRepository) Rename(ctx context.Context, guildID models.GuildID, memberID models.UserID, name string) error {
	i := m.find(guildID, memberID)
	if i < 0 {
		return secondary.ErrNotFound
	}
	m.ships[i].Name = name
	return nil
}

func (m *mockShipRepository) DeleteByMember(ctx context.Context, guildID models.GuildID, memberID models.UserID) error {
	i := m.find(guildID, memberID)
	if i < 0 {
		return secondary.ErrNotFound
	}
	m.ships = append(m.ships[:i], m.ships[i+1:]...)
	return nil
}

func (m *mockShipRepository) CountByGuild(ctx context.Context, guildID models.GuildID) (int, error) {
	n := 0
	for _, s := range m.ships {
		if s.GuildID == guildID {
			n++
		}
	}
	return n, nil
}

var _ secondary.MemberRepository = (*mockMemberRepository)(nil)

// mockMemberRepository implements secondary.MemberRepository for testing.
type mockMemberRepository struct {
	bios   map[models.UserID]string
	setErr error
}

func newMockMemberRepository() *mockMemberRepository {
	return &mockMemberRepository{bios: make(map[models.UserID]string)}
}

func (m *mockMemberRepository) SetBio(ctx context.Context, guildID models.GuildID, memberID models.UserID, bio *string) error {
	if m.setErr != nil {
		return m.setErr
	}
	if bio == nil {
		delete(m.bios, memberID)
		return nil
	}
	m.bios[memberID] = *bio
	return nil
}

func (m *mockMemberRepository) GetBio(ctx context.Context, guildID models.GuildID, memberID models.UserID) (string, error) {
	bio, ok := m.bios[memberID]
	if !ok {
		return "", secondary.ErrNotFound
	}
	return bio, nil
}

var _ secondary.ProposalStore = (*mockProposalStore)(nil)

// mockProposalStore implements secondary.ProposalStore for testing.
type mockProposalStore struct {
	mu        sync.Mutex
	proposals map[string]*secondary.ProposalRecord
}

func newMockProposalStore() *mockProposalStore {
	return &mockProposalStore{proposals: make(map[string]*secondary.ProposalRecord)}
}

func (m *mockProposalStore) Put(ctx context.Context, record *secondary.ProposalRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.proposals[record.ID] = record
	return nil
}

func (m *mockProposalStore) Get(ctx context.Context, id string) (*secondary.ProposalRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.proposals[id]
	if !ok {
		return nil, secondary.ErrNotFound
	}
	return r, nil
}

func (m *mockProposalStore) Take(ctx context.Context, id string) (*secondary.ProposalRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.proposals[id]
	if !ok {
		return nil, secondary.ErrNotFound
	}
	delete(m.proposals, id)
	return r, nil
}

func (m *mockProposalStore) RemoveOlderThan(ctx context.Context, cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, r := range m.proposals {
		if r.CreatedAt.Before(cutoff) {
			delete(m.proposals, id)
			n++
		}
	}
	return n
}

var _ primary.ProposalPrompt = (*mockPrompt)(nil)

// mockPrompt implements primary.ProposalPrompt and records what it was asked to show.
type mockPrompt struct {
	sent       []primary.Proposal
	confirmed  []coreship.Decision
	conflicts  int
	sendErr    error
	confirmErr error
}

func (m *mockPrompt) SendProposal(ctx context.Context, p primary.Proposal) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, p)
	return nil
}

func (m *mockPrompt) ConfirmDecision(ctx context.Context, p primary.Proposal, decision coreship.Decision) error {
	if m.confirmErr != nil {
		return m.confirmErr
	}
	m.confirmed = append(m.confirmed, decision)
	return nil
}

func (m *mockPrompt) ReportConflict(ctx context.Context, p primary.Proposal) error {
	m.conflicts++
	return nil
}

// ============================================================================
// Test Helper
// ============================================================================

const (
	testGuild models.GuildID = 1
	userOne   models.UserID  = 11
	userTwo   models.UserID  = 22
	userThree models.UserID  = 33
)

// testClock is a settable clock.
type testClock struct{ t time.Time }

func (c *testClock) Now() time.Time          { return c.t }
func (c *testClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type shipFixture struct {
	service   *ShipServiceImpl
	ships     *mockShipRepository
	actions   *mockActionRepository
	proposals *mockProposalStore
	clock     *testClock
}

func newShipFixture() *shipFixture {
	ships := newMockShipRepository()
	actions := newMockActionRepository()
	proposals := newMockProposalStore()
	clock := &testClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}

	service := NewShipService(ships, proposals, NewLedgerService(actions, nil), 15*time.Minute, nil)
	service.now = clock.Now
	ids := 0
	service.newID = func() string {
		ids++
		return fmt.Sprintf("proposal-%d", ids)
	}

	return &shipFixture{service: service, ships: ships, actions: actions, proposals: proposals, clock: clock}
}

func (f *shipFixture) propose(prompt *mockPrompt, from, to models.UserID) (primary.Proposal, error) {
	resp, err := f.service.Propose(context.Background(), primary.ProposeRequest{
		GuildID:      testGuild,
		ProposerID:   from,
		ProposerName: "proposer",
		ProposeeID:   to,
	}, prompt)
	if err != nil {
		return primary.Proposal{}, err
	}
	return resp.Proposal, nil
}
