package roster

import (
	"context"
	"sort"
	"sync"

	"github.com/jwhyun/baduk-bot/internal/baduk"
)

// memrepo is the in-memory Repository used when no database is configured
// and by the package tests.
type memrepo struct {
	mu sync.RWMutex

	players  map[string]*Player
	profiles map[string]*baduk.Profile
	seq      map[string]int // insertion order for stable player listing
	next     int
}

func NewMemoryRepository() Repository {
	return &memrepo{
		players:  make(map[string]*Player),
		profiles: make(map[string]*baduk.Profile),
		seq:      make(map[string]int),
	}
}

func (m *memrepo) InsertPlayer(ctx context.Context, player *Player) error {
	if player == nil {
		return ErrDuplicatePlayer
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.players[player.ID]; exists {
		return ErrDuplicatePlayer
	}
	m.next++
	m.seq[player.ID] = m.next
	m.players[player.ID] = player.Clone()
	return nil
}

func (m *memrepo) UpdatePlayer(ctx context.Context, player *Player) error {
	if player == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.players[player.ID]; !exists {
		return nil
	}
	m.players[player.ID] = player.Clone()
	return nil
}

func (m *memrepo) DeletePlayer(ctx context.Context, id string) error {
	m.mu.Lock()
	delete(m.players, id)
	delete(m.seq, id)
	m.mu.Unlock()
	return nil
}

func (m *memrepo) GetPlayer(ctx context.Context, id string) (*Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.players[id]; ok && p != nil {
		return p.Clone(), nil
	}
	return nil, nil
}

func (m *memrepo) ListPlayers(ctx context.Context) ([]*Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	players := make([]*Player, 0, len(m.players))
	for _, p := range m.players {
		players = append(players, p.Clone())
	}
	sort.Slice(players, func(i, j int) bool {
		return m.seq[players[i].ID] < m.seq[players[j].ID]
	})
	return players, nil
}

func (m *memrepo) UpsertProfile(ctx context.Context, profile *baduk.Profile) error {
	if profile == nil {
		return nil
	}
	m.mu.Lock()
	m.profiles[profile.ID] = profile.Clone()
	m.mu.Unlock()
	return nil
}

func (m *memrepo) DeleteProfile(ctx context.Context, id string) error {
	m.mu.Lock()
	delete(m.profiles, id)
	m.mu.Unlock()
	return nil
}

func (m *memrepo) GetProfile(ctx context.Context, id string) (*baduk.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.profiles[id]; ok && p != nil {
		return p.Clone(), nil
	}
	return nil, nil
}

func (m *memrepo) ListProfiles(ctx context.Context) ([]*baduk.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	profiles := make([]*baduk.Profile, 0, len(m.profiles))
	for _, p := range m.profiles {
		profiles = append(profiles, p.Clone())
	}
	sort.Slice(profiles, func(i, j int) bool {
		if profiles[i].Name != profiles[j].Name {
			return profiles[i].Name < profiles[j].Name
		}
		return profiles[i].ID < profiles[j].ID
	})
	return profiles, nil
}

func (m *memrepo) ReplaceAll(ctx context.Context, players []*Player, profiles []*baduk.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players = make(map[string]*Player, len(players))
	m.profiles = make(map[string]*baduk.Profile, len(profiles))
	m.seq = make(map[string]int, len(players))
	m.next = 0
	for _, p := range profiles {
		m.profiles[p.ID] = p.Clone()
	}
	for _, p := range players {
		m.next++
		m.seq[p.ID] = m.next
		m.players[p.ID] = p.Clone()
	}
	return nil
}
