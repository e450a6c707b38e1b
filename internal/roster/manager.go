package roster

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jwhyun/baduk-bot/internal/baduk"
	"github.com/jwhyun/baduk-bot/internal/game"
	"github.com/jwhyun/baduk-bot/internal/obslog"
)

var (
	ErrInvalidName     = errors.New("name must not be empty")
	ErrPlayerNotFound  = errors.New("player not found")
	ErrProfileNotFound = errors.New("profile not found")
	ErrPlayerPlaying   = errors.New("player is seated in the current game")
	ErrProfileInUse    = errors.New("profile drives a player in the current game")
	ErrFallbackProfile = errors.New("the fallback profile cannot be deleted")
)

// DefaultsFunc supplies the factory default roster for a full reset.
type DefaultsFunc func() ([]*Player, []*baduk.Profile, error)

// Manager owns every mutation of the player/profile roster and keeps the
// cross-record rules intact: a computer player always references an
// existing profile, a deleted profile's players fall back to the built-in
// profile, and records seated in the running game are immutable.
//
// All mutations are serialized on one mutex, so events arriving from any
// goroutine (including game-start notifications) observe a consistent
// roster. Observers are notified after the mutation is applied, before the
// mutating call returns.
type Manager struct {
	mu            sync.Mutex
	repo          Repository
	games         *game.Tracker
	mirror        *Store
	defaults      DefaultsFunc
	observers     []func(Event)
	editing       map[string]EditMode
	memoryCeiling int
}

func NewManager(repo Repository, games *game.Tracker) *Manager {
	m := &Manager{
		repo:    repo,
		games:   games,
		editing: make(map[string]EditMode),
	}
	if games != nil {
		games.OnGameStart(func() { m.HandleGameStarted(context.Background()) })
	}
	return m
}

// AttachMirror wires the optional Redis mirror for warm restarts.
func (m *Manager) AttachMirror(s *Store) {
	if m != nil {
		m.mirror = s
	}
}

// AttachDefaults wires the factory default set used by FactoryReset.
func (m *Manager) AttachDefaults(fn DefaultsFunc) {
	if m != nil {
		m.defaults = fn
	}
}

// SetMemoryCeiling caps the per-profile engine memory. Zero means no cap.
func (m *Manager) SetMemoryCeiling(mb int) {
	if m != nil {
		m.memoryCeiling = mb
	}
}

// Subscribe registers an observer. Registration is expected during wiring.
func (m *Manager) Subscribe(fn func(Event)) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	m.observers = append(m.observers, fn)
	m.mu.Unlock()
}

func (m *Manager) publish(events []Event) {
	m.mu.Lock()
	observers := make([]func(Event), len(m.observers))
	copy(observers, m.observers)
	m.mu.Unlock()
	for _, ev := range events {
		for _, fn := range observers {
			fn(ev)
		}
	}
}

// EnsureFallback creates the built-in fallback profile when missing. It is
// called once during wiring, before the roster is served.
func (m *Manager) EnsureFallback(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, err := m.repo.GetProfile(ctx, baduk.FallbackProfileID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	fallback := baduk.NewProfile(baduk.FallbackProfileID, "Default")
	fallback.Description = "Built-in profile used for analysis and as the reassignment target."
	if err := m.repo.UpsertProfile(ctx, fallback); err != nil {
		return err
	}
	m.mirrorProfile(ctx, fallback)
	obslog.L().Info("roster_fallback_created", zap.String("profile_id", fallback.ID))
	return nil
}

func (m *Manager) CreateHumanPlayer(ctx context.Context, name string) (*Player, error) {
	if !baduk.IsValidName(name) {
		return nil, ErrInvalidName
	}
	now := time.Now()
	player := &Player{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Human:     true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	m.mu.Lock()
	err := m.repo.InsertPlayer(ctx, player)
	if err == nil {
		m.mirrorPlayer(ctx, player)
	}
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}

	obslog.L().Info("roster_player_create",
		zap.String("player_id", player.ID),
		zap.Bool("human", true),
	)
	m.publish([]Event{{Kind: EventPlayerCreated, PlayerID: player.ID}})
	return player, nil
}

// CreateComputerPlayer creates a computer player. With an empty profileID a
// fresh profile with factory defaults is created alongside; otherwise the
// player attaches to the existing profile.
func (m *Manager) CreateComputerPlayer(ctx context.Context, name, profileID string) (*Player, error) {
	if !baduk.IsValidName(name) {
		return nil, ErrInvalidName
	}

	var events []Event
	now := time.Now()
	player := &Player{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Human:     false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	m.mu.Lock()
	if profileID == "" {
		profile := baduk.NewProfile(uuid.NewString(), player.Name)
		if err := m.repo.UpsertProfile(ctx, profile); err != nil {
			m.mu.Unlock()
			return nil, err
		}
		m.mirrorProfile(ctx, profile)
		player.ProfileID = profile.ID
		events = append(events, Event{Kind: EventProfileCreated, ProfileID: profile.ID})
	} else {
		profile, err := m.repo.GetProfile(ctx, profileID)
		if err != nil {
			m.mu.Unlock()
			return nil, err
		}
		if profile == nil {
			m.mu.Unlock()
			return nil, ErrProfileNotFound
		}
		player.ProfileID = profileID
	}
	if err := m.repo.InsertPlayer(ctx, player); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	m.mirrorPlayer(ctx, player)
	m.mu.Unlock()

	obslog.L().Info("roster_player_create",
		zap.String("player_id", player.ID),
		zap.Bool("human", false),
		zap.String("profile_id", player.ProfileID),
	)
	events = append(events, Event{Kind: EventPlayerCreated, PlayerID: player.ID})
	m.publish(events)
	return player, nil
}

func (m *Manager) RenamePlayer(ctx context.Context, id, name string) error {
	if !baduk.IsValidName(name) {
		return ErrInvalidName
	}

	m.mu.Lock()
	player, err := m.repo.GetPlayer(ctx, id)
	if err == nil && player == nil {
		err = ErrPlayerNotFound
	}
	if err == nil {
		player.Name = strings.TrimSpace(name)
		player.UpdatedAt = time.Now()
		err = m.repo.UpdatePlayer(ctx, player)
	}
	if err == nil {
		m.mirrorPlayer(ctx, player)
	}
	m.mu.Unlock()
	if err != nil {
		return err
	}

	m.publish([]Event{{Kind: EventPlayerUpdated, PlayerID: id}})
	return nil
}

// SaveProfile validates and persists an edited profile.
func (m *Manager) SaveProfile(ctx context.Context, profile *baduk.Profile) error {
	if profile == nil {
		return ErrProfileNotFound
	}
	if !baduk.IsValidName(profile.Name) {
		return ErrInvalidName
	}
	if err := baduk.ValidateProfile(profile); err != nil {
		return err
	}
	if m.memoryCeiling > 0 && profile.MaxMemoryMB > m.memoryCeiling {
		return fmt.Errorf("max memory %dMB exceeds the %dMB ceiling", profile.MaxMemoryMB, m.memoryCeiling)
	}

	m.mu.Lock()
	err := m.repo.UpsertProfile(ctx, profile)
	if err == nil {
		m.mirrorProfile(ctx, profile)
	}
	m.mu.Unlock()
	if err != nil {
		return err
	}

	m.publish([]Event{{Kind: EventProfileUpdated, ProfileID: profile.ID}})
	return nil
}

// DeletePlayer removes a player. A player seated in the current game is
// not deletable. A profile created for the player is removed along with it
// when no other player references it.
func (m *Manager) DeletePlayer(ctx context.Context, id string) error {
	m.mu.Lock()
	events, err := m.deletePlayerLocked(ctx, id)
	m.mu.Unlock()
	if err != nil {
		return err
	}
	m.publish(events)
	return nil
}

func (m *Manager) deletePlayerLocked(ctx context.Context, id string) ([]Event, error) {
	player, err := m.repo.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}
	if player == nil {
		return nil, ErrPlayerNotFound
	}
	if m.games.IsPlaying(id) {
		return nil, ErrPlayerPlaying
	}

	if err := m.repo.DeletePlayer(ctx, id); err != nil {
		return nil, err
	}
	if m.mirror != nil {
		if err := m.mirror.DeletePlayer(ctx, id); err != nil {
			obslog.L().Warn("roster_mirror_error", zap.String("player_id", id), zap.Error(err))
		}
	}
	events := []Event{{Kind: EventPlayerDeleted, PlayerID: id}}

	orphanEvents, err := m.removeOrphanProfileLocked(ctx, player.ProfileID)
	if err != nil {
		return nil, err
	}
	events = append(events, orphanEvents...)

	obslog.L().Info("roster_player_delete", zap.String("player_id", id))
	return events, nil
}

// removeOrphanProfileLocked deletes the given profile when nothing
// references it anymore. The fallback profile always stays.
func (m *Manager) removeOrphanProfileLocked(ctx context.Context, profileID string) ([]Event, error) {
	if profileID == "" || profileID == baduk.FallbackProfileID {
		return nil, nil
	}
	players, err := m.repo.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range players {
		if p.ProfileID == profileID {
			return nil, nil
		}
	}
	if err := m.repo.DeleteProfile(ctx, profileID); err != nil {
		return nil, err
	}
	if m.mirror != nil {
		if err := m.mirror.DeleteProfile(ctx, profileID); err != nil {
			obslog.L().Warn("roster_mirror_error", zap.String("profile_id", profileID), zap.Error(err))
		}
	}
	return []Event{{Kind: EventProfileDeleted, ProfileID: profileID}}, nil
}

// DeleteProfile removes a profile and reassigns every referencing player to
// the fallback profile. Callers never observe a dangling reference: the
// reassignment happens under the same lock as the deletion.
func (m *Manager) DeleteProfile(ctx context.Context, id string) error {
	m.mu.Lock()
	events, err := m.deleteProfileLocked(ctx, id)
	m.mu.Unlock()
	if err != nil {
		return err
	}
	m.publish(events)
	return nil
}

func (m *Manager) deleteProfileLocked(ctx context.Context, id string) ([]Event, error) {
	if id == baduk.FallbackProfileID {
		return nil, ErrFallbackProfile
	}
	profile, err := m.repo.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	players, err := m.repo.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range players {
		if p.ProfileID == id && m.games.IsPlaying(p.ID) {
			return nil, ErrProfileInUse
		}
	}

	var events []Event
	reassigned := 0
	now := time.Now()
	for _, p := range players {
		if p.ProfileID != id {
			continue
		}
		p.ProfileID = baduk.FallbackProfileID
		p.UpdatedAt = now
		if err := m.repo.UpdatePlayer(ctx, p); err != nil {
			return nil, err
		}
		m.mirrorPlayer(ctx, p)
		events = append(events, Event{Kind: EventPlayerUpdated, PlayerID: p.ID})
		reassigned++
	}

	if err := m.repo.DeleteProfile(ctx, id); err != nil {
		return nil, err
	}
	if m.mirror != nil {
		if err := m.mirror.DeleteProfile(ctx, id); err != nil {
			obslog.L().Warn("roster_mirror_error", zap.String("profile_id", id), zap.Error(err))
		}
	}
	events = append(events, Event{Kind: EventProfileDeleted, ProfileID: id})

	obslog.L().Info("roster_profile_delete",
		zap.String("profile_id", id),
		zap.Int("reassigned", reassigned),
	)
	return events, nil
}

// SetHuman toggles a player between human and computer. Computer→human
// detaches the profile (removing it when orphaned); human→computer
// attaches a fresh profile with factory defaults. The human/profile
// invariant holds when the call returns.
func (m *Manager) SetHuman(ctx context.Context, id string, human bool) (*Player, error) {
	m.mu.Lock()
	player, events, err := m.setHumanLocked(ctx, id, human)
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}
	m.publish(events)
	return player, nil
}

func (m *Manager) setHumanLocked(ctx context.Context, id string, human bool) (*Player, []Event, error) {
	player, err := m.repo.GetPlayer(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if player == nil {
		return nil, nil, ErrPlayerNotFound
	}
	if m.games.IsPlaying(id) {
		return nil, nil, ErrPlayerPlaying
	}
	if player.Human == human {
		return player, nil, nil
	}

	var events []Event
	detached := ""
	if human {
		detached = player.ProfileID
		player.ProfileID = ""
	} else {
		profile := baduk.NewProfile(uuid.NewString(), player.Name)
		if err := m.repo.UpsertProfile(ctx, profile); err != nil {
			return nil, nil, err
		}
		m.mirrorProfile(ctx, profile)
		player.ProfileID = profile.ID
		events = append(events, Event{Kind: EventProfileCreated, ProfileID: profile.ID})
	}
	player.Human = human
	player.UpdatedAt = time.Now()
	if err := m.repo.UpdatePlayer(ctx, player); err != nil {
		return nil, nil, err
	}
	m.mirrorPlayer(ctx, player)
	events = append(events, Event{Kind: EventPlayerUpdated, PlayerID: player.ID})

	if detached != "" {
		orphanEvents, err := m.removeOrphanProfileLocked(ctx, detached)
		if err != nil {
			return nil, nil, err
		}
		events = append(events, orphanEvents...)
	}

	obslog.L().Info("roster_player_toggle",
		zap.String("player_id", player.ID),
		zap.Bool("human", human),
	)
	return player, events, nil
}

// IsPlayerDeletable mirrors the deletion rule without performing it.
func (m *Manager) IsPlayerDeletable(id string) bool {
	return !m.games.IsPlaying(id)
}

// IsHumanTogglable reports whether SetHuman would be allowed. The rule
// covers the human/computer toggle only, not name editing.
func (m *Manager) IsHumanTogglable(id string) bool {
	return !m.games.IsPlaying(id)
}

// IsProfileDeletable reports whether DeleteProfile would be allowed.
func (m *Manager) IsProfileDeletable(ctx context.Context, id string) (bool, error) {
	if id == baduk.FallbackProfileID {
		return false, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	players, err := m.repo.ListPlayers(ctx)
	if err != nil {
		return false, err
	}
	for _, p := range players {
		if p.ProfileID == id && m.games.IsPlaying(p.ID) {
			return false, nil
		}
	}
	return true, nil
}

func (m *Manager) Players(ctx context.Context) ([]*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.repo.ListPlayers(ctx)
}

func (m *Manager) Profiles(ctx context.Context) ([]*baduk.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.repo.ListProfiles(ctx)
}

func (m *Manager) GetPlayer(ctx context.Context, id string) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.repo.GetPlayer(ctx, id)
}

func (m *Manager) GetProfile(ctx context.Context, id string) (*baduk.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.repo.GetProfile(ctx, id)
}

// FactoryReset replaces the whole roster with the factory default set.
func (m *Manager) FactoryReset(ctx context.Context) error {
	if m.defaults == nil {
		return fmt.Errorf("no factory defaults attached")
	}
	players, profiles, err := m.defaults()
	if err != nil {
		return fmt.Errorf("load factory defaults: %w", err)
	}

	m.mu.Lock()
	err = m.repo.ReplaceAll(ctx, players, profiles)
	if err == nil && m.mirror != nil {
		if merr := m.mirror.Replace(ctx, players, profiles); merr != nil {
			obslog.L().Warn("roster_mirror_error", zap.Error(merr))
		}
	}
	m.mu.Unlock()
	if err != nil {
		return err
	}

	obslog.L().Info("roster_factory_reset",
		zap.Int("players", len(players)),
		zap.Int("profiles", len(profiles)),
	)
	m.publish([]Event{{Kind: EventRosterReset}})
	return nil
}

func (m *Manager) mirrorPlayer(ctx context.Context, player *Player) {
	if m.mirror == nil {
		return
	}
	if err := m.mirror.SavePlayer(ctx, player); err != nil {
		obslog.L().Warn("roster_mirror_error", zap.String("player_id", player.ID), zap.Error(err))
	}
}

func (m *Manager) mirrorProfile(ctx context.Context, profile *baduk.Profile) {
	if m.mirror == nil {
		return
	}
	if err := m.mirror.SaveProfile(ctx, profile); err != nil {
		obslog.L().Warn("roster_mirror_error", zap.String("profile_id", profile.ID), zap.Error(err))
	}
}
