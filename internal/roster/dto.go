package roster

import (
	"context"
	"errors"

	"github.com/jwhyun/baduk-bot/internal/baduk"
	"github.com/jwhyun/baduk-bot/pkg/badukdto"
)

func toPlayerDTO(p *Player, deletable bool) badukdto.Player {
	return badukdto.Player{
		ID:        p.ID,
		Name:      p.Name,
		Human:     p.Human,
		ProfileID: p.ProfileID,
		Deletable: deletable,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toProfileDTO(p *baduk.Profile) badukdto.Profile {
	maxGames := int64(-1)
	if p.MaxGames != baduk.MaxGamesUnlimited {
		maxGames = int64(p.MaxGames)
	}
	thresholds := make([]int, len(p.ResignThreshold))
	copy(thresholds, p.ResignThreshold[:])
	return badukdto.Profile{
		ID:                       p.ID,
		Name:                     p.Name,
		Description:              p.Description,
		MaxMemoryMB:              p.MaxMemoryMB,
		ThreadCount:              p.ThreadCount,
		Ponder:                   p.Ponder,
		ReuseSubtree:             p.ReuseSubtree,
		MaxPonderTimeSec:         p.MaxPonderTimeSec,
		MaxThinkingTimeSec:       p.MaxThinkingTimeSec,
		MaxGames:                 maxGames,
		AutoSelectResignMinGames: p.AutoSelectResignMinGames,
		ResignMinGames:           p.ResignMinGames,
		ResignThresholds:         thresholds,
		ResignBehaviour:          p.ResignBehaviourPreset().String(),
		Strength:                 p.PlayingStrength().String(),
	}
}

// Snapshot returns a consistent view of the whole roster, taken under one
// lock acquisition so players and profiles agree with each other.
func (m *Manager) Snapshot(ctx context.Context) (*badukdto.Roster, error) {
	m.mu.Lock()
	players, err := m.repo.ListPlayers(ctx)
	var profiles []*baduk.Profile
	if err == nil {
		profiles, err = m.repo.ListProfiles(ctx)
	}
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}

	out := &badukdto.Roster{
		Players:  make([]badukdto.Player, 0, len(players)),
		Profiles: make([]badukdto.Profile, 0, len(profiles)),
	}
	for _, p := range players {
		out.Players = append(out.Players, toPlayerDTO(p, !m.games.IsPlaying(p.ID)))
	}
	for _, p := range profiles {
		out.Profiles = append(out.Profiles, toProfileDTO(p))
	}
	return out, nil
}

// ToDomainError maps roster errors onto the wire shape. Unknown errors map
// to a generic internal code.
func ToDomainError(err error) *badukdto.DomainError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrInvalidName):
		return &badukdto.DomainError{Code: "invalid_name", Message: err.Error()}
	case errors.Is(err, ErrPlayerNotFound):
		return &badukdto.DomainError{Code: "player_not_found", Message: err.Error()}
	case errors.Is(err, ErrProfileNotFound):
		return &badukdto.DomainError{Code: "profile_not_found", Message: err.Error()}
	case errors.Is(err, ErrPlayerPlaying):
		return &badukdto.DomainError{Code: "player_playing", Message: err.Error(), Retryable: true}
	case errors.Is(err, ErrProfileInUse):
		return &badukdto.DomainError{Code: "profile_in_use", Message: err.Error(), Retryable: true}
	case errors.Is(err, ErrFallbackProfile):
		return &badukdto.DomainError{Code: "fallback_profile", Message: err.Error()}
	case errors.Is(err, ErrDuplicatePlayer):
		return &badukdto.DomainError{Code: "duplicate_player", Message: err.Error()}
	case errors.Is(err, ErrDuplicateProfile):
		return &badukdto.DomainError{Code: "duplicate_profile", Message: err.Error()}
	default:
		return &badukdto.DomainError{Code: "internal", Message: err.Error()}
	}
}
