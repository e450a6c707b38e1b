// Package factory loads the built-in default roster. The defaults ship
// embedded in the binary; an override file can replace them for testing
// or deployment-specific rosters.
package factory

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/jwhyun/baduk-bot/internal/baduk"
	"github.com/jwhyun/baduk-bot/internal/roster"
)

//go:embed defaults.yaml
var embeddedDefaults []byte

type profileSpec struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Strength    int    `yaml:"strength"`
}

type playerSpec struct {
	Name    string `yaml:"name"`
	Human   bool   `yaml:"human"`
	Profile string `yaml:"profile"`
}

type catalog struct {
	Profiles []profileSpec `yaml:"profiles"`
	Players  []playerSpec  `yaml:"players"`
}

// Load parses the embedded defaults, or the file at path when non-empty,
// into a ready-to-install roster. Player IDs are minted fresh on every
// call; profile IDs come from the catalog so the fallback keeps its
// well-known ID across resets.
func Load(path string) ([]*roster.Player, []*baduk.Profile, error) {
	raw := embeddedDefaults
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("read defaults file: %w", err)
		}
		raw = b
	}

	var cat catalog
	if err := yaml.Unmarshal(raw, &cat); err != nil {
		return nil, nil, fmt.Errorf("parse defaults: %w", err)
	}
	return build(&cat)
}

func build(cat *catalog) ([]*roster.Player, []*baduk.Profile, error) {
	profiles := make([]*baduk.Profile, 0, len(cat.Profiles))
	byID := make(map[string]bool, len(cat.Profiles))
	hasFallback := false
	for _, spec := range cat.Profiles {
		if spec.ID == "" || !baduk.IsValidName(spec.Name) {
			return nil, nil, fmt.Errorf("profile %q: id and name are required", spec.ID)
		}
		if byID[spec.ID] {
			return nil, nil, fmt.Errorf("profile %q: duplicate id", spec.ID)
		}
		p := baduk.NewProfile(spec.ID, spec.Name)
		p.Description = spec.Description
		if spec.Strength != 0 {
			if err := p.ApplyPlayingStrength(baduk.Strength(spec.Strength)); err != nil {
				return nil, nil, fmt.Errorf("profile %q: %w", spec.ID, err)
			}
		}
		if err := baduk.ValidateProfile(p); err != nil {
			return nil, nil, fmt.Errorf("profile %q: %w", spec.ID, err)
		}
		profiles = append(profiles, p)
		byID[spec.ID] = true
		if spec.ID == baduk.FallbackProfileID {
			hasFallback = true
		}
	}
	if !hasFallback {
		return nil, nil, fmt.Errorf("defaults must include the %s profile", baduk.FallbackProfileID)
	}

	now := time.Now()
	players := make([]*roster.Player, 0, len(cat.Players))
	for _, spec := range cat.Players {
		if !baduk.IsValidName(spec.Name) {
			return nil, nil, fmt.Errorf("player %q: name is required", spec.Name)
		}
		if spec.Human && spec.Profile != "" {
			return nil, nil, fmt.Errorf("player %q: human players take no profile", spec.Name)
		}
		if !spec.Human && !byID[spec.Profile] {
			return nil, nil, fmt.Errorf("player %q: unknown profile %q", spec.Name, spec.Profile)
		}
		players = append(players, &roster.Player{
			ID:        uuid.NewString(),
			Name:      spec.Name,
			Human:     spec.Human,
			ProfileID: spec.Profile,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return players, profiles, nil
}

// DefaultsFunc adapts Load for wiring into the roster manager.
func DefaultsFunc(path string) roster.DefaultsFunc {
	return func() ([]*roster.Player, []*baduk.Profile, error) {
		return Load(path)
	}
}
