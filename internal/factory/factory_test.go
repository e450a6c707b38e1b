package factory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jwhyun/baduk-bot/internal/baduk"
)

func TestLoadEmbeddedDefaults(t *testing.T) {
	players, profiles, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(players) == 0 || len(profiles) == 0 {
		t.Fatalf("empty defaults: %d players, %d profiles", len(players), len(profiles))
	}

	byID := map[string]*baduk.Profile{}
	for _, p := range profiles {
		if err := baduk.ValidateProfile(p); err != nil {
			t.Fatalf("profile %s invalid: %v", p.ID, err)
		}
		byID[p.ID] = p
	}
	if byID[baduk.FallbackProfileID] == nil {
		t.Fatalf("defaults missing the fallback profile")
	}

	seen := map[string]bool{}
	for _, p := range players {
		if p.ID == "" || seen[p.ID] {
			t.Fatalf("player %q has a bad id", p.Name)
		}
		seen[p.ID] = true
		if p.Human && p.ProfileID != "" {
			t.Fatalf("human player %s carries a profile", p.Name)
		}
		if !p.Human && byID[p.ProfileID] == nil {
			t.Fatalf("computer player %s references unknown profile %q", p.Name, p.ProfileID)
		}
	}
}

func TestLoadMintsFreshPlayerIDs(t *testing.T) {
	first, _, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	second, _, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if first[0].ID == second[0].ID {
		t.Fatalf("player ids reused across loads")
	}
}

func writeDefaults(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "defaults.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoadOverrideFile(t *testing.T) {
	path := writeDefaults(t, `
profiles:
  - id: profile-fallback
    name: Default
players:
  - name: Solo
    human: true
`)
	players, profiles, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(players) != 1 || players[0].Name != "Solo" {
		t.Fatalf("players = %+v", players)
	}
	if len(profiles) != 1 || profiles[0].ID != baduk.FallbackProfileID {
		t.Fatalf("profiles = %+v", profiles)
	}
}

func TestLoadRejectsBadCatalogs(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing fallback", `
profiles:
  - id: other
    name: Other
players: []
`},
		{"duplicate profile id", `
profiles:
  - id: profile-fallback
    name: Default
  - id: profile-fallback
    name: Again
players: []
`},
		{"strength out of range", `
profiles:
  - id: profile-fallback
    name: Default
    strength: 9
players: []
`},
		{"human with profile", `
profiles:
  - id: profile-fallback
    name: Default
players:
  - name: Alice
    human: true
    profile: profile-fallback
`},
		{"computer without known profile", `
profiles:
  - id: profile-fallback
    name: Default
players:
  - name: Bot
    human: false
    profile: nope
`},
		{"not yaml", `{{{`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeDefaults(t, tc.body)
			if _, _, err := Load(path); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error")
	}
}
