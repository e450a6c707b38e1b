package baduk

import "testing"

func TestResignBehaviourDetection(t *testing.T) {
	presets := []ResignBehaviour{
		ResignPushover, ResignQuickly, ResignNormal, ResignStubborn, ResignNever,
	}
	for _, preset := range presets {
		p := NewProfile("p1", "Test")
		if err := p.ApplyResignBehaviour(preset); err != nil {
			t.Fatalf("apply %v: %v", preset, err)
		}
		if got := p.ResignBehaviourPreset(); got != preset {
			t.Fatalf("detected %v after applying %v", got, preset)
		}
	}
}

func TestResignBehaviourCustomAfterMutation(t *testing.T) {
	p := NewProfile("p1", "Test")
	if err := p.ApplyResignBehaviour(ResignNormal); err != nil {
		t.Fatalf("apply: %v", err)
	}

	// Any single deviation from the tuple makes the profile custom.
	p.ResignThreshold[2]++
	if got := p.ResignBehaviourPreset(); got != ResignCustom {
		t.Fatalf("threshold change: detected %v, want custom", got)
	}
	p.ResignThreshold[2]--

	p.AutoSelectResignMinGames = false
	if got := p.ResignBehaviourPreset(); got != ResignCustom {
		t.Fatalf("auto-select change: detected %v, want custom", got)
	}
	p.AutoSelectResignMinGames = true

	p.ResignMinGames = 123
	if got := p.ResignBehaviourPreset(); got != ResignCustom {
		t.Fatalf("min-games change: detected %v, want custom", got)
	}
}

func TestApplyResignBehaviourRejectsCustom(t *testing.T) {
	p := NewProfile("p1", "Test")
	if err := p.ApplyResignBehaviour(ResignCustom); err == nil {
		t.Fatalf("custom must not be installable")
	}
}

func TestPlayingStrengthDetection(t *testing.T) {
	for s := MinStrength; s <= MaxStrength; s++ {
		p := NewProfile("p1", "Test")
		if err := p.ApplyPlayingStrength(s); err != nil {
			t.Fatalf("apply strength %d: %v", s, err)
		}
		if err := ValidateProfile(p); err != nil {
			t.Fatalf("strength %d produced an invalid profile: %v", s, err)
		}
		if got := p.PlayingStrength(); got != s {
			t.Fatalf("detected strength %d after applying %d", got, s)
		}
	}
}

func TestPlayingStrengthCustomAfterMutation(t *testing.T) {
	p := NewProfile("p1", "Test")
	if err := p.ApplyPlayingStrength(2); err != nil {
		t.Fatalf("apply: %v", err)
	}
	p.MaxMemoryMB *= 2
	if got := p.PlayingStrength(); got != StrengthCustom {
		t.Fatalf("detected %d, want custom", got)
	}
}

func TestPlayingStrengthIgnoresResignFields(t *testing.T) {
	p := NewProfile("p1", "Test")
	if err := p.ApplyPlayingStrength(4); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if err := p.ApplyResignBehaviour(ResignNever); err != nil {
		t.Fatalf("apply resign: %v", err)
	}
	if got := p.PlayingStrength(); got != 4 {
		t.Fatalf("resign fields leaked into strength detection: %d", got)
	}
}

func TestApplyPlayingStrengthRange(t *testing.T) {
	p := NewProfile("p1", "Test")
	for _, s := range []Strength{StrengthCustom, -1, 6} {
		if err := p.ApplyPlayingStrength(s); err == nil {
			t.Fatalf("strength %d must not be installable", s)
		}
	}
}

func TestStrongestPresetPonders(t *testing.T) {
	p := NewProfile("p1", "Test")
	if err := p.ApplyPlayingStrength(MaxStrength); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !p.Ponder || !p.ReuseSubtree {
		t.Fatalf("top strength must ponder with subtree reuse: %+v", p)
	}
	if p.MaxGames != MaxGamesUnlimited {
		t.Fatalf("top strength must be unlimited, got %d", p.MaxGames)
	}
}

func TestPresetStrings(t *testing.T) {
	if ResignNormal.String() != "normal" || ResignCustom.String() != "custom" {
		t.Fatalf("resign behaviour strings wrong")
	}
	if Strength(3).String() != "strength-3" || StrengthCustom.String() != "custom" {
		t.Fatalf("strength strings wrong")
	}
}
