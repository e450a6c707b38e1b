package baduk

import (
	"strings"
	"testing"
)

func TestNewProfileDefaults(t *testing.T) {
	p := NewProfile("p1", "Test")
	if err := ValidateProfile(p); err != nil {
		t.Fatalf("fresh profile invalid: %v", err)
	}
	if p.Ponder {
		t.Fatalf("defaults must not ponder")
	}
	if !p.ReuseSubtree {
		t.Fatalf("defaults must reuse subtree")
	}
	if p.MaxGames != 10000 {
		t.Fatalf("default max games = %d, want 10000", p.MaxGames)
	}
	if got := p.ResignBehaviourPreset(); got != ResignNormal {
		t.Fatalf("default resign behaviour = %v, want normal", got)
	}
}

func TestSetPonderingForcesReuseSubtree(t *testing.T) {
	p := NewProfile("p1", "Test")
	p.ReuseSubtree = false
	p.SetPondering(true)
	if !p.ReuseSubtree {
		t.Fatalf("enabling ponder must force subtree reuse on")
	}

	p.SetPondering(false)
	if !p.ReuseSubtree {
		t.Fatalf("disabling ponder must not touch subtree reuse")
	}
}

func TestValidateProfileRejectsPonderWithoutReuse(t *testing.T) {
	p := NewProfile("p1", "Test")
	p.Ponder = true
	p.ReuseSubtree = false
	err := ValidateProfile(p)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(err.Error(), "subtree") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateProfileBounds(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Profile)
	}{
		{"zero memory", func(p *Profile) { p.MaxMemoryMB = 0 }},
		{"zero threads", func(p *Profile) { p.ThreadCount = 0 }},
		{"too many threads", func(p *Profile) { p.ThreadCount = MaxThreadCount + 1 }},
		{"negative ponder time", func(p *Profile) { p.MaxPonderTimeSec = -1 }},
		{"negative thinking time", func(p *Profile) { p.MaxThinkingTimeSec = -1 }},
		{"zero max games", func(p *Profile) { p.MaxGames = 0 }},
		{"threshold below range", func(p *Profile) { p.ResignThreshold[0] = -1 }},
		{"threshold above range", func(p *Profile) { p.ResignThreshold[NumBoardSizes-1] = 101 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewProfile("p1", "Test")
			tc.mutate(p)
			if ValidateProfile(p) == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestResignThresholdRoundTrip(t *testing.T) {
	p := NewProfile("p1", "Test")
	for i, size := range BoardSizes() {
		want := 11 + i
		if err := p.SetResignThreshold(size, want); err != nil {
			t.Fatalf("set threshold for %d: %v", size, err)
		}
		got, err := p.ResignThresholdFor(size)
		if err != nil {
			t.Fatalf("get threshold for %d: %v", size, err)
		}
		if got != want {
			t.Fatalf("threshold for %d = %d, want %d", size, got, want)
		}
	}
}

func TestResignThresholdUnsupportedSizes(t *testing.T) {
	p := NewProfile("p1", "Test")
	for _, size := range []int{0, 5, 8, 12, 18, 21} {
		if err := p.SetResignThreshold(size, 10); err == nil {
			t.Fatalf("size %d: expected error", size)
		}
		if _, err := p.ResignThresholdFor(size); err == nil {
			t.Fatalf("size %d: expected error", size)
		}
	}
}

func TestEffectiveResignMinGames(t *testing.T) {
	p := NewProfile("p1", "Test")

	p.AutoSelectResignMinGames = false
	p.ResignMinGames = 42
	if got := p.EffectiveResignMinGames(); got != 42 {
		t.Fatalf("manual value = %d, want 42", got)
	}

	p.AutoSelectResignMinGames = true
	p.MaxGames = 10000
	if got := p.EffectiveResignMinGames(); got != 100 {
		t.Fatalf("derived value = %d, want 100", got)
	}

	p.MaxGames = 200
	if got := p.EffectiveResignMinGames(); got != 10 {
		t.Fatalf("floor clamp = %d, want 10", got)
	}

	p.MaxGames = 10_000_000
	if got := p.EffectiveResignMinGames(); got != 5000 {
		t.Fatalf("cap clamp = %d, want 5000", got)
	}

	p.MaxGames = MaxGamesUnlimited
	if got := p.EffectiveResignMinGames(); got != 5000 {
		t.Fatalf("unlimited = %d, want 5000", got)
	}
}

func TestResetToDefaultsPreservesIdentity(t *testing.T) {
	p := NewProfile("p1", "Tuned")
	p.Description = "hand tuned"
	p.MaxMemoryMB = 256
	p.ThreadCount = 4
	p.SetPondering(true)
	_ = p.SetResignThreshold(19, 33)

	p.ResetToDefaults()

	if p.ID != "p1" || p.Name != "Tuned" || p.Description != "hand tuned" {
		t.Fatalf("identity changed: %+v", p)
	}
	fresh := NewProfile("p1", "Tuned")
	fresh.Description = "hand tuned"
	if *p != *fresh {
		t.Fatalf("reset profile differs from factory: %+v vs %+v", p, fresh)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	p := NewProfile("p1", "Test")
	dup := p.Clone()
	dup.MaxMemoryMB = 999
	dup.ResignThreshold[0] = 77
	if p.MaxMemoryMB == 999 || p.ResignThreshold[0] == 77 {
		t.Fatalf("clone shares state with the original")
	}
}

func TestBoardSizes(t *testing.T) {
	sizes := BoardSizes()
	want := []int{7, 9, 11, 13, 15, 17, 19}
	if len(sizes) != len(want) || len(sizes) != NumBoardSizes {
		t.Fatalf("sizes = %v", sizes)
	}
	for i := range want {
		if sizes[i] != want[i] {
			t.Fatalf("sizes = %v, want %v", sizes, want)
		}
	}
}
