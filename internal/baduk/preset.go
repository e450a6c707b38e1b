package baduk

import "fmt"

// ResignBehaviour identifies one of the fixed resign-behaviour presets, or
// Custom when the profile's resign fields match none of them exactly.
type ResignBehaviour int

const (
	ResignCustom ResignBehaviour = iota
	ResignPushover
	ResignQuickly
	ResignNormal
	ResignStubborn
	ResignNever
)

func (r ResignBehaviour) String() string {
	switch r {
	case ResignPushover:
		return "pushover"
	case ResignQuickly:
		return "resign-quickly"
	case ResignNormal:
		return "normal"
	case ResignStubborn:
		return "stubborn"
	case ResignNever:
		return "never-resign"
	case ResignCustom:
		return "custom"
	}
	return "custom"
}

// ResignTuple is the complete set of resign-behaviour fields a preset pins.
type ResignTuple struct {
	Threshold          [NumBoardSizes]int
	AutoSelectMinGames bool
	MinGames           uint64
}

var resignPresetOrder = []ResignBehaviour{
	ResignPushover,
	ResignQuickly,
	ResignNormal,
	ResignStubborn,
	ResignNever,
}

var resignTuples = map[ResignBehaviour]ResignTuple{
	ResignPushover: {
		Threshold:          [NumBoardSizes]int{30, 30, 30, 30, 30, 30, 30},
		AutoSelectMinGames: true,
	},
	ResignQuickly: {
		Threshold:          [NumBoardSizes]int{20, 20, 20, 20, 20, 20, 20},
		AutoSelectMinGames: true,
	},
	ResignNormal: {
		// Larger boards resign later: a low win estimate early on a 19x19
		// board is far less reliable than on a 7x7 board.
		Threshold:          [NumBoardSizes]int{10, 10, 8, 8, 5, 5, 5},
		AutoSelectMinGames: true,
	},
	ResignStubborn: {
		Threshold:          [NumBoardSizes]int{2, 2, 2, 2, 2, 2, 2},
		AutoSelectMinGames: true,
	},
	ResignNever: {
		Threshold:          [NumBoardSizes]int{0, 0, 0, 0, 0, 0, 0},
		AutoSelectMinGames: false,
	},
}

// ResignBehaviourPreset returns the preset whose tuple exactly matches the
// profile's resign fields, or ResignCustom.
func (p *Profile) ResignBehaviourPreset() ResignBehaviour {
	for _, id := range resignPresetOrder {
		tuple := resignTuples[id]
		if p.ResignThreshold == tuple.Threshold &&
			p.AutoSelectResignMinGames == tuple.AutoSelectMinGames &&
			p.ResignMinGames == tuple.MinGames {
			return id
		}
	}
	return ResignCustom
}

// ApplyResignBehaviour installs the preset's tuple into the profile.
// ResignCustom is a derived state, not an installable preset.
func (p *Profile) ApplyResignBehaviour(b ResignBehaviour) error {
	tuple, ok := resignTuples[b]
	if !ok {
		return fmt.Errorf("resign behaviour %q is not an installable preset", b)
	}
	p.ResignThreshold = tuple.Threshold
	p.AutoSelectResignMinGames = tuple.AutoSelectMinGames
	p.ResignMinGames = tuple.MinGames
	return nil
}

// Strength identifies one of the fixed playing-strength presets 1..5, or
// StrengthCustom when the profile's strength fields match none of them.
type Strength int

const (
	StrengthCustom Strength = 0
	MinStrength    Strength = 1
	MaxStrength    Strength = 5
)

func (s Strength) String() string {
	if s < MinStrength || s > MaxStrength {
		return "custom"
	}
	return fmt.Sprintf("strength-%d", int(s))
}

type strengthTuple struct {
	MaxMemoryMB        int
	ThreadCount        int
	Ponder             bool
	ReuseSubtree       bool
	MaxThinkingTimeSec int
	MaxGames           uint64
}

// strengthTuples[i] is the tuple for strength i+1.
var strengthTuples = [MaxStrength]strengthTuple{
	{MaxMemoryMB: 32, ThreadCount: 1, Ponder: false, ReuseSubtree: false, MaxThinkingTimeSec: 2, MaxGames: 500},
	{MaxMemoryMB: 32, ThreadCount: 1, Ponder: false, ReuseSubtree: true, MaxThinkingTimeSec: 5, MaxGames: 5000},
	{MaxMemoryMB: 64, ThreadCount: 1, Ponder: false, ReuseSubtree: true, MaxThinkingTimeSec: 10, MaxGames: 10000},
	{MaxMemoryMB: 64, ThreadCount: 2, Ponder: false, ReuseSubtree: true, MaxThinkingTimeSec: 20, MaxGames: 50000},
	{MaxMemoryMB: 128, ThreadCount: 2, Ponder: true, ReuseSubtree: true, MaxThinkingTimeSec: 30, MaxGames: MaxGamesUnlimited},
}

// PlayingStrength returns the strength preset whose tuple exactly matches
// the profile's strength fields, or StrengthCustom. Resign-behaviour fields
// are not part of the comparison.
func (p *Profile) PlayingStrength() Strength {
	probe := strengthTuple{
		MaxMemoryMB:        p.MaxMemoryMB,
		ThreadCount:        p.ThreadCount,
		Ponder:             p.Ponder,
		ReuseSubtree:       p.ReuseSubtree,
		MaxThinkingTimeSec: p.MaxThinkingTimeSec,
		MaxGames:           p.MaxGames,
	}
	for i, tuple := range strengthTuples {
		if probe == tuple {
			return Strength(i + 1)
		}
	}
	return StrengthCustom
}

// ApplyPlayingStrength installs the strength preset's tuple into the
// profile. StrengthCustom is a derived state, not an installable preset.
func (p *Profile) ApplyPlayingStrength(s Strength) error {
	if s < MinStrength || s > MaxStrength {
		return fmt.Errorf("playing strength %d out of range %d-%d", int(s), int(MinStrength), int(MaxStrength))
	}
	tuple := strengthTuples[s-1]
	p.MaxMemoryMB = tuple.MaxMemoryMB
	p.ThreadCount = tuple.ThreadCount
	p.ReuseSubtree = tuple.ReuseSubtree
	p.SetPondering(tuple.Ponder)
	p.MaxThinkingTimeSec = tuple.MaxThinkingTimeSec
	p.MaxGames = tuple.MaxGames
	return nil
}
