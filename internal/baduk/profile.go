package baduk

import (
	"fmt"
	"math"
)

const (
	MinBoardSize = 7
	MaxBoardSize = 19

	// NumBoardSizes counts the supported odd board sizes 7, 9, ..., 19.
	NumBoardSizes = (MaxBoardSize-MinBoardSize)/2 + 1

	MaxThreadCount = 8

	// MaxGamesUnlimited is the sentinel for "no game limit". It is distinct
	// from every finite category value.
	MaxGamesUnlimited uint64 = math.MaxUint64

	// FallbackProfileID identifies the built-in profile used for human vs
	// human analysis and as the reassignment target when a profile is
	// deleted. It is never deletable.
	FallbackProfileID = "profile-fallback"
)

const (
	defaultMaxMemoryMB        = 64
	defaultThreadCount        = 1
	defaultMaxPonderTimeSec   = 300
	defaultMaxThinkingTimeSec = 10
	defaultMaxGames           = 10000

	autoResignMinGamesFloor = 10
	autoResignMinGamesCap   = 5000
)

// Profile holds the playing-strength settings applied to the Fuego engine
// for one computer player.
type Profile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	MaxMemoryMB        int    `json:"max_memory_mb"`
	ThreadCount        int    `json:"thread_count"`
	Ponder             bool   `json:"ponder"`
	ReuseSubtree       bool   `json:"reuse_subtree"`
	MaxPonderTimeSec   int    `json:"max_ponder_time_s"`
	MaxThinkingTimeSec int    `json:"max_thinking_time_s"`
	MaxGames           uint64 `json:"max_games"`

	AutoSelectResignMinGames bool               `json:"auto_select_resign_min_games"`
	ResignMinGames           uint64             `json:"resign_min_games"`
	ResignThreshold          [NumBoardSizes]int `json:"resign_thresholds"`
}

// BoardSizes returns the supported board sizes in ascending order.
func BoardSizes() []int {
	sizes := make([]int, 0, NumBoardSizes)
	for s := MinBoardSize; s <= MaxBoardSize; s += 2 {
		sizes = append(sizes, s)
	}
	return sizes
}

func boardSizeIndex(size int) (int, bool) {
	if size < MinBoardSize || size > MaxBoardSize || size%2 == 0 {
		return 0, false
	}
	return (size - MinBoardSize) / 2, true
}

// NewProfile returns a profile with factory default values.
func NewProfile(id, name string) *Profile {
	p := &Profile{ID: id, Name: name}
	p.ResetToDefaults()
	return p
}

// SetPondering sets the ponder flag. Subtree reuse cannot be disabled while
// pondering, so enabling ponder forces ReuseSubtree on.
func (p *Profile) SetPondering(on bool) {
	p.Ponder = on
	if on {
		p.ReuseSubtree = true
	}
}

// SetResignThreshold stores the resign threshold percentage for the given
// board size. The percentage is stored as given; keeping it within 0-100 is
// the caller's contract.
func (p *Profile) SetResignThreshold(boardSize, percent int) error {
	idx, ok := boardSizeIndex(boardSize)
	if !ok {
		return fmt.Errorf("unsupported board size: %d", boardSize)
	}
	p.ResignThreshold[idx] = percent
	return nil
}

// ResignThresholdFor returns the resign threshold percentage for the given
// board size.
func (p *Profile) ResignThresholdFor(boardSize int) (int, error) {
	idx, ok := boardSizeIndex(boardSize)
	if !ok {
		return 0, fmt.Errorf("unsupported board size: %d", boardSize)
	}
	return p.ResignThreshold[idx], nil
}

// EffectiveResignMinGames returns the resign-min-games value the engine
// should use: the stored value, or one derived from MaxGames when
// auto-select is on.
func (p *Profile) EffectiveResignMinGames() uint64 {
	if !p.AutoSelectResignMinGames {
		return p.ResignMinGames
	}
	if p.MaxGames == MaxGamesUnlimited {
		return autoResignMinGamesCap
	}
	derived := p.MaxGames / 100
	if derived < autoResignMinGamesFloor {
		return autoResignMinGamesFloor
	}
	if derived > autoResignMinGamesCap {
		return autoResignMinGamesCap
	}
	return derived
}

// ResetToDefaults overwrites every settings value with the factory default.
// Identity (ID, Name, Description) is preserved.
func (p *Profile) ResetToDefaults() {
	p.MaxMemoryMB = defaultMaxMemoryMB
	p.ThreadCount = defaultThreadCount
	p.Ponder = false
	p.ReuseSubtree = true
	p.MaxPonderTimeSec = defaultMaxPonderTimeSec
	p.MaxThinkingTimeSec = defaultMaxThinkingTimeSec
	p.MaxGames = defaultMaxGames
	p.ResetResignBehaviourToDefaults()
}

// ResetResignBehaviourToDefaults resets only the resign-behaviour fields.
func (p *Profile) ResetResignBehaviourToDefaults() {
	tuple := resignTuples[ResignNormal]
	p.AutoSelectResignMinGames = tuple.AutoSelectMinGames
	p.ResignMinGames = tuple.MinGames
	p.ResignThreshold = tuple.Threshold
}

func (p *Profile) Clone() *Profile {
	dup := *p
	return &dup
}

// ValidateProfile checks a whole profile before it is persisted or applied
// to the engine.
func ValidateProfile(p *Profile) error {
	switch {
	case p == nil:
		return fmt.Errorf("nil profile")
	case p.MaxMemoryMB <= 0:
		return fmt.Errorf("max memory must be > 0: %d", p.MaxMemoryMB)
	case p.ThreadCount <= 0:
		return fmt.Errorf("thread count must be > 0: %d", p.ThreadCount)
	case p.ThreadCount > MaxThreadCount:
		return fmt.Errorf("thread count %d exceeds maximum %d", p.ThreadCount, MaxThreadCount)
	case p.Ponder && !p.ReuseSubtree:
		return fmt.Errorf("subtree reuse cannot be off while pondering")
	case p.MaxPonderTimeSec < 0:
		return fmt.Errorf("max ponder time must be >= 0: %d", p.MaxPonderTimeSec)
	case p.MaxThinkingTimeSec < 0:
		return fmt.Errorf("max thinking time must be >= 0: %d", p.MaxThinkingTimeSec)
	case p.MaxGames == 0:
		return fmt.Errorf("max games must be > 0")
	}

	for i, percent := range p.ResignThreshold {
		if percent < 0 || percent > 100 {
			size := MinBoardSize + 2*i
			return fmt.Errorf("resign threshold for board size %d out of range 0-100: %d", size, percent)
		}
	}
	return nil
}
