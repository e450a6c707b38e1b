package game

import (
	"sync"

	"go.uber.org/zap"

	"github.com/jwhyun/baduk-bot/internal/obslog"
)

// Info names the two seats of the game in progress.
type Info struct {
	BlackID string
	WhiteID string
}

// Tracker is the narrow "currently running game" collaborator: which two
// player ids are seated, and whether unsaved changes exist. Game-start
// notifications may arrive on any goroutine; subscribers are responsible
// for their own serialization.
type Tracker struct {
	mu      sync.RWMutex
	current *Info
	unsaved bool
	onStart []func()
}

func NewTracker() *Tracker {
	return &Tracker{}
}

// OnGameStart registers a callback fired whenever a new game begins.
// Registration is expected during wiring, before games are started.
func (t *Tracker) OnGameStart(fn func()) {
	if fn == nil {
		return
	}
	t.mu.Lock()
	t.onStart = append(t.onStart, fn)
	t.mu.Unlock()
}

// Start records a new game between the two players and notifies
// subscribers. Callbacks run outside the tracker lock.
func (t *Tracker) Start(blackID, whiteID string) {
	t.mu.Lock()
	t.current = &Info{BlackID: blackID, WhiteID: whiteID}
	t.unsaved = false
	callbacks := make([]func(), len(t.onStart))
	copy(callbacks, t.onStart)
	t.mu.Unlock()

	obslog.L().Info("game_start",
		zap.String("black_id", blackID),
		zap.String("white_id", whiteID),
	)
	for _, fn := range callbacks {
		fn()
	}
}

// End clears the current game.
func (t *Tracker) End() {
	t.mu.Lock()
	t.current = nil
	t.unsaved = false
	t.mu.Unlock()
}

// Current returns the game in progress, if any.
func (t *Tracker) Current() (Info, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.current == nil {
		return Info{}, false
	}
	return *t.current, true
}

// IsPlaying reports whether the player is seated in the current game.
func (t *Tracker) IsPlaying(playerID string) bool {
	if t == nil || playerID == "" {
		return false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.current == nil {
		return false
	}
	return t.current.BlackID == playerID || t.current.WhiteID == playerID
}

func (t *Tracker) SetUnsavedChanges(b bool) {
	t.mu.Lock()
	t.unsaved = b
	t.mu.Unlock()
}

func (t *Tracker) HasUnsavedChanges() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.unsaved
}
