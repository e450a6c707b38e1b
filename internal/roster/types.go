package roster

import "time"

// Player is a persisted roster entry. Computer players reference the
// engine profile that drives them; human players never do.
type Player struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Human     bool      `json:"human"`
	ProfileID string    `json:"profile_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Player) Clone() *Player {
	dup := *p
	return &dup
}

// EventKind labels a roster mutation for observers.
type EventKind string

const (
	EventPlayerCreated  EventKind = "player_created"
	EventPlayerUpdated  EventKind = "player_updated"
	EventPlayerDeleted  EventKind = "player_deleted"
	EventProfileCreated EventKind = "profile_created"
	EventProfileUpdated EventKind = "profile_updated"
	EventProfileDeleted EventKind = "profile_deleted"
	EventRosterReset    EventKind = "roster_reset"
	EventEditingEnded   EventKind = "editing_ended"
)

// Event is delivered to observers after the mutation is applied and before
// the mutating call returns.
type Event struct {
	Kind      EventKind
	PlayerID  string
	ProfileID string
	Surface   string
}

// EditMode is the per-surface list state: Browsing shows a read-only list,
// Editing shows delete/insert affordances.
type EditMode int

const (
	Browsing EditMode = iota
	Editing
)

func (m EditMode) String() string {
	if m == Editing {
		return "editing"
	}
	return "browsing"
}
