package roster

import (
	"context"

	"go.uber.org/zap"

	"github.com/jwhyun/baduk-bot/internal/obslog"
)

// BeginEditing marks a surface (a list or detail view) as being edited.
// Edit mode is per surface; two surfaces edit independently.
func (m *Manager) BeginEditing(surface string) {
	if surface == "" {
		return
	}
	m.mu.Lock()
	m.editing[surface] = Editing
	m.mu.Unlock()
}

// EndEditing returns a surface to browsing.
func (m *Manager) EndEditing(surface string) {
	var events []Event
	m.mu.Lock()
	if m.editing[surface] == Editing {
		m.editing[surface] = Browsing
		events = append(events, Event{Kind: EventEditingEnded, Surface: surface})
	}
	m.mu.Unlock()
	m.publish(events)
}

// Mode reports the current edit mode of a surface. Unknown surfaces browse.
func (m *Manager) Mode(surface string) EditMode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.editing[surface]
}

// HandleGameStarted force-exits edit mode on every surface. A game start
// invalidates any half-finished roster edit, and playing-state checks must
// not race an open editor.
func (m *Manager) HandleGameStarted(ctx context.Context) {
	var events []Event
	m.mu.Lock()
	for surface, mode := range m.editing {
		if mode != Editing {
			continue
		}
		m.editing[surface] = Browsing
		events = append(events, Event{Kind: EventEditingEnded, Surface: surface})
	}
	m.mu.Unlock()

	if len(events) > 0 {
		obslog.L().Info("roster_editing_forced_exit", zap.Int("surfaces", len(events)))
	}
	m.publish(events)
}
