package badukdto

import "time"

// Player is the client view of a roster entry.
type Player struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Human     bool      `json:"human"`
	ProfileID string    `json:"profile_id,omitempty"`
	Deletable bool      `json:"deletable"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
