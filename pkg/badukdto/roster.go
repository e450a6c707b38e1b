package badukdto

// Roster is a consistent snapshot of every player and profile.
type Roster struct {
	Players  []Player  `json:"players"`
	Profiles []Profile `json:"profiles"`
}
