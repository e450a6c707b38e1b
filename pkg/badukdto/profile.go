// Package badukdto holds the wire-level shapes exchanged with clients.
// It depends on nothing inside internal/ so it can be imported freely.
package badukdto

// Profile is the client view of an engine settings profile.
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

	// MaxGames is -1 when the profile places no limit on playouts.
	MaxGames int64 `json:"max_games"`

	AutoSelectResignMinGames bool   `json:"auto_select_resign_min_games"`
	ResignMinGames           uint64 `json:"resign_min_games"`
	ResignThresholds         []int  `json:"resign_thresholds"`

	// ResignBehaviour and Strength name the matching preset, or "custom".
	ResignBehaviour string `json:"resign_behaviour"`
	Strength        string `json:"strength"`
}
