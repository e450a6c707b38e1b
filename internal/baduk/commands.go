package baduk

import (
	"fmt"
	"strconv"
	"strings"
)

// BuildEngineCommands returns the GTP commands that configure Fuego for the
// given profile and board size. The profile is validated first; an invalid
// profile never reaches the engine.
func BuildEngineCommands(p *Profile, boardSize int) ([]string, error) {
	if err := ValidateProfile(p); err != nil {
		return nil, err
	}
	idx, ok := boardSizeIndex(boardSize)
	if !ok {
		return nil, fmt.Errorf("unsupported board size: %d", boardSize)
	}

	cmds := []string{
		fmt.Sprintf("uct_max_memory %d", int64(p.MaxMemoryMB)*1024*1024),
		"uct_param_search number_threads " + strconv.Itoa(p.ThreadCount),
		"uct_param_search lock_free " + gtpBool(p.ThreadCount > 1),
		"uct_param_player ponder " + gtpBool(p.Ponder),
		"uct_param_player reuse_subtree " + gtpBool(p.ReuseSubtree),
		"uct_param_player max_ponder_time " + strconv.Itoa(p.MaxPonderTimeSec),
		"go_param timelimit " + strconv.Itoa(p.MaxThinkingTimeSec),
	}
	if p.MaxGames != MaxGamesUnlimited {
		cmds = append(cmds, "uct_param_player max_games "+strconv.FormatUint(p.MaxGames, 10))
	}

	// Fuego takes the resign threshold as a fraction, not a percentage.
	threshold := p.ResignThreshold[idx]
	cmds = append(cmds,
		"uct_param_player resign_threshold "+strconv.FormatFloat(float64(threshold)/100, 'f', 2, 64),
		"uct_param_player resign_min_games "+strconv.FormatUint(p.EffectiveResignMinGames(), 10),
	)
	return cmds, nil
}

// FormatEngineCommands renders the setup commands as a newline-separated
// script, mainly for logging and the selftest command.
func FormatEngineCommands(p *Profile, boardSize int) (string, error) {
	cmds, err := BuildEngineCommands(p, boardSize)
	if err != nil {
		return "", err
	}
	return strings.Join(cmds, "\n"), nil
}

func gtpBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
