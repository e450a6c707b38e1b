package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

type AppConfig struct {
	FuegoPath string

	RedisURL    string
	DatabaseURL string

	DefaultStrength    int
	DefaultBoardSize   int
	DefaultKomi        float64
	MaxMemoryCeilingMB int

	FactoryFile string
}

func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		DefaultStrength:    3,
		DefaultBoardSize:   19,
		DefaultKomi:        6.5,
		MaxMemoryCeilingMB: 512,
	}

	cfg.FuegoPath = strings.TrimSpace(os.Getenv("FUEGO_PATH"))
	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	cfg.FactoryFile = strings.TrimSpace(os.Getenv("BADUK_FACTORY_FILE"))

	if v := strings.TrimSpace(os.Getenv("BADUK_DEFAULT_STRENGTH")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 && n <= 5 {
			cfg.DefaultStrength = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("BADUK_BOARD_SIZE")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.DefaultBoardSize = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("BADUK_KOMI")); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.DefaultKomi = f
		}
	}
	if v := strings.TrimSpace(os.Getenv("BADUK_MAX_MEMORY_MB")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxMemoryCeilingMB = n
		}
	}

	if cfg.DefaultBoardSize < 7 || cfg.DefaultBoardSize > 19 || cfg.DefaultBoardSize%2 == 0 {
		return nil, errors.New("BADUK_BOARD_SIZE must be an odd size between 7 and 19")
	}

	return cfg, nil
}
