package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DefaultStrength != 3 || cfg.DefaultBoardSize != 19 || cfg.DefaultKomi != 6.5 {
		t.Fatalf("defaults = %+v", cfg)
	}
	if cfg.MaxMemoryCeilingMB != 512 {
		t.Fatalf("memory ceiling = %d", cfg.MaxMemoryCeilingMB)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("FUEGO_PATH", "/usr/bin/fuego")
	t.Setenv("BADUK_DEFAULT_STRENGTH", "5")
	t.Setenv("BADUK_BOARD_SIZE", "9")
	t.Setenv("BADUK_KOMI", "7.5")
	t.Setenv("BADUK_MAX_MEMORY_MB", "1024")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.FuegoPath != "/usr/bin/fuego" || cfg.DefaultStrength != 5 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.DefaultBoardSize != 9 || cfg.DefaultKomi != 7.5 || cfg.MaxMemoryCeilingMB != 1024 {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadIgnoresBadOverrides(t *testing.T) {
	t.Setenv("BADUK_DEFAULT_STRENGTH", "99")
	t.Setenv("BADUK_MAX_MEMORY_MB", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DefaultStrength != 3 || cfg.MaxMemoryCeilingMB != 512 {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadRejectsBadBoardSize(t *testing.T) {
	for _, size := range []string{"8", "5", "21"} {
		t.Setenv("BADUK_BOARD_SIZE", size)
		if _, err := Load(); err == nil {
			t.Fatalf("size %s accepted", size)
		}
	}
}
