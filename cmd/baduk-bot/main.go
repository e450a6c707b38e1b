package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jwhyun/baduk-bot/internal/baduk/gtp"
	appcfg "github.com/jwhyun/baduk-bot/internal/config"
	"github.com/jwhyun/baduk-bot/internal/factory"
	"github.com/jwhyun/baduk-bot/internal/game"
	"github.com/jwhyun/baduk-bot/internal/obslog"
	"github.com/jwhyun/baduk-bot/internal/roster"
)

func main() {
	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer obslog.Sync()

	ctx := context.Background()

	// Storage: Postgres when configured, in-memory otherwise.
	repo := roster.NewMemoryRepository()
	var closeDB func() error
	if cfg.DatabaseURL != "" {
		db, err := roster.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("database init error: %v", err)
		}
		repo = roster.NewRepository(db)
		closeDB = db.Close
	}

	tracker := game.NewTracker()
	mgr := roster.NewManager(repo, tracker)
	mgr.AttachDefaults(factory.DefaultsFunc(cfg.FactoryFile))
	mgr.SetMemoryCeiling(cfg.MaxMemoryCeilingMB)

	// Optional Redis mirror for warm restarts.
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := roster.ParseRedisURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("redis config error: %v", err)
		}
		rdb = redis.NewClient(opts)
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("redis connect error: %v", err)
		}
		mgr.AttachMirror(roster.NewStore(rdb))
	}

	if err := mgr.EnsureFallback(ctx); err != nil {
		log.Fatalf("fallback profile error: %v", err)
	}
	players, err := mgr.Players(ctx)
	if err != nil {
		log.Fatalf("roster load error: %v", err)
	}
	if len(players) == 0 {
		if err := mgr.FactoryReset(ctx); err != nil {
			log.Fatalf("factory install error: %v", err)
		}
	}

	// Engine pool: warm one session and verify the binary speaks GTP.
	var pool *gtp.Pool
	if cfg.FuegoPath != "" {
		pool, err = gtp.NewPool(gtp.PoolConfig{BinaryPath: cfg.FuegoPath})
		if err != nil {
			log.Fatalf("engine pool error: %v", err)
		}
		session, err := pool.Acquire(ctx)
		if err != nil {
			log.Fatalf("engine selftest error: %v", err)
		}
		name, _ := session.Name(ctx)
		version, _ := session.Version(ctx)
		pool.Release(session, nil)
		obslog.L().Info("engine_ready",
			zap.String("name", name),
			zap.String("version", version),
		)
	} else {
		obslog.L().Warn("engine_disabled", zap.String("reason", "FUEGO_PATH not set"))
	}

	obslog.L().Info("baduk_bot_started",
		zap.Int("default_strength", cfg.DefaultStrength),
		zap.Int("board_size", cfg.DefaultBoardSize),
		zap.Bool("postgres", closeDB != nil),
		zap.Bool("redis", rdb != nil),
		zap.Bool("engine", pool != nil),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	if pool != nil {
		_ = pool.Close()
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	if closeDB != nil {
		_ = closeDB()
	}
}
