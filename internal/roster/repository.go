package roster

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/jwhyun/baduk-bot/internal/baduk"
)

var (
	ErrDuplicatePlayer  = errors.New("player already exists")
	ErrDuplicateProfile = errors.New("profile already exists")
)

// Repository is the persistent store behind the roster. Lookups return
// (nil, nil) when the record does not exist.
type Repository interface {
	InsertPlayer(ctx context.Context, player *Player) error
	UpdatePlayer(ctx context.Context, player *Player) error
	DeletePlayer(ctx context.Context, id string) error
	GetPlayer(ctx context.Context, id string) (*Player, error)
	ListPlayers(ctx context.Context) ([]*Player, error)

	UpsertProfile(ctx context.Context, profile *baduk.Profile) error
	DeleteProfile(ctx context.Context, id string) error
	GetProfile(ctx context.Context, id string) (*baduk.Profile, error)
	ListProfiles(ctx context.Context) ([]*baduk.Profile, error)

	// ReplaceAll atomically swaps the whole roster for the given set.
	ReplaceAll(ctx context.Context, players []*Player, profiles []*baduk.Profile) error
}

type repository struct {
	db *sql.DB
}

// NewRepository returns the Postgres-backed Repository.
func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// Open connects to Postgres, verifies the connection and makes sure the
// roster tables exist.
func Open(ctx context.Context, databaseURL string) (*sql.DB, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(8)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS baduk_profiles (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	max_memory_mb BIGINT NOT NULL,
	thread_count INT NOT NULL,
	ponder BOOLEAN NOT NULL,
	reuse_subtree BOOLEAN NOT NULL,
	max_ponder_time_s INT NOT NULL,
	max_thinking_time_s INT NOT NULL,
	max_games BIGINT NOT NULL,
	auto_select_resign_min_games BOOLEAN NOT NULL,
	resign_min_games BIGINT NOT NULL,
	resign_thresholds JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS baduk_players (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	human BOOLEAN NOT NULL,
	profile_id TEXT,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);`

// MaxGames is stored as a signed column; the unlimited sentinel does not
// fit in int64 and is mapped to -1 on the way in and out.
func maxGamesToDB(v uint64) int64 {
	if v == baduk.MaxGamesUnlimited {
		return -1
	}
	return int64(v)
}

func maxGamesFromDB(v int64) uint64 {
	if v < 0 {
		return baduk.MaxGamesUnlimited
	}
	return uint64(v)
}

func (r *repository) InsertPlayer(ctx context.Context, player *Player) error {
	if player == nil {
		return fmt.Errorf("nil player payload")
	}
	const query = `
		INSERT INTO baduk_players (id, name, human, profile_id, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)
		ON CONFLICT (id) DO NOTHING`

	res, err := r.db.ExecContext(ctx, query,
		player.ID, player.Name, player.Human, player.ProfileID,
		player.CreatedAt, player.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert player: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrDuplicatePlayer
	}
	return nil
}

func (r *repository) UpdatePlayer(ctx context.Context, player *Player) error {
	if player == nil {
		return fmt.Errorf("nil player payload")
	}
	const query = `
		UPDATE baduk_players
		SET name = $2, human = $3, profile_id = NULLIF($4, ''), updated_at = $5
		WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query,
		player.ID, player.Name, player.Human, player.ProfileID, player.UpdatedAt,
	); err != nil {
		return fmt.Errorf("update player: %w", err)
	}
	return nil
}

func (r *repository) DeletePlayer(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM baduk_players WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	return nil
}

func (r *repository) GetPlayer(ctx context.Context, id string) (*Player, error) {
	const query = `
		SELECT id, name, human, COALESCE(profile_id, ''), created_at, updated_at
		FROM baduk_players
		WHERE id = $1`

	var player Player
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&player.ID, &player.Name, &player.Human, &player.ProfileID,
		&player.CreatedAt, &player.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select player: %w", err)
	}
	return &player, nil
}

func (r *repository) ListPlayers(ctx context.Context) ([]*Player, error) {
	const query = `
		SELECT id, name, human, COALESCE(profile_id, ''), created_at, updated_at
		FROM baduk_players
		ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}
	defer rows.Close()

	var players []*Player
	for rows.Next() {
		var player Player
		if err := rows.Scan(
			&player.ID, &player.Name, &player.Human, &player.ProfileID,
			&player.CreatedAt, &player.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, &player)
	}
	return players, rows.Err()
}

func (r *repository) UpsertProfile(ctx context.Context, profile *baduk.Profile) error {
	if profile == nil {
		return fmt.Errorf("nil profile payload")
	}
	thresholds, err := json.Marshal(profile.ResignThreshold)
	if err != nil {
		return fmt.Errorf("marshal resign thresholds: %w", err)
	}

	const query = `
		INSERT INTO baduk_profiles (
			id, name, description,
			max_memory_mb, thread_count, ponder, reuse_subtree,
			max_ponder_time_s, max_thinking_time_s, max_games,
			auto_select_resign_min_games, resign_min_games, resign_thresholds,
			updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13::jsonb, NOW())
		ON CONFLICT (id)
		DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			max_memory_mb = EXCLUDED.max_memory_mb,
			thread_count = EXCLUDED.thread_count,
			ponder = EXCLUDED.ponder,
			reuse_subtree = EXCLUDED.reuse_subtree,
			max_ponder_time_s = EXCLUDED.max_ponder_time_s,
			max_thinking_time_s = EXCLUDED.max_thinking_time_s,
			max_games = EXCLUDED.max_games,
			auto_select_resign_min_games = EXCLUDED.auto_select_resign_min_games,
			resign_min_games = EXCLUDED.resign_min_games,
			resign_thresholds = EXCLUDED.resign_thresholds,
			updated_at = NOW()`

	if _, err := r.db.ExecContext(ctx, query,
		profile.ID, profile.Name, profile.Description,
		profile.MaxMemoryMB, profile.ThreadCount, profile.Ponder, profile.ReuseSubtree,
		profile.MaxPonderTimeSec, profile.MaxThinkingTimeSec, maxGamesToDB(profile.MaxGames),
		profile.AutoSelectResignMinGames, int64(profile.ResignMinGames), thresholds,
	); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

func (r *repository) DeleteProfile(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM baduk_profiles WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

func (r *repository) GetProfile(ctx context.Context, id string) (*baduk.Profile, error) {
	const query = `
		SELECT id, name, description,
			max_memory_mb, thread_count, ponder, reuse_subtree,
			max_ponder_time_s, max_thinking_time_s, max_games,
			auto_select_resign_min_games, resign_min_games, resign_thresholds
		FROM baduk_profiles
		WHERE id = $1`

	profile, err := scanProfile(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select profile: %w", err)
	}
	return profile, nil
}

func (r *repository) ListProfiles(ctx context.Context) ([]*baduk.Profile, error) {
	const query = `
		SELECT id, name, description,
			max_memory_mb, thread_count, ponder, reuse_subtree,
			max_ponder_time_s, max_thinking_time_s, max_games,
			auto_select_resign_min_games, resign_min_games, resign_thresholds
		FROM baduk_profiles
		ORDER BY name, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*baduk.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}

func (r *repository) ReplaceAll(ctx context.Context, players []*Player, profiles []*baduk.Profile) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM baduk_players`); err != nil {
		return fmt.Errorf("clear players: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM baduk_profiles`); err != nil {
		return fmt.Errorf("clear profiles: %w", err)
	}

	for _, profile := range profiles {
		thresholds, err := json.Marshal(profile.ResignThreshold)
		if err != nil {
			return fmt.Errorf("marshal resign thresholds: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO baduk_profiles (
				id, name, description,
				max_memory_mb, thread_count, ponder, reuse_subtree,
				max_ponder_time_s, max_thinking_time_s, max_games,
				auto_select_resign_min_games, resign_min_games, resign_thresholds,
				updated_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13::jsonb, NOW())`,
			profile.ID, profile.Name, profile.Description,
			profile.MaxMemoryMB, profile.ThreadCount, profile.Ponder, profile.ReuseSubtree,
			profile.MaxPonderTimeSec, profile.MaxThinkingTimeSec, maxGamesToDB(profile.MaxGames),
			profile.AutoSelectResignMinGames, int64(profile.ResignMinGames), thresholds,
		); err != nil {
			return fmt.Errorf("insert profile: %w", err)
		}
	}
	for _, player := range players {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO baduk_players (id, name, human, profile_id, created_at, updated_at)
			VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)`,
			player.ID, player.Name, player.Human, player.ProfileID,
			player.CreatedAt, player.UpdatedAt,
		); err != nil {
			return fmt.Errorf("insert player: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*baduk.Profile, error) {
	var (
		profile        baduk.Profile
		maxGames       int64
		resignMinGames int64
		thresholdJSON  []byte
	)
	if err := row.Scan(
		&profile.ID, &profile.Name, &profile.Description,
		&profile.MaxMemoryMB, &profile.ThreadCount, &profile.Ponder, &profile.ReuseSubtree,
		&profile.MaxPonderTimeSec, &profile.MaxThinkingTimeSec, &maxGames,
		&profile.AutoSelectResignMinGames, &resignMinGames, &thresholdJSON,
	); err != nil {
		return nil, err
	}
	profile.MaxGames = maxGamesFromDB(maxGames)
	profile.ResignMinGames = uint64(resignMinGames)
	if err := json.Unmarshal(thresholdJSON, &profile.ResignThreshold); err != nil {
		return nil, fmt.Errorf("unmarshal resign thresholds: %w", err)
	}
	return &profile, nil
}
