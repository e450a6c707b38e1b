package roster

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/jwhyun/baduk-bot/internal/baduk"
)

// Store mirrors the roster into Redis so a restarted bot can serve the
// list before the database round trip completes. Keys are persistent; the
// repository remains the source of truth.
type Store struct{ rdb *redis.Client }

func NewStore(rdb *redis.Client) *Store { return &Store{rdb: rdb} }

func (s *Store) keyPlayer(id string) string  { return "roster:player:" + strings.TrimSpace(id) }
func (s *Store) keyProfile(id string) string { return "roster:profile:" + strings.TrimSpace(id) }
func (s *Store) keyPlayers() string          { return "roster:players" }
func (s *Store) keyProfiles() string         { return "roster:profiles" }

func (s *Store) SavePlayer(ctx context.Context, player *Player) error {
	if player == nil {
		return nil
	}
	raw, err := json.Marshal(player)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, s.keyPlayer(player.ID), raw, 0).Err(); err != nil {
		return err
	}
	return s.rdb.SAdd(ctx, s.keyPlayers(), player.ID).Err()
}

func (s *Store) DeletePlayer(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, s.keyPlayer(id)).Err(); err != nil {
		return err
	}
	return s.rdb.SRem(ctx, s.keyPlayers(), id).Err()
}

func (s *Store) LoadPlayers(ctx context.Context) ([]*Player, error) {
	ids, err := s.rdb.SMembers(ctx, s.keyPlayers()).Result()
	if err != nil {
		return nil, err
	}
	var players []*Player
	for _, id := range ids {
		raw, err := s.rdb.Get(ctx, s.keyPlayer(id)).Bytes()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, err
		}
		var p Player
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		players = append(players, &p)
	}
	return players, nil
}

func (s *Store) SaveProfile(ctx context.Context, profile *baduk.Profile) error {
	if profile == nil {
		return nil
	}
	raw, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, s.keyProfile(profile.ID), raw, 0).Err(); err != nil {
		return err
	}
	return s.rdb.SAdd(ctx, s.keyProfiles(), profile.ID).Err()
}

func (s *Store) DeleteProfile(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, s.keyProfile(id)).Err(); err != nil {
		return err
	}
	return s.rdb.SRem(ctx, s.keyProfiles(), id).Err()
}

func (s *Store) LoadProfiles(ctx context.Context) ([]*baduk.Profile, error) {
	ids, err := s.rdb.SMembers(ctx, s.keyProfiles()).Result()
	if err != nil {
		return nil, err
	}
	var profiles []*baduk.Profile
	for _, id := range ids {
		raw, err := s.rdb.Get(ctx, s.keyProfile(id)).Bytes()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, err
		}
		var p baduk.Profile
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		profiles = append(profiles, &p)
	}
	return profiles, nil
}

// Replace rewrites the whole mirror, dropping stale entries left over from
// a previous roster.
func (s *Store) Replace(ctx context.Context, players []*Player, profiles []*baduk.Profile) error {
	oldPlayers, err := s.rdb.SMembers(ctx, s.keyPlayers()).Result()
	if err != nil {
		return err
	}
	oldProfiles, err := s.rdb.SMembers(ctx, s.keyProfiles()).Result()
	if err != nil {
		return err
	}

	pipe := s.rdb.TxPipeline()
	for _, id := range oldPlayers {
		pipe.Del(ctx, s.keyPlayer(id))
	}
	for _, id := range oldProfiles {
		pipe.Del(ctx, s.keyProfile(id))
	}
	pipe.Del(ctx, s.keyPlayers())
	pipe.Del(ctx, s.keyProfiles())

	for _, profile := range profiles {
		raw, err := json.Marshal(profile)
		if err != nil {
			return err
		}
		pipe.Set(ctx, s.keyProfile(profile.ID), raw, 0)
		pipe.SAdd(ctx, s.keyProfiles(), profile.ID)
	}
	for _, player := range players {
		raw, err := json.Marshal(player)
		if err != nil {
			return err
		}
		pipe.Set(ctx, s.keyPlayer(player.ID), raw, 0)
		pipe.SAdd(ctx, s.keyPlayers(), player.ID)
	}

	_, err = pipe.Exec(ctx)
	return err
}

// ParseRedisURL extracts go-redis options from a redis:// URL.
func ParseRedisURL(raw string) (*redis.Options, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "redis" && u.Scheme != "rediss" {
		return nil, fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}
	db := 0
	if p := strings.TrimPrefix(u.Path, "/"); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			db = n
		}
	}
	pass, _ := u.User.Password()
	return &redis.Options{Addr: u.Host, Password: pass, DB: db}, nil
}
