package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Dosada05/beach-tournament/models"
	"github.com/go-redis/redis/v8"
)

const (
	// LeaderboardKey orders athlete ids by ranking position.
	LeaderboardKey = "ranking:positions"
	// LeaderboardEntriesKey is a hash of athlete id to the encoded ranking entry.
	LeaderboardEntriesKey = "ranking:entries"

	leaderboardTTL = 24 * time.Hour
)

// LeaderboardRepository caches the computed global ranking for fast top-N reads.
type LeaderboardRepository interface {
	Replace(ctx context.Context, entries []models.RankingEntry) error
	Top(ctx context.Context, limit int) ([]models.RankingEntry, error)
}

type redisLeaderboardRepository struct {
	client *redis.Client
}

func NewRedisLeaderboardRepository(client *redis.Client) LeaderboardRepository {
	return &redisLeaderboardRepository{client: client}
}

// NewRedisClient connects and pings within timeout.
func NewRedisClient(ctx context.Context, addr, password string, db int, timeout time.Duration) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return client, nil
}

// Replace swaps the cached ranking atomically.
func (r *redisLeaderboardRepository) Replace(ctx context.Context, entries []models.RankingEntry) error {
	members := make([]*redis.Z, 0, len(entries))
	fields := make(map[string]interface{}, len(entries))
	for _, e := range entries {
		data, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("failed to encode ranking entry %s: %w", e.AthleteID, err)
		}
		members = append(members, &redis.Z{Score: float64(e.Position), Member: e.AthleteID})
		fields[e.AthleteID] = data
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, LeaderboardKey, LeaderboardEntriesKey)
		if len(members) == 0 {
			return nil
		}
		pipe.ZAdd(ctx, LeaderboardKey, members...)
		pipe.HSet(ctx, LeaderboardEntriesKey, fields)
		pipe.Expire(ctx, LeaderboardKey, leaderboardTTL)
		pipe.Expire(ctx, LeaderboardEntriesKey, leaderboardTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace leaderboard: %w", err)
	}
	return nil
}

func (r *redisLeaderboardRepository) Top(ctx context.Context, limit int) ([]models.RankingEntry, error) {
	if limit <= 0 {
		return []models.RankingEntry{}, nil
	}
	ids, err := r.client.ZRange(ctx, LeaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}
	if len(ids) == 0 {
		return []models.RankingEntry{}, nil
	}
	raw, err := r.client.HMGet(ctx, LeaderboardEntriesKey, ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard entries: %w", err)
	}

	entries := make([]models.RankingEntry, 0, len(raw))
	for i, v := range raw {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("leaderboard entry %s is missing", ids[i])
		}
		var e models.RankingEntry
		if err := json.Unmarshal([]byte(s), &e); err != nil {
			return nil, fmt.Errorf("failed to decode leaderboard entry %s: %w", ids[i], err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
