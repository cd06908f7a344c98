package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "hearthwick:snapshot:"

// RedisStore is the Redis-backed SnapshotStore, for deployments running more
// than one API instance so that an admin write on one instance is visible to
// all of them. Snapshots are written with HSET (data + fetch time in one
// hash, replaced in one command) and carry no Redis TTL: staleness is judged
// by the caller so stale-if-error still works.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Load implements SnapshotStore.
func (s *RedisStore) Load(ctx context.Context, key string) ([]byte, time.Time, bool, error) {
	fields, err := s.client.HGetAll(ctx, redisKeyPrefix+key).Result()
	if err != nil {
		return nil, time.Time{}, false, fmt.Errorf("redis load snapshot: %w", err)
	}
	raw, ok := fields["data"]
	if !ok {
		return nil, time.Time{}, false, nil
	}

	fetchedAt, err := time.Parse(time.RFC3339Nano, fields["at"])
	if err != nil {
		// Unparseable timestamp: treat the snapshot as ancient but present,
		// which forces a refresh while keeping stale-serve possible.
		fetchedAt = time.Time{}
	}
	return []byte(raw), fetchedAt, true, nil
}

// Store implements SnapshotStore.
func (s *RedisStore) Store(ctx context.Context, key string, data []byte, fetchedAt time.Time) error {
	err := s.client.HSet(ctx, redisKeyPrefix+key,
		"data", data,
		"at", fetchedAt.Format(time.RFC3339Nano),
	).Err()
	if err != nil {
		return fmt.Errorf("redis store snapshot: %w", err)
	}
	return nil
}

// Clear implements SnapshotStore.
func (s *RedisStore) Clear(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis clear snapshot: %w", err)
	}
	return nil
}
