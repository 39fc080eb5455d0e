package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/hisbu/events-app/internal/model"
)

// RedisStore persists the collection as a single Redis string value under a
// fixed key. No TTL is set; the blob lives until the next save replaces it.
type RedisStore struct {
	rdb *redis.Client
	key string
}

// NewRedisStore constructs a RedisStore. An empty key selects the package
// default.
func NewRedisStore(rdb *redis.Client, key string) *RedisStore {
	if key == "" {
		key = Key
	}
	return &RedisStore{rdb: rdb, key: key}
}

// Load fetches and decodes the stored blob. A missing key maps to
// ErrNotFound.
func (r *RedisStore) Load(ctx context.Context) ([]model.Event, error) {
	data, err := r.rdb.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("redis get %s: %w", r.key, err)
	}

	var events []model.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("decode events blob: %w", err)
	}
	return events, nil
}

// Save serializes the whole collection and overwrites the key.
func (r *RedisStore) Save(ctx context.Context, events []model.Event) error {
	data, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("encode events: %w", err)
	}
	if err := r.rdb.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", r.key, err)
	}
	return nil
}
