package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewRedisStore(rdb, "")
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	rs := newTestRedisStore(t)

	want := Seed()
	require.NoError(t, rs.Save(ctx, want))

	got, err := rs.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRedisStoreMissingKey(t *testing.T) {
	_, err := newTestRedisStore(t).Load(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreUsesFixedKey(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	rs := NewRedisStore(rdb, "")
	require.NoError(t, rs.Save(ctx, Seed()))

	// The whole collection lives under the one fixed key.
	assert.True(t, mr.Exists(Key))
}

func TestRedisStoreMalformedBlob(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	require.NoError(t, mr.Set(Key, "{broken"))

	rs := NewRedisStore(rdb, "")
	_, err := rs.Load(ctx)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	// LoadOrSeed absorbs it.
	assert.Len(t, LoadOrSeed(ctx, rs), 2)
}
