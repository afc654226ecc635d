package rediscache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/basebase-ai/basebase-go/directory"
	"github.com/basebase-ai/basebase-go/directory/rediscache"
)

func setupCache(t *testing.T, options ...rediscache.Option) (*rediscache.Cache, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cache, err := rediscache.New(client, options...)
	require.NoError(t, err)
	return cache, server
}

func TestNew(t *testing.T) {
	_, err := rediscache.New(nil)
	require.Error(t, err)
}

func TestCache_RoundTrip(t *testing.T) {
	cache, _ := setupCache(t)
	ctx := context.Background()

	_, ok, err := cache.Get(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	records := []directory.Record{
		{ID: "chess-club", Name: "Chess Club", Description: "Weekly games", Categories: []string{"games"}},
	}
	require.NoError(t, cache.Put(ctx, records))

	got, ok, err := cache.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, records, got)
}

func TestCache_Invalidate(t *testing.T) {
	cache, _ := setupCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, []directory.Record{{ID: "chess-club"}}))
	require.NoError(t, cache.Invalidate(ctx))

	_, ok, err := cache.Get(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCache_TTL(t *testing.T) {
	cache, server := setupCache(t, rediscache.WithTTL(time.Minute))
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, []directory.Record{{ID: "chess-club"}}))

	server.FastForward(2 * time.Minute)

	_, ok, err := cache.Get(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCache_CorruptPayload(t *testing.T) {
	cache, server := setupCache(t)

	require.NoError(t, server.Set("basebase:directory:projects", "{not json"))

	_, _, err := cache.Get(context.Background())
	require.Error(t, err)
}
