package cache

import (
	"context"
	"testing"
	"time"

	"journey-synthesis-service/internal/ports"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisCache(t *testing.T) (*RedisTravelCostCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisTravelCostCache(client), mr
}

func TestRedisTravelCostCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	cache, _ := newRedisCache(t)

	ab := ports.CoordinatePair{From: a, To: b}
	ac := ports.CoordinatePair{From: a, To: c}

	require.NoError(t, cache.PutMany(ctx, map[ports.CoordinatePair]ports.TravelCost{
		ab: {DistanceMeters: 1800, DurationSeconds: 420, Status: ports.ElementOK},
		ac: {Status: "NOT_FOUND"},
	}))

	got, err := cache.GetMany(ctx, []ports.CoordinatePair{ab, ac})
	require.NoError(t, err)
	assert.Equal(t, map[ports.CoordinatePair]ports.TravelCost{
		ab: {DistanceMeters: 1800, DurationSeconds: 420, Status: ports.ElementOK},
	}, got)
}

func TestRedisTravelCostCacheExpires(t *testing.T) {
	ctx := context.Background()
	cache, mr := newRedisCache(t)
	cache.TTL = time.Minute

	ab := ports.CoordinatePair{From: a, To: b}
	require.NoError(t, cache.PutMany(ctx, map[ports.CoordinatePair]ports.TravelCost{
		ab: {DistanceMeters: 10, DurationSeconds: 5, Status: ports.ElementOK},
	}))

	mr.FastForward(2 * time.Minute)

	got, err := cache.GetMany(ctx, []ports.CoordinatePair{ab})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRedisTravelCostCacheRejectsGarbage(t *testing.T) {
	ctx := context.Background()
	cache, mr := newRedisCache(t)

	ab := ports.CoordinatePair{From: a, To: b}
	require.NoError(t, mr.Set(redisKey(ab), "not-a-cost"))

	_, err := cache.GetMany(ctx, []ports.CoordinatePair{ab})
	assert.Error(t, err)
}
