package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"journey-synthesis-service/internal/platform/obs"
	"journey-synthesis-service/internal/ports"

	"github.com/redis/go-redis/v9"
)

const defaultRedisTTL = 7 * 24 * time.Hour

// Redis backed cache of provider travel costs. Values are "meters,seconds"
// strings under "travelcost:<origin>:<destination>" keys and expire after TTL.
type RedisTravelCostCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisTravelCostCache(client *redis.Client) *RedisTravelCostCache {
	return &RedisTravelCostCache{Client: client, TTL: defaultRedisTTL}
}

func redisKey(p ports.CoordinatePair) string {
	o, d := pairKeys(p)
	return "travelcost:" + o + ":" + d
}

func (r *RedisTravelCostCache) GetMany(
	ctx context.Context,
	pairs []ports.CoordinatePair,
) (_ map[ports.CoordinatePair]ports.TravelCost, err error) {
	defer obs.Time(ctx, "travelcost.redis.GetMany")(&err)

	if r.Client == nil {
		return nil, errors.New("travel cost cache: redis client is nil")
	}
	out := make(map[ports.CoordinatePair]ports.TravelCost, len(pairs))
	if len(pairs) == 0 {
		return out, nil
	}

	keys := make([]string, len(pairs))
	for i, p := range pairs {
		keys[i] = redisKey(p)
	}

	vals, err := r.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get travel cost cache: redis mget: %w", err)
	}

	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		c, err := decodeRedisCost(s)
		if err != nil {
			return nil, fmt.Errorf("get travel cost cache key=%q: %w", keys[i], err)
		}
		out[pairs[i]] = c
	}
	return out, nil
}

func (r *RedisTravelCostCache) PutMany(ctx context.Context, costs map[ports.CoordinatePair]ports.TravelCost) error {
	if r.Client == nil {
		return errors.New("travel cost cache: redis client is nil")
	}
	if len(costs) == 0 {
		return nil
	}

	pipe := r.Client.Pipeline()
	for pair, c := range costs {
		if c.Status != ports.ElementOK {
			continue
		}
		pipe.Set(ctx, redisKey(pair), fmt.Sprintf("%d,%d", c.DistanceMeters, c.DurationSeconds), r.TTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert travel cost cache: redis pipeline: %w", err)
	}
	return nil
}

func decodeRedisCost(s string) (ports.TravelCost, error) {
	meters, seconds, ok := strings.Cut(s, ",")
	if !ok {
		return ports.TravelCost{}, fmt.Errorf("malformed value %q", s)
	}
	m, err := strconv.Atoi(meters)
	if err != nil {
		return ports.TravelCost{}, fmt.Errorf("parse meters: %w", err)
	}
	sec, err := strconv.Atoi(seconds)
	if err != nil {
		return ports.TravelCost{}, fmt.Errorf("parse seconds: %w", err)
	}
	return ports.TravelCost{DistanceMeters: m, DurationSeconds: sec, Status: ports.ElementOK}, nil
}
