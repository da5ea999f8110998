package distance

import (
	"context"
	"errors"
	"log"

	"journey-synthesis-service/internal/domain"
	"journey-synthesis-service/internal/platform/obs"
	"journey-synthesis-service/internal/ports"
)

// CachedTravelCostProvider serves matrix requests from a persistent cache and
// only calls the wrapped provider when some pair is missing. Cache failures
// are logged and never fail the request.
type CachedTravelCostProvider struct {
	Provider ports.TravelCostProvider
	Cache    ports.TravelCostCache
}

func NewCachedTravelCostProvider(provider ports.TravelCostProvider, cache ports.TravelCostCache) (*CachedTravelCostProvider, error) {
	if provider == nil {
		return nil, errors.New("cached travel cost provider: provider is nil")
	}
	return &CachedTravelCostProvider{Provider: provider, Cache: cache}, nil
}

func (c *CachedTravelCostProvider) MaxMatrixElements() int { return ports.MaxElements(c.Provider) }

func (c *CachedTravelCostProvider) GetMatrix(
	ctx context.Context,
	origins, destinations []domain.Coordinates,
) (_ [][]ports.TravelCost, err error) {
	defer obs.Time(ctx, "travelcost.cached.GetMatrix")(&err)

	if c.Cache == nil {
		return c.Provider.GetMatrix(ctx, origins, destinations)
	}

	pairs := make([]ports.CoordinatePair, 0, len(origins)*len(destinations))
	for _, o := range origins {
		for _, d := range destinations {
			pairs = append(pairs, ports.CoordinatePair{From: o, To: d})
		}
	}

	hits, err := c.Cache.GetMany(ctx, pairs)
	if err != nil {
		log.Printf("travel cost cache read failed (continuing) err=%v", err)
		hits = nil
	}

	if len(hits) > 0 && allCached(hits, origins, destinations) {
		out := make([][]ports.TravelCost, len(origins))
		for i, o := range origins {
			out[i] = make([]ports.TravelCost, len(destinations))
			for j, d := range destinations {
				if o == d {
					out[i][j] = ports.TravelCost{Status: ports.ElementOK}
					continue
				}
				out[i][j] = hits[ports.CoordinatePair{From: o, To: d}]
			}
		}
		return out, nil
	}

	out, err := c.Provider.GetMatrix(ctx, origins, destinations)
	if err != nil {
		return nil, err
	}

	fresh := make(map[ports.CoordinatePair]ports.TravelCost, len(pairs))
	for i, o := range origins {
		for j, d := range destinations {
			if i < len(out) && j < len(out[i]) && out[i][j].Status == ports.ElementOK {
				fresh[ports.CoordinatePair{From: o, To: d}] = out[i][j]
			}
		}
	}
	if err := c.Cache.PutMany(ctx, fresh); err != nil {
		log.Printf("travel cost cache write failed (continuing) err=%v", err)
	}
	return out, nil
}

func allCached(hits map[ports.CoordinatePair]ports.TravelCost, origins, destinations []domain.Coordinates) bool {
	for _, o := range origins {
		for _, d := range destinations {
			if o == d {
				continue
			}
			if _, ok := hits[ports.CoordinatePair{From: o, To: d}]; !ok {
				return false
			}
		}
	}
	return true
}
