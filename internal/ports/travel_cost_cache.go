package ports

import (
	"context"

	"journey-synthesis-service/internal/domain"
)

// Directed coordinate pair used as a cache key.
type CoordinatePair struct {
	From domain.Coordinates
	To   domain.Coordinates
}

// Port: persistent storage for provider travel costs. Only OK elements are stored.
type TravelCostCache interface {
	GetMany(ctx context.Context, pairs []CoordinatePair) (map[CoordinatePair]TravelCost, error)
	PutMany(ctx context.Context, costs map[CoordinatePair]TravelCost) error
}
