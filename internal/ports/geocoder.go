package ports

import (
	"context"

	"journey-synthesis-service/internal/domain"
)

// Contract for resolving a free-form address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}

// Port: persistent address -> coordinates cache.
type GeocodeCache interface {
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}
