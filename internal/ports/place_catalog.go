package ports

import (
	"context"

	"journey-synthesis-service/internal/domain"
)

type PlaceQuery struct {
	Anchor       domain.Coordinates
	Category     string
	RadiusMeters int
}

// Port: a boundary for retrieving candidate places around a location.
type PlaceCatalog interface {
	// Return places tagged with the query category within the radius.
	SearchNearby(ctx context.Context, q PlaceQuery) ([]domain.Place, error)
}
