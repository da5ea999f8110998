package ports

import (
	"context"

	"journey-synthesis-service/internal/domain"
)

const (
	ElementOK = "OK"

	// Assumed single-call element budget for providers that do not declare one.
	DefaultMaxMatrixElements = 100
)

// Distance and travel duration for one origin/destination element.
// Any Status other than ElementOK means the provider found no route.
type TravelCost struct {
	DistanceMeters  int
	DurationSeconds int
	Status          string
}

// Contract for retrieving pairwise travel costs.
type TravelCostProvider interface {
	// Return an len(origins) x len(destinations) grid of travel costs.
	GetMatrix(ctx context.Context, origins, destinations []domain.Coordinates) ([][]TravelCost, error)
}

// Optional extension of TravelCostProvider declaring how many elements one call may request.
type MatrixLimiter interface {
	MaxMatrixElements() int
}

// MaxElements returns the provider's declared limit or DefaultMaxMatrixElements.
func MaxElements(p TravelCostProvider) int {
	if l, ok := p.(MatrixLimiter); ok && l.MaxMatrixElements() > 0 {
		return l.MaxMatrixElements()
	}
	return DefaultMaxMatrixElements
}
