// Package geo holds the geometric estimates used when no routing provider answers.
package geo

import (
	"math"

	"journey-synthesis-service/internal/domain"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

const (
	// Road distance over straight-line distance in a typical street grid.
	UrbanDetourFactor = 1.3
	AverageSpeedKmh   = 30.0

	// Point-to-point corridors shorter than this are measured against this floor.
	MinCorridorMeters = 500.0
)

// DistanceMeters is the great-circle distance between a and b.
func DistanceMeters(a, b domain.Coordinates) float64 {
	return orbgeo.DistanceHaversine(a.Point(), b.Point())
}

// EstimateTravel approximates road distance (meters) and driving time (minutes).
func EstimateTravel(a, b domain.Coordinates) (meters, minutes float64) {
	meters = DistanceMeters(a, b) * UrbanDetourFactor
	minutes = meters / 1000 / AverageSpeedKmh * 60
	return meters, minutes
}

func EstimateCost(a, b domain.Coordinates) domain.TravelCost {
	meters, minutes := EstimateTravel(a, b)
	return domain.TravelCost{
		DurationMinutes: minutes,
		DistanceMeters:  meters,
		Status:          domain.CellOK,
		Provenance:      domain.ProvenanceApproximated,
	}
}

// DetourRatio is (|start,p| + |p,end|) / |start,end|. A ratio of 1 means p lies
// on the straight corridor. Very short corridors use MinCorridorMeters.
func DetourRatio(start, end, p domain.Coordinates) float64 {
	return DetourRatioWithFloor(start, end, p, MinCorridorMeters)
}

// DetourRatioWithFloor measures corridors shorter than floorMeters as floorMeters long.
func DetourRatioWithFloor(start, end, p domain.Coordinates, floorMeters float64) float64 {
	direct := max(DistanceMeters(start, end), floorMeters, 1)
	return (DistanceMeters(start, p) + DistanceMeters(p, end)) / direct
}

func Midpoint(a, b domain.Coordinates) domain.Coordinates {
	return domain.CoordinatesFromPoint(orbgeo.Midpoint(a.Point(), b.Point()))
}

// BoundAround is the bounding box of the circle of radius meters around center.
func BoundAround(center domain.Coordinates, radiusMeters float64) orb.Bound {
	return orbgeo.NewBoundAroundPoint(center.Point(), radiusMeters)
}

func WithinRadius(center, p domain.Coordinates, radiusMeters float64) bool {
	if !BoundAround(center, radiusMeters).Contains(p.Point()) {
		return false
	}
	return DistanceMeters(center, p) <= radiusMeters
}

// Nearest returns the index of the place closest to target, or -1 when places is empty.
// Ties resolve to the lower id.
func Nearest(target domain.Coordinates, places []domain.Place) (int, float64) {
	best, bestDist := -1, math.Inf(1)
	for i := range places {
		d := DistanceMeters(target, places[i].Location)
		if d < bestDist || (d == bestDist && best >= 0 && places[i].ID < places[best].ID) {
			best, bestDist = i, d
		}
	}
	return best, bestDist
}
