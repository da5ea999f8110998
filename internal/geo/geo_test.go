package geo

import (
	"testing"

	"journey-synthesis-service/internal/domain"

	"github.com/stretchr/testify/assert"
)

var (
	union   = domain.Coordinates{Lon: -122.4075, Lat: 37.7880}
	ferry   = domain.Coordinates{Lon: -122.3937, Lat: 37.7955}
	mission = domain.Coordinates{Lon: -122.4194, Lat: 37.7599}
)

func TestEstimateTravelAppliesDetourAndSpeed(t *testing.T) {
	straight := DistanceMeters(union, ferry)
	meters, minutes := EstimateTravel(union, ferry)

	assert.InDelta(t, straight*UrbanDetourFactor, meters, 1e-6)
	assert.InDelta(t, meters/1000/AverageSpeedKmh*60, minutes, 1e-9)

	tc := EstimateCost(union, ferry)
	assert.Equal(t, domain.ProvenanceApproximated, tc.Provenance)
	assert.True(t, tc.Usable())
}

func TestDetourRatio(t *testing.T) {
	mid := Midpoint(union, mission)
	assert.InDelta(t, 1.0, DetourRatio(union, mission, mid), 0.01)
	assert.Greater(t, DetourRatio(union, mission, ferry), 1.2)
}

func TestDetourRatioWithFloorShortCorridor(t *testing.T) {
	// start and end coincide: the corridor length is the floor
	around := DistanceMeters(union, ferry) * 2
	assert.InDelta(t, around/MinCorridorMeters, DetourRatio(union, union, ferry), 1e-9)
	assert.InDelta(t, around/4000, DetourRatioWithFloor(union, union, ferry, 4000), 1e-9)

	// a floor below the real corridor length changes nothing
	assert.InDelta(t, DetourRatio(union, mission, ferry), DetourRatioWithFloor(union, mission, ferry, 10), 1e-9)
}

func TestWithinRadiusAndNearest(t *testing.T) {
	assert.True(t, WithinRadius(union, ferry, 2000))
	assert.False(t, WithinRadius(union, mission, 2000))

	places := []domain.Place{
		{ID: "b", Location: mission},
		{ID: "a", Location: ferry},
	}
	idx, d := Nearest(union, places)
	assert.Equal(t, 1, idx)
	assert.Greater(t, d, 0.0)

	idx, _ = Nearest(union, nil)
	assert.Equal(t, -1, idx)
}
