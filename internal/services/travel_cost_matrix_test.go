package services

import (
	"errors"
	"testing"

	"journey-synthesis-service/internal/adapters/distance"
	"journey-synthesis-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matrixPlaces() []domain.Place {
	return []domain.Place{
		testPlace("a", "cafe", origin),
		testPlace("b", "park", offset(origin, 800, 0)),
		testPlace("c", "museum", offset(origin, 0, 900)),
		testPlace("d", "zoo", offset(origin, 1500, 1500)),
	}
}

func TestBuildTravelCostMatrixSingleCall(t *testing.T) {
	places := matrixPlaces()[:3]
	provider := distance.NewMockTravelCostProvider([]distance.MockPair{
		{From: places[0].Location, To: places[1].Location, Meters: 1200, Seconds: 600},
		{From: places[1].Location, To: places[2].Location, Status: "ZERO_RESULTS"},
	})

	m := BuildTravelCostMatrix(t.Context(), provider, places, MatrixAnchors{Start: 0, End: 0})

	assert.Equal(t, [][2]int{{3, 3}}, provider.Calls())

	tc, err := m.Lookup("a", "b")
	require.NoError(t, err)
	assert.Equal(t, 10.0, tc.DurationMinutes)
	assert.Equal(t, 1200.0, tc.DistanceMeters)
	assert.Equal(t, domain.ProvenanceExact, tc.Provenance)

	_, err = m.Lookup("b", "c")
	assert.ErrorIs(t, err, domain.ErrUnreachablePair)
	assert.False(t, m.Approximated())
}

func TestBuildTravelCostMatrixAnchorVectors(t *testing.T) {
	places := matrixPlaces()
	provider := distance.NewMockTravelCostProvider(nil).WithMaxElements(10)

	m := BuildTravelCostMatrix(t.Context(), provider, places, MatrixAnchors{Start: 0, End: 3})

	assert.Equal(t, [][2]int{{1, 4}, {4, 1}}, provider.Calls())
	for j := 1; j < 4; j++ {
		assert.Equal(t, domain.ProvenanceExact, m.At(0, j).Provenance, "start row cell %d", j)
	}
	for i := 0; i < 3; i++ {
		assert.Equal(t, domain.ProvenanceExact, m.At(i, 3).Provenance, "end column cell %d", i)
	}
	assert.Equal(t, domain.ProvenanceApproximated, m.At(1, 2).Provenance)
	assert.Equal(t, domain.ProvenanceApproximated, m.At(3, 0).Provenance)
	assert.True(t, m.At(1, 2).Usable())
}

func TestBuildTravelCostMatrixProviderFailure(t *testing.T) {
	places := matrixPlaces()
	m := BuildTravelCostMatrix(t.Context(), distance.FailingTravelCostProvider{Err: errors.New("quota exceeded")}, places, MatrixAnchors{})

	require.Equal(t, 4, m.Size())
	for i := range places {
		for j := range places {
			_, ok := m.Minutes(i, j)
			assert.True(t, ok, "cell %d,%d", i, j)
		}
	}
	assert.True(t, m.Approximated())
}

func TestBuildTravelCostMatrixNilProvider(t *testing.T) {
	m := BuildTravelCostMatrix(t.Context(), nil, matrixPlaces(), MatrixAnchors{})
	d, ok := m.Minutes(0, 1)
	require.True(t, ok)
	assert.Greater(t, d, 0.0)
	assert.True(t, m.Approximated())
}
