package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTravelCostMatrixDefaults(t *testing.T) {
	m := NewTravelCostMatrix([]Place{{ID: "a"}, {ID: "b"}})

	d, ok := m.Minutes(0, 0)
	assert.True(t, ok)
	assert.Zero(t, d)

	_, ok = m.Minutes(0, 1)
	assert.False(t, ok, "unfilled cells must not be usable")

	_, err := m.Lookup("a", "b")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreachablePair)
}

func TestTravelCostMatrixSetIgnoresDiagonal(t *testing.T) {
	m := NewTravelCostMatrix([]Place{{ID: "a"}, {ID: "b"}})
	m.Set(0, 0, TravelCost{DurationMinutes: 9, Status: CellOK})
	m.Set(0, 1, TravelCost{DurationMinutes: 7, Status: CellOK, Provenance: ProvenanceExact})

	assert.Zero(t, m.At(0, 0).DurationMinutes)

	tc, err := m.Lookup("a", "b")
	require.NoError(t, err)
	assert.Equal(t, 7.0, tc.DurationMinutes)
	assert.False(t, m.Approximated())

	m.Set(1, 0, TravelCost{DurationMinutes: 8, Status: CellOK, Provenance: ProvenanceApproximated})
	assert.True(t, m.Approximated())

	_, err = m.Lookup("a", "zzz")
	assert.Error(t, err)
}
