package services

import (
	"fmt"
	"testing"

	"journey-synthesis-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChooseStrategy(t *testing.T) {
	tight := domain.Constraints{MaxDurationMinutes: 120, MaxBudget: 40}
	used := domain.ResourceState{ElapsedMinutes: 80, SpentBudget: 30}

	assert.Equal(t, StrategyAllPairs, ChooseStrategy(5, tight, used))
	assert.Equal(t, StrategySingleSource, ChooseStrategy(9, tight, used))
	assert.Equal(t, StrategySingleSource, ChooseStrategy(5, domain.Constraints{MaxDurationMinutes: 300, MaxBudget: 40}, used))
	assert.Equal(t, StrategySingleSource, ChooseStrategy(5, tight, domain.ResourceState{}))
}

func TestFeasibilityBuffer(t *testing.T) {
	assert.InDelta(t, 0.85, FeasibilityBuffer(0), 1e-9)
	assert.InDelta(t, 1.0, FeasibilityBuffer(1), 1e-9)
	assert.InDelta(t, 1.0, FeasibilityBuffer(3), 1e-9)
}

func corridorMatrix(t *testing.T, n int) *domain.TravelCostMatrix {
	t.Helper()
	end := offset(origin, 4000, 0)
	categories := []string{"cafe", "park", "museum", "art_gallery", "bakery"}

	places := []domain.Place{{ID: "start", Location: origin, Virtual: true}}
	for i := range n {
		at := offset(origin, float64(4000*(i+1)/(n+1)), float64(150*(i%3)))
		places = append(places, testPlace(fmt.Sprintf("p%02d", i), categories[i%len(categories)], at).WithDefaults())
	}
	places = append(places, domain.Place{ID: "end", Location: end, Virtual: true})
	return BuildTravelCostMatrix(t.Context(), nil, places, MatrixAnchors{Start: 0, End: len(places) - 1})
}

func assertPointToPoint(t *testing.T, m *domain.TravelCostMatrix, c domain.Constraints, res PointToPointResult) {
	t.Helper()
	require.GreaterOrEqual(t, len(res.Route), 2)
	assert.Equal(t, 0, res.Route[0])
	assert.Equal(t, m.Size()-1, res.Route[len(res.Route)-1])

	minutes, cost, ok := routeTotals(m, res.Route)
	require.True(t, ok)
	assert.LessOrEqual(t, minutes, float64(c.MaxDurationMinutes))
	assert.LessOrEqual(t, cost, c.MaxBudget)

	seen := map[int]bool{}
	for _, idx := range res.Route {
		assert.False(t, seen[idx], "index %d visited twice", idx)
		seen[idx] = true
	}
}

func TestBuildPointToPointAllPairs(t *testing.T) {
	m := corridorMatrix(t, 5)
	// a paid start leaves little surplus, which keeps the search on all pairs
	m.Places[0].VisitDurationMinutes, m.Places[0].EstimatedCost = 90, 15
	c := domain.Constraints{MaxDurationMinutes: 200, MaxBudget: 40}

	res := BuildPointToPoint(PointToPointInput{Matrix: m, Start: 0, End: m.Size() - 1, Constraints: c})

	assert.Equal(t, StrategyAllPairs, res.Strategy)
	assert.False(t, res.Infeasible)
	assert.Greater(t, len(res.Route), 2)
	assertPointToPoint(t, m, c, res)
}

func TestBuildPointToPointSingleSource(t *testing.T) {
	m := corridorMatrix(t, 10)
	c := domain.Constraints{MaxDurationMinutes: 300, MaxBudget: 60}

	res := BuildPointToPoint(PointToPointInput{
		Matrix:      m,
		Start:       0,
		End:         m.Size() - 1,
		Constraints: c,
		Preferences: domain.PreferenceSet{"park": true},
	})

	assert.Equal(t, StrategySingleSource, res.Strategy)
	assert.Greater(t, len(res.Route), 2)
	assert.LessOrEqual(t, len(res.Route)-2, 5)
	assertPointToPoint(t, m, c, res)
}

func TestBuildPointToPointInfeasibleDirect(t *testing.T) {
	places := []domain.Place{
		{ID: "start", Location: origin, Virtual: true},
		testPlace("mid", "cafe", offset(origin, 25000, 0)).WithDefaults(),
		{ID: "end", Location: offset(origin, 50000, 0), Virtual: true},
	}
	m := BuildTravelCostMatrix(t.Context(), nil, places, MatrixAnchors{Start: 0, End: 2})

	res := BuildPointToPoint(PointToPointInput{Matrix: m, Start: 0, End: 2, Constraints: domain.Constraints{MaxDurationMinutes: 60, MaxBudget: 50}})

	assert.True(t, res.Infeasible)
	assert.Equal(t, []int{0, 2}, res.Route)
	assert.Equal(t, StrategyDirect, res.Strategy)
}
