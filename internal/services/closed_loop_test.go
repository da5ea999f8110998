package services

import (
	"testing"

	"journey-synthesis-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loopMatrix(t *testing.T) *domain.TravelCostMatrix {
	t.Helper()
	places := []domain.Place{
		{ID: "start", Location: origin, Virtual: true},
		testPlace("cafe", "cafe", offset(origin, 600, 0)).WithDefaults(),
		testPlace("park", "park", offset(origin, 0, 700)).WithDefaults(),
		testPlace("museum", "museum", offset(origin, -800, 200)).WithDefaults(),
	}
	return BuildTravelCostMatrix(t.Context(), nil, places, MatrixAnchors{})
}

func TestBuildClosedLoopRespectsConstraints(t *testing.T) {
	m := loopMatrix(t)
	c := domain.Constraints{MaxDurationMinutes: 240, MaxBudget: 100}

	res := BuildClosedLoop(ClosedLoopInput{Matrix: m, Start: 0, Constraints: c})

	require.Len(t, res.Route, 4)
	assert.Equal(t, 0, res.Route[0])
	assert.True(t, res.ReturnLeg)
	assert.LessOrEqual(t, res.State.ElapsedMinutes, 240.0)
	assert.LessOrEqual(t, res.State.SpentBudget, 100.0)

	minutes, cost, ok := routeTotals(m, append(append([]int(nil), res.Route...), 0))
	require.True(t, ok)
	assert.InDelta(t, minutes, res.State.ElapsedMinutes, 1e-9)
	assert.InDelta(t, cost, res.State.SpentBudget, 1e-9)
}

func TestBuildClosedLoopStopsWhenNothingFits(t *testing.T) {
	m := loopMatrix(t)
	c := domain.Constraints{MaxDurationMinutes: 20, MaxBudget: 100}

	res := BuildClosedLoop(ClosedLoopInput{Matrix: m, Start: 0, Constraints: c})

	assert.Equal(t, []int{0}, res.Route)
	assert.False(t, res.ReturnLeg)
}

func TestBuildClosedLoopBudgetLimitsStops(t *testing.T) {
	m := loopMatrix(t)
	// cafe costs 8, museum 15, park is free
	c := domain.Constraints{MaxDurationMinutes: 600, MaxBudget: 10}

	res := BuildClosedLoop(ClosedLoopInput{Matrix: m, Start: 0, Constraints: c})

	var ids []string
	for _, idx := range res.Route[1:] {
		ids = append(ids, m.Places[idx].ID)
	}
	assert.ElementsMatch(t, []string{"cafe", "park"}, ids)
	assert.LessOrEqual(t, res.State.SpentBudget, 10.0)
}

func TestBuildClosedLoopIsDeterministic(t *testing.T) {
	c := domain.Constraints{MaxDurationMinutes: 180, MaxBudget: 30}
	first := BuildClosedLoop(ClosedLoopInput{Matrix: loopMatrix(t), Start: 0, Constraints: c})
	second := BuildClosedLoop(ClosedLoopInput{Matrix: loopMatrix(t), Start: 0, Constraints: c})
	assert.Equal(t, first, second)
}

// diversityMatrix has two cafes next to each other just north of start and
// a museum further east. Visits are short and free so only the scoring
// differs between them.
func diversityMatrix(t *testing.T, start domain.Place) *domain.TravelCostMatrix {
	t.Helper()
	quick := func(p domain.Place) domain.Place {
		p = p.WithDefaults()
		p.VisitDurationMinutes, p.EstimatedCost = 5, 0
		return p
	}
	places := []domain.Place{
		start,
		quick(testPlace("cafe-a", "cafe", offset(origin, 200, 0))),
		quick(testPlace("cafe-b", "cafe", offset(origin, 250, 0))),
		quick(testPlace("museum", "museum", offset(origin, 0, 900))),
	}
	return BuildTravelCostMatrix(t.Context(), nil, places, MatrixAnchors{})
}

func routeIDs(m *domain.TravelCostMatrix, route []int) []string {
	ids := make([]string, len(route))
	for k, idx := range route {
		ids[k] = m.Places[idx].ID
	}
	return ids
}

func TestBuildClosedLoopPrefersNewCategoryWhenAbundant(t *testing.T) {
	m := diversityMatrix(t, domain.Place{ID: "start", Location: origin, Virtual: true})
	in := ClosedLoopInput{
		Matrix:      m,
		Start:       0,
		Constraints: domain.Constraints{MaxDurationMinutes: 600, MaxBudget: 500},
		Preferences: domain.PreferenceSet{"cafe": true},
	}

	// after cafe-a the second cafe outscores the museum
	leg, ok := m.Minutes(0, 1)
	require.True(t, ok)
	state := domain.ResourceState{}.Advance(leg+5, 0)
	require.Greater(t, state.CombinedSurplus(in.Constraints), diversitySurplusThreshold)
	ranked := rankFeasible(in, 1, []int{2, 3}, state, map[string]bool{"cafe": true})
	require.Len(t, ranked, 2)
	assert.Equal(t, "cafe-b", m.Places[ranked[0].idx].ID)

	res := BuildClosedLoop(in)
	assert.Equal(t, []string{"start", "cafe-a", "museum", "cafe-b"}, routeIDs(m, res.Route))
	assert.True(t, res.ReturnLeg)
}

func TestBuildClosedLoopTakesTopScoreWhenTight(t *testing.T) {
	// a costly, slow start leaves little surplus from the first step on
	start := domain.Place{ID: "start", Location: origin, VisitDurationMinutes: 20, EstimatedCost: 7}
	m := diversityMatrix(t, start)
	in := ClosedLoopInput{
		Matrix:      m,
		Start:       0,
		Constraints: domain.Constraints{MaxDurationMinutes: 45, MaxBudget: 8},
		Preferences: domain.PreferenceSet{"cafe": true},
	}
	require.LessOrEqual(t, domain.ResourceState{}.Advance(20, 7).CombinedSurplus(in.Constraints), diversitySurplusThreshold)

	res := BuildClosedLoop(in)
	assert.Equal(t, []string{"start", "cafe-a", "cafe-b", "museum"}, routeIDs(m, res.Route))
	assert.True(t, res.ReturnLeg)
	assert.LessOrEqual(t, res.State.ElapsedMinutes, 45.0)
}
