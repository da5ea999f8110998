package services

import (
	"fmt"
	"testing"

	"journey-synthesis-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetCandidateCount(t *testing.T) {
	cases := []struct {
		c    domain.Constraints
		want int
	}{
		{domain.Constraints{MaxDurationMinutes: 60, MaxBudget: 20}, 6},
		{domain.Constraints{MaxDurationMinutes: 180, MaxBudget: 20}, 7},
		{domain.Constraints{MaxDurationMinutes: 300, MaxBudget: 200}, 9},
		{domain.Constraints{MaxDurationMinutes: 600, MaxBudget: 500}, MaxMatrixCandidates},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, TargetCandidateCount(tc.c), "constraints %+v", tc.c)
	}
}

func TestSelectCandidatesCapsPerCategory(t *testing.T) {
	var places []domain.Place
	for i := range 12 {
		places = append(places, testPlace(fmt.Sprintf("cafe-%02d", i), "cafe", offset(origin, float64(100*i), 0)).WithDefaults())
	}
	for i := range 3 {
		places = append(places, testPlace(fmt.Sprintf("museum-%d", i), "museum", offset(origin, 0, float64(300*i))).WithDefaults())
	}

	in := SelectionInput{
		Places:      places,
		Preferences: domain.PreferenceSet{"cafe": true},
		Constraints: domain.Constraints{MaxDurationMinutes: 120, MaxBudget: 50},
		Mode:        domain.ModeClosedLoop,
		Start:       origin,
	}
	got := SelectCandidates(in)
	require.Len(t, got, 6)

	counts := map[string]int{}
	for _, p := range got {
		counts[p.PrimaryCategory()]++
	}
	assert.Equal(t, 2, counts["museum"])
	assert.Equal(t, 4, counts["cafe"])

	assert.Equal(t, got, SelectCandidates(in), "selection must be deterministic")
}

func TestSelectCandidatesDropsOffCorridorPlaces(t *testing.T) {
	end := offset(origin, 5000, 0)
	places := []domain.Place{testPlace("far-away", "museum", offset(origin, 0, 20000)).WithDefaults()}
	for i := range 6 {
		at := offset(origin, float64(700*(i+1)), float64(100*(i%2)))
		places = append(places, testPlace(fmt.Sprintf("on-route-%d", i), "museum", at).WithDefaults())
	}

	got := SelectCandidates(SelectionInput{
		Places:      places,
		Constraints: domain.Constraints{MaxDurationMinutes: 120, MaxBudget: 50},
		Mode:        domain.ModePointToPoint,
		Start:       origin,
		End:         &end,
	})
	require.Len(t, got, 6)
	for _, p := range got {
		assert.NotEqual(t, "far-away", p.ID)
	}
}

func TestSelectCandidatesKeepsSmallPointToPointPool(t *testing.T) {
	end := offset(origin, 5000, 0)
	got := SelectCandidates(SelectionInput{
		Places: []domain.Place{
			testPlace("far-away", "museum", offset(origin, 0, 20000)).WithDefaults(),
			testPlace("on-route", "museum", offset(origin, 2500, 100)).WithDefaults(),
		},
		Constraints: domain.Constraints{MaxDurationMinutes: 120, MaxBudget: 50},
		Mode:        domain.ModePointToPoint,
		Start:       origin,
		End:         &end,
	})
	require.Len(t, got, 2)
	assert.Equal(t, "on-route", got[0].ID, "corridor places still rank first")
}

func TestSelectCandidatesWidensCorridorForNearbyEndpoints(t *testing.T) {
	end := offset(origin, 300, 0)
	c := domain.Constraints{MaxDurationMinutes: 480, MaxBudget: 200}
	require.Equal(t, MaxMatrixCandidates, TargetCandidateCount(c))

	places := []domain.Place{testPlace("far-away", "park", offset(origin, 0, 20000)).WithDefaults()}
	for i := range MaxMatrixCandidates {
		at := offset(origin, float64(100*i), 1200)
		places = append(places, testPlace(fmt.Sprintf("cafe-%02d", i), "cafe", at).WithDefaults())
	}

	got := SelectCandidates(SelectionInput{
		Places:      places,
		Constraints: c,
		Mode:        domain.ModePointToPoint,
		Start:       origin,
		End:         &end,
	})
	require.Len(t, got, MaxMatrixCandidates)
	for _, p := range got {
		assert.NotEqual(t, "far-away", p.ID)
	}
}

func TestCorridorFloorMeters(t *testing.T) {
	cases := []struct {
		minutes int
		want    float64
	}{
		{20, 500},
		{60, 600},
		{480, 4800},
		{900, 5000},
	}
	for _, tc := range cases {
		got := CorridorFloorMeters(domain.Constraints{MaxDurationMinutes: tc.minutes, MaxBudget: 50})
		assert.Equal(t, tc.want, got, "minutes %d", tc.minutes)
	}
}

func TestSelectCandidatesReturnsAllWhenUnderTarget(t *testing.T) {
	places := []domain.Place{
		testPlace("b", "park", offset(origin, 500, 0)),
		testPlace("a", "cafe", offset(origin, 200, 0)),
	}
	got := SelectCandidates(SelectionInput{
		Places:      places,
		Constraints: domain.Constraints{MaxDurationMinutes: 120, MaxBudget: 50},
		Mode:        domain.ModeClosedLoop,
		Start:       origin,
	})
	assert.Len(t, got, 2)
}
