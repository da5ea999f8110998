package services

import (
	"math"

	"journey-synthesis-service/internal/domain"
)

// routeTotals sums visit minutes, leg minutes and cost along route. ok is
// false when any leg is unavailable.
func routeTotals(m *domain.TravelCostMatrix, route []int) (minutes, cost float64, ok bool) {
	for k, idx := range route {
		p := &m.Places[idx]
		minutes += float64(p.VisitDurationMinutes)
		cost += p.EstimatedCost
		if k == 0 {
			continue
		}
		leg, usable := m.Minutes(route[k-1], idx)
		if !usable {
			return minutes, cost, false
		}
		minutes += leg
	}
	return minutes, cost, true
}

// travelMinutes is the sum of leg minutes along route, +Inf when a leg is unavailable.
func travelMinutes(m *domain.TravelCostMatrix, route []int) float64 {
	total := 0.0
	for k := 1; k < len(route); k++ {
		leg, ok := m.Minutes(route[k-1], route[k])
		if !ok {
			return math.Inf(1)
		}
		total += leg
	}
	return total
}

// bestInsertion finds where inserting cand between two consecutive route
// entries adds the least travel time. The first and last entries stay fixed.
func bestInsertion(m *domain.TravelCostMatrix, route []int, cand int) (pos int, delta float64, ok bool) {
	delta = math.Inf(1)
	for k := 1; k < len(route); k++ {
		in, okIn := m.Minutes(route[k-1], cand)
		out, okOut := m.Minutes(cand, route[k])
		if !okIn || !okOut {
			continue
		}
		removed, okRemoved := m.Minutes(route[k-1], route[k])
		if !okRemoved {
			removed = 0
		}
		if d := in + out - removed; d < delta {
			pos, delta, ok = k, d, true
		}
	}
	return pos, delta, ok
}

func insertAt(route []int, pos, idx int) []int {
	out := make([]int, 0, len(route)+1)
	out = append(out, route[:pos]...)
	out = append(out, idx)
	return append(out, route[pos:]...)
}

// within reports whether minutes and cost fit the constraints scaled by ratio.
func within(c domain.Constraints, minutes, cost, ratio float64) bool {
	return minutes <= float64(c.MaxDurationMinutes)*ratio && cost <= c.MaxBudget*ratio
}

func visitedCategories(m *domain.TravelCostMatrix, route []int) map[string]bool {
	visited := map[string]bool{}
	for _, idx := range route {
		for _, c := range m.Places[idx].SpecificCategories() {
			visited[c] = true
		}
	}
	return visited
}
