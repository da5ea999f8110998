package services

import (
	"math"

	"journey-synthesis-service/internal/domain"
)

// NearestNeighborOrder reorders the interior of route with a greedy
// nearest-neighbor pass over matrix travel minutes. route[0] stays first and,
// with keepLast, the final entry stays last. Stops unreachable from the
// current position are appended in their original order.
//
// The pass minimizes immediate travel time at each step; it does not attempt
// global optimization. Ties resolve to the lower place id.
func NearestNeighborOrder(m *domain.TravelCostMatrix, route []int, keepLast bool) []int {
	if len(route) < 3 {
		return append([]int(nil), route...)
	}

	interior := route[1:]
	var last []int
	if keepLast {
		interior = route[1 : len(route)-1]
		last = route[len(route)-1:]
	}

	remaining := append([]int(nil), interior...)
	out := make([]int, 0, len(route))
	out = append(out, route[0])
	current := route[0]

	for len(remaining) > 0 {
		best, bestMinutes := -1, math.Inf(1)
		for k, idx := range remaining {
			d, ok := m.Minutes(current, idx)
			if !ok {
				continue
			}
			// Tie-breaker ensures deterministic ordering when durations are equal.
			if d < bestMinutes || (d == bestMinutes && best >= 0 && m.Places[idx].ID < m.Places[remaining[best]].ID) {
				best, bestMinutes = k, d
			}
		}
		if best < 0 {
			out = append(out, remaining...)
			break
		}
		current = remaining[best]
		out = append(out, current)
		remaining = append(remaining[:best], remaining[best+1:]...)
	}

	return append(out, last...)
}

// reorderIfNoWorse applies NearestNeighborOrder when it does not lengthen the
// journey's total travel time (including the closing leg when closeTo >= 0).
func reorderIfNoWorse(m *domain.TravelCostMatrix, route []int, keepLast bool, closeTo int) []int {
	reordered := NearestNeighborOrder(m, route, keepLast)
	if closedTravel(m, reordered, closeTo) <= closedTravel(m, route, closeTo) {
		return reordered
	}
	return route
}

func closedTravel(m *domain.TravelCostMatrix, route []int, closeTo int) float64 {
	if closeTo >= 0 {
		return travelMinutes(m, append(append([]int(nil), route...), closeTo))
	}
	return travelMinutes(m, route)
}
