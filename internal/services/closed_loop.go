package services

import (
	"cmp"
	"slices"

	"journey-synthesis-service/internal/domain"
)

const (
	ClosedLoopSoftCap = 10

	// Above this combined surplus the next stop is the most category-diverse
	// of the top diversityTopK candidates instead of the single best.
	diversitySurplusThreshold = 0.4
	diversityTopK             = 3
)

type loopPhase int

const (
	phaseAtStart loopPhase = iota
	phaseExpanding
	phaseReturning
	phaseDone
)

type ClosedLoopInput struct {
	Matrix      *domain.TravelCostMatrix
	Start       int
	Constraints domain.Constraints
	Preferences domain.PreferenceSet
}

type ClosedLoopResult struct {
	// Matrix indices in visit order, starting with Start. The return to
	// Start is not repeated here; ReturnLeg reports whether it fits.
	Route     []int
	ReturnLeg bool
	State     domain.ResourceState
}

type scoredCandidate struct {
	idx   int
	score float64
}

// BuildClosedLoop grows a journey from Start one stop at a time. A candidate
// is feasible only if reaching it, visiting it and returning to Start still
// fits both constraints, so the return leg always fits when any stop was added.
func BuildClosedLoop(in ClosedLoopInput) ClosedLoopResult {
	m := in.Matrix
	res := ClosedLoopResult{Route: []int{in.Start}}
	remaining := make([]int, 0, m.Size())
	visited := map[string]bool{}

	for phase := phaseAtStart; phase != phaseDone; {
		switch phase {
		case phaseAtStart:
			start := &m.Places[in.Start]
			res.State = res.State.Advance(float64(start.VisitDurationMinutes), start.EstimatedCost)
			for i := 0; i < m.Size(); i++ {
				if i != in.Start {
					remaining = append(remaining, i)
				}
			}
			phase = phaseExpanding

		case phaseExpanding:
			if len(res.Route)-1 >= ClosedLoopSoftCap {
				phase = phaseReturning
				continue
			}
			cur := res.Route[len(res.Route)-1]
			ranked := rankFeasible(in, cur, remaining, res.State, visited)
			if len(ranked) == 0 {
				phase = phaseReturning
				continue
			}

			next := ranked[0].idx
			if res.State.CombinedSurplus(in.Constraints) > diversitySurplusThreshold {
				next = mostDiverse(m, ranked[:min(diversityTopK, len(ranked))], visited)
			}

			leg, _ := m.Minutes(cur, next)
			p := &m.Places[next]
			res.State = res.State.Advance(leg+float64(p.VisitDurationMinutes), p.EstimatedCost)
			res.Route = append(res.Route, next)
			for _, c := range p.SpecificCategories() {
				visited[c] = true
			}
			remaining = slices.DeleteFunc(remaining, func(i int) bool { return i == next })

		case phaseReturning:
			last := res.Route[len(res.Route)-1]
			if len(res.Route) > 1 {
				if back, ok := m.Minutes(last, in.Start); ok &&
					res.State.ElapsedMinutes+back <= float64(in.Constraints.MaxDurationMinutes) {
					res.State = res.State.Advance(back, 0)
					res.ReturnLeg = true
				}
			}
			phase = phaseDone
		}
	}
	return res
}

// rankFeasible scores every candidate whose visit plus return fits, best first.
func rankFeasible(
	in ClosedLoopInput,
	cur int,
	remaining []int,
	state domain.ResourceState,
	visited map[string]bool,
) []scoredCandidate {
	m := in.Matrix
	maxMinutes := float64(in.Constraints.MaxDurationMinutes)

	out := make([]scoredCandidate, 0, len(remaining))
	for _, idx := range remaining {
		to, ok := m.Minutes(cur, idx)
		if !ok {
			continue
		}
		back, ok := m.Minutes(idx, in.Start)
		if !ok {
			continue
		}
		p := &m.Places[idx]
		if state.ElapsedMinutes+to+float64(p.VisitDurationMinutes)+back > maxMinutes ||
			state.SpentBudget+p.EstimatedCost > in.Constraints.MaxBudget {
			continue
		}
		b, ok := ScoreCandidate(ScoreInput{
			Matrix:      m,
			From:        cur,
			Candidate:   idx,
			Anchor:      in.Start,
			State:       state,
			Constraints: in.Constraints,
			Preferences: in.Preferences,
			Visited:     visited,
		})
		if !ok {
			continue
		}
		out = append(out, scoredCandidate{idx: idx, score: b.Total})
	}

	sortScored(m, out)
	return out
}

func sortScored(m *domain.TravelCostMatrix, s []scoredCandidate) {
	slices.SortFunc(s, func(a, b scoredCandidate) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		return cmp.Compare(m.Places[a.idx].ID, m.Places[b.idx].ID)
	})
}

// mostDiverse picks the candidate introducing the most new categories; ties keep rank order.
func mostDiverse(m *domain.TravelCostMatrix, top []scoredCandidate, visited map[string]bool) int {
	best, bestNew := top[0].idx, -1
	for _, c := range top {
		if n := newCategories(&m.Places[c.idx], visited); n > bestNew {
			best, bestNew = c.idx, n
		}
	}
	return best
}
