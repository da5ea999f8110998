package services

import (
	"math"
	"slices"

	"journey-synthesis-service/internal/domain"
	"journey-synthesis-service/internal/geo"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

type RoutingStrategy string

const (
	StrategyDirect       RoutingStrategy = "direct"
	StrategyAllPairs     RoutingStrategy = "all_pairs"
	StrategySingleSource RoutingStrategy = "single_source"
)

const (
	allPairsMaxCandidates = 8
	allPairsMaxMinutes    = 240
	abundantThreshold     = 0.7

	allPairsDetourLimit = 2.5
	minPlausibleDetour  = 2.2
	maxPlausibleDetour  = 4.0

	minutesPerStop     = 60
	minBeneficialScore = 0.25

	maxLocalityScore   = 0.15
	maxPopularityScore = 0.10
)

// ChooseStrategy picks all-pairs shortest paths for small, short or tight
// requests and single-source expansion for large, long or abundant ones.
// reserved is the resource state after the direct endpoint-to-endpoint journey.
func ChooseStrategy(candidateCount int, c domain.Constraints, reserved domain.ResourceState) RoutingStrategy {
	if candidateCount > allPairsMaxCandidates ||
		c.MaxDurationMinutes > allPairsMaxMinutes ||
		reserved.CombinedSurplus(c) >= abundantThreshold {
		return StrategySingleSource
	}
	return StrategyAllPairs
}

// FeasibilityBuffer is the fraction of each constraint a point-to-point
// journey may use: tighter when resources are scarce.
func FeasibilityBuffer(abundance float64) float64 {
	return 0.85 + 0.15*domain.Clamp01(abundance)
}

type PointToPointInput struct {
	Matrix      *domain.TravelCostMatrix
	Start       int
	End         int
	Constraints domain.Constraints
	Preferences domain.PreferenceSet
}

type PointToPointResult struct {
	// Matrix indices in visit order, Start first and End last.
	Route    []int
	Strategy RoutingStrategy
	// Combined surplus left after the direct journey.
	Abundance float64
	// Even the direct journey exceeds the constraints.
	Infeasible bool
}

// BuildPointToPoint routes from Start to End through a subset of the other
// matrix places.
func BuildPointToPoint(in PointToPointInput) PointToPointResult {
	m := in.Matrix
	direct := []int{in.Start, in.End}

	start, end := &m.Places[in.Start], &m.Places[in.End]
	leg, ok := m.Minutes(in.Start, in.End)
	if !ok {
		_, leg = geo.EstimateTravel(start.Location, end.Location)
	}
	reserved := domain.ResourceState{}.Advance(
		leg+float64(start.VisitDurationMinutes+end.VisitDurationMinutes),
		start.EstimatedCost+end.EstimatedCost,
	)

	res := PointToPointResult{Route: direct, Strategy: StrategyDirect, Abundance: reserved.CombinedSurplus(in.Constraints)}
	if !within(in.Constraints, reserved.ElapsedMinutes, reserved.SpentBudget, 1) {
		res.Infeasible = true
		return res
	}

	candidates := make([]int, 0, m.Size())
	for i := 0; i < m.Size(); i++ {
		if i != in.Start && i != in.End {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return res
	}

	res.Strategy = ChooseStrategy(len(candidates), in.Constraints, reserved)
	switch res.Strategy {
	case StrategyAllPairs:
		res.Route = allPairsRoute(in, candidates, res.Abundance)
	default:
		res.Route = singleSourceRoute(in, candidates, res.Abundance)
	}
	return res
}

// allPairsRoute ranks corridor candidates by quality blended with path
// efficiency from all-pairs shortest paths, then accepts them greedily while
// the whole journey stays within the buffered constraints.
func allPairsRoute(in PointToPointInput, candidates []int, abundance float64) []int {
	m := in.Matrix
	w := DynamicWeights(abundance)

	g := newTravelGraph(m, func(i, j int, minutes float64) float64 {
		return minutes * (1.5 - 0.5*appeal(&m.Places[j], in.Preferences, w))
	})
	shortest, _ := path.FloydWarshall(g)

	start, end := m.Places[in.Start].Location, m.Places[in.End].Location
	through := shortest.Weight(int64(in.Start), int64(in.End))
	visited := visitedCategories(m, []int{in.Start, in.End})
	floor := CorridorFloorMeters(in.Constraints)

	ranked := make([]scoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		p := &m.Places[c]
		if geo.DetourRatioWithFloor(start, end, p.Location, floor) > allPairsDetourLimit {
			continue
		}
		via := shortest.Weight(int64(in.Start), int64(c)) + shortest.Weight(int64(c), int64(in.End))
		if math.IsInf(via, 1) {
			continue
		}
		pathEff := 1.0
		if via > 0 && !math.IsInf(through, 1) {
			pathEff = domain.Clamp01(through / via)
		}

		rating := domain.Clamp01(p.Rating / 5)
		pref := 0.0
		if in.Preferences.Matches(p) {
			pref = 1
		}
		value := rating / (1 + p.EstimatedCost/valueCostScale(in.Constraints))

		quality := w.Rating*rating + w.Preference*pref + w.Diversity*novelty(p, visited)
		efficiency := w.Efficiency*pathEff + w.Value*value
		ranked = append(ranked, scoredCandidate{idx: c, score: quality + efficiency})
	}
	sortScored(m, ranked)

	buffer := FeasibilityBuffer(abundance)
	route := []int{in.Start, in.End}
	for _, c := range ranked {
		pos, _, ok := bestInsertion(m, route, c.idx)
		if !ok {
			continue
		}
		next := insertAt(route, pos, c.idx)
		minutes, cost, ok := routeTotals(m, next)
		if ok && within(in.Constraints, minutes, cost, buffer) {
			route = next
		}
	}
	return route
}

// singleSourceRoute expands the journey toward a stop target derived from the
// duration, inserting the best-scoring plausible candidate at its cheapest
// position each round.
func singleSourceRoute(in PointToPointInput, candidates []int, abundance float64) []int {
	m := in.Matrix
	start, end := m.Places[in.Start].Location, m.Places[in.End].Location

	g := newTravelGraph(m, func(_, _ int, minutes float64) float64 { return minutes })
	fromStart := path.DijkstraFrom(simple.Node(in.Start), g)
	toEnd := path.DijkstraFrom(simple.Node(in.End), newReversedGraph(g, m.Size()))
	direct := fromStart.WeightTo(int64(in.End))

	threshold := minPlausibleDetour + (maxPlausibleDetour-minPlausibleDetour)*domain.Clamp01(abundance)
	floor := CorridorFloorMeters(in.Constraints)

	locality := map[int]float64{}
	pool := make([]int, 0, len(candidates))
	for _, c := range candidates {
		p := &m.Places[c]
		ratio := geo.DetourRatioWithFloor(start, end, p.Location, floor)
		if ratio > threshold {
			continue
		}
		via := fromStart.WeightTo(int64(c)) + toEnd.WeightTo(int64(c))
		if math.IsInf(via, 1) {
			continue
		}
		switch {
		case math.IsInf(direct, 1):
			locality[c] = 1 / ratio
		case via > 0:
			locality[c] = domain.Clamp01(direct / via)
		default:
			locality[c] = 1
		}
		pool = append(pool, c)
	}

	target := int(math.Round(float64(in.Constraints.MaxDurationMinutes) / minutesPerStop))
	target = min(max(target, 1), MaxMatrixCandidates)
	buffer := FeasibilityBuffer(abundance)

	route := []int{in.Start, in.End}
	for len(route)-2 < target {
		minutes, cost, _ := routeTotals(m, route)
		state := domain.ResourceState{ElapsedMinutes: minutes, SpentBudget: cost}
		visited := visitedCategories(m, route)

		best, bestPos, bestScore := -1, 0, math.Inf(-1)
		for _, c := range pool {
			if slices.Contains(route, c) {
				continue
			}
			pos, _, ok := bestInsertion(m, route, c)
			if !ok {
				continue
			}
			nm, nc, ok := routeTotals(m, insertAt(route, pos, c))
			if !ok || !within(in.Constraints, nm, nc, buffer) {
				continue
			}
			b, ok := ScoreCandidate(ScoreInput{
				Matrix:      m,
				From:        route[pos-1],
				Candidate:   c,
				Anchor:      in.End,
				State:       state,
				Constraints: in.Constraints,
				Preferences: in.Preferences,
				Visited:     visited,
			})
			if !ok {
				continue
			}
			score := b.Total + maxLocalityScore*locality[c] + maxPopularityScore*popularity(&m.Places[c])
			if score < minBeneficialScore {
				continue
			}
			if score > bestScore || (score == bestScore && m.Places[c].ID < m.Places[best].ID) {
				best, bestPos, bestScore = c, pos, score
			}
		}
		if best < 0 {
			break
		}
		route = insertAt(route, bestPos, best)
	}
	return route
}

// appeal is the preference-weighted attractiveness of a place in [0,1].
func appeal(p *domain.Place, prefs domain.PreferenceSet, w Weights) float64 {
	pref := 0.0
	if prefs.Matches(p) {
		pref = 1
	}
	total := w.Rating + w.Preference
	if total == 0 {
		return 0
	}
	return (w.Rating*domain.Clamp01(p.Rating/5) + w.Preference*pref) / total
}

func popularity(p *domain.Place) float64 {
	return domain.Clamp01(math.Log10(float64(p.ReviewCount)+1) / 3)
}

// newTravelGraph builds a directed graph over matrix indices with one edge per
// usable cell, weighted by weight(i, j, minutes).
func newTravelGraph(m *domain.TravelCostMatrix, weight func(i, j int, minutes float64) float64) *simple.WeightedDirectedGraph {
	g := simple.NewWeightedDirectedGraph(0, math.Inf(1))
	for i := 0; i < m.Size(); i++ {
		g.AddNode(simple.Node(i))
	}
	for i := 0; i < m.Size(); i++ {
		for j := 0; j < m.Size(); j++ {
			if i == j {
				continue
			}
			minutes, ok := m.Minutes(i, j)
			if !ok {
				continue
			}
			g.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(i), T: simple.Node(j), W: weight(i, j, minutes)})
		}
	}
	return g
}

func newReversedGraph(g *simple.WeightedDirectedGraph, n int) *simple.WeightedDirectedGraph {
	r := simple.NewWeightedDirectedGraph(0, math.Inf(1))
	for i := 0; i < n; i++ {
		r.AddNode(simple.Node(i))
	}
	edges := g.WeightedEdges()
	for edges.Next() {
		e := edges.WeightedEdge()
		r.SetWeightedEdge(simple.WeightedEdge{F: e.To(), T: e.From(), W: e.Weight()})
	}
	return r
}
