package services

import (
	"journey-synthesis-service/internal/domain"
)

// Above this combined surplus the journey switches to luxury weighting.
const LuxuryThreshold = 0.75

// Weights of the multi-objective score. Each preset sums to 1.
type Weights struct {
	Rating     float64
	Preference float64
	Diversity  float64
	Efficiency float64
	Value      float64
}

var (
	scarceWeights   = Weights{Rating: 0.15, Preference: 0.15, Diversity: 0.05, Efficiency: 0.40, Value: 0.25}
	balancedWeights = Weights{Rating: 0.30, Preference: 0.25, Diversity: 0.15, Efficiency: 0.17, Value: 0.13}
	luxuryWeights   = Weights{Rating: 0.35, Preference: 0.30, Diversity: 0.20, Efficiency: 0.08, Value: 0.07}
)

// DynamicWeights maps combined surplus in [0,1] to score weights. Scarce
// journeys favour efficiency and value; abundant ones favour rating,
// preference and diversity. Rating weight never decreases and efficiency
// weight never increases as surplus grows.
func DynamicWeights(surplus float64) Weights {
	s := domain.Clamp01(surplus)
	if s > LuxuryThreshold {
		return luxuryWeights
	}
	t := s / LuxuryThreshold
	return Weights{
		Rating:     lerp(scarceWeights.Rating, balancedWeights.Rating, t),
		Preference: lerp(scarceWeights.Preference, balancedWeights.Preference, t),
		Diversity:  lerp(scarceWeights.Diversity, balancedWeights.Diversity, t),
		Efficiency: lerp(scarceWeights.Efficiency, balancedWeights.Efficiency, t),
		Value:      lerp(scarceWeights.Value, balancedWeights.Value, t),
	}
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

const (
	// Detour minutes at which efficiency halves.
	detourHalfMinutes = 15.0
	// Travel minutes at which the locality bonus halves.
	localityHalfMinutes = 10.0

	maxResourceBonus = 0.15
	maxLocalityBonus = 0.10
)

// ScoreInput describes a candidate considered as the next stop after From.
// Anchor is where the journey must finish: the start for closed loops, the
// end for point-to-point journeys.
type ScoreInput struct {
	Matrix      *domain.TravelCostMatrix
	From        int
	Candidate   int
	Anchor      int
	State       domain.ResourceState
	Constraints domain.Constraints
	Preferences domain.PreferenceSet
	// Categories already on the journey.
	Visited map[string]bool
}

type ScoreBreakdown struct {
	Weights       Weights
	Rating        float64
	Preference    float64
	Diversity     float64
	Efficiency    float64
	Value         float64
	ResourceBonus float64
	LocalityBonus float64
	Total         float64
}

// ScoreCandidate returns the candidate's score. ok is false when the legs
// needed to reach the candidate or continue to the anchor are unavailable.
func ScoreCandidate(in ScoreInput) (ScoreBreakdown, bool) {
	m := in.Matrix
	toCand, ok := m.Minutes(in.From, in.Candidate)
	if !ok {
		return ScoreBreakdown{}, false
	}
	candToAnchor, ok := m.Minutes(in.Candidate, in.Anchor)
	if !ok {
		return ScoreBreakdown{}, false
	}
	direct, ok := m.Minutes(in.From, in.Anchor)
	if !ok {
		direct = 0
	}

	p := &m.Places[in.Candidate]
	surplus := in.State.CombinedSurplus(in.Constraints)

	b := ScoreBreakdown{Weights: DynamicWeights(surplus)}
	b.Rating = domain.Clamp01(p.Rating / 5)
	if in.Preferences.Matches(p) {
		b.Preference = 1
	}
	b.Diversity = novelty(p, in.Visited)

	detour := max(0, toCand+candToAnchor-direct)
	b.Efficiency = 1 / (1 + detour/detourHalfMinutes)
	b.Value = b.Rating / (1 + p.EstimatedCost/valueCostScale(in.Constraints))

	timeShare := share(toCand+float64(p.VisitDurationMinutes), in.State.RemainingMinutes(in.Constraints))
	costShare := share(p.EstimatedCost, in.State.RemainingBudget(in.Constraints))
	b.ResourceBonus = maxResourceBonus * (1 - surplus) * (1 - max(timeShare, costShare))
	b.LocalityBonus = maxLocalityBonus / (1 + toCand/localityHalfMinutes)

	w := b.Weights
	b.Total = w.Rating*b.Rating +
		w.Preference*b.Preference +
		w.Diversity*b.Diversity +
		w.Efficiency*b.Efficiency +
		w.Value*b.Value +
		b.ResourceBonus +
		b.LocalityBonus
	return b, true
}

// Cost at which a place's value score halves.
func valueCostScale(c domain.Constraints) float64 {
	return max(10, c.MaxBudget*0.1)
}

// novelty is the fraction of the place's specific categories not yet visited.
func novelty(p *domain.Place, visited map[string]bool) float64 {
	specific := p.SpecificCategories()
	if len(specific) == 0 {
		return 0
	}
	fresh := 0
	for _, c := range specific {
		if !visited[c] {
			fresh++
		}
	}
	return float64(fresh) / float64(len(specific))
}

func newCategories(p *domain.Place, visited map[string]bool) int {
	n := 0
	for _, c := range p.SpecificCategories() {
		if !visited[c] {
			n++
		}
	}
	return n
}

func share(part, whole float64) float64 {
	if whole <= 0 {
		if part > 0 {
			return 1
		}
		return 0
	}
	return domain.Clamp01(part / whole)
}
