package domain

// Fraction of the idle budget shortfall credited back as budget surplus.
const EfficiencyCorrectionFactor = 0.5

// ResourceState is the running time and money spent while a journey is built.
// It is a value type: Advance returns a new state and never decreases either counter.
type ResourceState struct {
	ElapsedMinutes float64
	SpentBudget    float64
}

func (s ResourceState) Advance(minutes, cost float64) ResourceState {
	return ResourceState{
		ElapsedMinutes: s.ElapsedMinutes + max(0, minutes),
		SpentBudget:    s.SpentBudget + max(0, cost),
	}
}

func (s ResourceState) RemainingMinutes(c Constraints) float64 {
	return float64(c.MaxDurationMinutes) - s.ElapsedMinutes
}

func (s ResourceState) RemainingBudget(c Constraints) float64 {
	return c.MaxBudget - s.SpentBudget
}

func (s ResourceState) TimeSurplus(c Constraints) float64 {
	return surplus(float64(c.MaxDurationMinutes), s.ElapsedMinutes)
}

func (s ResourceState) BudgetSurplus(c Constraints) float64 {
	return surplus(c.MaxBudget, s.SpentBudget)
}

// EffectiveBudgetSurplus credits budget that is being spent slower than time.
// When the journey has used 50% of its time but 10% of its budget, part of
// the 40% shortfall is added back so the scorer leans toward richer stops.
func (s ResourceState) EffectiveBudgetSurplus(c Constraints) float64 {
	bs := s.BudgetSurplus(c)
	if c.MaxDurationMinutes <= 0 || c.MaxBudget <= 0 {
		return bs
	}
	ideal := s.ElapsedMinutes / float64(c.MaxDurationMinutes)
	actual := s.SpentBudget / c.MaxBudget
	shortfall := max(0, ideal-actual)
	return Clamp01(bs + shortfall*EfficiencyCorrectionFactor)
}

// CombinedSurplus averages effective budget surplus and time surplus into [0,1].
func (s ResourceState) CombinedSurplus(c Constraints) float64 {
	return (s.EffectiveBudgetSurplus(c) + s.TimeSurplus(c)) / 2
}

func surplus(limit, used float64) float64 {
	if limit <= 0 {
		return 0
	}
	return Clamp01((limit - used) / limit)
}

func Clamp01(v float64) float64 {
	switch {
	case v != v, v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
