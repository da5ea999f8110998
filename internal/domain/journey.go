package domain

type JourneyMode string

const (
	ModeClosedLoop   JourneyMode = "closed_loop"
	ModePointToPoint JourneyMode = "point_to_point"
)

func (m JourneyMode) Valid() bool { return m == ModeClosedLoop || m == ModePointToPoint }

type Outcome string

const (
	OutcomeOK                    Outcome = "ok"
	OutcomeInfeasibleConstraints Outcome = "infeasible_constraints"
)

// A single visited place. VisitOrder starts at 1 and strictly increases along the journey.
type Stop struct {
	Place      Place
	VisitOrder int
}

// Travel between two consecutive stops. Fallback legs had no usable matrix
// cell and carry a geometric estimate instead.
type TravelLeg struct {
	FromID          string
	ToID            string
	DurationMinutes float64
	DistanceMeters  float64
	DurationText    string
	DistanceText    string
	Provenance      Provenance
	Fallback        bool
}

type ItemKind string

const (
	ItemStop ItemKind = "stop"
	ItemLeg  ItemKind = "travel"
)

// One entry of the journey timeline; exactly one of Stop or Leg is set.
type JourneyItem struct {
	Kind ItemKind
	Stop *Stop
	Leg  *TravelLeg
}

// Journey is the ordered output of synthesis: stops alternating with travel legs.
// For closed-loop journeys with a return leg, the last stop revisits the first place.
type Journey struct {
	ID                   string
	Mode                 JourneyMode
	Items                []JourneyItem
	Outcome              Outcome
	Approximated         bool
	ReturnLeg            bool
	TotalDurationMinutes float64
	TotalDistanceMeters  float64
	TotalCost            float64
}

func (j *Journey) Stops() []Stop {
	var out []Stop
	for _, it := range j.Items {
		if it.Kind == ItemStop && it.Stop != nil {
			out = append(out, *it.Stop)
		}
	}
	return out
}

func (j *Journey) Legs() []TravelLeg {
	var out []TravelLeg
	for _, it := range j.Items {
		if it.Kind == ItemLeg && it.Leg != nil {
			out = append(out, *it.Leg)
		}
	}
	return out
}
