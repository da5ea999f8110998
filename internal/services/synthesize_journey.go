package services

import (
	"context"
	"fmt"
	"slices"

	"journey-synthesis-service/internal/domain"
	"journey-synthesis-service/internal/geo"
	"journey-synthesis-service/internal/platform/obs"
	"journey-synthesis-service/internal/ports"
)

// A candidate this close to a requested endpoint becomes that endpoint.
const EndpointSnapMeters = 150.0

const (
	startPointID = "start"
	endPointID   = "end"
)

type SynthesizeRequest struct {
	Candidates  []domain.Place
	Preferences domain.PreferenceSet
	Constraints domain.Constraints
	Mode        domain.JourneyMode
	Start       domain.Coordinates
	// Required for point-to-point journeys, ignored for closed loops.
	End *domain.Coordinates
	// Overrides the content-derived journey id when set.
	JourneyID string
}

func (r SynthesizeRequest) Validate() error {
	if !r.Mode.Valid() {
		return fmt.Errorf("%w: unknown mode %q", domain.ErrInvalidConstraints, r.Mode)
	}
	if err := r.Constraints.Validate(); err != nil {
		return err
	}
	if err := r.Start.Validate(); err != nil {
		return fmt.Errorf("%w: start: %v", domain.ErrInvalidConstraints, err)
	}
	if r.Mode == domain.ModePointToPoint {
		if r.End == nil {
			return fmt.Errorf("%w: point-to-point journey needs an end point", domain.ErrInvalidConstraints)
		}
		if err := r.End.Validate(); err != nil {
			return fmt.Errorf("%w: end: %v", domain.ErrInvalidConstraints, err)
		}
	}
	return nil
}

// SynthesizeJourney filters and selects candidates, builds the travel-cost
// matrix and constructs a journey for the requested mode.
//
// ErrNoCandidatesFound comes with a nil journey. ErrInfeasibleConstraints
// comes with the minimal journey, its Outcome set accordingly. Provider
// failure is not an error: the journey is built on geometric estimates and
// marked Approximated.
func SynthesizeJourney(ctx context.Context, req SynthesizeRequest, provider ports.TravelCostProvider) (j *domain.Journey, err error) {
	defer obs.Time(ctx, "services.synthesize_journey")(&err)

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("synthesize journey: %w", err)
	}

	pool := make([]domain.Place, 0, len(req.Candidates))
	for _, p := range req.Candidates {
		pool = append(pool, p.WithDefaults())
	}
	filtered := FilterCandidates(pool)
	if len(filtered) == 0 {
		return nil, fmt.Errorf("synthesize journey: %w", domain.ErrNoCandidatesFound)
	}

	if req.Mode == domain.ModeClosedLoop {
		j, err = synthesizeClosedLoop(ctx, req, filtered, provider)
	} else {
		j, err = synthesizePointToPoint(ctx, req, filtered, provider)
	}
	if j != nil && req.JourneyID != "" {
		j.ID = req.JourneyID
	}
	if err != nil {
		return j, fmt.Errorf("synthesize journey: %w", err)
	}
	return j, nil
}

func synthesizeClosedLoop(
	ctx context.Context,
	req SynthesizeRequest,
	filtered []domain.Place,
	provider ports.TravelCostProvider,
) (*domain.Journey, error) {
	start, pool := resolveEndpoint(req.Start, filtered, startPointID)
	start.IsStartPoint = true

	selected := SelectCandidates(SelectionInput{
		Places:      pool,
		Preferences: req.Preferences,
		Constraints: req.Constraints,
		Mode:        req.Mode,
		Start:       req.Start,
	})
	if len(selected) == 0 {
		return nil, domain.ErrNoCandidatesFound
	}

	places := append([]domain.Place{start}, selected...)
	m := BuildTravelCostMatrix(ctx, provider, places, MatrixAnchors{Start: 0, End: 0})

	res := BuildClosedLoop(ClosedLoopInput{
		Matrix:      m,
		Start:       0,
		Constraints: req.Constraints,
		Preferences: req.Preferences,
	})
	if len(res.Route) < 2 {
		j := AssembleJourney(m, res.Route, req.Mode, false)
		j.Outcome = domain.OutcomeInfeasibleConstraints
		return j, domain.ErrInfeasibleConstraints
	}

	closeTo := -1
	if res.ReturnLeg {
		closeTo = 0
	}
	route := reorderIfNoWorse(m, res.Route, false, closeTo)
	return AssembleJourney(m, route, req.Mode, res.ReturnLeg), nil
}

func synthesizePointToPoint(
	ctx context.Context,
	req SynthesizeRequest,
	filtered []domain.Place,
	provider ports.TravelCostProvider,
) (*domain.Journey, error) {
	start, pool := resolveEndpoint(req.Start, filtered, startPointID)
	end, pool := resolveEndpoint(*req.End, pool, endPointID)
	start.IsStartPoint = true
	end.IsEndPoint = true

	selected := SelectCandidates(SelectionInput{
		Places:      pool,
		Preferences: req.Preferences,
		Constraints: req.Constraints,
		Mode:        req.Mode,
		Start:       req.Start,
		End:         req.End,
	})

	places := make([]domain.Place, 0, len(selected)+2)
	places = append(places, start)
	places = append(places, selected...)
	places = append(places, end)
	last := len(places) - 1
	m := BuildTravelCostMatrix(ctx, provider, places, MatrixAnchors{Start: 0, End: last})

	res := BuildPointToPoint(PointToPointInput{
		Matrix:      m,
		Start:       0,
		End:         last,
		Constraints: req.Constraints,
		Preferences: req.Preferences,
	})
	if res.Infeasible {
		j := AssembleJourney(m, []int{0, last}, req.Mode, false)
		j.Outcome = domain.OutcomeInfeasibleConstraints
		return j, domain.ErrInfeasibleConstraints
	}

	route := repairEndpoints(res.Route, 0, last)
	route = reorderIfNoWorse(m, route, true, -1)
	return AssembleJourney(m, route, req.Mode, false), nil
}

// resolveEndpoint snaps at to the nearest candidate within EndpointSnapMeters
// and removes it from the pool. With no candidate in range a virtual place
// with the given id is placed at the exact coordinates.
func resolveEndpoint(at domain.Coordinates, candidates []domain.Place, id string) (domain.Place, []domain.Place) {
	if i, d := geo.Nearest(at, candidates); i >= 0 && d <= EndpointSnapMeters {
		rest := slices.Delete(slices.Clone(candidates), i, i+1)
		return candidates[i], rest
	}
	return domain.Place{
		ID:             id,
		Name:           id,
		Location:       at,
		BusinessStatus: domain.BusinessOperational,
		Virtual:        true,
	}, candidates
}

// repairEndpoints forces start to the front and end to the back of route.
func repairEndpoints(route []int, start, end int) []int {
	out := make([]int, 0, len(route))
	out = append(out, start)
	for _, idx := range route {
		if idx != start && idx != end {
			out = append(out, idx)
		}
	}
	return append(out, end)
}
