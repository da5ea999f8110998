package services

import (
	"context"
	"errors"
	"fmt"

	"journey-synthesis-service/internal/domain"
	"journey-synthesis-service/internal/geo"
	"journey-synthesis-service/internal/ports"
)

const DefaultSearchRadiusMeters = 3000

type PlanJourneyRequest struct {
	Preferences  domain.PreferenceSet
	Constraints  domain.Constraints
	Mode         domain.JourneyMode
	Start        domain.Coordinates
	End          *domain.Coordinates
	RadiusMeters int
}

// PlanJourney fetches candidates from the catalog around the journey's
// endpoints and synthesizes a journey from them. Point-to-point requests also
// search around the midpoint with a radius covering the corridor.
func PlanJourney(
	ctx context.Context,
	req PlanJourneyRequest,
	catalog ports.PlaceCatalog,
	provider ports.TravelCostProvider,
) (*domain.Journey, error) {
	synth := SynthesizeRequest{
		Preferences: req.Preferences,
		Constraints: req.Constraints,
		Mode:        req.Mode,
		Start:       req.Start,
		End:         req.End,
	}
	if err := synth.Validate(); err != nil {
		return nil, fmt.Errorf("plan journey: %w", err)
	}

	places, err := FetchCandidates(ctx, catalog, FetchRequest{
		Areas:      searchAreas(req),
		Categories: req.Preferences.Active(),
	})
	if err != nil {
		return nil, fmt.Errorf("plan journey: %w", err)
	}

	synth.Candidates = places
	j, err := SynthesizeJourney(ctx, synth, provider)
	if err != nil {
		if errors.Is(err, domain.ErrInfeasibleConstraints) {
			return j, err
		}
		return nil, fmt.Errorf("plan journey: %w", err)
	}
	return j, nil
}

func searchAreas(req PlanJourneyRequest) []SearchArea {
	radius := req.RadiusMeters
	if radius <= 0 {
		radius = DefaultSearchRadiusMeters
	}

	areas := []SearchArea{{Center: req.Start, RadiusMeters: radius}}
	if req.Mode != domain.ModePointToPoint || req.End == nil {
		return areas
	}

	half := int(geo.DistanceMeters(req.Start, *req.End) / 2)
	return append(areas,
		SearchArea{Center: *req.End, RadiusMeters: radius},
		SearchArea{Center: geo.Midpoint(req.Start, *req.End), RadiusMeters: max(radius, half)},
	)
}
