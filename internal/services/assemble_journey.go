package services

import (
	"fmt"
	"strings"

	"journey-synthesis-service/internal/domain"
	"journey-synthesis-service/internal/geo"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// Name-based journey ids live under this namespace.
var journeyNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("journey-synthesis-service/journey"))

// AssembleJourney turns a route of matrix indices into the stop/leg timeline.
// With returnLeg the first place is appended again as the final stop. Pairs
// without a usable matrix cell get a geometric leg flagged as Fallback.
// The id is derived from the stops, so the same route always gets the same id.
func AssembleJourney(m *domain.TravelCostMatrix, route []int, mode domain.JourneyMode, returnLeg bool) *domain.Journey {
	j := &domain.Journey{
		Mode:      mode,
		Outcome:   domain.OutcomeOK,
		ReturnLeg: returnLeg && len(route) > 1,
	}

	order := append([]int(nil), route...)
	if j.ReturnLeg {
		order = append(order, route[0])
	}

	for k, idx := range order {
		if k > 0 {
			leg := buildLeg(m, order[k-1], idx)
			j.Items = append(j.Items, domain.JourneyItem{Kind: domain.ItemLeg, Leg: &leg})
			j.TotalDurationMinutes += leg.DurationMinutes
			j.TotalDistanceMeters += leg.DistanceMeters
			if leg.Provenance == domain.ProvenanceApproximated {
				j.Approximated = true
			}
		}

		p := m.Places[idx]
		j.Items = append(j.Items, domain.JourneyItem{
			Kind: domain.ItemStop,
			Stop: &domain.Stop{Place: p, VisitOrder: k + 1},
		})
		// the closing revisit of the start is neither visited nor paid for again
		if j.ReturnLeg && k == len(order)-1 {
			continue
		}
		j.TotalDurationMinutes += float64(p.VisitDurationMinutes)
		j.TotalCost += p.EstimatedCost
	}
	j.ID = journeyID(j)
	return j
}

func journeyID(j *domain.Journey) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%t", j.Mode, j.ReturnLeg)
	for _, s := range j.Stops() {
		fmt.Fprintf(&b, "|%s@%.6f,%.6f", s.Place.ID, s.Place.Location.Lat, s.Place.Location.Lon)
	}
	return uuid.NewSHA1(journeyNamespace, []byte(b.String())).String()
}

func buildLeg(m *domain.TravelCostMatrix, from, to int) domain.TravelLeg {
	tc := m.At(from, to)
	leg := domain.TravelLeg{
		FromID: m.Places[from].ID,
		ToID:   m.Places[to].ID,
	}
	if !tc.Usable() {
		tc = geo.EstimateCost(m.Places[from].Location, m.Places[to].Location)
		leg.Fallback = true
	}
	leg.DurationMinutes = tc.DurationMinutes
	leg.DistanceMeters = tc.DistanceMeters
	leg.Provenance = tc.Provenance
	leg.DurationText = FormatMinutes(tc.DurationMinutes)
	leg.DistanceText = humanize.SIWithDigits(tc.DistanceMeters, 1, "m")
	return leg
}

// FormatMinutes renders a travel time as "7 mins" or "1 hour 5 mins".
func FormatMinutes(minutes float64) string {
	total := int(minutes + 0.5)
	if total < 1 {
		return "1 min"
	}
	h, mins := total/60, total%60
	plural := func(n int, unit string) string {
		if n == 1 {
			return fmt.Sprintf("1 %s", unit)
		}
		return fmt.Sprintf("%d %ss", n, unit)
	}
	switch {
	case h == 0:
		return plural(mins, "min")
	case mins == 0:
		return plural(h, "hour")
	default:
		return plural(h, "hour") + " " + plural(mins, "min")
	}
}
