package services

import (
	"context"
	"fmt"
	"log"

	"journey-synthesis-service/internal/domain"
	"journey-synthesis-service/internal/geo"
	"journey-synthesis-service/internal/platform/obs"
	"journey-synthesis-service/internal/ports"
)

// Matrix indices of the journey endpoints. End equals Start for closed loops.
type MatrixAnchors struct {
	Start int
	End   int
}

// BuildTravelCostMatrix fills pairwise travel costs for places.
//
// When the full matrix fits in one provider call it is requested in one call.
// Otherwise only the anchor vectors (start->all, all->end) are requested and
// every other cell is estimated geometrically. Provider failure degrades to a
// fully geometric matrix; it is logged and never returned. A nil provider
// means geometric estimates only.
func BuildTravelCostMatrix(
	ctx context.Context,
	provider ports.TravelCostProvider,
	places []domain.Place,
	anchors MatrixAnchors,
) *domain.TravelCostMatrix {
	m := domain.NewTravelCostMatrix(places)
	n := len(places)
	if n < 2 {
		return m
	}
	if provider == nil {
		fillGeometric(m, false)
		return m
	}

	coords := make([]domain.Coordinates, n)
	for i := range places {
		coords[i] = places[i].Location
	}

	var err error
	limit := ports.MaxElements(provider)
	if n*n <= limit {
		err = fetchFull(ctx, provider, m, coords)
	} else {
		err = fetchAnchorVectors(ctx, provider, m, coords, anchors, limit)
	}
	if err != nil {
		log.Printf("req_id=%s op=matrix.fallback places=%d err=%v", obs.RequestID(ctx), n, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err))
		m = domain.NewTravelCostMatrix(places)
		fillGeometric(m, false)
		return m
	}

	fillGeometric(m, true)
	return m
}

func fetchFull(ctx context.Context, provider ports.TravelCostProvider, m *domain.TravelCostMatrix, coords []domain.Coordinates) error {
	rows, err := provider.GetMatrix(ctx, coords, coords)
	if err != nil {
		return err
	}
	if err := checkShape(rows, len(coords), len(coords)); err != nil {
		return err
	}
	for i := range rows {
		for j := range rows[i] {
			applyCell(m, i, j, rows[i][j])
		}
	}
	return nil
}

func fetchAnchorVectors(
	ctx context.Context,
	provider ports.TravelCostProvider,
	m *domain.TravelCostMatrix,
	coords []domain.Coordinates,
	anchors MatrixAnchors,
	limit int,
) error {
	limit = max(1, limit)

	for lo := 0; lo < len(coords); lo += limit {
		hi := min(lo+limit, len(coords))

		out, err := provider.GetMatrix(ctx, coords[anchors.Start:anchors.Start+1], coords[lo:hi])
		if err != nil {
			return fmt.Errorf("start vector: %w", err)
		}
		if err := checkShape(out, 1, hi-lo); err != nil {
			return fmt.Errorf("start vector: %w", err)
		}
		for j := range out[0] {
			applyCell(m, anchors.Start, lo+j, out[0][j])
		}

		in, err := provider.GetMatrix(ctx, coords[lo:hi], coords[anchors.End:anchors.End+1])
		if err != nil {
			return fmt.Errorf("end vector: %w", err)
		}
		if err := checkShape(in, hi-lo, 1); err != nil {
			return fmt.Errorf("end vector: %w", err)
		}
		for i := range in {
			applyCell(m, lo+i, anchors.End, in[i][0])
		}
	}
	return nil
}

func checkShape(rows [][]ports.TravelCost, origins, destinations int) error {
	if len(rows) != origins {
		return fmt.Errorf("expected %d rows, got %d", origins, len(rows))
	}
	for i := range rows {
		if len(rows[i]) != destinations {
			return fmt.Errorf("row %d: expected %d elements, got %d", i, destinations, len(rows[i]))
		}
	}
	return nil
}

// applyCell records a provider element. Non-OK elements stay UNAVAILABLE.
func applyCell(m *domain.TravelCostMatrix, i, j int, tc ports.TravelCost) {
	if i == j {
		return
	}
	if tc.Status != ports.ElementOK {
		m.Set(i, j, domain.TravelCost{Status: domain.CellUnavailable, Provenance: domain.ProvenanceExact})
		return
	}
	m.Set(i, j, domain.TravelCost{
		DurationMinutes: float64(tc.DurationSeconds) / 60,
		DistanceMeters:  float64(tc.DistanceMeters),
		Status:          domain.CellOK,
		Provenance:      domain.ProvenanceExact,
	})
}

// fillGeometric estimates cells. With onlyUnset it leaves cells the provider
// already answered, including the ones it reported as unroutable.
func fillGeometric(m *domain.TravelCostMatrix, onlyUnset bool) {
	for i := range m.Places {
		for j := range m.Places {
			if i == j {
				continue
			}
			if onlyUnset && m.At(i, j).Provenance != "" {
				continue
			}
			m.Set(i, j, geo.EstimateCost(m.Places[i].Location, m.Places[j].Location))
		}
	}
}
