package distance

import (
	"context"
	"errors"
	"math"
	"sync"

	"journey-synthesis-service/internal/domain"
	"journey-synthesis-service/internal/geo"
	"journey-synthesis-service/internal/ports"
)

type MockPair struct {
	From, To domain.Coordinates
	Meters   int
	Seconds  int
	// Non-empty marks the pair as unroutable with this status.
	Status string
}

// MockTravelCostProvider answers explicit pairs and falls back to a geometric
// estimate for everything else. It records every call for assertions.
type MockTravelCostProvider struct {
	m           map[[2]domain.Coordinates]ports.TravelCost
	maxElements int

	mu    sync.Mutex
	calls [][2]int
}

func NewMockTravelCostProvider(pairs []MockPair) *MockTravelCostProvider {
	m := make(map[[2]domain.Coordinates]ports.TravelCost, len(pairs))
	for _, p := range pairs {
		status := p.Status
		if status == "" {
			status = ports.ElementOK
		}
		m[[2]domain.Coordinates{p.From, p.To}] = ports.TravelCost{
			DistanceMeters:  p.Meters,
			DurationSeconds: p.Seconds,
			Status:          status,
		}
	}
	return &MockTravelCostProvider{m: m}
}

// WithMaxElements sets the element limit the mock reports.
func (p *MockTravelCostProvider) WithMaxElements(n int) *MockTravelCostProvider {
	p.maxElements = n
	return p
}

func (p *MockTravelCostProvider) MaxMatrixElements() int { return p.maxElements }

// Calls returns the (origins, destinations) shape of every GetMatrix call so far.
func (p *MockTravelCostProvider) Calls() [][2]int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([][2]int(nil), p.calls...)
}

func (p *MockTravelCostProvider) GetMatrix(
	ctx context.Context,
	origins, destinations []domain.Coordinates,
) ([][]ports.TravelCost, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.calls = append(p.calls, [2]int{len(origins), len(destinations)})
	p.mu.Unlock()

	out := make([][]ports.TravelCost, len(origins))
	for i, o := range origins {
		out[i] = make([]ports.TravelCost, len(destinations))
		for j, d := range destinations {
			if tc, ok := p.m[[2]domain.Coordinates{o, d}]; ok {
				out[i][j] = tc
				continue
			}
			meters, minutes := geo.EstimateTravel(o, d)
			out[i][j] = ports.TravelCost{
				DistanceMeters:  int(math.Round(meters)),
				DurationSeconds: int(math.Round(minutes * 60)),
				Status:          ports.ElementOK,
			}
		}
	}
	return out, nil
}

// FailingTravelCostProvider always returns Err; it exercises degradation paths.
type FailingTravelCostProvider struct {
	Err error
}

func (f FailingTravelCostProvider) GetMatrix(context.Context, []domain.Coordinates, []domain.Coordinates) ([][]ports.TravelCost, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return nil, errors.New("travel cost provider unavailable")
}
