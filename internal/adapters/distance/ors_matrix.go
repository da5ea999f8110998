package distance

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"

	"journey-synthesis-service/internal/domain"
	"journey-synthesis-service/internal/platform/httpapi"
	"journey-synthesis-service/internal/platform/obs"
	"journey-synthesis-service/internal/ports"
)

const (
	orsBaseURL = "https://api.openrouteservice.org"

	// ORS caps a matrix request at 3500 origin/destination routes.
	orsMaxMatrixElements = 3500

	statusNoRoute = "NO_ROUTE"
)

type matrixRequest struct {
	Locations    [][]float64 `json:"locations"`
	Destinations []int       `json:"destinations"`
	Metrics      []string    `json:"metrics"`
	Sources      []int       `json:"sources"`
}

type matrixResponse struct {
	Distances [][]*float64 `json:"distances"`
	Durations [][]*float64 `json:"durations"`
}

// ORSMatrixProvider implements TravelCostProvider using the OpenRouteService
// matrix endpoint. It makes a single attempt per call; callers degrade to
// geometric estimates on failure instead of waiting on retries.
type ORSMatrixProvider struct {
	client  httpapi.Client
	profile string
}

func NewORSMatrixProvider(apiKey string) (*ORSMatrixProvider, error) {
	return newORSMatrixProvider(apiKey, orsBaseURL)
}

func newORSMatrixProvider(apiKey, baseURL string) (*ORSMatrixProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}
	return &ORSMatrixProvider{
		client:  httpapi.New(baseURL, map[string]string{"Authorization": apiKey}),
		profile: "driving-car",
	}, nil
}

func (o *ORSMatrixProvider) MaxMatrixElements() int { return orsMaxMatrixElements }

func (o *ORSMatrixProvider) GetMatrix(
	ctx context.Context,
	origins, destinations []domain.Coordinates,
) (_ [][]ports.TravelCost, err error) {
	defer obs.Time(ctx, "ors.GetMatrix")(&err)

	if len(origins) == 0 || len(destinations) == 0 {
		return [][]ports.TravelCost{}, nil
	}

	endpoint := fmt.Sprintf("%s/v2/matrix/%s", o.client.BaseURL, o.profile)

	locations := make([][]float64, 0, len(origins)+len(destinations))
	sources := make([]int, 0, len(origins))
	for _, c := range origins {
		sources = append(sources, len(locations))
		locations = append(locations, c.CoordsToList())
	}
	destIdx := make([]int, 0, len(destinations))
	for _, c := range destinations {
		destIdx = append(destIdx, len(locations))
		locations = append(locations, c.CoordsToList())
	}

	payload, err := json.Marshal(matrixRequest{
		Locations:    locations,
		Destinations: destIdx,
		Metrics:      []string{"distance", "duration"},
		Sources:      sources,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal matrix request: %w", err)
	}

	req, err := o.client.NewRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("matrix request failed: %w", err)
	}
	defer resp.Body.Close()

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, fmt.Errorf("decode matrix response: %w", err)
	}

	if len(mr.Distances) != len(origins) || len(mr.Durations) != len(origins) {
		return nil, fmt.Errorf(
			"expected %d source rows; got distances=%d durations=%d",
			len(origins), len(mr.Distances), len(mr.Durations),
		)
	}

	out := make([][]ports.TravelCost, len(origins))
	for i := range origins {
		rowDistances, rowDurations := mr.Distances[i], mr.Durations[i]
		if len(rowDistances) != len(destinations) || len(rowDurations) != len(destinations) {
			return nil, fmt.Errorf(
				"row %d lengths do not match destinations: distances=%d durations=%d destinations=%d",
				i, len(rowDistances), len(rowDurations), len(destinations),
			)
		}

		out[i] = make([]ports.TravelCost, len(destinations))
		for j := range destinations {
			metersPtr, secondsPtr := rowDistances[j], rowDurations[j]
			// null means ORS found no route between the two points
			if metersPtr == nil || secondsPtr == nil {
				out[i][j] = ports.TravelCost{Status: statusNoRoute}
				continue
			}
			out[i][j] = ports.TravelCost{
				DistanceMeters:  int(math.Round(*metersPtr)),
				DurationSeconds: int(math.Round(*secondsPtr)),
				Status:          ports.ElementOK,
			}
		}
	}

	return out, nil
}
