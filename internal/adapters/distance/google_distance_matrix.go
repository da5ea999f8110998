package distance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"journey-synthesis-service/internal/domain"
	"journey-synthesis-service/internal/platform/httpapi"
	"journey-synthesis-service/internal/platform/obs"
	"journey-synthesis-service/internal/ports"
)

const (
	googleMapsBaseURL = "https://maps.googleapis.com"

	// Distance Matrix API limit per server-side request.
	googleMaxMatrixElements = 100
)

type googleMatrixResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Rows         []struct {
		Elements []struct {
			Status   string `json:"status"`
			Distance struct {
				Value int `json:"value"`
			} `json:"distance"`
			Duration struct {
				Value int `json:"value"`
			} `json:"duration"`
		} `json:"elements"`
	} `json:"rows"`
}

// GoogleDistanceMatrixProvider implements TravelCostProvider with the Google
// Distance Matrix API in driving mode. Single attempt per call.
type GoogleDistanceMatrixProvider struct {
	client httpapi.Client
	apiKey string
	mode   string
}

func NewGoogleDistanceMatrixProvider(apiKey string) (*GoogleDistanceMatrixProvider, error) {
	return newGoogleDistanceMatrixProvider(apiKey, googleMapsBaseURL)
}

func newGoogleDistanceMatrixProvider(apiKey, baseURL string) (*GoogleDistanceMatrixProvider, error) {
	if apiKey == "" {
		return nil, errors.New("google maps api key is empty")
	}
	return &GoogleDistanceMatrixProvider{
		client: httpapi.New(baseURL, nil),
		apiKey: apiKey,
		mode:   "driving",
	}, nil
}

func (g *GoogleDistanceMatrixProvider) MaxMatrixElements() int { return googleMaxMatrixElements }

func (g *GoogleDistanceMatrixProvider) GetMatrix(
	ctx context.Context,
	origins, destinations []domain.Coordinates,
) (_ [][]ports.TravelCost, err error) {
	defer obs.Time(ctx, "google.GetMatrix")(&err)

	if len(origins) == 0 || len(destinations) == 0 {
		return [][]ports.TravelCost{}, nil
	}

	req, err := g.client.NewRequest(ctx, http.MethodGet, g.client.BaseURL+"/maps/api/distancematrix/json", nil)
	if err != nil {
		return nil, err
	}
	q := req.URL.Query()
	q.Set("origins", joinLatLng(origins))
	q.Set("destinations", joinLatLng(destinations))
	q.Set("mode", g.mode)
	q.Set("key", g.apiKey)
	req.URL.RawQuery = q.Encode()

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("distance matrix request failed: %w", err)
	}
	defer resp.Body.Close()

	var gr googleMatrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return nil, fmt.Errorf("decode distance matrix response: %w", err)
	}
	if gr.Status != "OK" {
		return nil, fmt.Errorf("distance matrix status %s: %s", gr.Status, gr.ErrorMessage)
	}
	if len(gr.Rows) != len(origins) {
		return nil, fmt.Errorf("expected %d rows; got %d", len(origins), len(gr.Rows))
	}

	out := make([][]ports.TravelCost, len(origins))
	for i, row := range gr.Rows {
		if len(row.Elements) != len(destinations) {
			return nil, fmt.Errorf("row %d: expected %d elements; got %d", i, len(destinations), len(row.Elements))
		}
		out[i] = make([]ports.TravelCost, len(destinations))
		for j, el := range row.Elements {
			out[i][j] = ports.TravelCost{
				DistanceMeters:  el.Distance.Value,
				DurationSeconds: el.Duration.Value,
				Status:          el.Status,
			}
		}
	}
	return out, nil
}

func joinLatLng(coords []domain.Coordinates) string {
	parts := make([]string, len(coords))
	for i, c := range coords {
		parts[i] = c.LatLngString()
	}
	return strings.Join(parts, "|")
}
