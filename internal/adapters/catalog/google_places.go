package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"journey-synthesis-service/internal/domain"
	"journey-synthesis-service/internal/platform/httpapi"
	"journey-synthesis-service/internal/platform/obs"
	"journey-synthesis-service/internal/ports"
)

const googleMapsBaseURL = "https://maps.googleapis.com"

type placesResponse struct {
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message"`
	Results      []placeResult `json:"results"`
}

type placeResult struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	BusinessStatus   *string  `json:"business_status,omitempty"`
	Rating           *float64 `json:"rating,omitempty"`
	UserRatingsTotal *int     `json:"user_ratings_total,omitempty"`
	PriceLevel       *int     `json:"price_level,omitempty"`
	Types            []string `json:"types"`
	Geometry         struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

// GooglePlacesCatalog implements PlaceCatalog with the Places Nearby Search API.
// One request per category; only the first result page is read.
type GooglePlacesCatalog struct {
	client httpapi.Client
	apiKey string
}

func NewGooglePlacesCatalog(apiKey string) (*GooglePlacesCatalog, error) {
	return newGooglePlacesCatalog(apiKey, googleMapsBaseURL)
}

func newGooglePlacesCatalog(apiKey, baseURL string) (*GooglePlacesCatalog, error) {
	if apiKey == "" {
		return nil, errors.New("google maps api key is empty")
	}
	return &GooglePlacesCatalog{client: httpapi.New(baseURL, nil), apiKey: apiKey}, nil
}

func (g *GooglePlacesCatalog) SearchNearby(ctx context.Context, q ports.PlaceQuery) (_ []domain.Place, err error) {
	defer obs.Time(ctx, "google.places.SearchNearby")(&err)

	if q.Category == "" {
		return nil, errors.New("search places: category must not be empty")
	}

	endpoint := g.client.BaseURL + "/maps/api/place/nearbysearch/json"
	resp, err := g.client.DoWithRetry(ctx, func() (*http.Request, error) {
		req, err := g.client.NewRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		v := req.URL.Query()
		v.Set("location", q.Anchor.LatLngString())
		v.Set("radius", strconv.Itoa(q.RadiusMeters))
		v.Set("type", q.Category)
		v.Set("key", g.apiKey)
		req.URL.RawQuery = v.Encode()
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("search places %s: %w", q.Category, err)
	}
	defer resp.Body.Close()

	var pr placesResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("decode places response: %w", err)
	}
	switch pr.Status {
	case "OK":
	case "ZERO_RESULTS":
		return []domain.Place{}, nil
	default:
		return nil, fmt.Errorf("places status %s: %s", pr.Status, pr.ErrorMessage)
	}

	out := make([]domain.Place, 0, len(pr.Results))
	for _, r := range pr.Results {
		if r.PlaceID == "" {
			continue
		}
		out = append(out, r.toPlace())
	}
	return out, nil
}

func (r placeResult) toPlace() domain.Place {
	p := domain.Place{
		ID:         r.PlaceID,
		Name:       r.Name,
		Location:   domain.Coordinates{Lon: r.Geometry.Location.Lng, Lat: r.Geometry.Location.Lat},
		Categories: r.Types,
	}
	if r.Rating != nil {
		p.Rating = *r.Rating
	}
	if r.UserRatingsTotal != nil {
		p.ReviewCount = *r.UserRatingsTotal
	}
	if r.PriceLevel != nil {
		p.PriceTier = *r.PriceLevel
	}
	if r.BusinessStatus != nil {
		p.BusinessStatus = *r.BusinessStatus
	}
	return p.WithDefaults()
}
