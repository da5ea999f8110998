package distance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"journey-synthesis-service/internal/domain"
	"journey-synthesis-service/internal/platform/httpapi"
	"journey-synthesis-service/internal/platform/obs"
	"journey-synthesis-service/internal/ports"
)

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// ORSGeocoder resolves addresses with OpenRouteService (/geocode/search),
// consulting an optional persistent cache first.
type ORSGeocoder struct {
	client  httpapi.Client
	country string
	cache   ports.GeocodeCache
}

func NewORSGeocoder(apiKey string, cache ports.GeocodeCache) (*ORSGeocoder, error) {
	return newORSGeocoder(apiKey, orsBaseURL, cache)
}

func newORSGeocoder(apiKey, baseURL string, cache ports.GeocodeCache) (*ORSGeocoder, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}
	return &ORSGeocoder{
		client: httpapi.New(baseURL, map[string]string{"Authorization": apiKey}),
		cache:  cache,
	}, nil
}

// Restrict results to one ISO country code (e.g. "US"). Empty searches worldwide.
func (o *ORSGeocoder) WithCountry(code string) *ORSGeocoder {
	o.country = strings.ToUpper(strings.TrimSpace(code))
	return o
}

func (o *ORSGeocoder) Geocode(ctx context.Context, address string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "ors.Geocode")(&err)

	norm := strings.Join(strings.Fields(address), " ")
	if norm == "" {
		return domain.Coordinates{}, errors.New("geocode: address must be non-empty")
	}

	if o.cache != nil {
		hit, err := o.cache.GetMany(ctx, []string{norm})
		if err != nil {
			log.Printf("geocode cache read failed (continuing) err=%v", err)
		} else if c, ok := hit[norm]; ok {
			return c, nil
		}
	}

	endpoint := o.client.BaseURL + "/geocode/search"
	resp, err := o.client.DoWithRetry(ctx, func() (*http.Request, error) {
		req, err := o.client.NewRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("text", norm)
		q.Set("size", "1")
		if o.country != "" {
			q.Set("boundary.country", o.country)
		}
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", norm, err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("decode geocode response: %w", err)
	}
	if len(decoded.Features) == 0 {
		return domain.Coordinates{}, fmt.Errorf("no geocode results for %q", norm)
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.Coordinates{}, fmt.Errorf("invalid coordinate format for %q", norm)
	}
	out := domain.Coordinates{Lon: coords[0], Lat: coords[1]}

	if o.cache != nil {
		if err := o.cache.PutMany(ctx, map[string]domain.Coordinates{norm: out}); err != nil {
			log.Printf("geocode cache write failed (continuing) err=%v", err)
		}
	}
	return out, nil
}
