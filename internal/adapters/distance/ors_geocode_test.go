package distance

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"journey-synthesis-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memGeocodeCache struct {
	mu sync.Mutex
	m  map[string]domain.Coordinates
}

func (c *memGeocodeCache) GetMany(_ context.Context, addresses []string) (map[string]domain.Coordinates, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := map[string]domain.Coordinates{}
	for _, a := range addresses {
		if v, ok := c.m[a]; ok {
			out[a] = v
		}
	}
	return out, nil
}

func (c *memGeocodeCache) PutMany(_ context.Context, results map[string]domain.Coordinates) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range results {
		c.m[k] = v
	}
	return nil
}

func TestORSGeocoderRetriesAndCaches(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "upstream", http.StatusBadGateway)
			return
		}
		assert.Equal(t, "1 Ferry Building", r.URL.Query().Get("text"))
		assert.Equal(t, "US", r.URL.Query().Get("boundary.country"))
		_, _ = w.Write([]byte(`{"features": [{"geometry": {"coordinates": [-122.3937, 37.7955]}}]}`))
	}))
	defer srv.Close()

	cache := &memGeocodeCache{m: map[string]domain.Coordinates{}}
	g, err := newORSGeocoder("k", srv.URL, cache)
	require.NoError(t, err)
	g.WithCountry("us")

	got, err := g.Geocode(context.Background(), "  1 Ferry   Building ")
	require.NoError(t, err)
	assert.Equal(t, pB, got)
	assert.Equal(t, 2, calls)

	again, err := g.Geocode(context.Background(), "1 Ferry Building")
	require.NoError(t, err)
	assert.Equal(t, pB, again)
	assert.Equal(t, 2, calls, "second lookup served from cache")
}

func TestORSGeocoderNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"features": []}`))
	}))
	defer srv.Close()

	g, _ := newORSGeocoder("k", srv.URL, nil)
	_, err := g.Geocode(context.Background(), "nowhere")
	assert.ErrorContains(t, err, "no geocode results")

	_, err = g.Geocode(context.Background(), "   ")
	assert.Error(t, err)
}
