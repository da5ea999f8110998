package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"journey-synthesis-service/internal/domain"
	"journey-synthesis-service/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGooglePlacesCatalogSearchNearby(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/maps/api/place/nearbysearch/json", r.URL.Path)
		assert.Equal(t, "museum", q.Get("type"))
		assert.Equal(t, "1500", q.Get("radius"))
		assert.Equal(t, "37.788000,-122.407500", q.Get("location"))

		_, _ = w.Write([]byte(`{
			"status": "OK",
			"results": [
				{
					"place_id": "sfmoma",
					"name": "SFMOMA",
					"business_status": "OPERATIONAL",
					"rating": 4.6,
					"user_ratings_total": 12000,
					"price_level": 2,
					"types": ["museum", "point_of_interest"],
					"geometry": {"location": {"lat": 37.7857, "lng": -122.4011}}
				},
				{
					"place_id": "unrated",
					"name": "Tiny Gallery",
					"types": ["art_gallery"],
					"geometry": {"location": {"lat": 37.79, "lng": -122.41}}
				},
				{"name": "no id"}
			]
		}`))
	}))
	defer srv.Close()

	c, err := newGooglePlacesCatalog("k", srv.URL)
	require.NoError(t, err)

	places, err := c.SearchNearby(context.Background(), ports.PlaceQuery{
		Anchor:       domain.Coordinates{Lon: -122.4075, Lat: 37.7880},
		Category:     "museum",
		RadiusMeters: 1500,
	})
	require.NoError(t, err)
	require.Len(t, places, 2)

	moma := places[0]
	assert.Equal(t, "sfmoma", moma.ID)
	assert.Equal(t, 12000, moma.ReviewCount)
	assert.Equal(t, 2, moma.PriceTier)
	assert.Equal(t, 90, moma.VisitDurationMinutes)
	assert.Equal(t, 25.0, moma.EstimatedCost)
	assert.True(t, moma.IsOperational())

	assert.Equal(t, domain.DefaultRating, places[1].Rating, "missing rating defaults")
}

func statusServer(t *testing.T, status string) *GooglePlacesCatalog {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "` + status + `", "results": []}`))
	}))
	t.Cleanup(srv.Close)

	c, err := newGooglePlacesCatalog("k", srv.URL)
	require.NoError(t, err)
	return c
}

func TestGooglePlacesCatalogStatuses(t *testing.T) {
	q := ports.PlaceQuery{Category: "park", RadiusMeters: 100}

	places, err := statusServer(t, "ZERO_RESULTS").SearchNearby(context.Background(), q)
	require.NoError(t, err)
	assert.Empty(t, places)

	_, err = statusServer(t, "OVER_QUERY_LIMIT").SearchNearby(context.Background(), q)
	assert.ErrorContains(t, err, "OVER_QUERY_LIMIT")
}
