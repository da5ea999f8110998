package api

import (
	"net/http"

	"journey-synthesis-service/internal/api/handlers"
	"journey-synthesis-service/internal/ports"
)

type Deps struct {
	Catalog  ports.PlaceCatalog
	Provider ports.TravelCostProvider
	Geocoder ports.Geocoder
	// Search radius used when a request names none.
	DefaultRadius int
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// Handlers stay unaware of concrete adapters.
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	journeyHandler := &handlers.JourneyHandler{
		Catalog:       d.Catalog,
		Provider:      d.Provider,
		Geocoder:      d.Geocoder,
		DefaultRadius: d.DefaultRadius,
	}
	placeHandler := &handlers.PlaceHandler{Catalog: d.Catalog, DefaultRadius: d.DefaultRadius}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/journeys", journeyHandler.Create)
	mux.HandleFunc("/places", placeHandler.List)

	return requestIDMiddleware(loggingMiddleware(mux))
}
