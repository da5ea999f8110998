package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"journey-synthesis-service/internal/api/dto"
	"journey-synthesis-service/internal/domain"
	"journey-synthesis-service/internal/platform/obs"
	"journey-synthesis-service/internal/ports"
	"journey-synthesis-service/internal/services"
)

// PlaceHandler previews the candidates a journey around a point would draw from.
type PlaceHandler struct {
	Catalog       ports.PlaceCatalog
	DefaultRadius int
}

func (h *PlaceHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
	lng, errLng := strconv.ParseFloat(q.Get("lng"), 64)
	at := domain.Coordinates{Lat: lat, Lon: lng}
	if errLat != nil || errLng != nil || at.Validate() != nil {
		writeError(w, r, http.StatusBadRequest, "lat and lng are required")
		return
	}

	radius := h.DefaultRadius
	if radius <= 0 {
		radius = services.DefaultSearchRadiusMeters
	}
	if s := q.Get("radius"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 || v > 50000 {
			writeError(w, r, http.StatusBadRequest, "radius must be between 1 and 50000")
			return
		}
		radius = v
	}

	var categories []string
	for _, c := range strings.Split(q.Get("categories"), ",") {
		if c = strings.TrimSpace(c); c != "" {
			categories = append(categories, c)
		}
	}

	places, err := services.FetchCandidates(r.Context(), h.Catalog, services.FetchRequest{
		Areas:      []services.SearchArea{{Center: at, RadiusMeters: radius}},
		Categories: categories,
	})
	if err != nil {
		log.Printf("req_id=%s list places failed: %v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	withDefaults := make([]domain.Place, 0, len(places))
	for _, p := range places {
		withDefaults = append(withDefaults, p.WithDefaults())
	}

	res := dto.ListPlacesResponse{Places: []dto.PlaceResponse{}}
	for _, p := range services.FilterCandidates(withDefaults) {
		res.Places = append(res.Places, dto.FromPlace(p))
	}
	writeJSON(w, r, http.StatusOK, res)
}
