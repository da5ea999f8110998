package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"journey-synthesis-service/internal/api/dto"
	"journey-synthesis-service/internal/domain"
	"journey-synthesis-service/internal/platform/obs"
	"journey-synthesis-service/internal/ports"
	"journey-synthesis-service/internal/services"
)

type JourneyHandler struct {
	Catalog  ports.PlaceCatalog
	Provider ports.TravelCostProvider
	// Optional; without it requests must carry coordinates.
	Geocoder      ports.Geocoder
	DefaultRadius int
}

// Create synthesizes a journey from catalog places around the requested endpoints.
func (h *JourneyHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.JourneyRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	mode := domain.JourneyMode(strings.TrimSpace(req.Mode))
	if mode == "" {
		mode = domain.ModeClosedLoop
	}
	if !mode.Valid() {
		writeError(w, r, http.StatusBadRequest, "mode must be closed_loop or point_to_point")
		return
	}

	start, err := h.resolve(r, req.Start, req.StartAddress)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("start: %v", err))
		return
	}

	var end *domain.Coordinates
	if mode == domain.ModePointToPoint {
		c, err := h.resolve(r, req.End, req.EndAddress)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf("end: %v", err))
			return
		}
		end = &c
	}

	radius := req.RadiusMeters
	if radius == 0 {
		radius = h.DefaultRadius
	}
	if radius < 0 || radius > 50000 {
		writeError(w, r, http.StatusBadRequest, "radius_meters must be between 1 and 50000")
		return
	}

	svcReq := services.PlanJourneyRequest{
		Preferences:  domain.PreferenceSet(req.Preferences),
		Constraints:  domain.Constraints{MaxDurationMinutes: req.MaxDuration, MaxBudget: req.MaxBudget},
		Mode:         mode,
		Start:        start,
		End:          end,
		RadiusMeters: radius,
	}

	j, err := services.PlanJourney(r.Context(), svcReq, h.Catalog, h.Provider)
	switch {
	case err == nil, errors.Is(err, domain.ErrInfeasibleConstraints) && j != nil:
		writeJSON(w, r, http.StatusOK, dto.FromJourney(j))
	case errors.Is(err, domain.ErrInvalidConstraints):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNoCandidatesFound):
		writeError(w, r, http.StatusUnprocessableEntity, "no places match the requested preferences")
	default:
		log.Printf("req_id=%s plan journey failed: %v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

// resolve prefers explicit coordinates and falls back to geocoding the address.
func (h *JourneyHandler) resolve(r *http.Request, at *dto.LatLng, address string) (domain.Coordinates, error) {
	if at != nil {
		c := at.Coordinates()
		return c, c.Validate()
	}
	address = strings.TrimSpace(address)
	if address == "" {
		return domain.Coordinates{}, errors.New("coordinates or address required")
	}
	if h.Geocoder == nil {
		return domain.Coordinates{}, errors.New("address lookup is not configured")
	}
	c, err := h.Geocoder.Geocode(r.Context(), address)
	if err != nil {
		log.Printf("req_id=%s geocode failed: %v", obs.RequestID(r.Context()), err)
		return domain.Coordinates{}, fmt.Errorf("could not resolve address %q", address)
	}
	return c, nil
}
