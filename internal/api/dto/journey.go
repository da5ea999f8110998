package dto

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type JourneyRequest struct {
	Start        *LatLng         `json:"start"`
	StartAddress string          `json:"start_address"`
	End          *LatLng         `json:"end"`
	EndAddress   string          `json:"end_address"`
	Mode         string          `json:"mode"`
	Preferences  map[string]bool `json:"preferences"`
	MaxDuration  int             `json:"max_duration_minutes"`
	MaxBudget    float64         `json:"max_budget"`
	RadiusMeters int             `json:"radius_meters"`
}

type PlaceResponse struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	Location             LatLng   `json:"location"`
	Rating               float64  `json:"rating"`
	ReviewCount          int      `json:"review_count"`
	Categories           []string `json:"categories"`
	VisitDurationMinutes int      `json:"visit_duration_minutes"`
	EstimatedCost        float64  `json:"estimated_cost"`
	IsStartPoint         bool     `json:"is_start_point,omitempty"`
	IsEndPoint           bool     `json:"is_end_point,omitempty"`
	Virtual              bool     `json:"virtual,omitempty"`
}

type StopResponse struct {
	VisitOrder int           `json:"visit_order"`
	Place      PlaceResponse `json:"place"`
}

type LegResponse struct {
	FromID          string  `json:"from_id"`
	ToID            string  `json:"to_id"`
	DurationMinutes float64 `json:"duration_minutes"`
	DistanceMeters  float64 `json:"distance_meters"`
	DurationText    string  `json:"duration_text"`
	DistanceText    string  `json:"distance_text"`
	Provenance      string  `json:"provenance"`
	Fallback        bool    `json:"fallback,omitempty"`
}

// Exactly one of Stop or Leg is set, matching Type.
type JourneyItemResponse struct {
	Type string        `json:"type"`
	Stop *StopResponse `json:"stop,omitempty"`
	Leg  *LegResponse  `json:"travel,omitempty"`
}

type JourneyResponse struct {
	ID                   string                `json:"id"`
	Mode                 string                `json:"mode"`
	Outcome              string                `json:"outcome"`
	Approximated         bool                  `json:"approximated"`
	ReturnLeg            bool                  `json:"return_leg"`
	TotalDurationMinutes float64               `json:"total_duration_minutes"`
	TotalDistanceMeters  float64               `json:"total_distance_meters"`
	TotalCost            float64               `json:"total_cost"`
	Items                []JourneyItemResponse `json:"items"`
}
