package dto

import "journey-synthesis-service/internal/domain"

func FromCoordinates(c domain.Coordinates) LatLng { return LatLng{Lat: c.Lat, Lng: c.Lon} }

func (l LatLng) Coordinates() domain.Coordinates { return domain.Coordinates{Lat: l.Lat, Lon: l.Lng} }

func FromPlace(p domain.Place) PlaceResponse {
	categories := p.Categories
	if categories == nil {
		categories = []string{}
	}
	return PlaceResponse{
		ID:                   p.ID,
		Name:                 p.Name,
		Location:             FromCoordinates(p.Location),
		Rating:               p.Rating,
		ReviewCount:          p.ReviewCount,
		Categories:           categories,
		VisitDurationMinutes: p.VisitDurationMinutes,
		EstimatedCost:        p.EstimatedCost,
		IsStartPoint:         p.IsStartPoint,
		IsEndPoint:           p.IsEndPoint,
		Virtual:              p.Virtual,
	}
}

func FromJourney(j *domain.Journey) JourneyResponse {
	res := JourneyResponse{
		ID:                   j.ID,
		Mode:                 string(j.Mode),
		Outcome:              string(j.Outcome),
		Approximated:         j.Approximated,
		ReturnLeg:            j.ReturnLeg,
		TotalDurationMinutes: j.TotalDurationMinutes,
		TotalDistanceMeters:  j.TotalDistanceMeters,
		TotalCost:            j.TotalCost,
		Items:                make([]JourneyItemResponse, 0, len(j.Items)),
	}
	for _, it := range j.Items {
		item := JourneyItemResponse{Type: string(it.Kind)}
		switch {
		case it.Stop != nil:
			item.Stop = &StopResponse{VisitOrder: it.Stop.VisitOrder, Place: FromPlace(it.Stop.Place)}
		case it.Leg != nil:
			item.Leg = &LegResponse{
				FromID:          it.Leg.FromID,
				ToID:            it.Leg.ToID,
				DurationMinutes: it.Leg.DurationMinutes,
				DistanceMeters:  it.Leg.DistanceMeters,
				DurationText:    it.Leg.DurationText,
				DistanceText:    it.Leg.DistanceText,
				Provenance:      string(it.Leg.Provenance),
				Fallback:        it.Leg.Fallback,
			}
		}
		res.Items = append(res.Items, item)
	}
	return res
}
