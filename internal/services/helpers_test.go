package services

import (
	"journey-synthesis-service/internal/domain"
)

var origin = domain.Coordinates{Lat: 40.4168, Lon: -3.7038}

// offset moves c roughly north and east by the given meters.
func offset(c domain.Coordinates, northMeters, eastMeters float64) domain.Coordinates {
	const metersPerDegLat = 111_320.0
	return domain.Coordinates{
		Lat: c.Lat + northMeters/metersPerDegLat,
		Lon: c.Lon + eastMeters/(metersPerDegLat*0.7615),
	}
}

func testPlace(id, category string, at domain.Coordinates) domain.Place {
	return domain.Place{
		ID:             id,
		Name:           "Place " + id,
		Location:       at,
		Rating:         4.5,
		ReviewCount:    200,
		Categories:     []string{category, "point_of_interest"},
		BusinessStatus: domain.BusinessOperational,
	}
}

func stopIDs(j *domain.Journey) []string {
	var ids []string
	for _, s := range j.Stops() {
		ids = append(ids, s.Place.ID)
	}
	return ids
}
