package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"journey-synthesis-service/internal/domain"
	"journey-synthesis-service/internal/geo"
)

const placeColumns = `id, name, lon, lat, rating, review_count, categories,
	price_tier, business_status, visit_minutes, estimated_cost`

// scanPlaces reads place rows and drops those outside the radius; the SQL
// bounding box filter is a coarse superset of the circle.
func scanPlaces(rows *sql.Rows, center domain.Coordinates, radiusMeters float64) ([]domain.Place, error) {
	places := make([]domain.Place, 0, 32)
	for rows.Next() {
		var p domain.Place
		var cats string
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Location.Lon, &p.Location.Lat, &p.Rating, &p.ReviewCount, &cats,
			&p.PriceTier, &p.BusinessStatus, &p.VisitDurationMinutes, &p.EstimatedCost,
		); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if err := json.Unmarshal([]byte(cats), &p.Categories); err != nil {
			return nil, fmt.Errorf("decode categories id=%s: %w", p.ID, err)
		}
		if !geo.WithinRadius(center, p.Location, radiusMeters) {
			continue
		}
		places = append(places, p.WithDefaults())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration: %w", err)
	}
	return places, nil
}
