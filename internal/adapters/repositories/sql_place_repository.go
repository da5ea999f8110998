package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"journey-synthesis-service/internal/domain"
	"journey-synthesis-service/internal/geo"
	"journey-synthesis-service/internal/platform/obs"
	"journey-synthesis-service/internal/ports"
)

// Postgres-backed implementation of the PlaceCatalog port.
type SQLPlaceRepository struct{ DB *sql.DB }

func NewSQLPlaceRepository(db *sql.DB) *SQLPlaceRepository {
	return &SQLPlaceRepository{DB: db}
}

func (s *SQLPlaceRepository) SearchNearby(ctx context.Context, q ports.PlaceQuery) (_ []domain.Place, err error) {
	defer obs.Time(ctx, "places.postgres.SearchNearby")(&err)

	if s.DB == nil {
		return nil, errors.New("sql place repository: DB is nil")
	}
	category := strings.ToLower(strings.TrimSpace(q.Category))
	if category == "" {
		return nil, errors.New("search places: category must not be empty")
	}

	b := geo.BoundAround(q.Anchor, float64(q.RadiusMeters))

	query := `
	SELECT id, name, lon, lat, rating, review_count, categories::text,
		price_tier, business_status, visit_minutes, estimated_cost
	FROM places
	WHERE lat BETWEEN $1 AND $2
		AND lon BETWEEN $3 AND $4
		AND categories @> jsonb_build_array($5::text)
	ORDER BY id;
	`
	rows, err := s.DB.QueryContext(ctx, query, b.Min.Lat(), b.Max.Lat(), b.Min.Lon(), b.Max.Lon(), category)
	if err != nil {
		return nil, fmt.Errorf("search places: query places table: %w", err)
	}
	defer rows.Close()

	places, err := scanPlaces(rows, q.Anchor, float64(q.RadiusMeters))
	if err != nil {
		return nil, fmt.Errorf("search places: %w", err)
	}
	return places, nil
}
