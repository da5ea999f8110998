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

// SQLite-backed implementation of the PlaceCatalog port.
type SqlitePlaceRepository struct{ DB *sql.DB }

func NewSqlitePlaceRepository(db *sql.DB) *SqlitePlaceRepository {
	return &SqlitePlaceRepository{DB: db}
}

// Return places tagged with q.Category inside the search radius, ordered by id.
func (s *SqlitePlaceRepository) SearchNearby(ctx context.Context, q ports.PlaceQuery) (_ []domain.Place, err error) {
	defer obs.Time(ctx, "places.sqlite.SearchNearby")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite place repository: DB is nil")
	}
	category := strings.ToLower(strings.TrimSpace(q.Category))
	if category == "" {
		return nil, errors.New("search places: category must not be empty")
	}

	b := geo.BoundAround(q.Anchor, float64(q.RadiusMeters))

	query := `
	SELECT ` + placeColumns + `
	FROM places
	WHERE lat BETWEEN ? AND ?
		AND lon BETWEEN ? AND ?
		AND EXISTS (SELECT 1 FROM json_each(places.categories) WHERE lower(json_each.value) = ?)
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
