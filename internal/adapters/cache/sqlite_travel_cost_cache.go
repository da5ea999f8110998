package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"journey-synthesis-service/internal/platform/obs"
	"journey-synthesis-service/internal/ports"
)

// SQLite backed cache of provider travel costs, keyed by geohash cells.
type SqliteTravelCostCache struct {
	DB *sql.DB
}

func NewSqliteTravelCostCache(db *sql.DB) *SqliteTravelCostCache {
	return &SqliteTravelCostCache{DB: db}
}

func (s *SqliteTravelCostCache) GetMany(
	ctx context.Context,
	pairs []ports.CoordinatePair,
) (_ map[ports.CoordinatePair]ports.TravelCost, err error) {
	defer obs.Time(ctx, "travelcost.sqlite.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("travel cost cache: db is nil")
	}
	if len(pairs) == 0 {
		return map[ports.CoordinatePair]ports.TravelCost{}, nil
	}

	byKey, origins, destinations := keyedPairs(pairs)

	args := make([]any, 0, len(origins)+len(destinations))
	for _, o := range origins {
		args = append(args, o)
	}
	for _, d := range destinations {
		args = append(args, d)
	}

	// SQLite does not support binding slices directly in an IN (...) clause.
	// Only the placeholder structure is interpolated; all values remain parameterized.
	q := fmt.Sprintf(`
	SELECT
        origin,
        destination,
        distance_meters,
        duration_seconds
    FROM travel_cost_cache
    WHERE origin IN (%s)
        AND destination IN (%s);
	`, placeholders(len(origins)), placeholders(len(destinations)))

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get travel cost cache: query travel_cost_cache table: %w", err)
	}
	defer rows.Close()

	return scanTravelCosts(rows, byKey)
}

func (s *SqliteTravelCostCache) PutMany(ctx context.Context, costs map[ports.CoordinatePair]ports.TravelCost) error {
	if s.DB == nil {
		return errors.New("travel cost cache: db is nil")
	}
	if len(costs) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert travel cost cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT OR REPLACE INTO travel_cost_cache (
        origin,
        destination,
        distance_meters,
        duration_seconds
    )
    VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("insert travel cost cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for pair, c := range costs {
		if c.Status != ports.ElementOK {
			continue
		}
		o, d := pairKeys(pair)
		if _, err := stmt.ExecContext(ctx, o, d, c.DistanceMeters, c.DurationSeconds); err != nil {
			return fmt.Errorf("insert travel cost cache %s->%s: %w", o, d, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert travel cost cache commit: %w", err)
	}

	return nil
}
