package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"journey-synthesis-service/internal/platform/obs"
	"journey-synthesis-service/internal/ports"
)

// SQLTravelCostCache is a Postgres-backed cache of provider travel costs.
type SQLTravelCostCache struct {
	DB *sql.DB
}

func NewSQLTravelCostCache(db *sql.DB) *SQLTravelCostCache {
	return &SQLTravelCostCache{DB: db}
}

// Fetch cached costs for the given coordinate pairs. Missing pairs are absent from the map.
func (s *SQLTravelCostCache) GetMany(
	ctx context.Context,
	pairs []ports.CoordinatePair,
) (_ map[ports.CoordinatePair]ports.TravelCost, err error) {
	defer obs.Time(ctx, "travelcost.cache.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("travel cost cache: db is nil")
	}
	if len(pairs) == 0 {
		return map[ports.CoordinatePair]ports.TravelCost{}, nil
	}

	byKey, origins, destinations := keyedPairs(pairs)

	q := `
	SELECT origin, destination, distance_meters, duration_seconds
    FROM travel_cost_cache
    WHERE origin = ANY($1::text[])
        AND destination = ANY($2::text[]);
	`

	rows, err := s.DB.QueryContext(ctx, q, origins, destinations)
	if err != nil {
		return nil, fmt.Errorf("get travel cost cache: query travel_cost_cache table: %w", err)
	}
	defer rows.Close()

	return scanTravelCosts(rows, byKey)
}

// Store OK travel costs; non-OK elements are skipped.
func (s *SQLTravelCostCache) PutMany(ctx context.Context, costs map[ports.CoordinatePair]ports.TravelCost) error {
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
	INSERT INTO travel_cost_cache (origin, destination, distance_meters, duration_seconds)
    VALUES ($1, $2, $3, $4)
	ON CONFLICT (origin, destination) DO UPDATE
	SET distance_meters = EXCLUDED.distance_meters,
		duration_seconds = EXCLUDED.duration_seconds;
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

func scanTravelCosts(
	rows *sql.Rows,
	byKey map[[2]string][]ports.CoordinatePair,
) (map[ports.CoordinatePair]ports.TravelCost, error) {
	out := make(map[ports.CoordinatePair]ports.TravelCost, len(byKey))
	for rows.Next() {
		var origin, dest string
		var meters, seconds int
		if err := rows.Scan(&origin, &dest, &meters, &seconds); err != nil {
			return nil, fmt.Errorf("get travel cost cache: scan rows: %w", err)
		}
		// origin/destination ANY filters return the cross product; keep requested pairs only
		for _, p := range byKey[[2]string{origin, dest}] {
			out[p] = ports.TravelCost{DistanceMeters: meters, DurationSeconds: seconds, Status: ports.ElementOK}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get travel cost cache: row iteration: %w", err)
	}
	return out, nil
}
