package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"journey-synthesis-service/internal/domain"
	"journey-synthesis-service/internal/platform/obs"
)

type sqlDialect int

const (
	dialectSqlite sqlDialect = iota
	dialectPostgres
)

// GeocodeCache stores resolved addresses in the geocode_cache table of either
// the local SQLite file or Postgres. Keys are NormalizeAddress forms.
type GeocodeCache struct {
	DB      *sql.DB
	dialect sqlDialect
}

func NewSqliteGeocodeCache(db *sql.DB) *GeocodeCache {
	return &GeocodeCache{DB: db, dialect: dialectSqlite}
}

func NewPostgresGeocodeCache(db *sql.DB) *GeocodeCache {
	return &GeocodeCache{DB: db, dialect: dialectPostgres}
}

func (g *GeocodeCache) lookupQuery(n int) (string, func([]string) []any) {
	if g.dialect == dialectPostgres {
		return `SELECT address, lon, lat FROM geocode_cache WHERE address = ANY($1::text[])`,
			func(keys []string) []any { return []any{keys} }
	}
	q := `SELECT address, lon, lat FROM geocode_cache WHERE address IN (` + placeholders(n) + `)`
	return q, func(keys []string) []any {
		args := make([]any, len(keys))
		for i, k := range keys {
			args[i] = k
		}
		return args
	}
}

func (g *GeocodeCache) upsertQuery() string {
	if g.dialect == dialectPostgres {
		return `INSERT INTO geocode_cache (address, lon, lat) VALUES ($1, $2, $3)
			ON CONFLICT (address) DO UPDATE SET lon = EXCLUDED.lon, lat = EXCLUDED.lat`
	}
	return `INSERT OR REPLACE INTO geocode_cache (address, lon, lat) VALUES (?, ?, ?)`
}

// GetMany returns the cached hits keyed by the caller's original strings.
// Misses are simply absent.
func (g *GeocodeCache) GetMany(ctx context.Context, addresses []string) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.cache.GetMany")(&err)

	if g.DB == nil {
		return nil, errors.New("geocode cache: db is nil")
	}

	callers := make(map[string][]string, len(addresses))
	var keys []string
	for _, a := range addresses {
		k := NormalizeAddress(a)
		if k == "" {
			continue
		}
		if _, seen := callers[k]; !seen {
			keys = append(keys, k)
		}
		callers[k] = append(callers[k], a)
	}
	hits := make(map[string]domain.Coordinates, len(keys))
	if len(keys) == 0 {
		return hits, nil
	}

	q, args := g.lookupQuery(len(keys))
	rows, err := g.DB.QueryContext(ctx, q, args(keys)...)
	if err != nil {
		return nil, fmt.Errorf("read geocode cache: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var c domain.Coordinates
		if err := rows.Scan(&key, &c.Lon, &c.Lat); err != nil {
			return nil, fmt.Errorf("read geocode cache: scan: %w", err)
		}
		for _, orig := range callers[key] {
			hits[orig] = c
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read geocode cache: %w", err)
	}
	return hits, nil
}

// PutMany upserts every result in one transaction.
func (g *GeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) error {
	if g.DB == nil {
		return errors.New("geocode cache: db is nil")
	}
	if len(results) == 0 {
		return nil
	}

	tx, err := g.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write geocode cache: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, g.upsertQuery())
	if err != nil {
		return fmt.Errorf("write geocode cache: prepare: %w", err)
	}
	defer stmt.Close()

	for addr, c := range results {
		key := NormalizeAddress(addr)
		if key == "" {
			return fmt.Errorf("write geocode cache: blank address %q", strings.TrimSpace(addr))
		}
		if _, err := stmt.ExecContext(ctx, key, c.Lon, c.Lat); err != nil {
			return fmt.Errorf("write geocode cache address=%q: %w", key, err)
		}
	}
	return tx.Commit()
}
