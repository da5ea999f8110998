package repositories

import (
	"database/sql"
	"errors"
)

// Initialize the Postgres schema used by the place catalog and the shared caches.
func InitPostgresSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres schema: DB is nil")
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS places (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			lon DOUBLE PRECISION NOT NULL,
			lat DOUBLE PRECISION NOT NULL,
			rating DOUBLE PRECISION NOT NULL DEFAULT 0,
			review_count INTEGER NOT NULL DEFAULT 0,
			categories JSONB NOT NULL DEFAULT '[]'::jsonb,
			price_tier INTEGER NOT NULL DEFAULT 0,
			business_status TEXT NOT NULL DEFAULT '',
			visit_minutes INTEGER NOT NULL DEFAULT 0,
			estimated_cost DOUBLE PRECISION NOT NULL DEFAULT 0
		);`,
		`CREATE INDEX IF NOT EXISTS idx_places_lat_lon ON places(lat, lon);`,
		`CREATE INDEX IF NOT EXISTS idx_places_categories ON places USING GIN (categories);`,
		`CREATE TABLE IF NOT EXISTS travel_cost_cache (
			origin TEXT NOT NULL,
			destination TEXT NOT NULL,
			distance_meters INTEGER NOT NULL,
			duration_seconds INTEGER NOT NULL,
			PRIMARY KEY (origin, destination)
		);`,
		`CREATE TABLE IF NOT EXISTS geocode_cache (
			address TEXT PRIMARY KEY,
			lon DOUBLE PRECISION NOT NULL,
			lat DOUBLE PRECISION NOT NULL
		);`,
	}

	return execSchema(db, "init postgres schema", statements)
}

// Upsert places from a JSON seed file into Postgres.
func SeedPostgresFromJSON(db *sql.DB, jsonPath string) error {
	seeds, err := loadPlaceSeeds(jsonPath)
	if err != nil {
		return err
	}

	return insertPlaces(db, `
	INSERT INTO places (
		id, name, lon, lat, rating, review_count, categories,
		price_tier, business_status, visit_minutes, estimated_cost
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb, $8, $9, $10, $11)
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		lon = EXCLUDED.lon,
		lat = EXCLUDED.lat,
		rating = EXCLUDED.rating,
		review_count = EXCLUDED.review_count,
		categories = EXCLUDED.categories,
		price_tier = EXCLUDED.price_tier,
		business_status = EXCLUDED.business_status,
		visit_minutes = EXCLUDED.visit_minutes,
		estimated_cost = EXCLUDED.estimated_cost;
	`, seeds)
}
