package repositories

import (
	"database/sql"
	"errors"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS places (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		lon REAL NOT NULL,
		lat REAL NOT NULL,
		rating REAL NOT NULL DEFAULT 0,
		review_count INTEGER NOT NULL DEFAULT 0,
		categories TEXT NOT NULL DEFAULT '[]',
		price_tier INTEGER NOT NULL DEFAULT 0,
		business_status TEXT NOT NULL DEFAULT '',
		visit_minutes INTEGER NOT NULL DEFAULT 0,
		estimated_cost REAL NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_places_lat_lon ON places(lat, lon)`,
	`CREATE TABLE IF NOT EXISTS travel_cost_cache (
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		distance_meters INTEGER NOT NULL,
		duration_seconds INTEGER NOT NULL,
		PRIMARY KEY (origin, destination)
	)`,
	`CREATE TABLE IF NOT EXISTS geocode_cache (
		address TEXT PRIMARY KEY,
		lon REAL NOT NULL,
		lat REAL NOT NULL
	)`,
}

// InitSchema creates the local SQLite tables. Safe to run on every start.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}
	return execSchema(db, "init schema", sqliteSchema)
}

// Populate the SQLite places table from a JSON seed file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	seeds, err := loadPlaceSeeds(jsonPath)
	if err != nil {
		return err
	}

	return insertPlaces(db, `
	INSERT OR REPLACE INTO places (
		id, name, lon, lat, rating, review_count, categories,
		price_tier, business_status, visit_minutes, estimated_cost
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`, seeds)
}
