package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Get returns the trimmed value of key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) int {
	raw := Get(key, "")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("config: invalid int for %s=%q, using %d", key, raw, fallback)
		return fallback
	}
	return n
}

func GetFloat(key string, fallback float64) float64 {
	raw := Get(key, "")
	if raw == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("config: invalid float for %s=%q, using %g", key, raw, fallback)
		return fallback
	}
	return f
}

// Config is the server's runtime configuration.
type Config struct {
	Port               string
	DBPath             string
	DatabaseURL        string
	SeedPath           string
	RedisURL           string
	ORSAPIKey          string
	GoogleMapsAPIKey   string
	PlaceCatalog       string
	TravelCostProvider string
	TravelCostCache    string
	SearchRadiusMeters int
}

func Load() Config {
	return Config{
		Port:               Get("PORT", "8080"),
		DBPath:             Get("DB_PATH", "data/journeys.db"),
		DatabaseURL:        Get("DATABASE_URL", ""),
		SeedPath:           Get("SEED_PATH", "data/seeds/places.json"),
		RedisURL:           Get("REDIS_URL", ""),
		ORSAPIKey:          Get("ORS_API_KEY", ""),
		GoogleMapsAPIKey:   Get("GOOGLE_MAPS_API_KEY", ""),
		PlaceCatalog:       strings.ToLower(Get("PLACE_CATALOG", "sqlite")),
		TravelCostProvider: strings.ToLower(Get("TRAVEL_COST_PROVIDER", "geometric")),
		TravelCostCache:    strings.ToLower(Get("TRAVEL_COST_CACHE", "sqlite")),
		SearchRadiusMeters: GetInt("SEARCH_RADIUS_METERS", 3000),
	}
}
