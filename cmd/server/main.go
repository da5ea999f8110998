package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	"journey-synthesis-service/internal/adapters/cache"
	"journey-synthesis-service/internal/adapters/catalog"
	"journey-synthesis-service/internal/adapters/distance"
	"journey-synthesis-service/internal/adapters/repositories"
	"journey-synthesis-service/internal/api"
	"journey-synthesis-service/internal/config"
	"journey-synthesis-service/internal/platform/db"
	"journey-synthesis-service/internal/ports"

	"github.com/joho/godotenv"
)

// main is the application composition root.
// It wires concrete adapters (SQLite/Postgres, Google, ORS, Redis) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
	cfg := config.Load()

	sqliteDB, err := db.OpenSqlite(cfg.DBPath)
	if err != nil {
		log.Fatal(err)
	}
	defer sqliteDB.Close()

	// Initialize schema and seed demo places on startup for local runs.
	if err := initAndSeed(sqliteDB, cfg.SeedPath); err != nil {
		log.Fatal(err)
	}

	var pg *sql.DB
	if cfg.DatabaseURL != "" {
		pg, err = db.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer pg.Close()
	}

	placeCatalog, err := newPlaceCatalog(cfg, sqliteDB, pg)
	if err != nil {
		log.Fatal(err)
	}

	provider, err := newTravelCostProvider(cfg, sqliteDB, pg)
	if err != nil {
		log.Fatal(err)
	}

	var geocoder ports.Geocoder
	if cfg.ORSAPIKey != "" {
		geoCache := cache.NewSqliteGeocodeCache(sqliteDB)
		if pg != nil {
			geoCache = cache.NewPostgresGeocodeCache(pg)
		}
		geocoder, err = distance.NewORSGeocoder(cfg.ORSAPIKey, geoCache)
		if err != nil {
			log.Fatal(err)
		}
	}

	router := api.NewRouter(api.Deps{
		Catalog:       placeCatalog,
		Provider:      provider,
		Geocoder:      geocoder,
		DefaultRadius: cfg.SearchRadiusMeters,
	})

	log.Printf("Server listening addr=:%s catalog=%s provider=%s cache=%s",
		cfg.Port, cfg.PlaceCatalog, cfg.TravelCostProvider, cfg.TravelCostCache)
	// Write timeout covers cold-cache matrix and catalog calls.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func initAndSeed(db *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(db); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	if seedPath == "" {
		return nil
	}
	if err := repositories.SeedFromJSON(db, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	return nil
}

func newPlaceCatalog(cfg config.Config, sqliteDB, pg *sql.DB) (ports.PlaceCatalog, error) {
	switch cfg.PlaceCatalog {
	case "sqlite":
		return repositories.NewSqlitePlaceRepository(sqliteDB), nil
	case "postgres":
		if pg == nil {
			return nil, fmt.Errorf("place catalog: postgres requires DATABASE_URL")
		}
		return repositories.NewSQLPlaceRepository(pg), nil
	case "google":
		return catalog.NewGooglePlacesCatalog(cfg.GoogleMapsAPIKey)
	default:
		return nil, fmt.Errorf("place catalog: unknown PLACE_CATALOG %q", cfg.PlaceCatalog)
	}
}

// newTravelCostProvider returns nil for the geometric provider; synthesis then
// estimates every cell.
func newTravelCostProvider(cfg config.Config, sqliteDB, pg *sql.DB) (ports.TravelCostProvider, error) {
	var (
		provider ports.TravelCostProvider
		err      error
	)
	switch cfg.TravelCostProvider {
	case "geometric", "":
		return nil, nil
	case "ors":
		provider, err = distance.NewORSMatrixProvider(cfg.ORSAPIKey)
	case "google":
		provider, err = distance.NewGoogleDistanceMatrixProvider(cfg.GoogleMapsAPIKey)
	default:
		return nil, fmt.Errorf("travel cost provider: unknown TRAVEL_COST_PROVIDER %q", cfg.TravelCostProvider)
	}
	if err != nil {
		return nil, err
	}

	var costCache ports.TravelCostCache
	switch cfg.TravelCostCache {
	case "none":
		return provider, nil
	case "sqlite":
		costCache = cache.NewSqliteTravelCostCache(sqliteDB)
	case "postgres":
		if pg == nil {
			return nil, fmt.Errorf("travel cost cache: postgres requires DATABASE_URL")
		}
		costCache = cache.NewSQLTravelCostCache(pg)
	case "redis":
		client, err := db.OpenRedis(context.Background(), cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("travel cost cache: %w", err)
		}
		costCache = cache.NewRedisTravelCostCache(client)
	default:
		return nil, fmt.Errorf("travel cost cache: unknown TRAVEL_COST_CACHE %q", cfg.TravelCostCache)
	}
	return distance.NewCachedTravelCostProvider(provider, costCache)
}
