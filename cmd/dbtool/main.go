package main

import (
	"database/sql"
	"log"
	"strings"

	"journey-synthesis-service/internal/adapters/repositories"
	"journey-synthesis-service/internal/config"
	"journey-synthesis-service/internal/platform/db"

	"github.com/joho/godotenv"
)

// dbtool prepares a Postgres place catalog: schema, caches and seed places.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := config.Get("DATABASE_URL", "")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	pg, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pg.Close()

	seedPath := config.Get("SEED_PATH", "data/seeds/places.json")
	if err := initAndSeed(pg, seedPath); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(pg *sql.DB, seedPath string) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitPostgresSchema(pg); err != nil {
		return err
	}
	log.Println("Schema ready.")

	log.Printf("Seeding places from %s...", seedPath)
	if err := repositories.SeedPostgresFromJSON(pg, seedPath); err != nil {
		return err
	}
	log.Println("Seeding complete.")

	return nil
}
