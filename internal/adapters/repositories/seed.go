package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type PlaceSeed struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Lat            float64  `json:"lat"`
	Lon            float64  `json:"lon"`
	Rating         float64  `json:"rating"`
	ReviewCount    int      `json:"review_count"`
	Categories     []string `json:"categories"`
	PriceTier      int      `json:"price_tier"`
	BusinessStatus string   `json:"business_status"`
	VisitMinutes   int      `json:"visit_minutes"`
	EstimatedCost  float64  `json:"estimated_cost"`
}

func loadPlaceSeeds(jsonPath string) ([]PlaceSeed, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("seed places: read %q: %w", jsonPath, err)
	}

	var data []PlaceSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("seed places: parse json: %w", err)
	}

	for i := range data {
		data[i].ID = strings.TrimSpace(data[i].ID)
		if data[i].ID == "" {
			return nil, fmt.Errorf("seed places: item at index %d: id cannot be empty", i+1)
		}
		if strings.TrimSpace(data[i].Name) == "" {
			return nil, fmt.Errorf("seed places: item %q: name cannot be empty", data[i].ID)
		}
		if data[i].Categories == nil {
			data[i].Categories = []string{}
		}
	}
	return data, nil
}

func insertPlaces(db *sql.DB, query string, seeds []PlaceSeed) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed places: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed places: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range seeds {
		cats, err := json.Marshal(p.Categories)
		if err != nil {
			return fmt.Errorf("seed places: encode categories id=%s: %w", p.ID, err)
		}
		if _, err := stmt.Exec(
			p.ID, p.Name, p.Lon, p.Lat, p.Rating, p.ReviewCount, string(cats),
			p.PriceTier, p.BusinessStatus, p.VisitMinutes, p.EstimatedCost,
		); err != nil {
			return fmt.Errorf("seed places: insert id=%s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed places: commit tx: %w", err)
	}
	return nil
}

// execSchema runs DDL statements in a single transaction.
func execSchema(db *sql.DB, op string, statements []string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("%s: begin tx: %w", op, err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("%s: statement %d: %w", op, i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}
	return nil
}
