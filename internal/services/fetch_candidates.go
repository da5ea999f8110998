package services

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"

	"journey-synthesis-service/internal/domain"
	"journey-synthesis-service/internal/platform/obs"
	"journey-synthesis-service/internal/ports"

	"golang.org/x/sync/errgroup"
)

const maxConcurrentFetches = 4

// Categories queried when a request names no active preference.
var DefaultCategories = []string{"cafe", "museum", "park", "restaurant", "tourist_attraction"}

type SearchArea struct {
	Center       domain.Coordinates
	RadiusMeters int
}

type FetchRequest struct {
	Areas      []SearchArea
	Categories []string
}

// FetchCandidates runs one catalog query per (area, category) pair
// concurrently. A failing query is logged and skipped; an error is returned
// only when every query fails. Results are unique by id, operational only,
// and sorted by id.
func FetchCandidates(ctx context.Context, catalog ports.PlaceCatalog, req FetchRequest) (places []domain.Place, err error) {
	defer obs.Time(ctx, "services.fetch_candidates")(&err)

	categories := req.Categories
	if len(categories) == 0 {
		categories = DefaultCategories
	}

	var (
		mu   sync.Mutex
		byID = map[string]domain.Place{}
		errs []error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for _, area := range req.Areas {
		for _, category := range categories {
			q := ports.PlaceQuery{Anchor: area.Center, Category: category, RadiusMeters: area.RadiusMeters}
			g.Go(func() error {
				found, err := catalog.SearchNearby(gctx, q)

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					log.Printf("req_id=%s op=fetch.category category=%s err=%v", obs.RequestID(ctx), q.Category, err)
					errs = append(errs, fmt.Errorf("search %q: %w", q.Category, err))
					return nil
				}
				for _, p := range found {
					if p.ID == "" || !p.IsOperational() {
						continue
					}
					if _, seen := byID[p.ID]; !seen {
						byID[p.ID] = p
					}
				}
				return nil
			})
		}
	}
	// goroutines never return an error; partial failure is collected in errs
	_ = g.Wait()

	total := len(req.Areas) * len(categories)
	if total > 0 && len(errs) == total {
		return nil, fmt.Errorf("fetch candidates: %w", errors.Join(errs...))
	}

	places = make([]domain.Place, 0, len(byID))
	for _, p := range byID {
		places = append(places, p)
	}
	slices.SortFunc(places, func(a, b domain.Place) int { return cmp.Compare(a.ID, b.ID) })
	return places, nil
}
