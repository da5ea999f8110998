package services

import (
	"cmp"
	"math"
	"slices"

	"journey-synthesis-service/internal/domain"
	"journey-synthesis-service/internal/geo"
)

const (
	// Hard cap on places sent to the travel-cost matrix (endpoints excluded).
	MaxMatrixCandidates = 10
	minCandidateTarget  = 6

	// Point-to-point candidates further off the corridor than this are never selected.
	selectionDetourLimit = 3.0
	// Distance at which closed-loop geographic relevance halves.
	selectionHalfDistanceMeters = 2000.0

	corridorMetersPerMinute = 10.0
	maxCorridorFloorMeters  = 5000.0
)

// CorridorFloorMeters is the shortest corridor point-to-point detour ratios
// are measured against. It widens with the duration budget, so endpoints
// close to each other still leave room for stops around them.
func CorridorFloorMeters(c domain.Constraints) float64 {
	floor := float64(c.MaxDurationMinutes) * corridorMetersPerMinute
	return min(max(floor, geo.MinCorridorMeters), maxCorridorFloorMeters)
}

// Selection score weights; they sum to 1.
const (
	selRatingWeight     = 0.35
	selPreferenceWeight = 0.25
	selBudgetWeight     = 0.15
	selDiversityWeight  = 0.10
	selGeoWeight        = 0.15
)

type SelectionInput struct {
	Places      []domain.Place
	Preferences domain.PreferenceSet
	Constraints domain.Constraints
	Mode        domain.JourneyMode
	Start       domain.Coordinates
	// Required for point-to-point selection.
	End *domain.Coordinates
}

// TargetCandidateCount grows with the request's time and money: longer or
// richer journeys get more candidates, never more than MaxMatrixCandidates.
func TargetCandidateCount(c domain.Constraints) int {
	n := minCandidateTarget
	switch {
	case c.MaxDurationMinutes >= 480:
		n += 3
	case c.MaxDurationMinutes >= 300:
		n += 2
	case c.MaxDurationMinutes >= 180:
		n++
	}
	if c.MaxBudget >= 150 {
		n++
	}
	return min(n, MaxMatrixCandidates)
}

func perCategoryCap(target int) int {
	return max(2, int(math.Ceil(float64(target)/3)))
}

type rankedPlace struct {
	place domain.Place
	score float64
}

// SelectCandidates ranks filtered places and keeps the best TargetCandidateCount
// of them, at most perCategoryCap per primary category before backfilling
// from the overall ranking. A set that already fits the target is returned
// whole, ranked; the point-to-point detour cutoff only trims larger sets.
func SelectCandidates(in SelectionInput) []domain.Place {
	target := TargetCandidateCount(in.Constraints)

	pool := in.Places
	if len(in.Places) > target && in.Mode == domain.ModePointToPoint && in.End != nil {
		floor := CorridorFloorMeters(in.Constraints)
		pool = make([]domain.Place, 0, len(in.Places))
		for _, p := range in.Places {
			if geo.DetourRatioWithFloor(in.Start, *in.End, p.Location, floor) <= selectionDetourLimit {
				pool = append(pool, p)
			}
		}
	}

	freq := categoryFrequency(pool)
	common := max(2, len(pool)/4)

	ranked := make([]rankedPlace, 0, len(pool))
	for _, p := range pool {
		ranked = append(ranked, rankedPlace{place: p, score: selectionScore(&p, in, freq, common)})
	}
	slices.SortFunc(ranked, func(a, b rankedPlace) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		return cmp.Compare(a.place.ID, b.place.ID)
	})

	if len(ranked) <= target {
		return placesOf(ranked)
	}

	capPer := perCategoryCap(target)
	perCat := map[string]int{}
	taken := make([]bool, len(ranked))
	out := make([]domain.Place, 0, target)

	for i, r := range ranked {
		if len(out) == target {
			break
		}
		cat := r.place.PrimaryCategory()
		if perCat[cat] >= capPer {
			continue
		}
		perCat[cat]++
		taken[i] = true
		out = append(out, r.place)
	}
	for i, r := range ranked {
		if len(out) == target {
			break
		}
		if !taken[i] {
			out = append(out, r.place)
		}
	}
	return out
}

func selectionScore(p *domain.Place, in SelectionInput, freq map[string]int, common int) float64 {
	rating := (max(p.Rating, 2) - 2) / 3

	pref := 0.0
	if in.Preferences.Matches(p) {
		pref = 1
	}

	diversity := 0.0
	if specific := p.SpecificCategories(); len(specific) > 0 {
		rare := 0
		for _, c := range specific {
			if freq[c] <= common {
				rare++
			}
		}
		diversity = float64(rare) / float64(len(specific))
	}

	return selRatingWeight*rating +
		selPreferenceWeight*pref +
		selBudgetWeight*budgetCompatibility(p.EstimatedCost, in.Constraints.MaxBudget) +
		selDiversityWeight*diversity +
		selGeoWeight*geoRelevance(p, in)
}

func budgetCompatibility(cost, budget float64) float64 {
	if cost <= 0 {
		return 1
	}
	if budget <= 0 {
		return 0
	}
	switch ratio := cost / budget; {
	case ratio <= 0.10:
		return 1
	case ratio <= 0.25:
		return 0.75
	case ratio <= 0.50:
		return 0.4
	case ratio <= 1:
		return 0.1
	default:
		return 0
	}
}

func geoRelevance(p *domain.Place, in SelectionInput) float64 {
	if in.Mode == domain.ModePointToPoint && in.End != nil {
		ratio := geo.DetourRatioWithFloor(in.Start, *in.End, p.Location, CorridorFloorMeters(in.Constraints))
		return domain.Clamp01((selectionDetourLimit - ratio) / (selectionDetourLimit - 1))
	}
	return 1 / (1 + geo.DistanceMeters(in.Start, p.Location)/selectionHalfDistanceMeters)
}

func categoryFrequency(places []domain.Place) map[string]int {
	freq := map[string]int{}
	for i := range places {
		for _, c := range places[i].SpecificCategories() {
			freq[c]++
		}
	}
	return freq
}

func placesOf(ranked []rankedPlace) []domain.Place {
	out := make([]domain.Place, len(ranked))
	for i := range ranked {
		out[i] = ranked[i].place
	}
	return out
}
