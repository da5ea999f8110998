package domain

import (
	"slices"
	"strings"
)

// Place is a candidate point of interest returned by a place catalog.
// Categories are free-form tags ("cafe", "park", "museum"); the first
// non-generic tag is treated as the place's primary category.
type Place struct {
	ID                   string
	Name                 string
	Location             Coordinates
	Rating               float64
	ReviewCount          int
	Categories           []string
	PriceTier            int
	BusinessStatus       string
	VisitDurationMinutes int
	EstimatedCost        float64

	// Set on resolved journey endpoints. Virtual endpoints carry zero
	// cost and zero visit duration.
	IsStartPoint bool
	IsEndPoint   bool
	Virtual      bool
}

const BusinessOperational = "OPERATIONAL"

// Tags catalogs attach to almost everything; they say nothing about what a place is.
var genericCategories = map[string]bool{
	"point_of_interest": true,
	"establishment":     true,
	"premise":           true,
	"food":              true,
	"store":             true,
	"health":            true,
	"finance":           true,
}

func IsGenericCategory(tag string) bool { return genericCategories[normalizeTag(tag)] }

func normalizeTag(tag string) string { return strings.ToLower(strings.TrimSpace(tag)) }

func (p *Place) HasCategory(tags ...string) bool {
	for _, c := range p.Categories {
		if slices.Contains(tags, normalizeTag(c)) {
			return true
		}
	}
	return false
}

// SpecificCategories returns the place's tags minus generic filler, lowercased, in order.
func (p *Place) SpecificCategories() []string {
	out := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		c = normalizeTag(c)
		if c == "" || genericCategories[c] || slices.Contains(out, c) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (p *Place) PrimaryCategory() string {
	if specific := p.SpecificCategories(); len(specific) > 0 {
		return specific[0]
	}
	if len(p.Categories) > 0 {
		return normalizeTag(p.Categories[0])
	}
	return ""
}

func (p *Place) IsOperational() bool {
	return p.BusinessStatus == "" || strings.EqualFold(p.BusinessStatus, BusinessOperational)
}

// PreferenceSet maps a category tag to whether the user asked for it.
type PreferenceSet map[string]bool

// Active returns the enabled categories, sorted for deterministic iteration.
func (ps PreferenceSet) Active() []string {
	out := make([]string, 0, len(ps))
	for tag, on := range ps {
		if on {
			out = append(out, normalizeTag(tag))
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func (ps PreferenceSet) Matches(p *Place) bool {
	active := ps.Active()
	return len(active) > 0 && p.HasCategory(active...)
}
