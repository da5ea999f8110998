package services

import (
	"regexp"
	"strings"

	"journey-synthesis-service/internal/domain"
)

// Categories that mark a place as a non-leisure destination. The generic
// umbrella tags in this set (store, health, finance) only exclude a place
// together with a specific excluded tag.
var excludedCategories = map[string]bool{
	"accounting":                        true,
	"atm":                               true,
	"bank":                              true,
	"finance":                           true,
	"insurance_agency":                  true,
	"real_estate_agency":                true,
	"lawyer":                            true,
	"travel_agency":                     true,
	"employment_agency":                 true,
	"dentist":                           true,
	"doctor":                            true,
	"hospital":                          true,
	"pharmacy":                          true,
	"physiotherapist":                   true,
	"veterinary_care":                   true,
	"health":                            true,
	"lodging":                           true,
	"hotel":                             true,
	"motel":                             true,
	"storage":                           true,
	"moving_company":                    true,
	"electrician":                       true,
	"plumber":                           true,
	"roofing_contractor":                true,
	"general_contractor":                true,
	"locksmith":                         true,
	"laundry":                           true,
	"car_repair":                        true,
	"car_dealer":                        true,
	"car_rental":                        true,
	"car_wash":                          true,
	"gas_station":                       true,
	"parking":                           true,
	"electric_vehicle_charging_station": true,
	"local_government_office":           true,
	"city_hall":                         true,
	"courthouse":                        true,
	"embassy":                           true,
	"police":                            true,
	"fire_station":                      true,
	"post_office":                       true,
	"funeral_home":                      true,
	"cemetery":                          true,
	"corporate_office":                  true,
	"office":                            true,
	"industrial":                        true,
	"factory":                           true,
	"warehouse":                         true,
	"utility":                           true,
	"store":                             true,
}

var corporateNamePattern = regexp.MustCompile(`(?i)(\b(inc|llc|ltd|corp|corporation|gmbh|plc|pvt|headquarters|hq|enterprises|logistics|consultants?|consulting|solutions)\b|\bco\.|tech\s*park|business\s+(center|centre|park)|industrial\s+(estate|area|park)|office\s+(park|complex|tower))`)

type qualityRule struct {
	minRating  float64
	minReviews int
}

var defaultQuality = qualityRule{minRating: 4.0, minReviews: 15}

// Categories with fewer reviews in practice get a lower review floor.
var relaxedQuality = map[string]qualityRule{
	"park":             {minRating: 4.0, minReviews: 8},
	"natural_feature":  {minRating: 4.0, minReviews: 8},
	"hiking_area":      {minRating: 4.0, minReviews: 8},
	"campground":       {minRating: 4.0, minReviews: 8},
	"place_of_worship": {minRating: 4.0, minReviews: 10},
	"church":           {minRating: 4.0, minReviews: 10},
	"library":          {minRating: 4.0, minReviews: 10},
}

// FilterCandidates drops places unfit for a leisure journey: non-operational
// businesses, non-leisure categories, corporate names and low-quality places.
// Surviving places keep their input order.
func FilterCandidates(places []domain.Place) []domain.Place {
	out := make([]domain.Place, 0, len(places))
	for i := range places {
		p := &places[i]
		if !p.IsOperational() || hasExcludedCategory(p) || corporateNamePattern.MatchString(p.Name) || !meetsQuality(p) {
			continue
		}
		out = append(out, *p)
	}
	return out
}

func hasExcludedCategory(p *domain.Place) bool {
	for _, c := range p.Categories {
		c = strings.ToLower(strings.TrimSpace(c))
		if excludedCategories[c] && !domain.IsGenericCategory(c) {
			return true
		}
	}
	return false
}

func meetsQuality(p *domain.Place) bool {
	if passes(p, defaultQuality) {
		return true
	}
	for _, c := range p.SpecificCategories() {
		if rule, ok := relaxedQuality[c]; ok && passes(p, rule) {
			return true
		}
	}
	return false
}

func passes(p *domain.Place, r qualityRule) bool {
	return p.Rating >= r.minRating && p.ReviewCount >= r.minReviews
}
