package domain

const (
	DefaultVisitMinutes = 45
	DefaultRating       = 3.0
	defaultCategoryCost = 10.0
)

var visitMinutesByCategory = map[string]int{
	"amusement_park":     180,
	"zoo":                120,
	"stadium":            120,
	"museum":             90,
	"aquarium":           90,
	"spa":                90,
	"night_club":         90,
	"art_gallery":        60,
	"tourist_attraction": 60,
	"restaurant":         60,
	"bar":                60,
	"shopping_mall":      60,
	"park":               45,
	"library":            45,
	"book_store":         30,
	"cafe":               30,
	"place_of_worship":   30,
	"church":             30,
	"bakery":             20,
}

var costByCategory = map[string]float64{
	"amusement_park":     50,
	"aquarium":           30,
	"spa":                40,
	"zoo":                25,
	"restaurant":         25,
	"stadium":            35,
	"night_club":         20,
	"bar":                20,
	"museum":             15,
	"art_gallery":        8,
	"tourist_attraction": 10,
	"cafe":               8,
	"bakery":             6,
	"park":               0,
	"library":            0,
	"place_of_worship":   0,
	"church":             0,
}

// Typical per-person spend for catalog price levels 0..4.
var costByPriceTier = []float64{0, 10, 25, 50, 90}

// EstimateVisitMinutes uses the longest typical visit among the place's known categories.
func EstimateVisitMinutes(categories []string) int {
	best := 0
	for _, c := range categories {
		if m, ok := visitMinutesByCategory[normalizeTag(c)]; ok && m > best {
			best = m
		}
	}
	if best == 0 {
		return DefaultVisitMinutes
	}
	return best
}

// EstimateCost takes the larger of the category baseline and the price tier spend.
func EstimateCost(categories []string, priceTier int) float64 {
	base, known := 0.0, false
	for _, c := range categories {
		if v, ok := costByCategory[normalizeTag(c)]; ok {
			if !known || v > base {
				base = v
			}
			known = true
		}
	}
	if !known {
		base = defaultCategoryCost
	}
	if priceTier > 0 {
		tier := min(priceTier, len(costByPriceTier)-1)
		base = max(base, costByPriceTier[tier])
	}
	return base
}

// WithDefaults fills zero-valued derived fields from the place's categories.
func (p Place) WithDefaults() Place {
	if p.Rating <= 0 {
		p.Rating = DefaultRating
	}
	if p.VisitDurationMinutes <= 0 && !p.Virtual {
		p.VisitDurationMinutes = EstimateVisitMinutes(p.Categories)
	}
	if p.EstimatedCost <= 0 && !p.Virtual {
		p.EstimatedCost = EstimateCost(p.Categories, p.PriceTier)
	}
	return p
}
