package footprint

// Emission factors in kg CO2 per unit (km for transportation, kWh for energy,
// kg or item for the rest). Sourced from published lifecycle averages; the
// values are intentionally coarse.
var emissionFactors = map[string]map[string]float64{
	"transportation": {
		"car_petrol":   0.192,
		"car_diesel":   0.171,
		"car_electric": 0.053,
		"bus":          0.089,
		"train":        0.041,
		"flight_short": 0.255,
		"flight_long":  0.195,
		"motorcycle":   0.113,
	},
	"energy": {
		"electricity": 0.475,
		"natural_gas": 0.185,
		"heating_oil": 0.264,
		"coal":        0.340,
		"solar":       0.045,
		"wind":        0.011,
	},
	"food": {
		"beef":       27.0,
		"pork":       12.1,
		"chicken":    6.9,
		"fish":       5.1,
		"dairy":      1.9,
		"vegetables": 0.4,
		"fruits":     0.3,
		"grains":     0.5,
	},
	"goods": {
		"clothing":    6.5,
		"electronics": 85.0,
		"furniture":   150.0,
		"paper":       1.2,
		"plastic":     6.0,
	},
}

// categoryOrder fixes the listing order for Categories; map iteration would
// shuffle it between calls.
var categoryOrder = []string{"transportation", "energy", "food", "goods"}

// activityOrder mirrors the declaration order of each factor table.
var activityOrder = map[string][]string{
	"transportation": {"car_petrol", "car_diesel", "car_electric", "bus", "train", "flight_short", "flight_long", "motorcycle"},
	"energy":         {"electricity", "natural_gas", "heating_oil", "coal", "solar", "wind"},
	"food":           {"beef", "pork", "chicken", "fish", "dairy", "vegetables", "fruits", "grains"},
	"goods":          {"clothing", "electronics", "furniture", "paper", "plastic"},
}

// Factor looks up the emission factor for a category and activity type.
func Factor(category, activityType string) (float64, bool) {
	activities, ok := emissionFactors[category]
	if !ok {
		return 0, false
	}
	f, ok := activities[activityType]
	return f, ok
}

// ValidCategory reports whether category has a factor table.
func ValidCategory(category string) bool {
	_, ok := emissionFactors[category]
	return ok
}

// CategoryListing enumerates categories and their activity types in stable
// order, for the catalog endpoint.
type CategoryListing struct {
	Categories []string            `json:"categories"`
	Details    map[string][]string `json:"details"`
}

// Categories returns the full factor catalog listing. The result is freshly
// allocated on each call.
func Categories() CategoryListing {
	details := make(map[string][]string, len(activityOrder))
	for cat, acts := range activityOrder {
		details[cat] = append([]string(nil), acts...)
	}
	return CategoryListing{
		Categories: append([]string(nil), categoryOrder...),
		Details:    details,
	}
}
