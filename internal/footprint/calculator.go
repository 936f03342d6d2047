// Package footprint converts activity amounts into CO2 emission estimates
// using a fixed emission-factor catalog.
package footprint

import (
	"fmt"
	"math"

	"climateplanner/internal/types"
)

const (
	// One tree absorbs roughly 21 kg of CO2 per year.
	treeAbsorptionKgPerYear = 21.0
	// Average petrol car, kg CO2 per km.
	carKgPerKm = 0.192
	milesPerKm = 0.621371
)

// Result is a single footprint calculation.
type Result struct {
	Category      string  `json:"category"`
	ActivityType  string  `json:"activity_type"`
	Amount        float64 `json:"amount"`
	Unit          string  `json:"unit"`
	EmissionsKg   float64 `json:"emissions_kg"`
	EmissionsTons float64 `json:"emissions_tons"`
	Equivalent    string  `json:"equivalent"`

	// Factor is the raw emission factor applied, kept for persistence.
	Factor float64 `json:"-"`
}

// Calculate computes emissions for one activity. It validates the category
// before the activity type so the error names the field the caller got wrong.
func Calculate(category, activityType string, amount float64, unit string) (*Result, error) {
	if !ValidCategory(category) {
		return nil, types.NewAppError(types.ErrCodeValidationInvalidCategory,
			fmt.Sprintf("invalid category: %s", category), nil)
	}
	factor, ok := Factor(category, activityType)
	if !ok {
		return nil, types.NewAppError(types.ErrCodeValidationInvalidActivity,
			fmt.Sprintf("invalid activity type: %s", activityType), nil)
	}

	kg := amount * factor

	return &Result{
		Category:      category,
		ActivityType:  activityType,
		Amount:        amount,
		Unit:          unit,
		EmissionsKg:   round2(kg),
		EmissionsTons: round4(kg / 1000),
		Equivalent:    Equivalent(kg),
		Factor:        factor,
	}, nil
}

// Equivalent renders a relatable comparison for an emissions figure. Small
// amounts read better as car miles, larger ones as tree-years.
func Equivalent(emissionsKg float64) string {
	trees := emissionsKg / treeAbsorptionKgPerYear
	if trees < 1 {
		miles := emissionsKg / carKgPerKm * milesPerKm
		return fmt.Sprintf("Equivalent to %.1f miles driven by car", miles)
	}
	return fmt.Sprintf("Requires %.1f trees for one year to offset", trees)
}

// Summarize aggregates a user's stored entries the way the summary endpoint
// reports them. A user with no entries gets a zeroed summary with an empty
// category map.
func Summarize(userID string, entries []types.FootprintEntry) *types.FootprintSummary {
	summary := &types.FootprintSummary{
		UserID:     userID,
		ByCategory: map[string]float64{},
	}
	if len(entries) == 0 {
		return summary
	}

	var total float64
	byCategory := map[string]float64{}
	for _, e := range entries {
		total += e.EmissionsKg
		byCategory[e.Category] += e.EmissionsKg
	}
	for cat, kg := range byCategory {
		summary.ByCategory[cat] = round2(kg)
	}

	summary.TotalKg = round2(total)
	summary.TotalTons = round4(total / 1000)
	summary.TotalEntries = len(entries)
	summary.AveragePerEntry = round2(total / float64(len(entries)))
	return summary
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
