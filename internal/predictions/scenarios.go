package predictions

import (
	"fmt"

	"climateplanner/internal/types"
)

// ScenarioData is the headline projection for one emissions pathway.
type ScenarioData struct {
	Description           string  `json:"description"`
	TempIncrease2050      float64 `json:"temperature_increase_2050"`
	SeaLevelRise2050CM    float64 `json:"sea_level_rise_2050_cm"`
	ExtremeEventsIncrease string  `json:"extreme_events_increase"`
}

// Scenario bundles a pathway's data with its impacts and recommendations for
// a location.
type Scenario struct {
	Location        string       `json:"location"`
	Name            string       `json:"scenario"`
	Data            ScenarioData `json:"data"`
	Impacts         []string     `json:"impacts"`
	Recommendations []string     `json:"recommendations"`
}

var scenarioData = map[string]ScenarioData{
	"optimistic": {
		Description:           "Strong climate action, rapid transition to renewables",
		TempIncrease2050:      1.5,
		SeaLevelRise2050CM:    30,
		ExtremeEventsIncrease: "20%",
	},
	"moderate": {
		Description:           "Current policies continue, moderate climate action",
		TempIncrease2050:      2.5,
		SeaLevelRise2050CM:    50,
		ExtremeEventsIncrease: "40%",
	},
	"pessimistic": {
		Description:           "Limited climate action, high emissions continue",
		TempIncrease2050:      4.0,
		SeaLevelRise2050CM:    80,
		ExtremeEventsIncrease: "70%",
	},
}

var scenarioImpacts = map[string][]string{
	"optimistic": {
		"Manageable sea level rise",
		"Reduced frequency of extreme weather",
		"Stable agricultural productivity",
		"Lower economic costs",
	},
	"moderate": {
		"Significant coastal flooding",
		"Increased droughts and heatwaves",
		"Agricultural challenges",
		"Moderate economic disruption",
	},
	"pessimistic": {
		"Major coastal city flooding",
		"Severe water scarcity",
		"Widespread crop failures",
		"Significant economic losses",
		"Mass displacement of populations",
	},
}

var scenarioRecommendations = map[string][]string{
	"optimistic": {
		"Continue supporting renewable energy",
		"Implement moderate adaptation measures",
		"Monitor climate trends closely",
	},
	"moderate": {
		"Accelerate transition to renewables",
		"Invest in resilient infrastructure",
		"Develop comprehensive adaptation plans",
		"Reduce personal carbon footprint",
	},
	"pessimistic": {
		"Urgent action on emissions reduction",
		"Major infrastructure upgrades needed",
		"Consider relocation from high-risk areas",
		"Develop emergency response capabilities",
	},
}

// DefaultScenario is assumed when the caller does not name a pathway.
const DefaultScenario = "moderate"

// ScenarioFor resolves a named emissions pathway for a location. Unknown
// names are rejected so callers cannot silently fall back to a pathway they
// did not ask for.
func ScenarioFor(lat, lon float64, name string) (*Scenario, error) {
	if name == "" {
		name = DefaultScenario
	}
	data, ok := scenarioData[name]
	if !ok {
		return nil, types.NewAppError(types.ErrCodeValidationInvalidScenario,
			fmt.Sprintf("invalid scenario: %s", name), nil)
	}

	return &Scenario{
		Location:        fmt.Sprintf("%g,%g", lat, lon),
		Name:            name,
		Data:            data,
		Impacts:         append([]string(nil), scenarioImpacts[name]...),
		Recommendations: append([]string(nil), scenarioRecommendations[name]...),
	}, nil
}
