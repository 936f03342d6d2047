package types

import (
	"encoding/json"
	"time"
)

// Default values substituted when a climate feature is absent from the input.
const (
	DefaultTemperatureC = 15.0
	DefaultHumidityPct  = 50.0
	DefaultPressureHPa  = 1013.0
	DefaultWindSpeedMS  = 0.0
)

// ClimateFeatures is a snapshot of current weather conditions at a point.
// Fields are pointers so that "absent" is distinguishable from zero; the
// accessor methods substitute the documented defaults. The risk scorer never
// fails on missing fields.
type ClimateFeatures struct {
	Temperature *float64 `json:"temperature,omitempty"` // degrees C
	FeelsLike   *float64 `json:"feels_like,omitempty"`
	Humidity    *float64 `json:"humidity,omitempty"`   // percent, 0-100
	Pressure    *float64 `json:"pressure,omitempty"`   // hPa
	WindSpeed   *float64 `json:"wind_speed,omitempty"` // m/s
	Weather     string   `json:"weather,omitempty"`
	Clouds      *int     `json:"clouds,omitempty"` // percent cover
}

// TemperatureC returns the temperature or the default of 15C.
func (c *ClimateFeatures) TemperatureC() float64 {
	if c == nil || c.Temperature == nil {
		return DefaultTemperatureC
	}
	return *c.Temperature
}

// HumidityPct returns the relative humidity or the default of 50%.
func (c *ClimateFeatures) HumidityPct() float64 {
	if c == nil || c.Humidity == nil {
		return DefaultHumidityPct
	}
	return *c.Humidity
}

// PressureHPa returns the surface pressure or the default of 1013 hPa.
func (c *ClimateFeatures) PressureHPa() float64 {
	if c == nil || c.Pressure == nil {
		return DefaultPressureHPa
	}
	return *c.Pressure
}

// WindSpeedMS returns the wind speed or 0.
func (c *ClimateFeatures) WindSpeedMS() float64 {
	if c == nil || c.WindSpeed == nil {
		return DefaultWindSpeedMS
	}
	return *c.WindSpeed
}

// IsEmpty reports whether no feature at all was supplied. Confidence scoring
// treats an empty snapshot as missing data.
func (c *ClimateFeatures) IsEmpty() bool {
	return c == nil || (c.Temperature == nil && c.Humidity == nil &&
		c.Pressure == nil && c.WindSpeed == nil)
}

// MonthlyClimate is one month of aggregated historical weather.
type MonthlyClimate struct {
	Month              string  `json:"month"` // YYYY-MM label
	AvgTemperature     float64 `json:"avg_temperature"`
	TotalPrecipitation float64 `json:"total_precipitation"`
	AvgHumidity        float64 `json:"avg_humidity"`
	ExtremeEvents      int     `json:"extreme_events"`
}

// HistoricalBundle carries a location's monthly climate history plus derived
// qualitative trends.
//
// PRECONDITION: Months is ordered newest-first. The scorer reads the first N
// entries as "the most recent N months"; a caller supplying oldest-first data
// will silently score against the wrong window.
type HistoricalBundle struct {
	Months []MonthlyClimate      `json:"historical_data"`
	Trends map[string]TrendLabel `json:"trends"`
}

// TemperatureTrend returns the bundle's temperature trend, or TrendStable
// when the bundle or trend is absent.
func (h *HistoricalBundle) TemperatureTrend() TrendLabel {
	if h == nil || h.Trends == nil {
		return TrendStable
	}
	if t, ok := h.Trends[TrendTemperature]; ok {
		return t
	}
	return TrendStable
}

// TopRisk is one entry of an assessment's top-3 hazard ranking.
type TopRisk struct {
	Type  Hazard  `json:"type"`
	Score float64 `json:"score"`
}

// RiskAssessment is the full output of the risk scorer for one location.
type RiskAssessment struct {
	ID             string             `json:"id,omitempty" db:"id"`
	Location       string             `json:"location" db:"location"`
	Latitude       float64            `json:"latitude" db:"latitude"`
	Longitude      float64            `json:"longitude" db:"longitude"`
	OverallScore   float64            `json:"overall_risk_score" db:"risk_score"`
	RiskLevel      RiskLevel          `json:"risk_level" db:"risk_level"`
	Breakdown      map[Hazard]float64 `json:"risk_breakdown" db:"risk_breakdown"`
	TopRisks       []TopRisk          `json:"top_risks" db:"-"`
	AssessmentDate time.Time          `json:"assessment_date" db:"created_at"`
	Confidence     float64            `json:"confidence" db:"-"`
}

// ActionItem is one immutable catalog entry recommending a mitigation action.
// Catalog entries are reference data: they are built once at init and shared
// read-only across all plans.
type ActionItem struct {
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Category      ActionCategory `json:"category"`
	Priority      ActionPriority `json:"priority"`
	EstimatedCost float64        `json:"estimated_cost"`
	ImpactScore   float64        `json:"impact_score"`
	Timeframe     Timeframe      `json:"timeframe"`
}

// PlanInput is the assessment-shaped input the planner consumes. Every field
// is optional; absent fields resolve to the documented defaults (location
// "Unknown", level moderate, empty breakdown and ranking) so a degenerate
// input still yields the general-preparedness plan.
type PlanInput struct {
	Location  string             `json:"location"`
	RiskLevel RiskLevel          `json:"risk_level"`
	Breakdown map[Hazard]float64 `json:"risk_breakdown"`
	TopRisks  []TopRisk          `json:"top_risks"`
}

// UserProfile is pass-through attribution for persistence; it does not
// influence action selection or ordering.
type UserProfile struct {
	UserID      string          `json:"user_id,omitempty"`
	Preferences json.RawMessage `json:"preferences,omitempty"`
}

// ActionPlan is the prioritized, costed output of the action planner.
type ActionPlan struct {
	ID           string                 `json:"id,omitempty" db:"id"`
	Location     string                 `json:"location" db:"location"`
	RiskLevel    RiskLevel              `json:"risk_level" db:"priority"`
	Actions      []ActionItem           `json:"actions" db:"actions"`
	TotalActions int                    `json:"total_actions" db:"-"`
	TotalCost    float64                `json:"estimated_total_cost" db:"estimated_cost"`
	AvgImpact    float64                `json:"estimated_impact" db:"estimated_impact"`
	Timeline     map[Timeframe][]string `json:"timeline" db:"-"`
	GeneratedAt  time.Time              `json:"generated_at" db:"created_at"`
}

// ForecastEntry is one 3-hourly step of a weather forecast.
type ForecastEntry struct {
	Datetime             string  `json:"datetime"`
	Temperature          float64 `json:"temperature"`
	Humidity             float64 `json:"humidity"`
	Weather              string  `json:"weather"`
	PrecipitationProbPct float64 `json:"precipitation_prob"`
}

// ClimateObservation is a persisted snapshot of a current-weather fetch.
type ClimateObservation struct {
	ID         string          `json:"id" db:"id"`
	Location   string          `json:"location" db:"location"`
	Latitude   float64         `json:"latitude" db:"latitude"`
	Longitude  float64         `json:"longitude" db:"longitude"`
	Features   ClimateFeatures `json:"data" db:"raw_data"`
	DataSource string          `json:"data_source" db:"data_source"`
	Timestamp  time.Time       `json:"timestamp" db:"created_at"`
}

// FootprintEntry is one persisted carbon-footprint calculation.
type FootprintEntry struct {
	ID             string    `json:"id,omitempty" db:"id"`
	UserID         string    `json:"user_id" db:"user_id"`
	Category       string    `json:"category" db:"category"`
	ActivityType   string    `json:"activity_type" db:"activity_type"`
	Amount         float64   `json:"amount" db:"amount"`
	Unit           string    `json:"unit" db:"unit"`
	EmissionFactor float64   `json:"emission_factor" db:"emission_factor"`
	EmissionsKg    float64   `json:"emissions_kg" db:"emissions_kg"`
	Equivalent     string    `json:"equivalent" db:"equivalent"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// FootprintSummary aggregates a user's footprint entries.
type FootprintSummary struct {
	UserID          string             `json:"user_id"`
	TotalKg         float64            `json:"total_emissions_kg"`
	TotalTons       float64            `json:"total_emissions_tons"`
	ByCategory      map[string]float64 `json:"by_category"`
	TotalEntries    int                `json:"total_entries"`
	AveragePerEntry float64            `json:"average_per_entry"`
}

// AssessmentSummary is the lightweight history row for past assessments of a
// location.
type AssessmentSummary struct {
	ID        string    `json:"id"`
	RiskScore float64   `json:"risk_score"`
	RiskLevel RiskLevel `json:"risk_level"`
	Date      time.Time `json:"date"`
}

// ResponseMeta carries non-blocking notices alongside a successful response,
// such as a warning that live weather data was unavailable and synthetic data
// was served instead.
type ResponseMeta struct {
	Warnings []string `json:"warnings,omitempty"`
}

// PlanSummary is the lightweight history row for a user's past action plans.
type PlanSummary struct {
	ID              string    `json:"id"`
	Location        string    `json:"location"`
	Priority        RiskLevel `json:"priority"`
	TotalActions    int       `json:"total_actions"`
	EstimatedCost   float64   `json:"estimated_cost"`
	EstimatedImpact float64   `json:"estimated_impact"`
	CreatedAt       time.Time `json:"created_at"`
}
