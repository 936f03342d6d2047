package types

// Hazard identifies one of the six fixed climate hazard categories scored by
// the risk engine.
type Hazard string

const (
	HazardFlood        Hazard = "flood"
	HazardWildfire     Hazard = "wildfire"
	HazardHurricane    Hazard = "hurricane"
	HazardDrought      Hazard = "drought"
	HazardHeatwave     Hazard = "heatwave"
	HazardSeaLevelRise Hazard = "sea_level_rise"
)

// AllHazards is the canonical hazard ordering. Ranking ties and catalog
// iteration resolve in this order, so it must never be reordered.
var AllHazards = []Hazard{
	HazardFlood,
	HazardWildfire,
	HazardHurricane,
	HazardDrought,
	HazardHeatwave,
	HazardSeaLevelRise,
}

// RiskLevel is the qualitative label derived from an overall risk score.
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "low"
	RiskLevelModerate RiskLevel = "moderate"
	RiskLevelHigh     RiskLevel = "high"
	RiskLevelCritical RiskLevel = "critical"
)

// RiskLevelForScore maps an overall score onto the fixed half-open bands:
// [0,30) low, [30,60) moderate, [60,80) high, [80,100) critical. A score of
// exactly 100 is not covered by any band and falls through to critical.
func RiskLevelForScore(score float64) RiskLevel {
	switch {
	case score >= 0 && score < 30:
		return RiskLevelLow
	case score >= 30 && score < 60:
		return RiskLevelModerate
	case score >= 60 && score < 80:
		return RiskLevelHigh
	case score >= 80 && score < 100:
		return RiskLevelCritical
	default:
		return RiskLevelCritical
	}
}

// ActionPriority is the urgency class of a recommended action.
type ActionPriority string

const (
	PriorityCritical ActionPriority = "critical"
	PriorityHigh     ActionPriority = "high"
	PriorityMedium   ActionPriority = "medium"
	PriorityLow      ActionPriority = "low"
)

// Rank returns the numeric ordering weight used by the planner's composite
// sort (critical=4 .. low=1). Unknown priorities rank below low.
func (p ActionPriority) Rank() int {
	switch p {
	case PriorityCritical:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// ActionCategory groups catalog actions by the kind of work involved.
type ActionCategory string

const (
	CategoryInfrastructure ActionCategory = "infrastructure"
	CategoryMaintenance    ActionCategory = "maintenance"
	CategoryFinancial      ActionCategory = "financial"
	CategoryLandscaping    ActionCategory = "landscaping"
	CategorySafety         ActionCategory = "safety"
	CategoryPreparedness   ActionCategory = "preparedness"
)

// Timeframe is the implementation horizon an action is bucketed into.
type Timeframe string

const (
	TimeframeImmediate  Timeframe = "immediate"
	TimeframeShortTerm  Timeframe = "short-term"
	TimeframeMediumTerm Timeframe = "medium-term"
	TimeframeLongTerm   Timeframe = "long-term"
)

// AllTimeframes is the fixed phase ordering for plan timelines.
var AllTimeframes = []Timeframe{
	TimeframeImmediate,
	TimeframeShortTerm,
	TimeframeMediumTerm,
	TimeframeLongTerm,
}

// TrendLabel is a qualitative direction for a historical climate trend.
type TrendLabel string

const (
	TrendIncreasing TrendLabel = "increasing"
	TrendDecreasing TrendLabel = "decreasing"
	TrendStable     TrendLabel = "stable"
	TrendVariable   TrendLabel = "variable"
)

// Trend names present in a HistoricalBundle's Trends map.
const (
	TrendTemperature   = "temperature_trend"
	TrendPrecipitation = "precipitation_trend"
	TrendExtremeEvents = "extreme_events_trend"
)
