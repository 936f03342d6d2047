// Package risk implements the climate hazard scoring engine.
//
// The Scorer maps a location and its current/historical climate features onto
// six per-hazard risk scores, an overall score and level, a top-3 hazard
// ranking, and a confidence estimate. Scoring is a pure rule-based heuristic:
// each hazard starts from a base value and accumulates independent additive
// bonuses, clamped to [0,100]. There is no I/O and no failure mode -- missing
// inputs resolve to documented defaults instead of errors.
//
// The only time-dependent rule is the wildfire seasonal bonus, which consults
// the injected Clock for the current UTC month. Everything else is
// deterministic in its inputs.
package risk

import (
	"math"

	"climateplanner/internal/types"
)

// History windows read by the precipitation rules. The historical slice is
// newest-first, so a prefix of N entries is the most recent N months.
const (
	floodPrecipWindow   = 3
	droughtPrecipWindow = 6
)

// Confidence model: base plus data-completeness bonuses, capped.
const (
	confidenceBase        = 70
	confidenceClimateData = 10
	confidenceFullHistory = 15 // >= fullHistoryMonths of records
	confidenceSomeHistory = 5
	confidenceCap         = 95

	fullHistoryMonths = 12
)

// Scorer computes risk assessments. It is stateless apart from the injected
// clock and safe for concurrent use.
type Scorer struct {
	clock types.Clock
}

// NewScorer creates a Scorer. A nil clock defaults to the real UTC clock.
func NewScorer(clock types.Clock) *Scorer {
	if clock == nil {
		clock = types.RealClock{}
	}
	return &Scorer{clock: clock}
}

// Assess scores all six hazards for the location and derives the aggregate
// view. climate and hist may be nil; every rule then falls back to defaults
// and the historical bonuses simply do not apply.
//
// hist.Months must be ordered newest-first (see types.HistoricalBundle).
func (s *Scorer) Assess(location string, lat, lon float64, climate *types.ClimateFeatures, hist *types.HistoricalBundle) *types.RiskAssessment {
	scores := map[types.Hazard]float64{
		types.HazardFlood:        s.floodRisk(lat, climate, hist),
		types.HazardWildfire:     s.wildfireRisk(lat, climate),
		types.HazardHurricane:    s.hurricaneRisk(lat, climate),
		types.HazardDrought:      s.droughtRisk(climate, hist),
		types.HazardHeatwave:     s.heatwaveRisk(climate, hist),
		types.HazardSeaLevelRise: s.seaLevelRiseRisk(lat, hist),
	}

	var sum float64
	for _, v := range scores {
		sum += v
	}
	overall := round2(sum / float64(len(types.AllHazards)))

	breakdown := make(map[types.Hazard]float64, len(scores))
	for h, v := range scores {
		breakdown[h] = round2(v)
	}

	return &types.RiskAssessment{
		Location:       location,
		Latitude:       lat,
		Longitude:      lon,
		OverallScore:   overall,
		RiskLevel:      types.RiskLevelForScore(overall),
		Breakdown:      breakdown,
		TopRisks:       topRisks(scores, 3),
		AssessmentDate: s.clock.Now(),
		Confidence:     s.confidence(climate, hist),
	}
}

// floodRisk: base 20; humidity as a precipitation proxy (+30 above 70%, +15
// above 50%); +10 for temperate/tropical latitudes; +20 when the most recent
// three months averaged over 150mm of precipitation.
func (s *Scorer) floodRisk(lat float64, climate *types.ClimateFeatures, hist *types.HistoricalBundle) float64 {
	score := 20.0

	humidity := climate.HumidityPct()
	if humidity > 70 {
		score += 30
	} else if humidity > 50 {
		score += 15
	}

	if math.Abs(lat) < 45 {
		score += 10
	}

	if avg, ok := recentPrecipMean(hist, floodPrecipWindow); ok && avg > 150 {
		score += 20
	}

	return clamp(score)
}

// wildfireRisk: base 15; heat/dryness tiers; wind tiers; a +10 seasonal bonus
// during the hemisphere's fire season (Jun-Sep north of the equator, Nov-Mar
// south of it) based on the clock's current UTC month.
func (s *Scorer) wildfireRisk(lat float64, climate *types.ClimateFeatures) float64 {
	score := 15.0

	temp := climate.TemperatureC()
	humidity := climate.HumidityPct()

	switch {
	case temp > 30 && humidity < 30:
		score += 40
	case temp > 25 && humidity < 40:
		score += 25
	case temp > 20:
		score += 10
	}

	wind := climate.WindSpeedMS()
	if wind > 10 {
		score += 15
	} else if wind > 5 {
		score += 8
	}

	month := int(s.clock.Now().UTC().Month())
	if lat > 0 && month >= 6 && month <= 9 {
		score += 10
	} else if lat < 0 && (month <= 3 || month >= 11) {
		score += 10
	}

	return clamp(score)
}

// hurricaneRisk: base 10; latitude band bonus (tropical formation zone
// 5-30 degrees gets +30, the equatorial dead zone +10, elsewhere +5); warm
// sea-surface proxy (+20 above 26C); low pressure (+25 below 1000 hPa);
// strong wind (+15 above 15 m/s).
func (s *Scorer) hurricaneRisk(lat float64, climate *types.ClimateFeatures) float64 {
	score := 10.0

	absLat := math.Abs(lat)
	switch {
	case absLat > 5 && absLat < 30:
		score += 30
	case absLat < 5:
		score += 10
	default:
		score += 5
	}

	if climate.TemperatureC() > 26 {
		score += 20
	}
	if climate.PressureHPa() < 1000 {
		score += 25
	}
	if climate.WindSpeedMS() > 15 {
		score += 15
	}

	return clamp(score)
}

// droughtRisk: base 20; dryness tiers on humidity; recent six-month
// precipitation deficit tiers; +15 above 30C.
func (s *Scorer) droughtRisk(climate *types.ClimateFeatures, hist *types.HistoricalBundle) float64 {
	score := 20.0

	humidity := climate.HumidityPct()
	if humidity < 30 {
		score += 30
	} else if humidity < 50 {
		score += 15
	}

	if avg, ok := recentPrecipMean(hist, droughtPrecipWindow); ok {
		if avg < 50 {
			score += 25
		} else if avg < 100 {
			score += 10
		}
	}

	if climate.TemperatureC() > 30 {
		score += 15
	}

	return clamp(score)
}

// heatwaveRisk: base 15; temperature tiers; humid-heat amplification (+20 when
// above 28C with humidity over 60%); +15 on an increasing temperature trend.
func (s *Scorer) heatwaveRisk(climate *types.ClimateFeatures, hist *types.HistoricalBundle) float64 {
	score := 15.0

	temp := climate.TemperatureC()
	switch {
	case temp > 35:
		score += 40
	case temp > 30:
		score += 25
	case temp > 25:
		score += 10
	}

	if temp > 28 && climate.HumidityPct() > 60 {
		score += 20
	}

	if hist.TemperatureTrend() == types.TrendIncreasing {
		score += 15
	}

	return clamp(score)
}

// seaLevelRiseRisk: base 10; +25 outside the polar regions (latitude as a
// coarse coastal-exposure proxy); +20 on an increasing temperature trend.
func (s *Scorer) seaLevelRiseRisk(lat float64, hist *types.HistoricalBundle) float64 {
	score := 10.0

	if math.Abs(lat) < 60 {
		score += 25
	}

	if hist.TemperatureTrend() == types.TrendIncreasing {
		score += 20
	}

	return clamp(score)
}

// confidence reflects input completeness, not statistical certainty.
func (s *Scorer) confidence(climate *types.ClimateFeatures, hist *types.HistoricalBundle) float64 {
	confidence := float64(confidenceBase)

	if !climate.IsEmpty() {
		confidence += confidenceClimateData
	}

	if hist != nil && len(hist.Months) > 0 {
		if len(hist.Months) >= fullHistoryMonths {
			confidence += confidenceFullHistory
		} else {
			confidence += confidenceSomeHistory
		}
	}

	return math.Min(confidence, confidenceCap)
}

// recentPrecipMean averages total_precipitation over the most recent window
// months. Returns ok=false when no history is available, so the caller's
// bonus simply does not apply (this also guards the divide-by-zero).
func recentPrecipMean(hist *types.HistoricalBundle, window int) (float64, bool) {
	if hist == nil || len(hist.Months) == 0 {
		return 0, false
	}
	months := hist.Months
	if len(months) > window {
		months = months[:window]
	}
	var sum float64
	for _, m := range months {
		sum += m.TotalPrecipitation
	}
	return sum / float64(len(months)), true
}

// topRisks returns the n highest-scoring hazards in descending order. The
// sort walks hazards in canonical order and is stable, so equal scores keep
// that order rather than re-sorting by name.
func topRisks(scores map[types.Hazard]float64, n int) []types.TopRisk {
	ranked := make([]types.TopRisk, 0, len(types.AllHazards))
	for _, h := range types.AllHazards {
		ranked = append(ranked, types.TopRisk{Type: h, Score: round2(scores[h])})
	}

	// Stable insertion sort by score descending; the input is tiny.
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && ranked[j].Score > ranked[j-1].Score; j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}

	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

func clamp(score float64) float64 {
	return math.Min(score, 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
