// Package predictions projects per-year climate change estimates and hazard
// risk trajectories from a simplified trend model with random variability.
package predictions

import (
	"fmt"
	"math"
	"math/rand/v2"

	"climateplanner/internal/types"
)

const (
	// Warming of roughly 1.5 degrees per decade.
	tempIncreasePerYear = 0.15
	// Global mean sea level rise in mm per year.
	seaLevelRiseMMPerYear = 3.3

	extremeEventsBasePct = 10.0
	extremeEventsPerYear = 2.0
	extremeEventsCapPct  = 40.0

	DefaultYears = 10
	MaxYears     = 50
)

// riskRamp is the linear growth model for one hazard's projected score.
type riskRamp struct {
	base    float64
	perYear float64
	jitter  float64
}

// riskRamps orders hazards the way risk progressions are reported.
var riskRamps = map[types.Hazard]riskRamp{
	types.HazardFlood:        {base: 30, perYear: 2.5, jitter: 5},
	types.HazardWildfire:     {base: 25, perYear: 3, jitter: 5},
	types.HazardHurricane:    {base: 20, perYear: 2, jitter: 5},
	types.HazardDrought:      {base: 28, perYear: 2.8, jitter: 5},
	types.HazardHeatwave:     {base: 35, perYear: 3.5, jitter: 5},
	types.HazardSeaLevelRise: {base: 15, perYear: 1.5, jitter: 3},
}

// YearPrediction is the projection for a single future year.
type YearPrediction struct {
	Year                 int                      `json:"year"`
	TemperatureChange    float64                  `json:"temperature_change"`
	PrecipChangePct      float64                  `json:"precipitation_change_percent"`
	ExtremeEventsProbPct float64                  `json:"extreme_events_probability"`
	SeaLevelRiseMM       float64                  `json:"sea_level_rise_mm"`
	RiskScores           map[types.Hazard]float64 `json:"risk_scores"`
	OverallRisk          float64                  `json:"overall_risk"`
}

// TemperatureTrend summarizes projected warming over the horizon.
type TemperatureTrend struct {
	AverageIncrease float64          `json:"average_increase"`
	TotalIncrease   float64          `json:"total_increase"`
	Trend           types.TrendLabel `json:"trend"`
}

// OverallRiskTrend compares first-year and final-year overall risk.
type OverallRiskTrend struct {
	Current         float64 `json:"current"`
	Future          float64 `json:"future"`
	IncreasePercent float64 `json:"increase_percent"`
}

// SeaLevelTrend summarizes cumulative rise and the mean annual rate.
type SeaLevelTrend struct {
	TotalRiseMM float64 `json:"total_rise_mm"`
	AnnualRate  float64 `json:"annual_rate"`
}

// ExtremeEventsTrend summarizes the probability shift across the horizon.
type ExtremeEventsTrend struct {
	ProbabilityIncrease float64          `json:"probability_increase"`
	Trend               types.TrendLabel `json:"trend"`
}

// Trends aggregates the four trend summaries over a prediction run.
type Trends struct {
	Temperature   TemperatureTrend   `json:"temperature"`
	OverallRisk   OverallRiskTrend   `json:"overall_risk"`
	SeaLevel      SeaLevelTrend      `json:"sea_level"`
	ExtremeEvents ExtremeEventsTrend `json:"extreme_events"`
}

// Projection is a full multi-year prediction run for one location.
type Projection struct {
	Location        string                     `json:"location"`
	PredictionYears int                        `json:"prediction_years"`
	Predictions     []YearPrediction           `json:"predictions"`
	Trends          Trends                     `json:"trends"`
	RiskProgression map[types.Hazard][]float64 `json:"risk_progression"`
}

// Generator produces projections. The random source and clock are injected so
// tests can pin both.
type Generator struct {
	clock types.Clock
	rand  types.Rand
}

func NewGenerator(clock types.Clock, rnd types.Rand) *Generator {
	if clock == nil {
		clock = types.RealClock{}
	}
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Generator{clock: clock, rand: rnd}
}

// Generate projects years of climate change starting from the year after the
// current one. years outside [1, MaxYears] is rejected rather than clamped.
func (g *Generator) Generate(lat, lon float64, years int) (*Projection, error) {
	if years < 1 || years > MaxYears {
		return nil, types.NewAppError(types.ErrCodeValidationInvalidRange,
			fmt.Sprintf("years must be between 1 and %d", MaxYears), nil)
	}

	baseYear := g.clock.Now().Year()
	preds := make([]YearPrediction, 0, years)
	for offset := 1; offset <= years; offset++ {
		p := g.yearPrediction(offset)
		p.Year = baseYear + offset
		preds = append(preds, p)
	}

	return &Projection{
		Location:        fmt.Sprintf("%g,%g", lat, lon),
		PredictionYears: years,
		Predictions:     preds,
		Trends:          analyzeTrends(preds),
		RiskProgression: riskProgression(preds),
	}, nil
}

func (g *Generator) yearPrediction(offset int) YearPrediction {
	tempChange := tempIncreasePerYear*float64(offset) + g.uniform(-0.5, 0.5)
	precipChange := g.uniform(-10, 20)
	extremeProb := math.Min(extremeEventsBasePct+float64(offset)*extremeEventsPerYear, extremeEventsCapPct)
	seaLevel := seaLevelRiseMMPerYear * float64(offset)

	scores := make(map[types.Hazard]float64, len(riskRamps))
	var sum float64
	for _, h := range types.AllHazards {
		ramp := riskRamps[h]
		raw := math.Min(ramp.base+float64(offset)*ramp.perYear+g.uniform(-ramp.jitter, ramp.jitter), 100)
		sum += raw
		scores[h] = round1(raw)
	}

	return YearPrediction{
		TemperatureChange:    round2(tempChange),
		PrecipChangePct:      round1(precipChange),
		ExtremeEventsProbPct: round1(extremeProb),
		SeaLevelRiseMM:       round1(seaLevel),
		RiskScores:           scores,
		OverallRisk:          round1(sum / float64(len(scores))),
	}
}

func analyzeTrends(preds []YearPrediction) Trends {
	first, last := preds[0], preds[len(preds)-1]

	var tempSum float64
	for _, p := range preds {
		tempSum += p.TemperatureChange
	}

	// Mean of consecutive sea-level deltas; a single-year run has no deltas
	// and reports rate 0.
	var rate float64
	if len(preds) > 1 {
		rate = (last.SeaLevelRiseMM - preds[0].SeaLevelRiseMM) / float64(len(preds)-1)
	}

	var riskIncreasePct float64
	if first.OverallRisk != 0 {
		riskIncreasePct = (last.OverallRisk - first.OverallRisk) / first.OverallRisk * 100
	}

	return Trends{
		Temperature: TemperatureTrend{
			AverageIncrease: round2(tempSum / float64(len(preds))),
			TotalIncrease:   round2(last.TemperatureChange),
			Trend:           types.TrendIncreasing,
		},
		OverallRisk: OverallRiskTrend{
			Current:         round1(first.OverallRisk),
			Future:          round1(last.OverallRisk),
			IncreasePercent: round1(riskIncreasePct),
		},
		SeaLevel: SeaLevelTrend{
			TotalRiseMM: round1(last.SeaLevelRiseMM),
			AnnualRate:  round2(rate),
		},
		ExtremeEvents: ExtremeEventsTrend{
			ProbabilityIncrease: round1(last.ExtremeEventsProbPct - first.ExtremeEventsProbPct),
			Trend:               types.TrendIncreasing,
		},
	}
}

func riskProgression(preds []YearPrediction) map[types.Hazard][]float64 {
	progression := make(map[types.Hazard][]float64, len(types.AllHazards))
	for _, h := range types.AllHazards {
		series := make([]float64, len(preds))
		for i, p := range preds {
			series[i] = round1(p.RiskScores[h])
		}
		progression[h] = series
	}
	return progression
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rand.Float64()*(hi-lo)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
