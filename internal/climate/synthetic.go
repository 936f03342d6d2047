package climate

import (
	"math"
	"math/rand/v2"
	"time"

	"climateplanner/internal/types"
)

var syntheticConditions = []string{"clear sky", "few clouds", "scattered clouds", "light rain"}

// Synthetic generates plausible weather data when no upstream source is
// available. The random source is injected so tests can pin the output.
type Synthetic struct {
	clock types.Clock
	rand  types.Rand
}

func NewSynthetic(clock types.Clock, rnd types.Rand) *Synthetic {
	if clock == nil {
		clock = types.RealClock{}
	}
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Synthetic{clock: clock, rand: rnd}
}

// CurrentWeather fabricates a current-conditions sample.
func (s *Synthetic) CurrentWeather() *types.ClimateFeatures {
	temp := round1(15 + s.uniform(-10, 20))
	feels := round1(15 + s.uniform(-10, 20))
	humidity := float64(40 + s.rand.IntN(51))
	pressure := float64(980 + s.rand.IntN(51))
	wind := round1(s.uniform(0, 15))
	clouds := s.rand.IntN(101)

	return &types.ClimateFeatures{
		Temperature: &temp,
		FeelsLike:   &feels,
		Humidity:    &humidity,
		Pressure:    &pressure,
		WindSpeed:   &wind,
		Weather:     syntheticConditions[s.rand.IntN(len(syntheticConditions))],
		Clouds:      &clouds,
	}
}

// Forecast fabricates a 3-hourly forecast covering the requested days.
func (s *Synthetic) Forecast(days int) []types.ForecastEntry {
	base := s.clock.Now()
	entries := make([]types.ForecastEntry, 0, days*8)
	for i := 0; i < days*8; i++ {
		at := base.Add(time.Duration(i) * 3 * time.Hour)
		entries = append(entries, types.ForecastEntry{
			Datetime:             at.Format("2006-01-02 15:04:05"),
			Temperature:          round1(15 + s.uniform(-5, 15)),
			Humidity:             float64(40 + s.rand.IntN(51)),
			Weather:              syntheticConditions[s.rand.IntN(len(syntheticConditions))],
			PrecipitationProbPct: float64(s.rand.IntN(101)),
		})
	}
	return entries
}

// Historical fabricates a monthly climate record. Months are ordered
// newest-first, which is the order the risk scorer's precipitation windows
// expect.
func (s *Synthetic) Historical(months int) *types.HistoricalBundle {
	base := s.clock.Now()
	records := make([]types.MonthlyClimate, 0, months)
	for i := 0; i < months; i++ {
		at := base.AddDate(0, 0, -30*i)
		records = append(records, types.MonthlyClimate{
			Month:              at.Format("2006-01"),
			AvgTemperature:     round1(15 + s.uniform(-5, 15)),
			TotalPrecipitation: round1(s.uniform(20, 200)),
			AvgHumidity:        float64(50 + s.rand.IntN(31)),
			ExtremeEvents:      s.rand.IntN(6),
		})
	}

	return &types.HistoricalBundle{
		Months: records,
		Trends: map[string]types.TrendLabel{
			types.TrendTemperature:   types.TrendIncreasing,
			types.TrendPrecipitation: types.TrendVariable,
			types.TrendExtremeEvents: types.TrendIncreasing,
		},
	}
}

func (s *Synthetic) uniform(lo, hi float64) float64 {
	return lo + s.rand.Float64()*(hi-lo)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
