// Package climate retrieves weather and historical climate data for a
// coordinate, falling back to synthetic data when the upstream provider is
// unavailable so that risk assessment can always proceed.
package climate

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"climateplanner/internal/types"
)

const (
	DefaultForecastDays    = 5
	MaxForecastDays        = 16
	DefaultHistoryMonths   = 12
	MaxHistoryMonths       = 60
	defaultObservationName = "unknown"
)

// WeatherProvider fetches live conditions from an upstream weather API.
type WeatherProvider interface {
	CurrentWeather(ctx context.Context, lat, lon float64) (*types.ClimateFeatures, error)
	Forecast(ctx context.Context, lat, lon float64, days int) ([]types.ForecastEntry, error)
}

// ObservationStore persists fetched observations; storage failures are logged
// and swallowed since the data is re-derivable.
type ObservationStore interface {
	InsertObservation(ctx context.Context, obs *types.ClimateObservation) error
}

// Snapshot is a current-conditions response with source attribution.
type Snapshot struct {
	Features   *types.ClimateFeatures `json:"data"`
	DataSource string                 `json:"data_source"`
}

// Bundle carries everything the risk scorer needs for one location.
type Bundle struct {
	Current    *types.ClimateFeatures
	Historical *types.HistoricalBundle
	DataSource string
}

// Service answers climate data queries. All methods degrade to synthetic data
// instead of returning upstream errors.
type Service struct {
	provider  WeatherProvider
	store     ObservationStore
	synthetic *Synthetic
	logger    *slog.Logger
	clock     types.Clock
}

// NewService creates a climate Service. provider and store may be nil, in
// which case all data is synthetic and nothing is persisted.
func NewService(provider WeatherProvider, store ObservationStore, synthetic *Synthetic, logger *slog.Logger, clock types.Clock) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if clock == nil {
		clock = types.RealClock{}
	}
	if synthetic == nil {
		synthetic = NewSynthetic(clock, nil)
	}
	return &Service{
		provider:  provider,
		store:     store,
		synthetic: synthetic,
		logger:    logger,
		clock:     clock,
	}
}

// Current returns current conditions for a coordinate. Upstream failures are
// logged and replaced with synthetic data, tagged via DataSource.
func (s *Service) Current(ctx context.Context, lat, lon float64) *Snapshot {
	if s.provider != nil {
		features, err := s.provider.CurrentWeather(ctx, lat, lon)
		if err == nil {
			return &Snapshot{Features: features, DataSource: "openweather"}
		}
		s.logger.WarnContext(ctx, "weather provider failed, using synthetic data",
			"lat", lat,
			"lon", lon,
			"error", err,
		)
	}
	return &Snapshot{Features: s.synthetic.CurrentWeather(), DataSource: "synthetic"}
}

// Forecast returns a 3-hourly forecast. days outside [1, MaxForecastDays]
// falls back to the default horizon.
func (s *Service) Forecast(ctx context.Context, lat, lon float64, days int) []types.ForecastEntry {
	if days < 1 || days > MaxForecastDays {
		days = DefaultForecastDays
	}

	if s.provider != nil {
		entries, err := s.provider.Forecast(ctx, lat, lon, days)
		if err == nil {
			return entries
		}
		s.logger.WarnContext(ctx, "forecast provider failed, using synthetic data",
			"lat", lat,
			"lon", lon,
			"error", err,
		)
	}
	return s.synthetic.Forecast(days)
}

// Historical returns a monthly climate record, newest month first. There is
// no upstream source wired for monthly aggregates, so the record is always
// synthetic.
func (s *Service) Historical(_ context.Context, _, _ float64, months int) *types.HistoricalBundle {
	if months < 1 || months > MaxHistoryMonths {
		months = DefaultHistoryMonths
	}
	return s.synthetic.Historical(months)
}

// FetchBundle gathers current conditions and the historical record
// concurrently for a risk assessment.
func (s *Service) FetchBundle(ctx context.Context, lat, lon float64) (*Bundle, error) {
	bundle := &Bundle{}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		snap := s.Current(gCtx, lat, lon)
		bundle.Current = snap.Features
		bundle.DataSource = snap.DataSource
		return nil
	})
	g.Go(func() error {
		bundle.Historical = s.Historical(gCtx, lat, lon, DefaultHistoryMonths)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return bundle, nil
}

// RecordObservation stores a fetched snapshot for later history queries.
// Persistence failures only log; the request that triggered the fetch already
// has its data.
func (s *Service) RecordObservation(ctx context.Context, location string, lat, lon float64, snap *Snapshot) {
	if s.store == nil || snap == nil || snap.Features == nil {
		return
	}
	if location == "" {
		location = defaultObservationName
	}

	obs := &types.ClimateObservation{
		Location:   location,
		Latitude:   lat,
		Longitude:  lon,
		Features:   *snap.Features,
		DataSource: snap.DataSource,
		Timestamp:  s.clock.Now(),
	}
	if err := s.store.InsertObservation(ctx, obs); err != nil {
		s.logger.WarnContext(ctx, "failed to persist climate observation",
			"location", location,
			"error", err,
		)
	}
}
