// Package main is the entry point for the climate planner API server.
//
// It loads configuration, connects the database pool and external weather and
// geocoding clients, builds the HTTP server with the core chassis (middleware,
// routing, health checks), and starts listening for requests.
//
// Graceful shutdown is handled via OS signal interception (SIGINT, SIGTERM).
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"climateplanner/internal/actions"
	"climateplanner/internal/api/handlers"
	"climateplanner/internal/climate"
	"climateplanner/internal/config"
	"climateplanner/internal/core"
	"climateplanner/internal/db"
	"climateplanner/internal/external"
	"climateplanner/internal/predictions"
	"climateplanner/internal/risk"
)

// startupTimeout bounds database connection establishment at boot.
const startupTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// run encapsulates the startup lifecycle so that main() can cleanly exit on error.
func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger := newLogger(cfg.LogLevel)
	logger.Info("climate planner API starting",
		"environment", cfg.Environment,
		"version", cfg.Build.Version,
		"commit", cfg.Build.Commit,
		"port", cfg.Server.Port,
	)

	srv, err := core.NewServer(cfg, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	// Database pool. Persistence can be disabled outright, in which case all
	// endpoints still work but nothing is stored and listings come back empty.
	var pool *pgxpool.Pool
	if cfg.Feature.EnablePersistence {
		ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
		pool, err = db.NewPool(ctx, cfg.Database)
		cancel()
		if err != nil {
			return fmt.Errorf("connecting database: %w", err)
		}
		srv.HealthProbes = append(srv.HealthProbes, db.HealthProbe(pool))
		srv.OnShutdown = append(srv.OnShutdown, func(_ context.Context) error {
			pool.Close()
			return nil
		})
	} else {
		logger.Warn("persistence disabled; assessments, plans and footprints will not be stored")
	}

	// Live weather is optional: without an API key (or with the feature off)
	// the climate service serves synthetic data and tags it as such.
	var provider climate.WeatherProvider
	if cfg.Feature.EnableLiveWeather && cfg.Weather.OpenWeatherAPIKey.Unmask() != "" {
		provider = external.NewOpenWeatherClient(
			&http.Client{Timeout: cfg.Weather.Timeout},
			external.OpenWeatherClientConfig{
				APIKey:  cfg.Weather.OpenWeatherAPIKey,
				BaseURL: cfg.Weather.BaseURL,
				Logger:  logger,
			},
		)
	} else {
		logger.Warn("live weather disabled; serving synthetic climate data")
	}

	geocoder := external.NewNominatimClient(
		&http.Client{Timeout: cfg.Geocoder.Timeout},
		external.NominatimClientConfig{
			UserAgent: cfg.Geocoder.UserAgent,
			BaseURL:   cfg.Geocoder.BaseURL,
			Logger:    logger,
		},
	)

	var (
		assessmentStore handlers.AssessmentStore
		planStore       handlers.PlanStore
		footprintStore  handlers.FootprintStore
		obsStore        climate.ObservationStore
	)
	if pool != nil {
		assessmentStore = db.NewAssessmentRepository(pool)
		planStore = db.NewPlanRepository(pool)
		footprintStore = db.NewFootprintRepository(pool)
		obsStore = db.NewClimateRepository(pool)
	}

	climateService := climate.NewService(provider, obsStore, nil, logger, nil)
	scorer := risk.NewScorer(nil)
	planner := actions.NewPlanner(nil)
	generator := predictions.NewGenerator(nil, nil)

	riskHandler := handlers.NewRiskHandler(geocoder, climateService, scorer, assessmentStore, srv.Validator, logger)
	actionsHandler := handlers.NewActionsHandler(planner, planStore, srv.Validator, logger)
	climateHandler := handlers.NewClimateHandler(climateService, srv.Validator, logger)
	footprintHandler := handlers.NewFootprintHandler(footprintStore, srv.Validator, logger)
	predictionsHandler := handlers.NewPredictionsHandler(generator, srv.Validator, logger)

	srv.V1RouteRegistrars = append(srv.V1RouteRegistrars,
		func(r chi.Router) { r.Route("/risk", riskHandler.RegisterRoutes) },
		func(r chi.Router) { r.Route("/actions", actionsHandler.RegisterRoutes) },
		func(r chi.Router) { r.Route("/climate", climateHandler.RegisterRoutes) },
		func(r chi.Router) { r.Route("/footprint", footprintHandler.RegisterRoutes) },
		func(r chi.Router) { r.Route("/predictions", predictionsHandler.RegisterRoutes) },
	)

	srv.MountRoutes()

	return runHTTPServer(srv, cfg, logger)
}

// runHTTPServer starts the server in standard HTTP mode with graceful shutdown.
func runHTTPServer(srv *core.Server, cfg *config.Config, logger *slog.Logger) error {
	addr := ":" + cfg.Server.Port

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Channel to capture server errors from ListenAndServe.
	serverErr := make(chan error, 1)

	go func() {
		logger.Info("HTTP server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Wait for shutdown signal or server error.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-shutdown:
		logger.Info("shutdown signal received", "signal", sig.String())
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	logger.Info("initiating graceful shutdown")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	// Shutdown server resources (DB pool, etc.).
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server resource shutdown error", "error", err)
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server stopped cleanly")
	return nil
}

// newLogger creates a structured slog.Logger configured for the given log level.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     lvl,
		AddSource: false,
	})
	return slog.New(handler)
}
