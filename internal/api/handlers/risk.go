// Package handlers contains the HTTP handler implementations for the climate
// planner API.
//
// This file implements the risk assessment endpoints:
//   - Assess a location (POST /v1/risk/assess)
//   - Assessment history for a location (GET /v1/risk/history/{location})
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"climateplanner/internal/climate"
	"climateplanner/internal/core"
	"climateplanner/internal/external"
	"climateplanner/internal/types"
)

// GeocoderInterface resolves a free-text location to coordinates. Matches the
// external package's Geocoder but is defined locally to avoid tight coupling
// per the handler injection pattern.
type GeocoderInterface interface {
	Geocode(ctx context.Context, location string) (*external.Coordinates, error)
}

// ClimateFetcher supplies the climate data bundle the scorer consumes.
type ClimateFetcher interface {
	FetchBundle(ctx context.Context, lat, lon float64) (*climate.Bundle, error)
}

// RiskScorer computes the hazard assessment for a location.
type RiskScorer interface {
	Assess(location string, lat, lon float64, climate *types.ClimateFeatures, hist *types.HistoricalBundle) *types.RiskAssessment
}

// AssessmentStore persists assessments and serves the history listing.
type AssessmentStore interface {
	Insert(ctx context.Context, a *types.RiskAssessment) error
	ListByLocation(ctx context.Context, location string, limit int) ([]types.AssessmentSummary, error)
}

// RiskHandler maps HTTP requests to the risk scoring pipeline.
type RiskHandler struct {
	geocoder  GeocoderInterface
	climate   ClimateFetcher
	scorer    RiskScorer
	store     AssessmentStore
	validator *core.Validator
	logger    *slog.Logger
}

// NewRiskHandler creates a new RiskHandler with the provided dependencies.
// The store may be nil, in which case assessments are not persisted.
func NewRiskHandler(
	geocoder GeocoderInterface,
	climateSvc ClimateFetcher,
	scorer RiskScorer,
	store AssessmentStore,
	val *core.Validator,
	logger *slog.Logger,
) *RiskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RiskHandler{
		geocoder:  geocoder,
		climate:   climateSvc,
		scorer:    scorer,
		store:     store,
		validator: val,
		logger:    logger,
	}
}

// RegisterRoutes mounts the risk endpoints onto the mux.
func (h *RiskHandler) RegisterRoutes(r chi.Router) {
	r.Post("/assess", h.HandleAssess)
	r.Get("/history/{location}", h.HandleHistory)
}

// assessRequest is the POST /v1/risk/assess request body. Coordinates are
// optional; a missing pair triggers geocoding of the location name.
type assessRequest struct {
	Location  string   `json:"location" validate:"required"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" validate:"omitempty,longitude"`
}

// HandleAssess handles POST /v1/risk/assess.
//
// Flow:
//  1. Decode and validate the request.
//  2. Resolve coordinates via the geocoder when the client omits them.
//  3. Fetch current and historical climate data concurrently.
//  4. Score the location.
//  5. Persist the assessment (best effort) and return it.
func (h *RiskHandler) HandleAssess(w http.ResponseWriter, r *http.Request) {
	var req assessRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.Error(w, r, err)
		return
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		core.Error(w, r, err)
		return
	}

	var lat, lon float64
	if req.Latitude != nil && req.Longitude != nil {
		lat, lon = *req.Latitude, *req.Longitude
	} else {
		coords, err := h.geocoder.Geocode(r.Context(), req.Location)
		if err != nil {
			core.Error(w, r, err)
			return
		}
		lat, lon = coords.Latitude, coords.Longitude
	}

	bundle, err := h.climate.FetchBundle(r.Context(), lat, lon)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	assessment := h.scorer.Assess(req.Location, lat, lon, bundle.Current, bundle.Historical)
	assessment.ID = uuid.NewString()

	// Persistence is best effort: an unreachable database must not block the
	// assessment the client already paid two upstream calls for.
	if h.store != nil {
		if err := h.store.Insert(r.Context(), assessment); err != nil {
			h.logger.ErrorContext(r.Context(), "failed to persist assessment",
				"location", req.Location, "error", err)
		}
	}

	var meta *types.ResponseMeta
	if bundle.DataSource != "openweather" {
		meta = &types.ResponseMeta{
			Warnings: []string{"live weather data unavailable; assessment uses synthetic conditions"},
		}
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: assessment, Meta: meta})
}

// HandleHistory handles GET /v1/risk/history/{location}.
// Query params: limit (optional, default 10).
func (h *RiskHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	location := chi.URLParam(r, "location")

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			core.Error(w, r, types.NewAppError(
				types.ErrCodeValidationInvalidRange,
				"limit must be a positive integer",
				nil,
			))
			return
		}
		limit = parsed
	}

	var (
		summaries []types.AssessmentSummary
		err       error
	)
	if h.store != nil {
		summaries, err = h.store.ListByLocation(r.Context(), location, limit)
		if err != nil {
			core.Error(w, r, err)
			return
		}
	}
	if summaries == nil {
		summaries = []types.AssessmentSummary{}
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: map[string]any{
		"location":    location,
		"assessments": summaries,
		"count":       len(summaries),
	}})
}
