package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"climateplanner/internal/climate"
	"climateplanner/internal/core"
	"climateplanner/internal/types"
)

// ClimateService is the subset of the climate data service the handler needs.
type ClimateService interface {
	Current(ctx context.Context, lat, lon float64) *climate.Snapshot
	Forecast(ctx context.Context, lat, lon float64, days int) []types.ForecastEntry
	Historical(ctx context.Context, lat, lon float64, months int) *types.HistoricalBundle
	RecordObservation(ctx context.Context, location string, lat, lon float64, snap *climate.Snapshot)
}

// ClimateHandler serves raw climate data: current conditions, forecasts and
// monthly historical aggregates.
type ClimateHandler struct {
	service   ClimateService
	validator *core.Validator
	logger    *slog.Logger
}

// NewClimateHandler creates a new ClimateHandler with the provided service.
func NewClimateHandler(service ClimateService, val *core.Validator, logger *slog.Logger) *ClimateHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ClimateHandler{
		service:   service,
		validator: val,
		logger:    logger,
	}
}

// RegisterRoutes mounts the climate endpoints onto the mux.
func (h *ClimateHandler) RegisterRoutes(r chi.Router) {
	r.Get("/current", h.HandleCurrent)
	r.Post("/forecast", h.HandleForecast)
	r.Get("/historical", h.HandleHistorical)
}

// parseCoordinates reads and validates required lat/lon query parameters.
func parseCoordinates(r *http.Request) (float64, float64, error) {
	latStr := r.URL.Query().Get("lat")
	lonStr := r.URL.Query().Get("lon")
	if latStr == "" || lonStr == "" {
		return 0, 0, types.NewAppError(
			types.ErrCodeValidationMissingField,
			"lat and lon query parameters are required",
			nil,
		)
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil || lat < -90 || lat > 90 {
		return 0, 0, types.NewAppError(
			types.ErrCodeValidationInvalidLat,
			"lat must be a number between -90 and 90",
			nil,
		)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil || lon < -180 || lon > 180 {
		return 0, 0, types.NewAppError(
			types.ErrCodeValidationInvalidLon,
			"lon must be a number between -180 and 180",
			nil,
		)
	}
	return lat, lon, nil
}

// HandleCurrent handles GET /v1/climate/current.
// Query params: lat, lon (required), location (optional name for the stored
// observation).
func (h *ClimateHandler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	lat, lon, err := parseCoordinates(r)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	snap := h.service.Current(r.Context(), lat, lon)
	h.service.RecordObservation(r.Context(), r.URL.Query().Get("location"), lat, lon, snap)

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: snap})
}

// forecastRequest is the POST /v1/climate/forecast request body.
type forecastRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
	Days      int      `json:"days" validate:"omitempty,min=1,max=16"`
}

// HandleForecast handles POST /v1/climate/forecast.
func (h *ClimateHandler) HandleForecast(w http.ResponseWriter, r *http.Request) {
	var req forecastRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.Error(w, r, err)
		return
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		core.Error(w, r, err)
		return
	}

	days := req.Days
	if days == 0 {
		days = climate.DefaultForecastDays
	}

	entries := h.service.Forecast(r.Context(), *req.Latitude, *req.Longitude, days)
	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: map[string]any{
		"latitude":  *req.Latitude,
		"longitude": *req.Longitude,
		"days":      days,
		"forecast":  entries,
		"count":     len(entries),
	}})
}

// HandleHistorical handles GET /v1/climate/historical.
// Query params: lat, lon (required), months (optional, default 12, max 60).
func (h *ClimateHandler) HandleHistorical(w http.ResponseWriter, r *http.Request) {
	lat, lon, err := parseCoordinates(r)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	months := climate.DefaultHistoryMonths
	if monthsStr := r.URL.Query().Get("months"); monthsStr != "" {
		parsed, convErr := strconv.Atoi(monthsStr)
		if convErr != nil || parsed < 1 || parsed > climate.MaxHistoryMonths {
			core.Error(w, r, types.NewAppError(
				types.ErrCodeValidationInvalidRange,
				"months must be an integer between 1 and 60",
				nil,
			))
			return
		}
		months = parsed
	}

	bundle := h.service.Historical(r.Context(), lat, lon, months)
	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: bundle})
}
