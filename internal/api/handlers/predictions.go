package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"climateplanner/internal/core"
	"climateplanner/internal/predictions"
)

// ProjectionGenerator produces multi-year climate projections.
type ProjectionGenerator interface {
	Generate(lat, lon float64, years int) (*predictions.Projection, error)
}

// PredictionsHandler serves the long-range projection and scenario endpoints.
type PredictionsHandler struct {
	generator ProjectionGenerator
	validator *core.Validator
	logger    *slog.Logger
}

// NewPredictionsHandler creates a new PredictionsHandler.
func NewPredictionsHandler(generator ProjectionGenerator, val *core.Validator, logger *slog.Logger) *PredictionsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PredictionsHandler{
		generator: generator,
		validator: val,
		logger:    logger,
	}
}

// RegisterRoutes mounts the prediction endpoints onto the mux.
func (h *PredictionsHandler) RegisterRoutes(r chi.Router) {
	r.Post("/generate", h.HandleGenerate)
	r.Get("/scenarios", h.HandleScenarios)
}

// predictionRequest is the POST /v1/predictions/generate request body.
type predictionRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
	Years     int      `json:"years" validate:"omitempty,min=1,max=50"`
}

// HandleGenerate handles POST /v1/predictions/generate.
func (h *PredictionsHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req predictionRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.Error(w, r, err)
		return
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		core.Error(w, r, err)
		return
	}

	years := req.Years
	if years == 0 {
		years = predictions.DefaultYears
	}

	projection, err := h.generator.Generate(*req.Latitude, *req.Longitude, years)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: projection})
}

// HandleScenarios handles GET /v1/predictions/scenarios.
// Query params: lat, lon (required), scenario (optional, defaults to
// moderate).
func (h *PredictionsHandler) HandleScenarios(w http.ResponseWriter, r *http.Request) {
	lat, lon, err := parseCoordinates(r)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	scenario, err := predictions.ScenarioFor(lat, lon, r.URL.Query().Get("scenario"))
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: scenario})
}
