package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"climateplanner/internal/core"
	"climateplanner/internal/footprint"
	"climateplanner/internal/types"
)

// FootprintStore persists footprint calculations and serves per-user entries.
type FootprintStore interface {
	Insert(ctx context.Context, e *types.FootprintEntry) error
	ListByUser(ctx context.Context, userID string) ([]types.FootprintEntry, error)
}

// FootprintHandler serves the carbon footprint endpoints. Calculation itself
// is a pure function; the handler adds validation and persistence.
type FootprintHandler struct {
	store     FootprintStore
	validator *core.Validator
	logger    *slog.Logger
}

// NewFootprintHandler creates a new FootprintHandler. The store may be nil,
// in which case calculations are not persisted and summaries are empty.
func NewFootprintHandler(store FootprintStore, val *core.Validator, logger *slog.Logger) *FootprintHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &FootprintHandler{
		store:     store,
		validator: val,
		logger:    logger,
	}
}

// RegisterRoutes mounts the footprint endpoints onto the mux.
func (h *FootprintHandler) RegisterRoutes(r chi.Router) {
	r.Post("/calculate", h.HandleCalculate)
	r.Get("/user/{userID}/summary", h.HandleUserSummary)
	r.Get("/categories", h.HandleCategories)
}

// calculateRequest is the POST /v1/footprint/calculate request body.
type calculateRequest struct {
	UserID       string  `json:"user_id"`
	Category     string  `json:"category" validate:"required"`
	ActivityType string  `json:"activity_type" validate:"required"`
	Amount       float64 `json:"amount" validate:"required,gt=0"`
	Unit         string  `json:"unit"`
}

// HandleCalculate handles POST /v1/footprint/calculate.
func (h *FootprintHandler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.Error(w, r, err)
		return
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		core.Error(w, r, err)
		return
	}

	result, err := footprint.Calculate(req.Category, req.ActivityType, req.Amount, req.Unit)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	if h.store != nil && req.UserID != "" {
		entry := &types.FootprintEntry{
			UserID:         req.UserID,
			Category:       result.Category,
			ActivityType:   result.ActivityType,
			Amount:         result.Amount,
			Unit:           result.Unit,
			EmissionFactor: result.Factor,
			EmissionsKg:    result.EmissionsKg,
			Equivalent:     result.Equivalent,
		}
		if err := h.store.Insert(r.Context(), entry); err != nil {
			h.logger.ErrorContext(r.Context(), "failed to persist footprint entry",
				"user_id", req.UserID, "category", req.Category, "error", err)
		}
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: result})
}

// HandleUserSummary handles GET /v1/footprint/user/{userID}/summary.
func (h *FootprintHandler) HandleUserSummary(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var entries []types.FootprintEntry
	if h.store != nil {
		var err error
		entries, err = h.store.ListByUser(r.Context(), userID)
		if err != nil {
			core.Error(w, r, err)
			return
		}
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: footprint.Summarize(userID, entries)})
}

// HandleCategories handles GET /v1/footprint/categories.
func (h *FootprintHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: footprint.Categories()})
}
