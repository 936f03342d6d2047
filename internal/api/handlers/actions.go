package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"climateplanner/internal/core"
	"climateplanner/internal/types"
)

// ActionPlanner turns a risk assessment into a prioritized adaptation plan.
type ActionPlanner interface {
	Plan(input *types.PlanInput, profile *types.UserProfile) *types.ActionPlan
	Templates() map[string][]types.ActionItem
}

// PlanStore persists generated plans and serves the per-user listing.
type PlanStore interface {
	Insert(ctx context.Context, userID string, plan *types.ActionPlan) error
	ListByUser(ctx context.Context, userID string, limit int) ([]types.PlanSummary, error)
}

// ActionsHandler maps HTTP requests to the action planning service.
type ActionsHandler struct {
	planner   ActionPlanner
	store     PlanStore
	validator *core.Validator
	logger    *slog.Logger
}

// NewActionsHandler creates a new ActionsHandler. The store may be nil, in
// which case plans are not persisted and listings return empty.
func NewActionsHandler(planner ActionPlanner, store PlanStore, val *core.Validator, logger *slog.Logger) *ActionsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ActionsHandler{
		planner:   planner,
		store:     store,
		validator: val,
		logger:    logger,
	}
}

// RegisterRoutes mounts the action plan endpoints onto the mux.
func (h *ActionsHandler) RegisterRoutes(r chi.Router) {
	r.Post("/generate", h.HandleGenerate)
	r.Get("/templates", h.HandleTemplates)
	r.Get("/user/{userID}", h.HandleUserPlans)
}

// generateRequest is the POST /v1/actions/generate request body. The
// assessment field accepts the full shape returned by the risk endpoints so a
// client can pass a previous response straight through. A missing or empty
// assessment still yields the general preparedness plan.
type generateRequest struct {
	Location       string                `json:"location" validate:"required"`
	RiskAssessment *types.RiskAssessment `json:"risk_assessment"`
	UserProfile    *types.UserProfile    `json:"user_profile"`
}

// HandleGenerate handles POST /v1/actions/generate.
func (h *ActionsHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.Error(w, r, err)
		return
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		core.Error(w, r, err)
		return
	}

	input := &types.PlanInput{Location: req.Location}
	if req.RiskAssessment != nil {
		input.RiskLevel = req.RiskAssessment.RiskLevel
		input.Breakdown = req.RiskAssessment.Breakdown
		input.TopRisks = req.RiskAssessment.TopRisks
	}

	plan := h.planner.Plan(input, req.UserProfile)

	if h.store != nil {
		userID := ""
		if req.UserProfile != nil {
			userID = req.UserProfile.UserID
		}
		if err := h.store.Insert(r.Context(), userID, plan); err != nil {
			h.logger.ErrorContext(r.Context(), "failed to persist action plan",
				"location", req.Location, "error", err)
		}
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: plan})
}

// HandleTemplates handles GET /v1/actions/templates. Returns the full action
// catalog keyed by hazard.
func (h *ActionsHandler) HandleTemplates(w http.ResponseWriter, r *http.Request) {
	templates := h.planner.Templates()
	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: map[string]any{
		"templates": templates,
		"count":     len(templates),
	}})
}

// HandleUserPlans handles GET /v1/actions/user/{userID}.
// Query params: limit (optional, default 10).
func (h *ActionsHandler) HandleUserPlans(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

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
		plans []types.PlanSummary
		err   error
	)
	if h.store != nil {
		plans, err = h.store.ListByUser(r.Context(), userID, limit)
		if err != nil {
			core.Error(w, r, err)
			return
		}
	}
	if plans == nil {
		plans = []types.PlanSummary{}
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: map[string]any{
		"user_id": userID,
		"plans":   plans,
		"count":   len(plans),
	}})
}
