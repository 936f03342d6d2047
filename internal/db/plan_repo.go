package db

import (
	"context"
	"encoding/json"

	"climateplanner/internal/types"
)

// PlanRepository provides data access for the action_plans table.
type PlanRepository struct {
	db DBTX
}

// NewPlanRepository creates a new PlanRepository backed by the given database
// connection (pool or transaction).
func NewPlanRepository(db DBTX) *PlanRepository {
	return &PlanRepository{db: db}
}

// Insert stores a generated plan. userID is the pass-through attribution from
// the request profile and may be empty for anonymous callers.
func (r *PlanRepository) Insert(ctx context.Context, userID string, p *types.ActionPlan) error {
	actions, err := json.Marshal(p.Actions)
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalUnexpected, "failed to encode plan actions", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO action_plans (id, user_id, location, priority, actions,
		 estimated_cost, estimated_impact, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, COALESCE($8, NOW()))`,
		p.ID,
		nilIfEmpty(userID),
		p.Location,
		p.RiskLevel,
		actions,
		p.TotalCost,
		p.AvgImpact,
		nilIfZeroTime(p.GeneratedAt),
	)
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalDB, "failed to store action plan", err)
	}
	return nil
}

// ListByUser returns a user's stored plans, newest first.
func (r *PlanRepository) ListByUser(ctx context.Context, userID string, limit int) ([]types.PlanSummary, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, location, priority, jsonb_array_length(actions), estimated_cost, estimated_impact, created_at
		 FROM action_plans
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID,
		limit,
	)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to list action plans", err)
	}
	defer rows.Close()

	summaries := []types.PlanSummary{}
	for rows.Next() {
		var s types.PlanSummary
		if err := rows.Scan(&s.ID, &s.Location, &s.Priority, &s.TotalActions, &s.EstimatedCost, &s.EstimatedImpact, &s.CreatedAt); err != nil {
			return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to scan action plan", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to iterate action plans", err)
	}
	return summaries, nil
}
