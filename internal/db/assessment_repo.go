package db

import (
	"context"
	"encoding/json"

	"climateplanner/internal/types"
)

// AssessmentRepository provides data access for the risk_assessments table.
type AssessmentRepository struct {
	db DBTX
}

// NewAssessmentRepository creates a new AssessmentRepository backed by the
// given database connection (pool or transaction).
func NewAssessmentRepository(db DBTX) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

// Insert stores a completed assessment. The full breakdown and ranking are
// kept as JSONB so history queries can reproduce the original response.
func (r *AssessmentRepository) Insert(ctx context.Context, a *types.RiskAssessment) error {
	breakdown, err := json.Marshal(a.Breakdown)
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalUnexpected, "failed to encode risk breakdown", err)
	}
	topRisks, err := json.Marshal(a.TopRisks)
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalUnexpected, "failed to encode top risks", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO risk_assessments (id, location, latitude, longitude, risk_score, risk_level,
		 risk_breakdown, top_risks, confidence, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, COALESCE($10, NOW()))`,
		a.ID,
		a.Location,
		a.Latitude,
		a.Longitude,
		a.OverallScore,
		a.RiskLevel,
		breakdown,
		topRisks,
		a.Confidence,
		nilIfZeroTime(a.AssessmentDate),
	)
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalDB, "failed to store risk assessment", err)
	}
	return nil
}

// ListByLocation returns the most recent assessments for a location, newest
// first. An unknown location yields an empty list, not an error.
func (r *AssessmentRepository) ListByLocation(ctx context.Context, location string, limit int) ([]types.AssessmentSummary, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, risk_score, risk_level, created_at
		 FROM risk_assessments
		 WHERE location = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		location,
		limit,
	)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to list risk assessments", err)
	}
	defer rows.Close()

	summaries := []types.AssessmentSummary{}
	for rows.Next() {
		var s types.AssessmentSummary
		if err := rows.Scan(&s.ID, &s.RiskScore, &s.RiskLevel, &s.Date); err != nil {
			return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to scan risk assessment", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to iterate risk assessments", err)
	}
	return summaries, nil
}
