package db

import (
	"context"

	"github.com/google/uuid"

	"climateplanner/internal/types"
)

// FootprintRepository provides data access for the carbon_footprints table.
type FootprintRepository struct {
	db DBTX
}

// NewFootprintRepository creates a new FootprintRepository backed by the
// given database connection (pool or transaction).
func NewFootprintRepository(db DBTX) *FootprintRepository {
	return &FootprintRepository{db: db}
}

// Insert stores one footprint calculation. The entry's ID is assigned here if
// the caller left it empty.
func (r *FootprintRepository) Insert(ctx context.Context, e *types.FootprintEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO carbon_footprints (id, user_id, category, activity_type, amount, unit,
		 emission_factor, emissions_kg, equivalent, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, COALESCE($10, NOW()))`,
		e.ID,
		e.UserID,
		e.Category,
		e.ActivityType,
		e.Amount,
		e.Unit,
		e.EmissionFactor,
		e.EmissionsKg,
		e.Equivalent,
		nilIfZeroTime(e.CreatedAt),
	)
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalDB, "failed to store footprint entry", err)
	}
	return nil
}

// ListByUser returns all of a user's footprint entries, oldest first so
// summaries aggregate in entry order.
func (r *FootprintRepository) ListByUser(ctx context.Context, userID string) ([]types.FootprintEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, category, activity_type, amount, unit, emission_factor,
		 emissions_kg, equivalent, created_at
		 FROM carbon_footprints
		 WHERE user_id = $1
		 ORDER BY created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to list footprint entries", err)
	}
	defer rows.Close()

	entries := []types.FootprintEntry{}
	for rows.Next() {
		var e types.FootprintEntry
		var unit, equivalent *string
		if err := rows.Scan(&e.ID, &e.UserID, &e.Category, &e.ActivityType, &e.Amount, &unit,
			&e.EmissionFactor, &e.EmissionsKg, &equivalent, &e.CreatedAt); err != nil {
			return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to scan footprint entry", err)
		}
		if unit != nil {
			e.Unit = *unit
		}
		if equivalent != nil {
			e.Equivalent = *equivalent
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to iterate footprint entries", err)
	}
	return entries, nil
}
