package db

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"climateplanner/internal/types"
)

// ClimateRepository provides data access for the climate_observations table.
type ClimateRepository struct {
	db DBTX
}

// NewClimateRepository creates a new ClimateRepository backed by the given
// database connection (pool or transaction).
func NewClimateRepository(db DBTX) *ClimateRepository {
	return &ClimateRepository{db: db}
}

// InsertObservation stores one fetched weather snapshot. Raw features go into
// a JSONB column; there is no per-field schema since upstream payloads vary.
func (r *ClimateRepository) InsertObservation(ctx context.Context, obs *types.ClimateObservation) error {
	if obs.ID == "" {
		obs.ID = uuid.NewString()
	}

	raw, err := json.Marshal(obs.Features)
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalUnexpected, "failed to encode observation", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO climate_observations (id, location, latitude, longitude, raw_data, data_source, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7, NOW()))`,
		obs.ID,
		obs.Location,
		obs.Latitude,
		obs.Longitude,
		raw,
		obs.DataSource,
		nilIfZeroTime(obs.Timestamp),
	)
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalDB, "failed to store climate observation", err)
	}
	return nil
}
