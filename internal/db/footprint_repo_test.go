package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"climateplanner/internal/types"
)

func TestFootprintRepository_Insert_AssignsID(t *testing.T) {
	db := new(mockDBTX)
	repo := NewFootprintRepository(db)

	entry := &types.FootprintEntry{
		UserID:         "user_1",
		Category:       "transportation",
		ActivityType:   "car_petrol",
		Amount:         100,
		Unit:           "km",
		EmissionFactor: 0.192,
		EmissionsKg:    19.2,
		Equivalent:     "Requires 0.9 trees for one year to offset",
	}

	db.On("Exec", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.NewCommandTag("INSERT 0 1"), nil)

	err := repo.Insert(context.Background(), entry)
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	db.AssertExpectations(t)
}

func TestFootprintRepository_Insert_KeepsExistingID(t *testing.T) {
	db := new(mockDBTX)
	repo := NewFootprintRepository(db)

	entry := &types.FootprintEntry{ID: "fp_1", UserID: "user_1", Category: "food", ActivityType: "beef"}

	db.On("Exec", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.NewCommandTag("INSERT 0 1"), nil)

	err := repo.Insert(context.Background(), entry)
	require.NoError(t, err)
	assert.Equal(t, "fp_1", entry.ID)
}

func TestFootprintRepository_Insert_DBError(t *testing.T) {
	db := new(mockDBTX)
	repo := NewFootprintRepository(db)

	entry := &types.FootprintEntry{ID: "fp_1", UserID: "user_1"}

	db.On("Exec", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.CommandTag{}, errors.New("connection refused"))

	err := repo.Insert(context.Background(), entry)
	require.Error(t, err)

	var appErr *types.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, types.ErrCodeInternalDB, appErr.Code)
}

func TestFootprintRepository_ListByUser_Success(t *testing.T) {
	db := new(mockDBTX)
	repo := NewFootprintRepository(db)

	created := time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC)
	rows := newMockRows([][]any{
		{"fp_1", "user_1", "transportation", "car_petrol", 100.0, "km", 0.192, 19.2,
			"Equivalent to 62.1 miles driven by car", created},
	})

	db.On("Query", mock.Anything, mock.AnythingOfType("string"), []any{"user_1"}).
		Return(rows, nil)

	result, err := repo.ListByUser(context.Background(), "user_1")
	require.NoError(t, err)
	require.Len(t, result, 1)

	assert.Equal(t, "fp_1", result[0].ID)
	assert.Equal(t, "transportation", result[0].Category)
	assert.Equal(t, "km", result[0].Unit)
	assert.Equal(t, 19.2, result[0].EmissionsKg)
	assert.Equal(t, "Equivalent to 62.1 miles driven by car", result[0].Equivalent)
}

func TestFootprintRepository_ListByUser_NullableFields(t *testing.T) {
	db := new(mockDBTX)
	repo := NewFootprintRepository(db)

	created := time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC)
	rows := newMockRows([][]any{
		{"fp_1", "user_1", "energy", "electricity", 50.0, nil, 0.475, 23.75, nil, created},
	})

	db.On("Query", mock.Anything, mock.AnythingOfType("string"), []any{"user_1"}).
		Return(rows, nil)

	result, err := repo.ListByUser(context.Background(), "user_1")
	require.NoError(t, err)
	require.Len(t, result, 1)

	assert.Empty(t, result[0].Unit)
	assert.Empty(t, result[0].Equivalent)
}

func TestFootprintRepository_ListByUser_QueryError(t *testing.T) {
	db := new(mockDBTX)
	repo := NewFootprintRepository(db)

	db.On("Query", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Return(nil, errors.New("timeout"))

	_, err := repo.ListByUser(context.Background(), "user_1")
	require.Error(t, err)

	var appErr *types.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, types.ErrCodeInternalDB, appErr.Code)
}
