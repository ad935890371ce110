package db_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "github.com/uptrace/bun/driver/sqliteshim"

	"ms-parcels/internal/models"
	"ms-parcels/internal/parcels/db"
)

func setupTestDB(t *testing.T) (*db.DB, *bun.DB) {
	// Connect to an in-memory SQLite DB for testing
	sqldb, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to connect to in-memory database: %v", err)
	}

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = bunDB.NewCreateTable().Model((*models.Parcel)(nil)).Exec(context.Background())
	if err != nil {
		t.Fatalf("Failed to create parcels table: %v", err)
	}

	return &db.DB{Bun: bunDB}, bunDB
}

func TestCreateAndGetParcel(t *testing.T) {
	parcelDB, bunDB := setupTestDB(t)
	defer bunDB.Close()

	parcelID := uuid.New().String()
	testParcel := models.Parcel{
		ID:         parcelID,
		TrackingID: "TRK-20250828-000001",
		CreatedBy:  "a@x.com",
		Title:      "Documents",
		Type:       "document",
		CreatedAt:  time.Now(),
	}

	err := parcelDB.CreateParcel(testParcel)
	assert.NoError(t, err)

	parcel, err := parcelDB.GetParcelByID(parcelID)
	assert.NoError(t, err)
	assert.NotNil(t, parcel)
	assert.Equal(t, "a@x.com", parcel.CreatedBy)
	assert.Equal(t, "Documents", parcel.Title)

	parcel, err = parcelDB.GetParcelByID("non-existent")
	assert.Error(t, err)
	assert.Nil(t, parcel)
}

func TestGetParcelsByOwnerScopedAndSorted(t *testing.T) {
	parcelDB, bunDB := setupTestDB(t)
	defer bunDB.Close()

	base := time.Now().Add(-time.Hour)
	testParcels := []models.Parcel{
		{ID: uuid.New().String(), CreatedBy: "a@x.com", Title: "oldest", CreatedAt: base},
		{ID: uuid.New().String(), CreatedBy: "a@x.com", Title: "newest", CreatedAt: base.Add(30 * time.Minute)},
		{ID: uuid.New().String(), CreatedBy: "b@x.com", Title: "other owner", CreatedAt: base.Add(15 * time.Minute)},
	}
	for _, parcel := range testParcels {
		require.NoError(t, parcelDB.CreateParcel(parcel))
	}

	parcels, err := parcelDB.GetParcelsByOwner("a@x.com")
	require.NoError(t, err)
	require.Equal(t, 2, len(parcels))

	// Newest first, and only the requested owner's parcels.
	assert.Equal(t, "newest", parcels[0].Title)
	assert.Equal(t, "oldest", parcels[1].Title)
	for _, parcel := range parcels {
		assert.Equal(t, "a@x.com", parcel.CreatedBy)
	}

	parcels, err = parcelDB.GetParcelsByOwner("nobody@x.com")
	assert.NoError(t, err)
	assert.Equal(t, 0, len(parcels))
}

func TestDeleteParcelReportsAffectedCount(t *testing.T) {
	parcelDB, bunDB := setupTestDB(t)
	defer bunDB.Close()

	parcelID := uuid.New().String()
	require.NoError(t, parcelDB.CreateParcel(models.Parcel{
		ID:        parcelID,
		CreatedBy: "a@x.com",
		CreatedAt: time.Now(),
	}))

	removed, err := parcelDB.DeleteParcel(parcelID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	// Repeat delete on the same id reports zero removed, not an error.
	removed, err = parcelDB.DeleteParcel(parcelID)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), removed)
}

func TestDeleteNonExistentParcel(t *testing.T) {
	parcelDB, bunDB := setupTestDB(t)
	defer bunDB.Close()

	removed, err := parcelDB.DeleteParcel("never-existed")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), removed)
}
