package db

import (
	"context"

	"github.com/uptrace/bun"

	"ms-parcels/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// CreateParcel → insert new parcel
func (d *DB) CreateParcel(parcel models.Parcel) error {
	_, err := d.Bun.NewInsert().Model(&parcel).Exec(context.Background())
	return err
}

// GetParcelsByOwner → fetch parcels created by the given email, newest first
func (d *DB) GetParcelsByOwner(email string) ([]models.Parcel, error) {
	var parcels []models.Parcel
	err := d.Bun.NewSelect().
		Model(&parcels).
		Where("created_by = ?", email).
		Order("created_at DESC").
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return parcels, nil
}

// GetParcelByID → fetch one parcel by its ID
func (d *DB) GetParcelByID(id string) (*models.Parcel, error) {
	var parcel models.Parcel
	err := d.Bun.NewSelect().
		Model(&parcel).
		Where("id = ?", id).
		Limit(1).
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return &parcel, nil
}

// DeleteParcel removes at most one parcel and reports how many rows
// were affected. An unknown id is a zero-count result, not an error.
func (d *DB) DeleteParcel(id string) (int64, error) {
	res, err := d.Bun.NewDelete().
		Model((*models.Parcel)(nil)).
		Where("id = ?", id).
		Exec(context.Background())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
