package db

import (
	"context"

	"github.com/uptrace/bun"

	"ms-parcels/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// UpsertLogin inserts the user on first sign-in, otherwise refreshes
// only last_login. The write is a single atomic statement keyed by the
// email primary key, so two concurrent first logins can never produce
// two records. The Created discriminant comes from a pre-check select
// and is advisory only.
func (d *DB) UpsertLogin(user models.User) (*models.UpsertResult, error) {
	exists, err := d.Bun.NewSelect().
		Model((*models.User)(nil)).
		Where("email = ?", user.Email).
		Exists(context.Background())
	if err != nil {
		return nil, err
	}

	_, err = d.Bun.NewInsert().
		Model(&user).
		On("CONFLICT (email) DO UPDATE").
		Set("last_login = EXCLUDED.last_login").
		Exec(context.Background())
	if err != nil {
		return nil, err
	}

	return &models.UpsertResult{Email: user.Email, Created: !exists}, nil
}

// GetUserByEmail → fetch one user by email
func (d *DB) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := d.Bun.NewSelect().
		Model(&user).
		Where("email = ?", email).
		Limit(1).
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return &user, nil
}
