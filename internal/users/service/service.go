package users

import (
	"fmt"
	"time"

	"ms-parcels/internal/models"
)

// DisplayTimeZone is the fixed timezone last_login is rendered in.
const DisplayTimeZone = "Asia/Dhaka"

const lastLoginLayout = "2006-01-02 15:04:05"

type UserDBLayer interface {
	UpsertLogin(user models.User) (*models.UpsertResult, error)
	GetUserByEmail(email string) (*models.User, error)
}

type UserService struct {
	DB UserDBLayer
}

func NewUserService(db UserDBLayer) *UserService {
	return &UserService{DB: db}
}

// RecordLogin upserts the user keyed by email. last_login is always
// rendered server-side as "now" in the display timezone; whatever the
// payload carried for it is ignored. Profile fields only ever take
// effect on the insert path.
func (s *UserService) RecordLogin(user models.User) (*models.UpsertResult, error) {
	if user.Email == "" {
		return nil, fmt.Errorf("email is required")
	}

	loc, err := time.LoadLocation(DisplayTimeZone)
	if err != nil {
		return nil, fmt.Errorf("failed to load display timezone: %w", err)
	}

	now := time.Now()
	user.LastLogin = now.In(loc).Format(lastLoginLayout)
	user.CreatedAt = now

	result, err := s.DB.UpsertLogin(user)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert login for %s: %w", user.Email, err)
	}
	return result, nil
}

func (s *UserService) GetUser(email string) (*models.User, error) {
	user, err := s.DB.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("user %s not found: %w", email, err)
	}
	return user, nil
}
