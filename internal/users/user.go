package users

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
)

const (
	minUsernameLength = 3
	minPasswordLength = 8
)

// User carries the account identity. The password hash never leaves the
// backend.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`

	Profile Profile `json:"profile"`
}

// Profile holds the user's body and goal data. Every user has exactly one,
// created together with the account.
type Profile struct {
	UserID           int      `json:"userId"`
	DisplayName      string   `json:"displayName"`
	WeightKilos      *float64 `json:"weightKilos,omitempty"`
	HeightCm         *float64 `json:"heightCm,omitempty"`
	DailyCalorieGoal *int     `json:"dailyCalorieGoal,omitempty"`
}

func ValidateCredentials(username, password string) error {
	if len(username) < minUsernameLength {
		return errors.New("username too short")
	}
	if len(password) < minPasswordLength {
		return errors.New("password too short")
	}
	return nil
}
