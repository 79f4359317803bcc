package auth

import "context"

// LoginTestChecker is used in tests to fake the login session checks.
type LoginTestChecker struct {
	LoggedSessions map[string]int
}

func NewLoginTestChecker() *LoginTestChecker {
	return &LoginTestChecker{
		LoggedSessions: map[string]int{},
	}
}

func (tc *LoginTestChecker) UserID(_ context.Context, token string) (int, error) {
	userID, ok := tc.LoggedSessions[token]
	if !ok {
		return 0, ErrNotLoggedIn
	}
	return userID, nil
}
