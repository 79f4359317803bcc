package auth

import (
	"context"
	"errors"
)

var ErrNoUserInContext = errors.New("no user id in context")

type contextKey struct{}

var userIDContextKey = contextKey{}

// ContextWithUserID attaches the authenticated user ID to the request context.
// Handlers read it back via UserIDFromContext instead of relying on any
// ambient "current user" state.
func ContextWithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

// UserIDFromContext returns the user ID set by the auth middleware, or
// ErrNoUserInContext for requests that never passed the auth check.
func UserIDFromContext(ctx context.Context) (int, error) {
	userID, ok := ctx.Value(userIDContextKey).(int)
	if !ok {
		return 0, ErrNoUserInContext
	}
	return userID, nil
}
