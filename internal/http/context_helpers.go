package httpx

import (
	"context"

	"github.com/proseware/auth-api/internal/domain/user"
)

// currentUserKey is an unexported context key type to avoid collisions
// across packages. Centralized in this file so all handlers/middleware
// use the same key.
type currentUserKey struct{}

// SetUserInContext returns a child context that carries the given user.
// If u is nil, the original ctx is returned unchanged.
func SetUserInContext(ctx context.Context, u *user.PublicUser) context.Context {
	if u == nil {
		return ctx
	}
	return context.WithValue(ctx, currentUserKey{}, u)
}

// GetUserFromContext returns the authenticated user from context and a
// boolean indicating presence.
func GetUserFromContext(ctx context.Context) (*user.PublicUser, bool) {
	if u, ok := ctx.Value(currentUserKey{}).(*user.PublicUser); ok && u != nil {
		return u, true
	}
	return nil, false
}
