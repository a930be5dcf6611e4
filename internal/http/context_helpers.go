package httpx

import (
	"context"

	"github.com/openshelf/gateway/internal/domain/auth"
)

// userKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type userKey struct{}

// SetUserInContext returns a child context carrying the verified user.
// If user is nil, the original ctx is returned unchanged.
func SetUserInContext(ctx context.Context, user *auth.User) context.Context {
	if user == nil {
		return ctx
	}
	return context.WithValue(ctx, userKey{}, user)
}

// UserFromContext returns the verified user from context and a boolean
// indicating presence. Only set inside handlers wrapped by a PageGuard.
func UserFromContext(ctx context.Context) (*auth.User, bool) {
	if u, ok := ctx.Value(userKey{}).(*auth.User); ok && u != nil {
		return u, true
	}
	return nil, false
}
