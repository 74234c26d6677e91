// Package middleware holds the HTTP middleware chain: token authorization
// and the request-scoped principal.
package middleware

import (
	"context"

	"account-service/internal/security"
)

type contextKey struct{ name string }

var principalKey = contextKey{"principal"}

// WithPrincipal returns a context carrying the authenticated principal.
// Handlers read it back via GetPrincipal.
func WithPrincipal(ctx context.Context, p security.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// GetPrincipal returns the principal from ctx and true if one was set.
func GetPrincipal(ctx context.Context) (security.Principal, bool) {
	p, ok := ctx.Value(principalKey).(security.Principal)
	return p, ok
}
