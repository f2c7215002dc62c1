package middleware

import (
	"context"
	"net/http"
	"strings"

	"mergington/internal/auth"
	domainAccount "mergington/internal/domain/account"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

const identityContextKey contextKey = "identity"

// Identity is the authenticated caller extracted from a bearer token.
type Identity struct {
	Email string
	Role  string
}

// IsAdmin returns true if the identity has admin role.
// INVARIANT: Identity fields are not mutated
func (id Identity) IsAdmin() bool {
	return id.Role == domainAccount.RoleAdmin
}

// BearerAuth returns middleware that validates the Authorization header and
// sets the caller identity in context. It does not block unauthenticated
// requests; handlers gate with GetIdentityFromContext.
func BearerAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if token, ok := strings.CutPrefix(header, "Bearer "); ok && token != "" {
				if claims, err := auth.ParseToken(secret, token); err == nil {
					ctx := context.WithValue(r.Context(), identityContextKey, Identity{
						Email: claims.Subject,
						Role:  claims.Role,
					})
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetIdentityFromContext extracts the caller identity from the request context.
func GetIdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityContextKey).(Identity)
	return id, ok
}

// ContextWithIdentity returns a context with the given identity set.
// Intended for use in tests.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, id)
}
