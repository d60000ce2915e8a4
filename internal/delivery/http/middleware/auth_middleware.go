package middleware

import (
	"context"
	"net/http"

	"health-booking-api/pkg/claims"
)

type contextKey string

const (
	PrincipalKey contextKey = "principal"
	GroupsKey    contextKey = "groups"
)

// AuthMiddleware resolves the request's authorization context into the
// request context. It never rejects on its own; the role gate decides.
type AuthMiddleware struct{}

func NewAuthMiddleware() *AuthMiddleware {
	return &AuthMiddleware{}
}

func (m *AuthMiddleware) Attach(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resolved := claims.Resolve(r)

		// The principal identifier is email-shaped; appointments and
		// health records are keyed by it.
		principal := resolved.Get("email")
		if principal == "" {
			principal = resolved.Get("sub")
		}

		ctx := context.WithValue(r.Context(), PrincipalKey, principal)
		ctx = context.WithValue(ctx, GroupsKey, resolved.Groups())

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetPrincipalFromContext extracts the principal identifier
func GetPrincipalFromContext(ctx context.Context) (string, bool) {
	principal, ok := ctx.Value(PrincipalKey).(string)
	return principal, ok && principal != ""
}

// GetGroupsFromContext extracts the resolved role set
func GetGroupsFromContext(ctx context.Context) (map[string]struct{}, bool) {
	groups, ok := ctx.Value(GroupsKey).(map[string]struct{})
	return groups, ok
}
