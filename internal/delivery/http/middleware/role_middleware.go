package middleware

import (
	"context"
	"net/http"

	"health-booking-api/internal/domain/entity"
	"health-booking-api/pkg/response"

	"github.com/sirupsen/logrus"
)

// AuthorizationPolicy is selected once at startup. PolicyDisabled is the
// demo-mode escape hatch: it admits every request and substitutes default
// identities, and must never be the default in production.
type AuthorizationPolicy int

const (
	PolicyEnforced AuthorizationPolicy = iota
	PolicyDisabled
)

// RoleGate denies requests whose resolved role set does not intersect the
// allowed roles. It runs before any store access.
type RoleGate struct {
	policy            AuthorizationPolicy
	defaultIdentities map[entity.Role]string
	log               *logrus.Logger
}

func NewRoleGate(policy AuthorizationPolicy, defaultIdentities map[entity.Role]string, log *logrus.Logger) *RoleGate {
	return &RoleGate{
		policy:            policy,
		defaultIdentities: defaultIdentities,
		log:               log,
	}
}

// Require gates a route on role membership. With no usable claims the
// request is unauthorized (401); with claims disjoint from the allowed
// set it is forbidden (403).
func (g *RoleGate) Require(allowedRoles ...entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if g.policy == PolicyDisabled {
				next.ServeHTTP(w, g.withDefaultIdentity(r, allowedRoles))
				return
			}

			groups, _ := GetGroupsFromContext(r.Context())
			if len(groups) == 0 {
				g.log.Warnf("Authorization failure: no groups, allowed=%v", allowedRoles)
				response.Unauthorized(w, "unauthorized")
				return
			}

			for _, role := range allowedRoles {
				if _, ok := groups[string(role)]; ok {
					next.ServeHTTP(w, r)
					return
				}
			}

			g.log.Warnf("Authorization failure: missing role, allowed=%v", allowedRoles)
			response.Forbidden(w, "forbidden")
		})
	}
}

// withDefaultIdentity supplies the configured demo identity for the
// route's primary role when the request carries no principal claim.
func (g *RoleGate) withDefaultIdentity(r *http.Request, allowedRoles []entity.Role) *http.Request {
	if _, ok := GetPrincipalFromContext(r.Context()); ok {
		return r
	}
	if len(allowedRoles) == 0 {
		return r
	}
	fallback, ok := g.defaultIdentities[allowedRoles[0]]
	if !ok || fallback == "" {
		return r
	}
	ctx := context.WithValue(r.Context(), PrincipalKey, fallback)
	return r.WithContext(ctx)
}
