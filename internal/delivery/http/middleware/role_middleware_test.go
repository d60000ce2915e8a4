package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"health-booking-api/internal/domain/entity"
	"health-booking-api/pkg/claims"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func gatedHandler(gate *RoleGate, roles ...entity.Role) (http.Handler, *string) {
	var seenPrincipal string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenPrincipal, _ = GetPrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	auth := NewAuthMiddleware()
	return auth.Attach(gate.Require(roles...)(inner)), &seenPrincipal
}

func TestRoleGateAdmitsMatchingRole(t *testing.T) {
	gate := NewRoleGate(PolicyEnforced, nil, testLogger())
	handler, _ := gatedHandler(gate, entity.RolePatient)

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set(claims.AuthorizerHeader, `{"claims":{"email":"alice@example.com","cognito:groups":"PATIENT"}}`)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoleGateRejectsMissingClaims(t *testing.T) {
	gate := NewRoleGate(PolicyEnforced, nil, testLogger())
	handler, _ := gatedHandler(gate, entity.RolePatient)

	r := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoleGateRejectsDisjointRoles(t *testing.T) {
	gate := NewRoleGate(PolicyEnforced, nil, testLogger())
	handler, _ := gatedHandler(gate, entity.RoleDoctor)

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set(claims.AuthorizerHeader, `{"claims":{"cognito:groups":"PATIENT"}}`)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	// Claims are present but wrong: forbidden, not unauthorized.
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRoleGateMultipleAllowedRoles(t *testing.T) {
	gate := NewRoleGate(PolicyEnforced, nil, testLogger())
	handler, _ := gatedHandler(gate, entity.RolePatient, entity.RoleDoctor)

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set(claims.AuthorizerHeader, `{"claims":{"cognito:groups":"DOCTOR"}}`)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDisabledPolicyAdmitsClaimlessRequest(t *testing.T) {
	identities := map[entity.Role]string{
		entity.RolePatient: "patient.demo@example.com",
		entity.RoleDoctor:  "doctor.demo@example.com",
	}
	gate := NewRoleGate(PolicyDisabled, identities, testLogger())
	handler, seen := gatedHandler(gate, entity.RolePatient)

	r := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "patient.demo@example.com", *seen)
}

func TestDisabledPolicyUsesFirstAllowedRoleIdentity(t *testing.T) {
	identities := map[entity.Role]string{
		entity.RolePatient: "patient.demo@example.com",
		entity.RoleDoctor:  "doctor.demo@example.com",
	}
	gate := NewRoleGate(PolicyDisabled, identities, testLogger())
	handler, seen := gatedHandler(gate, entity.RoleDoctor)

	r := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "doctor.demo@example.com", *seen)
}

func TestDisabledPolicyKeepsRealPrincipal(t *testing.T) {
	identities := map[entity.Role]string{entity.RolePatient: "patient.demo@example.com"}
	gate := NewRoleGate(PolicyDisabled, identities, testLogger())
	handler, seen := gatedHandler(gate, entity.RolePatient)

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set(claims.AuthorizerHeader, `{"claims":{"email":"real@example.com"}}`)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "real@example.com", *seen)
}

func TestAttachResolvesPrincipalAndGroups(t *testing.T) {
	auth := NewAuthMiddleware()
	var principal string
	var groups map[string]struct{}
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, _ = GetPrincipalFromContext(r.Context())
		groups, _ = GetGroupsFromContext(r.Context())
	})

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set(claims.AuthorizerHeader, `{"claims":{"email":"alice@example.com","cognito:groups":["PATIENT"]}}`)
	auth.Attach(inner).ServeHTTP(httptest.NewRecorder(), r)

	assert.Equal(t, "alice@example.com", principal)
	assert.Contains(t, groups, "PATIENT")
}
