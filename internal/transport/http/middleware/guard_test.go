package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hs-portal-api/internal/application/authn"
	"github.com/hs-portal-api/internal/domain"
	jwtinfra "github.com/hs-portal-api/internal/infrastructure/jwt"
)

type stubVerifier struct {
	result authn.Result
	calls  int
}

func (s *stubVerifier) Verify(_ context.Context, _ string, _ authn.VerifyOptions) authn.Result {
	s.calls++
	return s.result
}

func guardRequest(t *testing.T, verifier authn.Service, requiredRole string, withClaims bool) *httptest.ResponseRecorder {
	t.Helper()
	h := Guard(verifier, requiredRole)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if withClaims {
		ctx := context.WithValue(req.Context(), ClaimsKey, &jwtinfra.Claims{
			UserID: "42", Role: "student", SessionID: "sess-1",
		})
		req = req.WithContext(ctx)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeDenial(t *testing.T, rr *httptest.ResponseRecorder) denial {
	t.Helper()
	var d denial
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &d))
	return d
}

func TestGuard_NoClaims(t *testing.T) {
	v := &stubVerifier{}
	rr := guardRequest(t, v, "", false)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "/login", decodeDenial(t, rr).Redirect)
	assert.Zero(t, v.calls)
}

func TestGuard_DeadSessionRedirectsToLogin(t *testing.T) {
	v := &stubVerifier{result: authn.Result{Authenticated: false, Role: domain.RoleUnknown}}
	rr := guardRequest(t, v, "", true)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	d := decodeDenial(t, rr)
	assert.Equal(t, "/login", d.Redirect)
	assert.Equal(t, 1, v.calls)
}

func TestGuard_WrongRoleRedirectsHome(t *testing.T) {
	v := &stubVerifier{result: authn.Result{
		Authenticated: true,
		Role:          domain.RoleStudent,
		Session:       &domain.Session{SessionID: "sess-1", Role: domain.RoleStudent},
	}}
	rr := guardRequest(t, v, domain.RoleAdmin, true)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	d := decodeDenial(t, rr)
	assert.Equal(t, "/servicios", d.Redirect)
}

func TestGuard_AdminDeniedStudentRouteGoesToDashboard(t *testing.T) {
	v := &stubVerifier{result: authn.Result{
		Authenticated: true,
		Role:          domain.RoleAdmin,
		Session:       &domain.Session{SessionID: "sess-1", Role: domain.RoleAdmin},
	}}
	rr := guardRequest(t, v, domain.RoleStudent, true)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, "/admin/dashboard", decodeDenial(t, rr).Redirect)
}

func TestGuard_AllowsAndInjectsSession(t *testing.T) {
	sess := &domain.Session{SessionID: "sess-1", UserID: "42", Role: domain.RoleStudent}
	v := &stubVerifier{result: authn.Result{Authenticated: true, Role: domain.RoleStudent, Session: sess}}

	var got *domain.Session
	h := Guard(v, domain.RoleStudent)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = SessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), ClaimsKey, &jwtinfra.Claims{
		UserID: "42", Role: "student", SessionID: "sess-1",
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Same(t, sess, got)
}

func TestGuard_NoRequiredRoleAcceptsAnyRole(t *testing.T) {
	v := &stubVerifier{result: authn.Result{
		Authenticated: true,
		Role:          domain.RoleAdmin,
		Session:       &domain.Session{SessionID: "sess-1", Role: domain.RoleAdmin},
	}}
	rr := guardRequest(t, v, "", true)

	assert.Equal(t, http.StatusOK, rr.Code)
}
