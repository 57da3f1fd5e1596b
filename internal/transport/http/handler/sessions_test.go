package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hs-portal-api/internal/application/authn"
	"github.com/hs-portal-api/internal/application/session"
	"github.com/hs-portal-api/internal/domain"
	jwtinfra "github.com/hs-portal-api/internal/infrastructure/jwt"
	"github.com/hs-portal-api/internal/transport/http/middleware"
)

type stubSessionService struct {
	session.Service
	loginResult *session.LoginResult
	loginErr    error
}

func (s *stubSessionService) Login(_ context.Context, _, _ string) (*session.LoginResult, error) {
	return s.loginResult, s.loginErr
}

type recordingVerifier struct {
	result   authn.Result
	gotSkip  bool
	gotSessN string
}

func (v *recordingVerifier) Verify(_ context.Context, sessionID string, opts authn.VerifyOptions) authn.Result {
	v.gotSessN = sessionID
	v.gotSkip = opts.SkipRemoteCheck
	return v.result
}

func withClaims(req *http.Request) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.ClaimsKey, &jwtinfra.Claims{
		UserID: "42", Role: "student", SessionID: "sess-1",
	})
	return req.WithContext(ctx)
}

func TestLogin_ReturnsBearerAndSession(t *testing.T) {
	sess := &domain.Session{SessionID: "sess-1", UserID: "42", Role: domain.RoleStudent}
	h := NewSessionHandler(&stubSessionService{loginResult: &session.LoginResult{
		Token: "signed-token", Session: sess,
	}}, &recordingVerifier{})

	req := httptest.NewRequest(http.MethodPost, "/v1/sessions/login",
		strings.NewReader(`{"email":"ana@example.com","password":"secret"}`))
	rr := httptest.NewRecorder()
	h.Login(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var env AuthEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.Equal(t, "signed-token", env.Bearer)
	require.NotNil(t, env.Session)
	assert.Equal(t, domain.RoleStudent, env.Session.Role)
}

func TestLogin_MissingCredentials(t *testing.T) {
	h := NewSessionHandler(&stubSessionService{}, &recordingVerifier{})

	req := httptest.NewRequest(http.MethodPost, "/v1/sessions/login",
		strings.NewReader(`{"email":"ana@example.com"}`))
	rr := httptest.NewRecorder()
	h.Login(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetCurrent_RemoteCheckByDefault(t *testing.T) {
	v := &recordingVerifier{result: authn.Result{
		Authenticated: true,
		Role:          domain.RoleStudent,
		Session:       &domain.Session{SessionID: "sess-1", Role: domain.RoleStudent},
	}}
	h := NewSessionHandler(&stubSessionService{}, v)

	req := withClaims(httptest.NewRequest(http.MethodGet, "/v1/sessions", nil))
	rr := httptest.NewRecorder()
	h.GetCurrent(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.False(t, v.gotSkip)
	assert.Equal(t, "sess-1", v.gotSessN)
}

func TestGetCurrent_CachedFlagSkipsRemoteCheck(t *testing.T) {
	v := &recordingVerifier{result: authn.Result{
		Authenticated: true,
		Role:          domain.RoleStudent,
		Session:       &domain.Session{SessionID: "sess-1", Role: domain.RoleStudent},
		FromCache:     true,
	}}
	h := NewSessionHandler(&stubSessionService{}, v)

	req := withClaims(httptest.NewRequest(http.MethodGet, "/v1/sessions?cached=1", nil))
	rr := httptest.NewRecorder()
	h.GetCurrent(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, v.gotSkip)
}

func TestGetCurrent_DeadSession(t *testing.T) {
	v := &recordingVerifier{result: authn.Result{Authenticated: false, Role: domain.RoleUnknown}}
	h := NewSessionHandler(&stubSessionService{}, v)

	req := withClaims(httptest.NewRequest(http.MethodGet, "/v1/sessions", nil))
	rr := httptest.NewRecorder()
	h.GetCurrent(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
