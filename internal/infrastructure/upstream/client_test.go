package upstream

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hs-portal-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return New(srv.URL, 5*time.Second), srv
}

func TestLogin_CapturesCookie(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		http.SetCookie(w, &http.Cookie{Name: "hs_session", Value: "abc123"})
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cookie, err := c.Login(context.Background(), "a@b.c", "secret")
	require.NoError(t, err)
	assert.Equal(t, "hs_session=abc123", cookie)
}

func TestLogin_NoCookieIsAuthError(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	_, err := c.Login(context.Background(), "a@b.c", "secret")
	require.Error(t, err)
	ue, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindAuth, ue.Kind)
}

func TestLogin_BadCredentials(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid credentials"}`))
	}))
	defer srv.Close()

	_, err := c.Login(context.Background(), "a@b.c", "wrong")
	ue, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindAuth, ue.Kind)
	assert.Equal(t, "invalid credentials", ue.Message)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestProfile_SendsCookieAndDecodesLooseRole(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "hs_session=abc123", r.Header.Get("Cookie"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":7,"email":"a@b.c","name":"Ana","role":{"name":"Admin"}}`))
	}))
	defer srv.Close()

	p, err := c.Profile(context.Background(), "hs_session=abc123")
	require.NoError(t, err)
	assert.Equal(t, "7", p.UserID.String())
	assert.Equal(t, "Admin", p.Role)
	assert.Equal(t, domain.RoleAdmin, domain.NormalizeRole(p.Role))
}

func TestErrorNormalization(t *testing.T) {
	cases := []struct {
		status int
		kind   Kind
	}{
		{http.StatusUnauthorized, KindAuth},
		{http.StatusForbidden, KindForbidden},
		{http.StatusNotFound, KindNotFound},
		{http.StatusUnprocessableEntity, KindValidation},
		{http.StatusInternalServerError, KindInternal},
	}
	for _, c := range cases {
		cl, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(c.status)
			_, _ = w.Write([]byte(`{"error":"boom"}`))
		}))
		_, err := cl.ListServices(context.Background(), "ck")
		srv.Close()

		ue, ok := AsError(err)
		require.True(t, ok, "status=%d", c.status)
		assert.Equal(t, c.kind, ue.Kind, "status=%d", c.status)
		assert.Equal(t, "boom", ue.Message)
	}
}

func TestErrorNormalization_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // closed on purpose

	c := New(srv.URL, time.Second)
	_, err := c.ListServices(context.Background(), "ck")
	ue, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindUnavailable, ue.Kind)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestSubmitReview_SendsIntegerStatus(t *testing.T) {
	var gotBody string
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/review/42", r.URL.Path)
		buf, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		gotBody = string(buf)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := c.SubmitReview(context.Background(), "ck", "42", domain.ReviewDecision{
		Status:         domain.StatusApproved,
		AmountApproved: 5,
		Comment:        "ok",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":1,"amount_approved":5,"comment":"ok"}`, gotBody)
}

func TestCreateService_Multipart(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "4", r.FormValue("amount_reported"))
		assert.Equal(t, "beach cleanup", r.FormValue("description"))
		assert.Equal(t, "3", r.FormValue("category_id"))
		_, hdr, err := r.FormFile("evidence")
		require.NoError(t, err)
		assert.Equal(t, "evidence.pdf", hdr.Filename)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":9,"amount_reported":4,"status":0}`))
	}))
	defer srv.Close()

	r, err := c.CreateService(context.Background(), "ck", CreateServiceInput{
		AmountReported: 4,
		Description:    "beach cleanup",
		CategoryID:     "3",
		Evidence:       strings.NewReader("%PDF-1.4 fake"),
		EvidenceName:   "evidence.pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, "9", r.ID.String())
	assert.Equal(t, domain.StatusPending, r.Status)
}
