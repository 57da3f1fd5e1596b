package handler

import (
	"encoding/json"
	"net/http"

	"github.com/hs-portal-api/internal/application/authn"
	"github.com/hs-portal-api/internal/application/session"
	"github.com/hs-portal-api/internal/transport/http/middleware"
)

// SessionHandler handles login, logout and session introspection.
type SessionHandler struct {
	svc      session.Service
	verifier authn.Service
}

func NewSessionHandler(svc session.Service, verifier authn.Service) *SessionHandler {
	return &SessionHandler{svc: svc, verifier: verifier}
}

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password required")
		return
	}

	result, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AuthEnvelope{
		Bearer:  result.Token,
		Session: result.Session,
	})
}

// GetCurrent verifies and reports the caller's session. The frontend calls
// this on navigation to decide where the user belongs; `?cached=1` answers
// from the stored session without the upstream round trip, for cheap reads
// like the header badge.
func (h *SessionHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	res := h.verifier.Verify(r.Context(), claims.SessionID, authn.VerifyOptions{
		SkipRemoteCheck: r.URL.Query().Get("cached") == "1",
	})
	if !res.Authenticated {
		writeError(w, http.StatusUnauthorized, "session expired or revoked")
		return
	}
	writeJSON(w, http.StatusOK, SessionEnvelope{Session: res.Session, Role: res.Role})
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.svc.Logout(r.Context(), sess); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "logged out"})
}

func (h *SessionHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OldPassword == "" || req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "old_password and new_password required")
		return
	}
	if err := h.svc.ChangePassword(r.Context(), sess, req.OldPassword, req.NewPassword); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "password changed"})
}
