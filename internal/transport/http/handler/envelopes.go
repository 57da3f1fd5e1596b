package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hs-portal-api/internal/domain"
	"github.com/hs-portal-api/internal/infrastructure/upstream"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// AuthEnvelope wraps login responses.
type AuthEnvelope struct {
	Bearer  string          `json:"Bearer,omitempty"`
	Session *domain.Session `json:"session,omitempty"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// SessionEnvelope wraps current-session responses.
type SessionEnvelope struct {
	Session *domain.Session `json:"session,omitempty"`
	Role    string          `json:"role,omitempty"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

// httpError maps a service error onto a status code and a client-safe
// message. Upstream errors keep the backend's own message verbatim so the
// frontend shows exactly what the backend said.
func httpError(w http.ResponseWriter, err error) {
	if ue, ok := upstream.AsError(err); ok {
		writeError(w, statusForUpstream(ue), ue.Message)
		return
	}

	switch {
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "conflict")
	case errors.Is(err, domain.ErrUnavailable):
		writeError(w, http.StatusBadGateway, "upstream unavailable")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func statusForUpstream(ue *upstream.Error) int {
	switch ue.Kind {
	case upstream.KindAuth:
		return http.StatusUnauthorized
	case upstream.KindForbidden:
		return http.StatusForbidden
	case upstream.KindNotFound:
		return http.StatusNotFound
	case upstream.KindValidation:
		if ue.Status >= 400 && ue.Status < 500 {
			return ue.Status
		}
		return http.StatusBadRequest
	case upstream.KindUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusBadGateway
	}
}
