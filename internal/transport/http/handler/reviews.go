package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hs-portal-api/internal/application/review"
	"github.com/hs-portal-api/internal/domain"
	"github.com/hs-portal-api/internal/transport/http/middleware"
)

// ReviewHandler applies admin verdicts to reports.
type ReviewHandler struct {
	svc review.Service
}

func NewReviewHandler(svc review.Service) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

// Submit patches one report's verdict and answers with the refreshed report
// list so the admin view can replace its state wholesale.
func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var d domain.ReviewDecision
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reports, err := h.svc.Submit(r.Context(), sess, chi.URLParam(r, "id"), d)
	if err != nil {
		httpError(w, err)
		return
	}
	if reports == nil {
		reports = []domain.Report{}
	}
	writeJSON(w, http.StatusOK, reportListEnvelope{Data: reports})
}
