package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hs-portal-api/internal/application/notification"
	"github.com/hs-portal-api/internal/application/report"
	"github.com/hs-portal-api/internal/domain"
	"github.com/hs-portal-api/internal/transport/http/middleware"
)

// ReportHandler exposes the service-hours reports.
type ReportHandler struct {
	svc   report.Service
	notif notification.Service
}

func NewReportHandler(svc report.Service, notif notification.Service) *ReportHandler {
	return &ReportHandler{svc: svc, notif: notif}
}

type reportListEnvelope struct {
	Data []domain.Report `json:"data"`
}

func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	reports, err := h.svc.List(r.Context(), sess)
	if err != nil {
		httpError(w, err)
		return
	}

	// Students see their own reports here, so the fetch doubles as the
	// moment to surface reviewer comments they have not seen yet.
	if sess.Role == domain.RoleStudent {
		if err := h.notif.ScanForNewComments(r.Context(), sess.UserID, sess.Email, reports); err != nil {
			slog.Warn("comment scan failed", "user_id", sess.UserID, "err", err)
		}
	}

	if reports == nil {
		reports = []domain.Report{}
	}
	writeJSON(w, http.StatusOK, reportListEnvelope{Data: reports})
}

func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	rep, err := h.svc.Get(r.Context(), sess, chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// Create accepts the same multipart form the backend does, with the evidence
// PDF under the "evidence" field.
func (h *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	// One byte over the limit fails parsing instead of buffering unbounded input.
	if err := r.ParseMultipartForm(domain.EvidenceMaxSize + 1); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	in := report.CreateInput{
		Description: r.FormValue("description"),
		CategoryID:  r.FormValue("category_id"),
	}
	if v := r.FormValue("amount_reported"); v != "" {
		n, err := parsePositiveInt(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "amount_reported must be a positive integer")
			return
		}
		in.AmountReported = n
	}

	if file, header, err := r.FormFile("evidence"); err == nil {
		defer file.Close()
		in.Evidence = file
		in.EvidenceName = header.Filename
		in.EvidenceSize = header.Size
		in.EvidenceType = header.Header.Get("Content-Type")
	}

	created, err := h.svc.Create(r.Context(), sess, in)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ReportHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.svc.Delete(r.Context(), sess, chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "deleted"})
}

func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, strconv.ErrSyntax
	}
	return n, nil
}

// EvidenceArchive lists the portal's archived evidence copies for one report.
func (h *ReportHandler) EvidenceArchive(w http.ResponseWriter, r *http.Request) {
	archive, err := h.svc.EvidenceArchive(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	if archive == nil {
		archive = []domain.Evidence{}
	}
	writeJSON(w, http.StatusOK, archive)
}

// EvidenceDownload redirects to a short-lived presigned URL for one archived PDF.
func (h *ReportHandler) EvidenceDownload(w http.ResponseWriter, r *http.Request) {
	url, err := h.svc.EvidenceDownloadURL(r.Context(), chi.URLParam(r, "evidenceID"))
	if err != nil {
		httpError(w, err)
		return
	}
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}
