package report

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/hs-portal-api/internal/domain"
	"github.com/hs-portal-api/internal/infrastructure/upstream"
	"github.com/hs-portal-api/internal/pkg/id"
)

// CreateInput is a new service-hours report as submitted by a student.
type CreateInput struct {
	AmountReported int
	Description    string
	CategoryID     string
	Evidence       io.Reader // optional PDF
	EvidenceName   string
	EvidenceSize   int64
	EvidenceType   string
}

type Service interface {
	List(ctx context.Context, sess *domain.Session) ([]domain.Report, error)
	Get(ctx context.Context, sess *domain.Session, reportID string) (*domain.Report, error)
	// Create validates the report locally, forwards it upstream and archives
	// the evidence copy. Validation failures never reach the network.
	Create(ctx context.Context, sess *domain.Session, in CreateInput) (*domain.Report, error)
	Delete(ctx context.Context, sess *domain.Session, reportID string) error
	// EvidenceArchive lists the archived evidence records for one report.
	EvidenceArchive(ctx context.Context, reportID string) ([]domain.Evidence, error)
	EvidenceDownloadURL(ctx context.Context, evidenceID string) (string, error)
}

type upstreamServices interface {
	ListServices(ctx context.Context, cookie string) ([]domain.Report, error)
	GetService(ctx context.Context, cookie, id string) (*domain.Report, error)
	CreateService(ctx context.Context, cookie string, in upstream.CreateServiceInput) (*domain.Report, error)
	DeleteService(ctx context.Context, cookie, id string) error
}

type evidenceStore interface {
	Put(ctx context.Context, ev *domain.Evidence) error
	Get(ctx context.Context, evidenceID string) (*domain.Evidence, error)
	ListByReport(ctx context.Context, reportID string) ([]domain.Evidence, error)
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type notifier interface {
	AddServiceCreated(ctx context.Context, userID, email, serviceLabel string) error
}

type service struct {
	upstream upstreamServices
	evidence evidenceStore
	objects  objectStore
	notify   notifier
	now      func() time.Time
}

func NewService(up upstreamServices, evidence evidenceStore, objects objectStore, notify notifier) Service {
	return &service{upstream: up, evidence: evidence, objects: objects, notify: notify, now: time.Now}
}

func (s *service) List(ctx context.Context, sess *domain.Session) ([]domain.Report, error) {
	return s.upstream.ListServices(ctx, sess.UpstreamCookie)
}

func (s *service) Get(ctx context.Context, sess *domain.Session, reportID string) (*domain.Report, error) {
	return s.upstream.GetService(ctx, sess.UpstreamCookie, reportID)
}

func (s *service) Create(ctx context.Context, sess *domain.Session, in CreateInput) (*domain.Report, error) {
	if in.AmountReported <= 0 {
		return nil, fmt.Errorf("%w: amount_reported must be positive", domain.ErrBadRequest)
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", domain.ErrBadRequest)
	}
	if in.CategoryID == "" {
		return nil, fmt.Errorf("%w: category_id is required", domain.ErrBadRequest)
	}

	var archive []byte
	if in.Evidence != nil {
		if err := validateEvidence(in); err != nil {
			return nil, err
		}
		// Buffer the file once so the same bytes feed both the upstream
		// multipart body and the S3 archive copy.
		data, err := io.ReadAll(io.LimitReader(in.Evidence, domain.EvidenceMaxSize+1))
		if err != nil {
			return nil, fmt.Errorf("read evidence: %w", err)
		}
		if int64(len(data)) > domain.EvidenceMaxSize {
			return nil, fmt.Errorf("%w: evidence exceeds 10MB", domain.ErrBadRequest)
		}
		archive = data
	}

	upIn := upstream.CreateServiceInput{
		AmountReported: in.AmountReported,
		Description:    in.Description,
		CategoryID:     in.CategoryID,
		EvidenceName:   in.EvidenceName,
	}
	if archive != nil {
		upIn.Evidence = bytes.NewReader(archive)
	}

	created, err := s.upstream.CreateService(ctx, sess.UpstreamCookie, upIn)
	if err != nil {
		return nil, err
	}

	if archive != nil {
		s.archiveEvidence(ctx, sess, created.ID.String(), in.EvidenceName, archive)
	}

	if err := s.notify.AddServiceCreated(ctx, sess.UserID, sess.Email, created.Label()); err != nil {
		slog.Warn("service-created notification failed", "report_id", created.ID.String(), "err", err)
	}

	return created, nil
}

func (s *service) Delete(ctx context.Context, sess *domain.Session, reportID string) error {
	return s.upstream.DeleteService(ctx, sess.UpstreamCookie, reportID)
}

func (s *service) EvidenceArchive(ctx context.Context, reportID string) ([]domain.Evidence, error) {
	return s.evidence.ListByReport(ctx, reportID)
}

func (s *service) EvidenceDownloadURL(ctx context.Context, evidenceID string) (string, error) {
	ev, err := s.evidence.Get(ctx, evidenceID)
	if err != nil {
		return "", err
	}
	return s.objects.PresignedURL(ctx, ev.Object, 15*time.Minute)
}

// archiveEvidence keeps a copy of the uploaded PDF. The report is already
// accepted upstream at this point, so archive failures are logged and
// swallowed.
func (s *service) archiveEvidence(ctx context.Context, sess *domain.Session, reportID, name string, data []byte) {
	evidenceID := id.New()
	key := path.Join("evidence", reportID, evidenceID+".pdf")

	if _, err := s.objects.Upload(ctx, key, bytes.NewReader(data), domain.EvidenceContentType); err != nil {
		slog.Warn("evidence archive upload failed", "report_id", reportID, "err", err)
		return
	}

	sum := sha256.Sum256(data)
	ev := &domain.Evidence{
		EvidenceID:       evidenceID,
		ReportID:         reportID,
		Object:           key,
		Size:             int64(len(data)),
		Name:             name,
		Hash:             hex.EncodeToString(sum[:]),
		UploadedByUserID: sess.UserID,
		CreatedAt:        s.now().UTC(),
	}
	if err := s.evidence.Put(ctx, ev); err != nil {
		slog.Warn("evidence archive record failed", "report_id", reportID, "err", err)
	}
}

func validateEvidence(in CreateInput) error {
	if in.EvidenceType != "" && in.EvidenceType != domain.EvidenceContentType {
		return fmt.Errorf("%w: evidence must be a PDF", domain.ErrBadRequest)
	}
	if in.EvidenceName != "" && !strings.EqualFold(path.Ext(in.EvidenceName), ".pdf") {
		return fmt.Errorf("%w: evidence must be a PDF", domain.ErrBadRequest)
	}
	if in.EvidenceSize > domain.EvidenceMaxSize {
		return fmt.Errorf("%w: evidence exceeds 10MB", domain.ErrBadRequest)
	}
	return nil
}
