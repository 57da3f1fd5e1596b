package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hs-portal-api/internal/domain"
)

type Service interface {
	// Submit applies an admin verdict to one report and returns the
	// refetched report list, which is the source of truth after a review.
	Submit(ctx context.Context, sess *domain.Session, reportID string, d domain.ReviewDecision) ([]domain.Report, error)
}

type upstreamReviews interface {
	ListServices(ctx context.Context, cookie string) ([]domain.Report, error)
	GetService(ctx context.Context, cookie, id string) (*domain.Report, error)
	SubmitReview(ctx context.Context, cookie, id string, d domain.ReviewDecision) error
}

type service struct {
	upstream upstreamReviews
}

func NewService(up upstreamReviews) Service {
	return &service{upstream: up}
}

func (s *service) Submit(ctx context.Context, sess *domain.Session, reportID string, d domain.ReviewDecision) ([]domain.Report, error) {
	switch d.Status {
	case domain.StatusApproved, domain.StatusRejected:
	default:
		return nil, fmt.Errorf("%w: status must be approved or rejected", domain.ErrBadRequest)
	}

	// A rejection never carries an approved amount, whatever the caller sent.
	if d.Status == domain.StatusRejected {
		d.AmountApproved = 0
	}
	if d.AmountApproved < 0 {
		return nil, fmt.Errorf("%w: amount_approved must not be negative", domain.ErrBadRequest)
	}

	report, err := s.upstream.GetService(ctx, sess.UpstreamCookie, reportID)
	if err != nil {
		return nil, err
	}
	if d.Status == domain.StatusApproved && d.AmountApproved > report.AmountReported {
		return nil, fmt.Errorf("%w: amount_approved exceeds amount_reported (%d)", domain.ErrBadRequest, report.AmountReported)
	}

	if err := s.upstream.SubmitReview(ctx, sess.UpstreamCookie, reportID, d); err != nil {
		// Some reports are addressed by a separate review id upstream. When
		// the primary id misses and the report carries one, retry with it.
		fallback := report.ReviewID.String()
		if !errors.Is(err, domain.ErrNotFound) || fallback == "" || fallback == reportID {
			return nil, err
		}
		slog.Info("review id fallback", "report_id", reportID, "review_id", fallback)
		if err := s.upstream.SubmitReview(ctx, sess.UpstreamCookie, fallback, d); err != nil {
			return nil, err
		}
	}

	// No optimistic patching: the backend recomputes derived fields, so the
	// fresh list is the only trustworthy post-review state.
	return s.upstream.ListServices(ctx, sess.UpstreamCookie)
}
