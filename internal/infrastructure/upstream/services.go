package upstream

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/hs-portal-api/internal/domain"
)

// CreateServiceInput carries the multipart fields for POST /services.
// Evidence is optional; when present it must already have passed the
// PDF/size validation done by the report service.
type CreateServiceInput struct {
	AmountReported int
	Description    string
	CategoryID     string
	Evidence       io.Reader // nil when no evidence was attached
	EvidenceName   string
}

// ListServices fetches the report list visible to the session's user.
// Admins see every report, students only their own; the backend decides.
func (c *Client) ListServices(ctx context.Context, cookie string) ([]domain.Report, error) {
	var reports []domain.Report
	if err := c.do(ctx, http.MethodGet, "/services", cookie, nil, "", &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// GetService fetches one report by id.
func (c *Client) GetService(ctx context.Context, cookie, id string) (*domain.Report, error) {
	var r domain.Report
	if err := c.do(ctx, http.MethodGet, "/services/"+id, cookie, nil, "", &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateService submits a new report as multipart form data.
func (c *Client) CreateService(ctx context.Context, cookie string, in CreateServiceInput) (*domain.Report, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("amount_reported", strconv.Itoa(in.AmountReported)); err != nil {
		return nil, &Error{Kind: KindInternal, Message: err.Error()}
	}
	if err := w.WriteField("description", in.Description); err != nil {
		return nil, &Error{Kind: KindInternal, Message: err.Error()}
	}
	if err := w.WriteField("category_id", in.CategoryID); err != nil {
		return nil, &Error{Kind: KindInternal, Message: err.Error()}
	}
	if in.Evidence != nil {
		part, err := w.CreateFormFile("evidence", in.EvidenceName)
		if err != nil {
			return nil, &Error{Kind: KindInternal, Message: err.Error()}
		}
		if _, err := io.Copy(part, in.Evidence); err != nil {
			return nil, &Error{Kind: KindInternal, Message: fmt.Sprintf("read evidence: %v", err)}
		}
	}
	if err := w.Close(); err != nil {
		return nil, &Error{Kind: KindInternal, Message: err.Error()}
	}

	var r domain.Report
	if err := c.do(ctx, http.MethodPost, "/services", cookie, &buf, w.FormDataContentType(), &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// DeleteService removes one report.
func (c *Client) DeleteService(ctx context.Context, cookie, id string) error {
	return c.do(ctx, http.MethodDelete, "/services/"+id, cookie, nil, "", nil)
}

// SubmitReview patches the review verdict for one report.
func (c *Client) SubmitReview(ctx context.Context, cookie, id string, d domain.ReviewDecision) error {
	payload := map[string]any{
		"status":          int(d.Status),
		"amount_approved": d.AmountApproved,
		"comment":         d.Comment,
	}
	return c.doJSON(ctx, http.MethodPatch, "/review/"+id, cookie, payload, nil)
}
