package upstream

import (
	"errors"
	"fmt"

	"github.com/hs-portal-api/internal/domain"
)

// Kind classifies upstream failures so callers handle one shape instead of
// inspecting raw status codes and inconsistent error bodies.
type Kind string

const (
	KindAuth        Kind = "auth"        // 401: session invalid upstream
	KindForbidden   Kind = "forbidden"   // 403
	KindNotFound    Kind = "not_found"   // 404
	KindValidation  Kind = "validation"  // other 4xx
	KindUnavailable Kind = "unavailable" // transport failure, no HTTP response
	KindInternal    Kind = "internal"    // 5xx
)

// Error is the single error value every upstream call returns on failure.
// Message is the server's own message verbatim when one was present.
type Error struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("upstream %s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("upstream %s: %s", e.Kind, e.Message)
}

// Unwrap maps each kind onto the matching domain sentinel so existing
// errors.Is checks and the HTTP error mapper keep working.
func (e *Error) Unwrap() error {
	switch e.Kind {
	case KindAuth:
		return domain.ErrUnauthorized
	case KindForbidden:
		return domain.ErrForbidden
	case KindNotFound:
		return domain.ErrNotFound
	case KindValidation:
		return domain.ErrBadRequest
	case KindUnavailable:
		return domain.ErrUnavailable
	default:
		return nil
	}
}

// AsError unwraps err into an *Error when it is one.
func AsError(err error) (*Error, bool) {
	var ue *Error
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}
