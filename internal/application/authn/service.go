package authn

import (
	"context"
	"log/slog"
	"time"

	"github.com/hs-portal-api/internal/domain"
)

// VerifyOptions controls how far a verification goes.
type VerifyOptions struct {
	// SkipRemoteCheck answers from the cached session when one is present
	// and fresh, without touching the upstream profile endpoint. It has no
	// effect when no local session exists.
	SkipRemoteCheck bool
}

// Result is the normalized outcome of a verification. Failures of any kind
// are encoded here, never returned as errors: an unauthenticated result IS
// the answer.
type Result struct {
	Authenticated bool
	Role          string
	Session       *domain.Session
	// FromCache marks a result answered without a remote check, so callers
	// may choose to refresh lazily.
	FromCache bool
}

// Service reconciles the session store with the upstream identity endpoint.
type Service interface {
	// Verify evaluates one session id. It is not read-only: it refreshes the
	// stored session on a successful remote check and clears it on expiry or
	// remote rejection.
	Verify(ctx context.Context, sessionID string, opts VerifyOptions) Result
}

type sessionStore interface {
	Get(ctx context.Context, sessionID string) (*domain.Session, error)
	Refresh(ctx context.Context, sessionID string, email, name, role string, issuedAt time.Time) error
	Delete(ctx context.Context, sessionID string) error
}

type profileFetcher interface {
	Profile(ctx context.Context, cookie string) (*domain.Profile, error)
}

type service struct {
	sessions sessionStore
	upstream profileFetcher
	now      func() time.Time
}

func NewService(sessions sessionStore, upstream profileFetcher) Service {
	return &service{sessions: sessions, upstream: upstream, now: time.Now}
}

func (s *service) Verify(ctx context.Context, sessionID string, opts VerifyOptions) Result {
	denied := Result{Authenticated: false, Role: domain.RoleUnknown}
	if sessionID == "" {
		return denied
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		// Absent and malformed are the same thing here.
		return denied
	}

	now := s.now().UTC()
	if sess.Expired(now) {
		s.clear(ctx, sessionID)
		return denied
	}

	if opts.SkipRemoteCheck {
		return Result{Authenticated: true, Role: sess.Role, Session: sess, FromCache: true}
	}

	profile, err := s.upstream.Profile(ctx, sess.UpstreamCookie)
	if err != nil {
		// Network error, 401 and malformed payload all land here: the cached
		// session is no longer trustworthy.
		s.clear(ctx, sessionID)
		return denied
	}

	role := domain.NormalizeRole(profile.Role)
	sess.Email = profile.Email
	sess.DisplayName = profile.Name
	sess.Role = role
	sess.IssuedAt = now
	if err := s.sessions.Refresh(ctx, sessionID, profile.Email, profile.Name, role, now); err != nil {
		// The remote said yes; a failed cache refresh only costs us the
		// reset clock, not the authentication.
		slog.Warn("failed to refresh session after remote check", "session_id", sessionID, "err", err)
	}

	return Result{Authenticated: true, Role: role, Session: sess}
}

func (s *service) clear(ctx context.Context, sessionID string) {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		slog.Warn("failed to clear session", "session_id", sessionID, "err", err)
	}
}
