package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/hs-portal-api/internal/domain"
	"github.com/hs-portal-api/internal/pkg/id"
)

// LoginResult carries everything the transport layer needs to answer a
// successful login.
type LoginResult struct {
	Token   string
	Session *domain.Session
}

type Service interface {
	// Login authenticates against the upstream API, materializes a session
	// record and signs a bearer token for it.
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Logout tears the session down on both sides. The upstream call is best
	// effort; the local record always goes.
	Logout(ctx context.Context, sess *domain.Session) error
	ChangePassword(ctx context.Context, sess *domain.Session, oldPassword, newPassword string) error
}

type sessionStore interface {
	Put(ctx context.Context, sess *domain.Session) error
	Delete(ctx context.Context, sessionID string) error
}

type upstreamAuth interface {
	Login(ctx context.Context, email, password string) (string, error)
	Profile(ctx context.Context, cookie string) (*domain.Profile, error)
	ChangePassword(ctx context.Context, cookie, oldPassword, newPassword string) error
	Logout(ctx context.Context, cookie string) error
}

type tokenSigner interface {
	Sign(userID, role, sessionID string) (string, error)
}

type service struct {
	sessions sessionStore
	upstream upstreamAuth
	signer   tokenSigner
	now      func() time.Time
}

func NewService(sessions sessionStore, upstream upstreamAuth, signer tokenSigner) Service {
	return &service{sessions: sessions, upstream: upstream, signer: signer, now: time.Now}
}

func (s *service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	cookie, err := s.upstream.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	profile, err := s.upstream.Profile(ctx, cookie)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	sess := &domain.Session{
		SessionID:      id.New(),
		UserID:         profile.UserID.String(),
		Email:          profile.Email,
		DisplayName:    profile.Name,
		Role:           domain.NormalizeRole(profile.Role),
		UpstreamCookie: cookie,
		IssuedAt:       now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.sessions.Put(ctx, sess); err != nil {
		return nil, err
	}

	token, err := s.signer.Sign(sess.UserID, sess.Role, sess.SessionID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, Session: sess}, nil
}

func (s *service) Logout(ctx context.Context, sess *domain.Session) error {
	if err := s.upstream.Logout(ctx, sess.UpstreamCookie); err != nil {
		slog.Warn("upstream logout failed", "session_id", sess.SessionID, "err", err)
	}
	return s.sessions.Delete(ctx, sess.SessionID)
}

func (s *service) ChangePassword(ctx context.Context, sess *domain.Session, oldPassword, newPassword string) error {
	return s.upstream.ChangePassword(ctx, sess.UpstreamCookie, oldPassword, newPassword)
}
