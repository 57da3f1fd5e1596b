package directory

import (
	"context"
	"log/slog"

	"github.com/hs-portal-api/internal/domain"
	"github.com/hs-portal-api/internal/pkg/validate"
)

// Service relays the backend-owned directory resources. Input validation
// happens here; everything else passes through on the session's cookie.
type Service interface {
	ListUsers(ctx context.Context, sess *domain.Session) ([]domain.User, error)
	CreateUser(ctx context.Context, sess *domain.Session, in domain.UserInput) (*domain.User, error)
	UpdateUser(ctx context.Context, sess *domain.Session, id string, in domain.UserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, sess *domain.Session, id string) error

	ListCategories(ctx context.Context, sess *domain.Session) ([]domain.Category, error)
	CreateCategory(ctx context.Context, sess *domain.Session, in domain.CategoryInput) (*domain.Category, error)
	UpdateCategory(ctx context.Context, sess *domain.Session, id string, in domain.CategoryInput) (*domain.Category, error)
	DeleteCategory(ctx context.Context, sess *domain.Session, id string) error

	ListRoles(ctx context.Context, sess *domain.Session) ([]domain.Role, error)
	ListSchools(ctx context.Context, sess *domain.Session) ([]domain.School, error)
	GetSchool(ctx context.Context, sess *domain.Session, id string) (*domain.School, error)
}

type upstreamDirectory interface {
	ListUsers(ctx context.Context, cookie string) ([]domain.User, error)
	CreateUser(ctx context.Context, cookie string, in domain.UserInput) (*domain.User, error)
	UpdateUser(ctx context.Context, cookie, id string, in domain.UserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, cookie, id string) error
	ListCategories(ctx context.Context, cookie string) ([]domain.Category, error)
	CreateCategory(ctx context.Context, cookie string, in domain.CategoryInput) (*domain.Category, error)
	UpdateCategory(ctx context.Context, cookie, id string, in domain.CategoryInput) (*domain.Category, error)
	DeleteCategory(ctx context.Context, cookie, id string) error
	ListRoles(ctx context.Context, cookie string) ([]domain.Role, error)
	ListSchools(ctx context.Context, cookie string) ([]domain.School, error)
	GetSchool(ctx context.Context, cookie, id string) (*domain.School, error)
}

type sessionPurger interface {
	DeleteByUser(ctx context.Context, userID string) error
}

type notificationPurger interface {
	DeleteAllByUser(ctx context.Context, userID string) error
}

type service struct {
	upstream      upstreamDirectory
	sessions      sessionPurger
	notifications notificationPurger
}

func NewService(up upstreamDirectory, sessions sessionPurger, notifications notificationPurger) Service {
	return &service{upstream: up, sessions: sessions, notifications: notifications}
}

func (s *service) ListUsers(ctx context.Context, sess *domain.Session) ([]domain.User, error) {
	return s.upstream.ListUsers(ctx, sess.UpstreamCookie)
}

func (s *service) CreateUser(ctx context.Context, sess *domain.Session, in domain.UserInput) (*domain.User, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	return s.upstream.CreateUser(ctx, sess.UpstreamCookie, in)
}

func (s *service) UpdateUser(ctx context.Context, sess *domain.Session, id string, in domain.UserInput) (*domain.User, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	return s.upstream.UpdateUser(ctx, sess.UpstreamCookie, id, in)
}

func (s *service) DeleteUser(ctx context.Context, sess *domain.Session, id string) error {
	if err := s.upstream.DeleteUser(ctx, sess.UpstreamCookie, id); err != nil {
		return err
	}
	// The backend no longer knows this user, so the portal's own records for
	// them are dead weight. Purge failures only leave orphans behind.
	if err := s.sessions.DeleteByUser(ctx, id); err != nil {
		slog.Warn("session purge after user delete failed", "user_id", id, "err", err)
	}
	if err := s.notifications.DeleteAllByUser(ctx, id); err != nil {
		slog.Warn("notification purge after user delete failed", "user_id", id, "err", err)
	}
	return nil
}

func (s *service) ListCategories(ctx context.Context, sess *domain.Session) ([]domain.Category, error) {
	return s.upstream.ListCategories(ctx, sess.UpstreamCookie)
}

func (s *service) CreateCategory(ctx context.Context, sess *domain.Session, in domain.CategoryInput) (*domain.Category, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	return s.upstream.CreateCategory(ctx, sess.UpstreamCookie, in)
}

func (s *service) UpdateCategory(ctx context.Context, sess *domain.Session, id string, in domain.CategoryInput) (*domain.Category, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	return s.upstream.UpdateCategory(ctx, sess.UpstreamCookie, id, in)
}

func (s *service) DeleteCategory(ctx context.Context, sess *domain.Session, id string) error {
	return s.upstream.DeleteCategory(ctx, sess.UpstreamCookie, id)
}

func (s *service) ListRoles(ctx context.Context, sess *domain.Session) ([]domain.Role, error) {
	return s.upstream.ListRoles(ctx, sess.UpstreamCookie)
}

func (s *service) ListSchools(ctx context.Context, sess *domain.Session) ([]domain.School, error) {
	return s.upstream.ListSchools(ctx, sess.UpstreamCookie)
}

func (s *service) GetSchool(ctx context.Context, sess *domain.Session, id string) (*domain.School, error) {
	return s.upstream.GetSchool(ctx, sess.UpstreamCookie, id)
}
