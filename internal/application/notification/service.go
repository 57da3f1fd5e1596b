package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hs-portal-api/internal/domain"
	"github.com/hs-portal-api/internal/pkg/id"
)

type Service interface {
	List(ctx context.Context, userID string) ([]domain.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	// MarkRead flips one notification. It refuses to touch records owned by
	// another user.
	MarkRead(ctx context.Context, userID, notificationID string) error
	MarkAllRead(ctx context.Context, userID string) error
	Remove(ctx context.Context, userID, notificationID string) error
	ClearAll(ctx context.Context, userID string) error

	// AddServiceCreated records a "new service registered" notification.
	AddServiceCreated(ctx context.Context, userID, email, serviceLabel string) error
	// ScanForNewComments walks a user's reports and raises one notification
	// per admin comment never seen before. Calling it twice with the same
	// reports adds nothing the second time.
	ScanForNewComments(ctx context.Context, userID, email string, reports []domain.Report) error
}

type notificationStore interface {
	Put(ctx context.Context, n *domain.Notification) error
	Get(ctx context.Context, notificationID string) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Notification, error)
	MarkRead(ctx context.Context, notificationID string) error
	Delete(ctx context.Context, notificationID string) error
	DeleteAllByUser(ctx context.Context, userID string) error
}

type seenCommentStore interface {
	Put(ctx context.Context, sc *domain.SeenComment) error
	Exists(ctx context.Context, userID, commentKey string) (bool, error)
}

type pusher interface {
	Push(ctx context.Context, subject, message string) error
}

type mailer interface {
	SendEmail(to, subject, body string) error
}

type service struct {
	notifications notificationStore
	seen          seenCommentStore
	push          pusher
	mail          mailer
	now           func() time.Time
}

// NewService builds the notification workflow. push and mail may be nil when
// the deployment has no SNS topic or SMTP relay configured.
func NewService(notifications notificationStore, seen seenCommentStore, push pusher, mail mailer) Service {
	return &service{notifications: notifications, seen: seen, push: push, mail: mail, now: time.Now}
}

func (s *service) List(ctx context.Context, userID string) ([]domain.Notification, error) {
	return s.notifications.ListByUser(ctx, userID)
}

func (s *service) UnreadCount(ctx context.Context, userID string) (int, error) {
	all, err := s.notifications.ListByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, n := range all {
		if !n.Read {
			count++
		}
	}
	return count, nil
}

func (s *service) MarkRead(ctx context.Context, userID, notificationID string) error {
	n, err := s.notifications.Get(ctx, notificationID)
	if err != nil {
		return err
	}
	if n.UserID != userID {
		return domain.ErrForbidden
	}
	return s.notifications.MarkRead(ctx, notificationID)
}

func (s *service) MarkAllRead(ctx context.Context, userID string) error {
	all, err := s.notifications.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	for _, n := range all {
		if n.Read {
			continue
		}
		if err := s.notifications.MarkRead(ctx, n.NotificationID); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) Remove(ctx context.Context, userID, notificationID string) error {
	n, err := s.notifications.Get(ctx, notificationID)
	if err != nil {
		return err
	}
	if n.UserID != userID {
		return domain.ErrForbidden
	}
	return s.notifications.Delete(ctx, notificationID)
}

func (s *service) ClearAll(ctx context.Context, userID string) error {
	return s.notifications.DeleteAllByUser(ctx, userID)
}

func (s *service) AddServiceCreated(ctx context.Context, userID, email, serviceLabel string) error {
	msg := fmt.Sprintf("Tu servicio %q fue registrado y espera revisión.", serviceLabel)
	return s.add(ctx, userID, email, domain.NotificationNewService, "Servicio registrado", msg, "/servicios", "")
}

func (s *service) ScanForNewComments(ctx context.Context, userID, email string, reports []domain.Report) error {
	for _, r := range reports {
		if r.Comment == "" {
			continue
		}
		serviceID := r.ID.String()
		key := domain.CommentKey(serviceID, r.Comment)

		seen, err := s.seen.Exists(ctx, userID, key)
		if err != nil {
			return err
		}
		if seen {
			continue
		}

		msg := fmt.Sprintf("Nuevo comentario en %q: %s", r.Label(), r.Comment)
		if err := s.add(ctx, userID, email, domain.NotificationAdminComment, "Comentario del revisor", msg, "/estados", serviceID); err != nil {
			return err
		}
		if err := s.seen.Put(ctx, &domain.SeenComment{
			UserID:     userID,
			CommentKey: key,
			ServiceID:  serviceID,
			CreatedAt:  s.now().UTC(),
		}); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) add(ctx context.Context, userID, email, kind, subject, message, link, serviceID string) error {
	now := s.now().UTC()
	n := &domain.Notification{
		NotificationID: id.New(),
		UserID:         userID,
		Type:           kind,
		Title:          subject,
		Message:        message,
		Link:           link,
		ServiceID:      serviceID,
		Read:           false,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.notifications.Put(ctx, n); err != nil {
		return err
	}

	// Push and email are side channels. A failure there never fails the
	// operation that raised the notification.
	if s.push != nil {
		if err := s.push.Push(ctx, subject, message); err != nil {
			slog.Warn("push notification failed", "user_id", userID, "err", err)
		}
	}
	if s.mail != nil && email != "" {
		if err := s.mail.SendEmail(email, subject, message); err != nil {
			slog.Warn("notification email failed", "user_id", userID, "err", err)
		}
	}
	return nil
}
