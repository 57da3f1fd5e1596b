package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Notification types.
const (
	NotificationNewService   = "new_service"
	NotificationAdminComment = "admin_comment"
)

// Notification is a portal-local record of a user-facing event. It is owned
// by the portal, not the backend: the backend never sees these.
type Notification struct {
	NotificationID string    `json:"id" dynamodbav:"notification_id"`
	UserID         string    `json:"user_id" dynamodbav:"user_id"`
	Type           string    `json:"type" dynamodbav:"type"`
	Title          string    `json:"title" dynamodbav:"title"`
	Message        string    `json:"message" dynamodbav:"message"`
	Link           string    `json:"link,omitempty" dynamodbav:"link"`
	ServiceID      string    `json:"service_id,omitempty" dynamodbav:"service_id"`
	Read           bool      `json:"read" dynamodbav:"read"`
	CreatedAt      time.Time `json:"timestamp" dynamodbav:"created_at"`
	UpdatedAt      time.Time `json:"updated" dynamodbav:"updated_at"`
}

// CommentKey derives the dedup key for a reviewer comment on a report.
// Re-observing the same (report, comment) pair must never re-notify, so the
// key is content-addressed: a changed comment produces a new key.
func CommentKey(serviceID, comment string) string {
	h := sha256.Sum256([]byte(serviceID + "\n" + comment))
	return hex.EncodeToString(h[:])
}

// SeenComment marks one (report, comment) pair as already notified.
type SeenComment struct {
	UserID     string    `json:"user_id" dynamodbav:"user_id"`
	CommentKey string    `json:"comment_key" dynamodbav:"comment_key"`
	ServiceID  string    `json:"service_id" dynamodbav:"service_id"`
	CreatedAt  time.Time `json:"created" dynamodbav:"created_at"`
}
