package domain

import "time"

// SessionMaxAge is the wall-clock lifetime of a portal session. Sessions are
// never refreshed past this age; the verifier clears them lazily on the next check.
const SessionMaxAge = 8 * time.Hour

// Session is the portal's cached record of an authenticated principal.
// The upstream cookie is what actually authorizes calls to the backend;
// everything else is a normalized copy of the last profile fetch.
type Session struct {
	SessionID      string    `json:"id" dynamodbav:"session_id"`
	UserID         string    `json:"user_id" dynamodbav:"user_id"`
	Email          string    `json:"email" dynamodbav:"email"`
	DisplayName    string    `json:"name" dynamodbav:"display_name"`
	Role           string    `json:"role" dynamodbav:"role"`
	UpstreamCookie string    `json:"-" dynamodbav:"upstream_cookie"`
	IssuedAt       time.Time `json:"issued_at" dynamodbav:"issued_at"`
	CreatedAt      time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt      time.Time `json:"updated" dynamodbav:"updated_at"`
}

// Expired reports whether the session is past SessionMaxAge at the given instant.
func (s *Session) Expired(now time.Time) bool {
	return now.Sub(s.IssuedAt) > SessionMaxAge
}
