package domain

import "strings"

// Role names as the portal uses them after normalization.
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
	RoleUnknown = "unknown"
)

// NormalizeRole maps a raw upstream role name to a portal role.
// The match against admin is case-insensitive; any other non-empty name is a
// student (the backend has no third portal-facing role), and an absent name
// maps to unknown rather than being guessed.
func NormalizeRole(raw string) string {
	if raw == "" {
		return RoleUnknown
	}
	if strings.EqualFold(raw, RoleAdmin) {
		return RoleAdmin
	}
	return RoleStudent
}

// HomeRoute returns the SPA route a user of the given role belongs on.
// Used as the escape hatch in access-restricted responses.
func HomeRoute(role string) string {
	if role == RoleAdmin {
		return "/admin/dashboard"
	}
	return "/servicios"
}

// Role is a backend role record, proxied verbatim to admin tooling.
type Role struct {
	ID   FlexID `json:"id"`
	Name string `json:"name"`
}
