package middleware

import (
	"context"
	"net/http"

	"github.com/hs-portal-api/internal/application/authn"
	"github.com/hs-portal-api/internal/domain"
)

const SessionKey contextKey = "session"

// Guard gates a route group behind a live session check. It runs after Auth,
// so a valid token is already established; what Guard adds is the session
// side: expiry, upstream revocation and the role requirement.
//
// The two denial shapes are distinct on purpose. No valid session means 401
// with a /login redirect. A valid session with the wrong role means 403 with
// a redirect to that role's own home, so the frontend can bounce the user to
// a page they are allowed to see.
func Guard(verifier authn.Service, requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "authentication required", "/login")
				return
			}

			res := verifier.Verify(r.Context(), claims.SessionID, authn.VerifyOptions{})
			if !res.Authenticated {
				writeJSONError(w, http.StatusUnauthorized, "session expired or revoked", "/login")
				return
			}

			if requiredRole != "" && res.Role != requiredRole {
				writeJSONError(w, http.StatusForbidden, "insufficient role", domain.HomeRoute(res.Role))
				return
			}

			ctx := context.WithValue(r.Context(), SessionKey, res.Session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext extracts the verified session injected by Guard.
func SessionFromContext(ctx context.Context) (*domain.Session, bool) {
	s, ok := ctx.Value(SessionKey).(*domain.Session)
	return s, ok
}
