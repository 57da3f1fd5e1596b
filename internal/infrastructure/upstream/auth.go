package upstream

import (
	"context"
	"net/http"
	"strings"

	"github.com/hs-portal-api/internal/domain"
)

// Login authenticates against the backend and returns the session cookie(s)
// it set, joined into a single Cookie header value. The response body is not
// inspected beyond success/failure; the cookie is the whole point.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	payload := map[string]string{"email": email, "password": password}

	buf, err := jsonBody(payload)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", buf)
	if err != nil {
		return "", &Error{Kind: KindInternal, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &Error{Kind: KindUnavailable, Message: "could not reach the service"}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errorFromResponse(resp)
	}

	cookies := resp.Cookies()
	if len(cookies) == 0 {
		return "", &Error{Kind: KindAuth, Status: resp.StatusCode, Message: "login succeeded but no session cookie was set"}
	}
	parts := make([]string, 0, len(cookies))
	for _, ck := range cookies {
		parts = append(parts, ck.Name+"="+ck.Value)
	}
	return strings.Join(parts, "; "), nil
}

// Profile fetches the identity record for the given session cookie.
func (c *Client) Profile(ctx context.Context, cookie string) (*domain.Profile, error) {
	var p domain.Profile
	if err := c.do(ctx, http.MethodGet, "/auth/profile", cookie, nil, "", &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ChangePassword proxies the password change for the given session.
func (c *Client) ChangePassword(ctx context.Context, cookie, oldPassword, newPassword string) error {
	payload := map[string]string{
		"old_password": oldPassword,
		"new_password": newPassword,
	}
	return c.doJSON(ctx, http.MethodPut, "/auth/change-password", cookie, payload, nil)
}

// Logout invalidates the backend session.
func (c *Client) Logout(ctx context.Context, cookie string) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", cookie, nil, "", nil)
}
