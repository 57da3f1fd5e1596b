package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is a typed wrapper over the remote hs-service REST API. The portal
// authenticates to it with the session cookie captured at login; every method
// takes that cookie explicitly because the client itself is stateless and
// shared across all portal users.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the given API base URL (".../api/v1", no trailing
// slash needed).
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// do issues one request and normalizes every failure into *Error. A non-nil
// out is filled from the response body on 2xx.
func (c *Client) do(ctx context.Context, method, path, cookie string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &Error{Kind: KindInternal, Message: err.Error()}
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: KindUnavailable, Message: "could not reach the service"}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errorFromResponse(resp)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &Error{Kind: KindInternal, Status: resp.StatusCode, Message: "malformed response payload"}
		}
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path, cookie string, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return &Error{Kind: KindInternal, Message: err.Error()}
		}
		body = bytes.NewReader(buf)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, cookie, body, contentType, out)
}

func jsonBody(in any) (io.Reader, error) {
	buf, err := json.Marshal(in)
	if err != nil {
		return nil, &Error{Kind: KindInternal, Message: err.Error()}
	}
	return bytes.NewReader(buf), nil
}

// errorFromResponse builds the normalized error, preferring the server's own
// message field (the backend uses both "message" and "error").
func errorFromResponse(resp *http.Response) *Error {
	kind := KindInternal
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		kind = KindAuth
	case resp.StatusCode == http.StatusForbidden:
		kind = KindForbidden
	case resp.StatusCode == http.StatusNotFound:
		kind = KindNotFound
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		kind = KindValidation
	}

	msg := ""
	var payload struct {
		Message string `json:"message"`
		Err     string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(raw, &payload); err == nil {
		if payload.Message != "" {
			msg = payload.Message
		} else {
			msg = payload.Err
		}
	}
	if msg == "" {
		msg = fmt.Sprintf("request failed with status %d", resp.StatusCode)
	}
	return &Error{Kind: kind, Status: resp.StatusCode, Message: msg}
}
