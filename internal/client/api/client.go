// Package api is the HTTP client for the auth server. It speaks the server's
// form-in, JSON-out contract and keeps the session cookie between calls.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/userauth/internal/common"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	sessionID  string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			// Logout answers with a redirect; the client reads it as-is.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// SessionID returns the session token captured by the last successful Login,
// or "" when not logged in.
func (c *Client) SessionID() string {
	return c.sessionID
}

func (c *Client) do(ctx context.Context, method, path string, form url.Values) (int, map[string]string, *http.Response, error) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, nil, err
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if c.sessionID != "" {
		req.AddCookie(&http.Cookie{Name: common.SessionCookieName, Value: c.sessionID})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	payload := map[string]string{}
	if b, err := io.ReadAll(resp.Body); err == nil && len(b) > 0 {
		// The body may be a redirect page rather than JSON.
		_ = json.Unmarshal(b, &payload)
	}

	return resp.StatusCode, payload, resp, nil
}

func apiError(status int, payload map[string]string) error {
	return &APIError{StatusCode: status, Message: payload["message"]}
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, email string, password []byte) error {
	form := url.Values{"email": {email}, "password": {string(password)}}
	status, payload, _, err := c.do(ctx, http.MethodPost, "/users", form)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return apiError(status, payload)
	}
	return nil
}

// Login authenticates and stores the session cookie for subsequent calls.
func (c *Client) Login(ctx context.Context, email string, password []byte) error {
	form := url.Values{"email": {email}, "password": {string(password)}}
	status, payload, resp, err := c.do(ctx, http.MethodPost, "/sessions", form)
	if err != nil {
		return err
	}
	if status == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if status != http.StatusOK {
		return apiError(status, payload)
	}

	for _, cookie := range resp.Cookies() {
		if cookie.Name == common.SessionCookieName {
			c.sessionID = cookie.Value
			return nil
		}
	}
	return fmt.Errorf("no %s cookie in login response", common.SessionCookieName)
}

// Logout destroys the current session and forgets the cookie.
func (c *Client) Logout(ctx context.Context) error {
	status, payload, _, err := c.do(ctx, http.MethodDelete, "/sessions", nil)
	if err != nil {
		return err
	}
	if status == http.StatusForbidden {
		return ErrUnauthorized
	}
	if status != http.StatusFound && status != http.StatusOK {
		return apiError(status, payload)
	}
	c.sessionID = ""
	return nil
}

// Profile returns the email of the logged-in user.
func (c *Client) Profile(ctx context.Context) (string, error) {
	status, payload, _, err := c.do(ctx, http.MethodGet, "/profile", nil)
	if err != nil {
		return "", err
	}
	if status == http.StatusForbidden {
		return "", ErrUnauthorized
	}
	if status != http.StatusOK {
		return "", apiError(status, payload)
	}
	return payload["email"], nil
}

// ResetToken requests a password reset token for email.
func (c *Client) ResetToken(ctx context.Context, email string) (string, error) {
	form := url.Values{"email": {email}}
	status, payload, _, err := c.do(ctx, http.MethodPost, "/reset_password", form)
	if err != nil {
		return "", err
	}
	if status == http.StatusForbidden {
		return "", ErrUnauthorized
	}
	if status != http.StatusOK {
		return "", apiError(status, payload)
	}
	return payload["reset_token"], nil
}

// UpdatePassword sets a new password using a reset token.
func (c *Client) UpdatePassword(ctx context.Context, email, resetToken string, newPassword []byte) error {
	form := url.Values{
		"email":        {email},
		"reset_token":  {resetToken},
		"new_password": {string(newPassword)},
	}
	status, payload, _, err := c.do(ctx, http.MethodPut, "/reset_password", form)
	if err != nil {
		return err
	}
	if status == http.StatusForbidden {
		return ErrUnauthorized
	}
	if status != http.StatusOK {
		return apiError(status, payload)
	}
	return nil
}
