package upstream

import (
	"context"
	"net/http"

	"github.com/learnova/gateway/internal/models"
)

// AuthResult is the payload of a successful auth exchange: the backend's
// bearer token plus the student record.
type AuthResult struct {
	Token   string         `json:"token"`
	Student models.Student `json:"student"`
}

// Login exchanges email/password credentials for a backend session.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	var res AuthResult
	if _, err := c.do(ctx, http.MethodPost, "/auth/login", nil, "", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GoogleLogin forwards a verified Google ID token to the backend and adopts
// the returned student record.
func (c *Client) GoogleLogin(ctx context.Context, idToken string) (*AuthResult, error) {
	body := map[string]string{"idToken": idToken}
	var res AuthResult
	if _, err := c.do(ctx, http.MethodPost, "/auth/google", nil, "", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Logout invalidates the backend session. Best effort: callers clear local
// state regardless of the result.
func (c *Client) Logout(ctx context.Context, token string) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/logout", nil, token, nil, nil)
	return err
}
