// Package upstream is the typed client for the remote academy backend API.
// All endpoints share the {success, data, message, pagination} envelope;
// logical failures (success:false) surface as *APIError. The client does
// not retry and does not cache.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/learnova/gateway/internal/models"
)

// APIError is a backend-reported logical failure (success:false) or a
// non-2xx status without a decodable envelope.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream: %s (status %d)", e.Message, e.StatusCode)
}

// IsAuthError reports whether err is an upstream 401 (expired or invalid
// token). Callers use this to log quietly during session transitions.
func IsAuthError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// ErrorMessage returns the backend-reported message when err carries one,
// or fallback for transport-level failures.
func ErrorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

type envelope struct {
	Success    bool               `json:"success"`
	Data       json.RawMessage    `json:"data"`
	Message    string             `json:"message"`
	Pagination *models.Pagination `json:"pagination"`
}

// Client talks to the remote academy backend.
type Client struct {
	baseURL       string
	http          *http.Client
	logger        *zap.Logger
	onAuthExpired func(ctx context.Context, token string)
}

// NewClient creates an upstream client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// OnAuthExpired registers the callback fired when the backend rejects a
// session's token (401). The session store injects itself here at startup;
// the client never reaches into session state directly.
func (c *Client) OnAuthExpired(fn func(ctx context.Context, token string)) {
	c.onAuthExpired = fn
}

// do performs one request and decodes the envelope. A non-empty token is
// sent as a bearer; out (when non-nil) receives the envelope's data block.
func (c *Client) do(ctx context.Context, method, p string, query url.Values, token string, body, out interface{}) (*models.Pagination, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	u := c.baseURL + p
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, p, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && token != "" && c.onAuthExpired != nil {
		c.onAuthExpired(ctx, token)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 400 {
			return nil, &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return nil, fmt.Errorf("decode %s %s response: %w", method, p, err)
	}
	if !env.Success || resp.StatusCode >= 400 {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("decode %s %s data: %w", method, p, err)
		}
	}
	return env.Pagination, nil
}
