// Package usersapi talks to the remote users API that registers community members.
package usersapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/frontendfusion/signup/internal/domain/signup"
	"github.com/frontendfusion/signup/pkg/metrics"
)

const (
	usersPath       = "/users"
	maxErrorPayload = 4 << 10
)

// Client implements signup.UserCreator over HTTP.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

var _ signup.UserCreator = (*Client)(nil)

// NewClient returns a client for baseURL. A nil httpClient falls back to
// http.DefaultClient.
func NewClient(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		token:      strings.TrimSpace(token),
		httpClient: httpClient,
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// CreateUser registers data. Any non-2xx answer is an error wrapping ErrCreateUser.
func (c *Client) CreateUser(ctx context.Context, data signup.FormData) error {
	if c.baseURL == "" {
		return ErrNoBaseURL
	}

	body, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode create user request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+usersPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create user request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordErrorByComponent("usersapi", "transport")
		return fmt.Errorf("send create user request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	metrics.RecordErrorByComponent("usersapi", statusClass(resp.StatusCode))
	payload, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorPayload))
	return mapError(resp.StatusCode, payload)
}

func mapError(status int, payload []byte) error {
	var parsed errorResponse
	if err := json.Unmarshal(payload, &parsed); err == nil {
		if msg := firstNonEmpty(parsed.Message, parsed.Error); msg != "" {
			return fmt.Errorf("%w: status %d: %s", ErrCreateUser, status, msg)
		}
	}
	if msg := strings.TrimSpace(string(payload)); msg != "" {
		return fmt.Errorf("%w: status %d: %s", ErrCreateUser, status, msg)
	}
	return fmt.Errorf("%w: status %d", ErrCreateUser, status)
}

func statusClass(code int) string {
	if code >= http.StatusInternalServerError {
		return "server_error"
	}
	return "client_error"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
