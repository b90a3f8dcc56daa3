// Package backend implements the HTTP client for the remote code-generation
// service. The service exposes two endpoints: POST /generate-springboot for
// ticket-driven code suggestions and POST /prompt for free-form chat. Both
// are blocking request/response calls with a configurable per-call deadline
// and no automatic retry.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/VishnaviKothuri/DTDC-frontend/internal/config"
)

// maxErrorBodyBytes caps how much of an error response body is retained for
// diagnostics.
const maxErrorBodyBytes = 2048

// ErrTimeout reports that a backend call did not complete within its
// configured bound.
var ErrTimeout = errors.New("backend call timed out")

// Error carries a non-2xx backend response. Body is truncated to
// maxErrorBodyBytes.
type Error struct {
	Status int
	Body   string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("backend returned HTTP %d: %s", e.Status, e.Body)
}

// Client issues the two outbound calls to the code-generation service.
// It is safe for concurrent use.
type Client struct {
	cfg  config.BackendConfig
	http *http.Client
}

// NewClient builds a Client around a pooled transport. Deadlines are applied
// per call from the config rather than on the http.Client, since the two
// calls carry different bounds.
func NewClient(cfg config.BackendConfig) *Client {
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   10 * time.Second,
					KeepAlive: 15 * time.Second,
				}).DialContext,
				ForceAttemptHTTP2:     true,
				MaxIdleConns:          100,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
	}
}

// generateRequest is the wire payload of POST /generate-springboot.
type generateRequest struct {
	Prompt   string `json:"prompt"`
	Download bool   `json:"download"`
}

// chatRequest is the wire payload of POST /prompt.
type chatRequest struct {
	Prompt string `json:"prompt"`
}

// backendResponse is the common wire shape of both endpoints.
type backendResponse struct {
	Response string `json:"response"`
}

// GenerateCode requests a code suggestion for the assembled ticket prompt.
// Download is always false: archives are never requested from this tool.
func (c *Client) GenerateCode(ctx context.Context, prompt string) (string, error) {
	return c.post(ctx, "/generate-springboot", generateRequest{Prompt: prompt, Download: false}, c.cfg.GenerateTimeout)
}

// Chat sends one free-form message and returns the assistant reply.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	return c.post(ctx, "/prompt", chatRequest{Prompt: message}, c.cfg.ChatTimeout)
}

// post performs one blocking JSON round trip. A timeout of 0 leaves the
// call bounded only by the caller's context.
func (c *Client) post(ctx context.Context, path string, payload any, timeout time.Duration) (string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %s", ErrTimeout, path)
		}
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return "", fmt.Errorf("%w: %s", ErrTimeout, path)
		}
		return "", fmt.Errorf("call %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return "", &Error{Status: resp.StatusCode, Body: string(snippet)}
	}

	var out backendResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode %s response: %w", path, err)
	}
	return out.Response, nil
}
