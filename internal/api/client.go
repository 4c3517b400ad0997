// Package api implements the typed HTTP client for the HomeSeek listing
// API: one base client plus the auth, profile, and query call groups.
// Functions here map a domain operation to exactly one request and decode
// the response body; they apply no retries and no fallback — that is the
// stores' job.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// Error is returned for any response outside the 2xx range. Message holds
// the most specific text the server provided.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api: status %d", e.StatusCode)
}

// errorBody is the shape Spring-style error responses use.
type errorBody struct {
	Message string `json:"message"`
	Err     string `json:"error"`
}

// Client issues requests against the listing API.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
	breaker *gobreaker.CircuitBreaker[*http.Response]
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client (tests install fake
// transports this way).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger attaches a structured logger for request-level warnings.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithBreaker wraps request execution in a circuit breaker so a dead
// backend trips fast instead of stacking timeouts.
func WithBreaker() Option {
	return func(c *Client) {
		c.breaker = gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
			Name:    "homeseek-api",
			Timeout: 30 * time.Second,
		})
	}
}

// NewClient returns a Client for the given base URL (including the /api
// prefix). The default http.Client carries a 10 second timeout.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do builds and executes one request. body (if non-nil) is marshalled as
// JSON; out (if non-nil) receives the decoded response body. A non-2xx
// status or transport failure yields an error and leaves out untouched.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.execute(req)
	if err != nil {
		c.log.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) execute(req *http.Request) (*http.Response, error) {
	if c.breaker == nil {
		return c.http.Do(req)
	}
	return c.breaker.Execute(func() (*http.Response, error) {
		return c.http.Do(req)
	})
}

func (c *Client) decodeError(resp *http.Response) error {
	apiErr := &Error{StatusCode: resp.StatusCode}
	var eb errorBody
	if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil {
		if eb.Message != "" {
			apiErr.Message = eb.Message
		} else if eb.Err != "" {
			apiErr.Message = eb.Err
		}
	}
	return apiErr
}
