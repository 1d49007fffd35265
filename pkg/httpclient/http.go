// Package httpclient performs authenticated GET requests against the catalog
// and its asset hosts.
package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/blackcoderx/lmfetch/pkg/auth"
)

// Getter is the capability every component uses to talk HTTP.
// Tests substitute it to run without network access.
type Getter interface {
	Get(ctx context.Context, url string, creds auth.Credentials) (*Response, error)
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Status     string
	Body       []byte
	Duration   time.Duration
}

// OK reports whether the status code is 200.
func (r *Response) OK() bool {
	return r.StatusCode == http.StatusOK
}

// Client is the net/http backed Getter.
type Client struct {
	client    *http.Client
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds every request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a Client. Without options requests never time out.
func New(opts ...Option) *Client {
	c := &Client{
		client: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs a GET request with basic auth and reads the whole body.
// Any HTTP status is returned as a Response; only transport failures are errors.
func (c *Client) Get(ctx context.Context, url string, creds auth.Credentials) (*Response, error) {
	startTime := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if !creds.IsZero() {
		req.Header.Set("Authorization", creds.Header())
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       body,
		Duration:   time.Since(startTime),
	}, nil
}
