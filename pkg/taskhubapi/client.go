package taskhubapi

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Client is a minimal HTTP client for the TaskHub API.
type Client struct {
	// BaseURL is the root of the service, e.g. "http://localhost:8080".
	BaseURL string

	// HTTPClient is the underlying HTTP client. Defaults to a client with a
	// 10 second timeout.
	HTTPClient *http.Client

	// Token, when set, is sent as a bearer token on every request.
	Token string
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.HTTPClient = hc }
}

// WithToken sets a bearer token sent on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.Token = token }
}

// NewClient creates a client for the TaskHub service at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Livez checks the liveness probe.
func (c *Client) Livez(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/livez", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Readyz checks the readiness probe, which includes a database ping.
func (c *Client) Readyz(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/readyz", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
