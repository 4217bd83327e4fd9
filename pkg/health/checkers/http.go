// Package checkers holds reusable health.Check implementations.
package checkers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPChecker reports an endpoint healthy when it answers with any status
// below 500. Upstream APIs commonly answer an unauthenticated probe with 401
// or 404, which still proves they are reachable.
type HTTPChecker struct {
	name   string
	url    string
	method string
	client *http.Client
}

// HTTPOption configures an HTTPChecker.
type HTTPOption func(*HTTPChecker)

// WithClient replaces the default client, which has a 10 second timeout.
func WithClient(c *http.Client) HTTPOption {
	return func(h *HTTPChecker) { h.client = c }
}

// WithMethod sets the probe method. GET is the default.
func WithMethod(method string) HTTPOption {
	return func(h *HTTPChecker) { h.method = method }
}

// NewHTTPChecker creates a checker named name probing url. An empty name falls back to the URL.
func NewHTTPChecker(name, url string, opts ...HTTPOption) *HTTPChecker {
	if name == "" {
		name = url
	}
	h := &HTTPChecker{
		name:   name,
		url:    url,
		method: http.MethodGet,
		client: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Name returns the name of this health check.
func (h *HTTPChecker) Name() string {
	return h.name
}

// Check performs the probe request.
func (h *HTTPChecker) Check(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, h.method, h.url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("unhealthy status code: %d", resp.StatusCode)
	}
	return nil
}
