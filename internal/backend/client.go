// Package backend implements the HTTP client for the external commerce
// backend. All portal reads and writes go through this package.
//
// Mutating requests carry an anti-forgery token that is fetched lazily,
// cached per backend session and replayed exactly once if the backend
// reports a token mismatch. See decorate.go and retry.go for the protocol.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"github.com/baglio/shop-portal/internal"
	"github.com/baglio/shop-portal/internal/config"
	"github.com/baglio/shop-portal/internal/domain"
)

// Metrics receives counters from the backend client. Implementations must be
// safe for concurrent use.
type Metrics interface {
	// BackendRequest is called once per completed round trip, replays included.
	BackendRequest(method string, status int)
	// TokenFetch is called once per token issuance attempt.
	TokenFetch(success bool)
	// TokenRetry is called when a request is replayed after a token mismatch.
	TokenRetry()
}

type noopMetrics struct{}

func (noopMetrics) BackendRequest(string, int) {}
func (noopMetrics) TokenFetch(bool)            {}
func (noopMetrics) TokenRetry()                {}

// Client talks to the commerce backend on behalf of a single portal session.
// It owns the backend session cookie (via its cookie jar) and the
// anti-forgery token cache. Clients must not be shared across portal
// sessions.
type Client struct {
	cfg     config.BackendConfig
	baseUrl string
	http    *http.Client
	tokens  *TokenCache
	metrics Metrics
}

type ClientOption func(*Client)

// WithMetrics attaches a metrics sink to the client.
func WithMetrics(m Metrics) ClientOption {
	return func(c *Client) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithTokenCache injects a pre-populated token cache, mainly used in tests.
func WithTokenCache(cache *TokenCache) ClientOption {
	return func(c *Client) {
		c.tokens = cache
	}
}

// WithHttpClient replaces the underlying HTTP client. The given client
// should have a cookie jar, otherwise the backend session cookie is lost
// between requests.
func WithHttpClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.http = httpClient
	}
}

// NewClient creates a backend client for a fresh, unauthenticated backend
// session.
func NewClient(cfg config.BackendConfig, opts ...ClientOption) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cookie jar: %w", err)
	}

	c := &Client{
		cfg:     cfg,
		baseUrl: cfg.BaseUrl,
		http: &http.Client{
			Jar:     jar,
			Timeout: cfg.RequestTimeout,
		},
		tokens:  NewTokenCache(),
		metrics: noopMetrics{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Tokens exposes the anti-forgery token cache of this client.
func (c *Client) Tokens() *TokenCache {
	return c.tokens
}

// Get issues a read request. Reads never carry an anti-forgery token.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a mutating POST request through the token protocol.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

// Put issues a mutating PUT request through the token protocol.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

// Delete issues a mutating DELETE request through the token protocol.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}

// Do sends a single backend request. The request is decorated with the
// anti-forgery token where the policy demands it and replayed exactly once
// on a reported token mismatch. A 401 response is mapped to
// ErrUnauthenticated without entering the retry path. Responses are decoded
// into out if out is non-nil.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	req, err := c.newRequest(ctx, method, path, payload)
	if err != nil {
		return err
	}

	c.decorate(ctx, req)

	resp, err := c.send(req, payload)
	if err != nil {
		return err
	}
	defer internal.LogClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.apiError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode backend response: %w", err)
	}

	return nil
}

// doRaw behaves like Do but sends a pre-encoded payload with the given
// content type. Used for multipart uploads.
func (c *Client) doRaw(ctx context.Context, method, path, contentType string, payload []byte, out any) error {
	req, err := c.newRequest(ctx, method, path, payload)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	c.decorate(ctx, req)

	resp, err := c.send(req, payload)
	if err != nil {
		return err
	}
	defer internal.LogClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.apiError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode backend response: %w", err)
	}

	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, payload []byte) (*http.Request, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseUrl+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request for %s: %w", method, path, err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	return req, nil
}

// apiError converts a non-2xx business response into a typed error. 404 is
// additionally mapped onto domain.ErrNotFound so callers can branch on it.
func (c *Client) apiError(resp *http.Response) error {
	apiErr := &ApiError{Status: resp.StatusCode}

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		apiErr.Code = payload.Error
		apiErr.Message = payload.Message
	}

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, apiErr.Error())
	}

	return apiErr
}

func joinQuery(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}
