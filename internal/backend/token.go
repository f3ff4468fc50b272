package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/baglio/shop-portal/internal"
)

// csrfHeaderName is the header that carries the anti-forgery token on
// mutating requests.
const csrfHeaderName = "X-CSRF-Token"

// TokenCache is a single-slot cache for the current anti-forgery token of a
// backend session. At most one value is cached at a time. The cache never
// expires a token on its own, the backend is the source of truth for
// validity; consumers invalidate it through Clear on a detected mismatch or
// on logout.
//
// Two concurrent refresh sequences may both run to completion and both call
// Set, the last writer wins. This is fine, a token is not invalidated by
// being overwritten with another valid one.
type TokenCache struct {
	mu    sync.Mutex
	value string
	valid bool
}

func NewTokenCache() *TokenCache {
	return &TokenCache{}
}

// Get returns the cached token value without side effects.
func (c *TokenCache) Get() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.value, c.valid
}

// Set replaces the cached token value.
func (c *TokenCache) Set(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.value = token
	c.valid = true
}

// Clear invalidates the cache. The next mutating request will fetch a fresh token.
func (c *TokenCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.value = ""
	c.valid = false
}

// FetchToken retrieves a fresh anti-forgery token from the backend token
// issuance endpoint and stores it in the token cache. On failure the cache
// is left unchanged, it may still hold a previous, possibly stale, value.
func (c *Client) FetchToken(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseUrl+c.cfg.TokenPath, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build token request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.TokenFetch(false)
		return "", &NetworkError{Err: err}
	}
	defer internal.LogClose(resp.Body)

	if resp.StatusCode == http.StatusUnauthorized {
		c.metrics.TokenFetch(false)
		return "", ErrUnauthenticated
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.TokenFetch(false)
		return "", &TokenFetchError{Status: resp.StatusCode}
	}

	var payload struct {
		CsrfToken string `json:"csrfToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.metrics.TokenFetch(false)
		return "", fmt.Errorf("failed to parse token response: %w", err)
	}

	c.tokens.Set(payload.CsrfToken)
	c.metrics.TokenFetch(true)

	return payload.CsrfToken, nil
}
