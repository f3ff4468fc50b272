package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// BackendConfig describes the external commerce backend that holds all
// business state (items, carts, orders, users). The portal never talks to a
// database directly, every read and write goes through this API.
type BackendConfig struct {
	// BaseUrl is the origin of the commerce backend, e.g. https://api.baglio.example.
	BaseUrl string `yaml:"base_url" validate:"required,url"`
	// RequestTimeout bounds a single backend round trip, retries excluded.
	RequestTimeout time.Duration `yaml:"request_timeout"`
	// TokenPath is the issuance endpoint for anti-forgery tokens.
	TokenPath string `yaml:"token_path"`
	// IdentityPath is the "who am I" endpoint used by the session guard.
	IdentityPath string `yaml:"identity_path"`
	// SessionTTL is the idle lifetime of a per-user backend client. Clients
	// that have not been used for this long are evicted from the registry.
	SessionTTL time.Duration `yaml:"session_ttl"`
}

func defaultBackendConfig() BackendConfig {
	return BackendConfig{
		BaseUrl:        "https://localhost:9443",
		RequestTimeout: 30 * time.Second,
		TokenPath:      "/api/csrf-token",
		IdentityPath:   "/api/creds/me",
		SessionTTL:     24 * time.Hour,
	}
}

// Validate checks the backend configuration for errors.
func (c *BackendConfig) Validate() error {
	c.BaseUrl = strings.TrimRight(c.BaseUrl, "/")

	u, err := url.Parse(c.BaseUrl)
	if err != nil {
		return fmt.Errorf("invalid backend base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend base_url must be a http(s) origin, got %q", c.BaseUrl)
	}

	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 30 * time.Second
	}
	if c.TokenPath == "" {
		c.TokenPath = "/api/csrf-token"
	}
	if c.IdentityPath == "" {
		c.IdentityPath = "/api/creds/me"
	}

	return nil
}
