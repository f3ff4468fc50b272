package backend

import (
	"testing"
	"time"

	"github.com/baglio/shop-portal/internal/config"
)

func newTestClient(t *testing.T, baseUrl string, opts ...ClientOption) *Client {
	t.Helper()

	cfg := config.BackendConfig{
		BaseUrl:        baseUrl,
		RequestTimeout: 5 * time.Second,
		TokenPath:      "/api/csrf-token",
		IdentityPath:   "/api/creds/me",
	}

	client, err := NewClient(cfg, opts...)
	if err != nil {
		t.Fatalf("failed to create test client: %v", err)
	}

	return client
}
