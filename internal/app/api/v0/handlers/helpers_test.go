package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/baglio/shop-portal/internal/backend"
	"github.com/baglio/shop-portal/internal/config"
)

// fakeSession keeps the session data in memory, no cookie round trip needed.
type fakeSession struct {
	data      SessionData
	destroyed bool
	rotations int
}

func (s *fakeSession) GetData(_ context.Context) SessionData {
	return s.data
}

func (s *fakeSession) SetData(_ context.Context, val SessionData) {
	s.data = val
}

func (s *fakeSession) DestroyData(_ context.Context) {
	s.destroyed = true
	s.data = SessionData{}
}

func (s *fakeSession) RotateId(_ context.Context) {
	s.rotations++
}

// fixedClients always resolves to the same backend client.
type fixedClients struct {
	client  *backend.Client
	dropped int
}

func (f *fixedClients) Client(_ context.Context) (*backend.Client, error) {
	return f.client, nil
}

func (f *fixedClients) Drop(_ context.Context) {
	f.dropped++
}

// fakeBus records published topics.
type fakeBus struct {
	topics []string
}

func (b *fakeBus) Publish(topic string, _ ...any) {
	b.topics = append(b.topics, topic)
}

func newTestBackendClient(t *testing.T, baseUrl string) *backend.Client {
	t.Helper()

	client, err := backend.NewClient(config.BackendConfig{
		BaseUrl:        baseUrl,
		RequestTimeout: 5 * time.Second,
		TokenPath:      "/api/csrf-token",
		IdentityPath:   "/api/creds/me",
	})
	if err != nil {
		t.Fatalf("failed to create backend client: %v", err)
	}

	return client
}
