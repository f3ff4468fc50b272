package backend

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/baglio/shop-portal/internal/config"
)

// Registry hands out one backend client per portal session. Each client
// owns its backend session cookie and token cache, so two shoppers never
// share credentials. Entries live in memory only; like the token itself
// they do not survive a portal restart, the shopper simply logs in again.
type Registry struct {
	cfg     config.BackendConfig
	metrics Metrics

	mu      sync.Mutex
	clients map[string]*registryEntry
}

type registryEntry struct {
	client   *Client
	lastSeen time.Time
}

func NewRegistry(cfg config.BackendConfig, metrics Metrics) *Registry {
	if metrics == nil {
		metrics = noopMetrics{}
	}

	return &Registry{
		cfg:     cfg,
		metrics: metrics,
		clients: make(map[string]*registryEntry),
	}
}

// Client returns the backend client bound to the given portal session,
// creating it on first use.
func (r *Registry) Client(sessionId string) (*Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.clients[sessionId]; ok {
		entry.lastSeen = time.Now()
		return entry.client, nil
	}

	client, err := NewClient(r.cfg, WithMetrics(r.metrics))
	if err != nil {
		return nil, err
	}

	r.clients[sessionId] = &registryEntry{
		client:   client,
		lastSeen: time.Now(),
	}

	return client, nil
}

// Drop removes the client for the given portal session, used on logout and
// session destruction.
func (r *Registry) Drop(sessionId string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.clients, sessionId)
}

// StartBackgroundJobs launches the idle-client eviction loop. The loop
// stops once the given context is cancelled.
func (r *Registry) StartBackgroundJobs(ctx context.Context) {
	go r.evictionLoop(ctx)
}

func (r *Registry) evictionLoop(ctx context.Context) {
	ttl := r.cfg.SessionTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	ticker := time.NewTicker(ttl / 4)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.evictIdle(ttl)
		}
	}
}

func (r *Registry) evictIdle(ttl time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := time.Now().Add(-ttl)
	evicted := 0
	for sessionId, entry := range r.clients {
		if entry.lastSeen.Before(cutoff) {
			delete(r.clients, sessionId)
			evicted++
		}
	}

	if evicted > 0 {
		slog.Debug("evicted idle backend clients", "count", evicted)
	}
}
