package adapters

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/baglio/shop-portal/internal"
	"github.com/baglio/shop-portal/internal/config"
)

// MetricsServer exposes portal counters on the statistics listener. It
// implements backend.Metrics for the backend client and receives backend
// reachability results from the health monitor.
type MetricsServer struct {
	*http.Server

	backendRequestsTotal *prometheus.CounterVec
	tokenFetchesTotal    *prometheus.CounterVec
	tokenRetriesTotal    prometheus.Counter

	backendUp           prometheus.Gauge
	backendProbeSeconds prometheus.Gauge
	backendPingable     prometheus.Gauge
}

// NewMetricsServer returns a new prometheus server
func NewMetricsServer(cfg *config.Config) *MetricsServer {
	reg := prometheus.NewRegistry()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	return &MetricsServer{
		Server: &http.Server{
			Addr:    cfg.Statistics.ListeningAddress,
			Handler: mux,
		},

		backendRequestsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "shop_portal_backend_requests_total",
				Help: "Completed backend round trips, replays included.",
			}, []string{"method", "status"},
		),
		tokenFetchesTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "shop_portal_token_fetches_total",
				Help: "Anti-forgery token issuance attempts.",
			}, []string{"result"},
		),
		tokenRetriesTotal: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "shop_portal_token_retries_total",
				Help: "Requests replayed after a token mismatch.",
			},
		),

		backendUp: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "shop_portal_backend_up",
				Help: "Backend HTTP health probe state (boolean: 1/0).",
			},
		),
		backendProbeSeconds: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "shop_portal_backend_probe_seconds",
				Help: "Duration of the last backend health probe.",
			},
		),
		backendPingable: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "shop_portal_backend_pingable",
				Help: "Backend host ICMP reachability (boolean: 1/0).",
			},
		),
	}
}

// Run starts the metrics server
func (m *MetricsServer) Run(ctx context.Context) {
	// Run the metrics server in a goroutine
	go func() {
		if err := m.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("metrics service exited", "address", m.Addr, "error", err)
		}
	}()

	slog.Info("started metrics service", "address", m.Addr)

	// Wait for the context to be done
	<-ctx.Done()

	// Create a context with timeout for the shutdown process
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Attempt to gracefully shutdown the metrics server
	if err := m.Shutdown(shutdownCtx); err != nil {
		slog.Error("metrics service shutdown failed", "address", m.Addr, "error", err)
	} else {
		slog.Info("metrics service shutdown gracefully", "address", m.Addr)
	}
}

// BackendRequest implements backend.Metrics.
func (m *MetricsServer) BackendRequest(method string, status int) {
	m.backendRequestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

// TokenFetch implements backend.Metrics.
func (m *MetricsServer) TokenFetch(success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	m.tokenFetchesTotal.WithLabelValues(result).Inc()
}

// TokenRetry implements backend.Metrics.
func (m *MetricsServer) TokenRetry() {
	m.tokenRetriesTotal.Inc()
}

// UpdateProbeMetrics records the outcome of a backend HTTP health probe.
func (m *MetricsServer) UpdateProbeMetrics(up bool, duration time.Duration) {
	m.backendUp.Set(internal.BoolToFloat64(up))
	m.backendProbeSeconds.Set(duration.Seconds())
}

// UpdatePingMetrics records the outcome of a backend ICMP probe.
func (m *MetricsServer) UpdatePingMetrics(pingable bool) {
	m.backendPingable.Set(internal.BoolToFloat64(pingable))
}
