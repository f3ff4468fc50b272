// Package health watches the commerce backend. A portal that cannot reach
// its backend serves nothing useful, so the probe results feed the metrics
// endpoint where alerting can pick them up.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	probing "github.com/prometheus-community/pro-bing"

	"github.com/baglio/shop-portal/internal"
	"github.com/baglio/shop-portal/internal/config"
)

// ProbeSink receives backend reachability results.
type ProbeSink interface {
	// UpdateProbeMetrics records the outcome of a backend HTTP health probe.
	UpdateProbeMetrics(up bool, duration time.Duration)
	// UpdatePingMetrics records the outcome of a backend ICMP probe.
	UpdatePingMetrics(pingable bool)
}

// Monitor periodically probes the backend health endpoint and, if enabled,
// pings the backend host.
type Monitor struct {
	cfg  *config.Config
	http *http.Client
	sink ProbeSink

	probeUrl string
	pingHost string
}

func NewMonitor(cfg *config.Config, sink ProbeSink) (*Monitor, error) {
	backendUrl, err := url.Parse(cfg.Backend.BaseUrl)
	if err != nil {
		return nil, err
	}

	return &Monitor{
		cfg: cfg,
		http: &http.Client{
			Timeout: cfg.Backend.RequestTimeout,
		},
		sink: sink,

		probeUrl: cfg.Backend.BaseUrl + cfg.Statistics.HealthPath,
		pingHost: backendUrl.Hostname(),
	}, nil
}

func (m *Monitor) StartBackgroundJobs(ctx context.Context) {
	go m.probeLoop(ctx)

	slog.Debug("started backend health monitor", "url", m.probeUrl,
		"interval", m.cfg.Statistics.CheckInterval)
}

func (m *Monitor) probeLoop(ctx context.Context) {
	ticker := time.NewTicker(m.cfg.Statistics.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return // program stopped
		case <-ticker.C:
			up, duration := m.probeHealth(ctx)
			m.sink.UpdateProbeMetrics(up, duration)
			if !up {
				slog.Warn("backend health probe failed", "url", m.probeUrl)
			}

			if m.cfg.Statistics.UsePingChecks {
				m.sink.UpdatePingMetrics(m.isBackendPingable(ctx))
			}
		}
	}
}

func (m *Monitor) probeHealth(ctx context.Context) (bool, time.Duration) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.probeUrl, nil)
	if err != nil {
		return false, 0
	}

	start := time.Now()
	resp, err := m.http.Do(req)
	duration := time.Since(start)
	if err != nil {
		return false, duration
	}
	defer internal.LogClose(resp.Body)

	return resp.StatusCode >= 200 && resp.StatusCode <= 299, duration
}

func (m *Monitor) isBackendPingable(ctx context.Context) bool {
	pinger, err := probing.NewPinger(m.pingHost)
	if err != nil {
		slog.Debug("failed to instantiate pinger", "host", m.pingHost, "error", err)
		return false
	}

	checkCount := 1
	pinger.SetPrivileged(!m.cfg.Statistics.PingUnprivileged)
	pinger.Count = checkCount
	pinger.Timeout = 2 * time.Second
	err = pinger.RunWithContext(ctx) // Blocks until finished.
	if err != nil {
		slog.Debug("pinger exited unexpectedly", "host", m.pingHost, "error", err)
		return false
	}
	stats := pinger.Statistics()
	return stats.PacketsRecv == checkCount
}
