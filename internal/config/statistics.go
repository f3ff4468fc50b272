package config

import "time"

// StatisticsConfig controls the metrics endpoint and the backend
// reachability monitor.
type StatisticsConfig struct {
	// ListeningAddress is the address and port for the prometheus exporter.
	ListeningAddress string `yaml:"listening_address"`
	// UsePingChecks enables ICMP ping probes against the backend host in
	// addition to the HTTP health probe. Requires either root privileges or
	// unprivileged ping support, see PingUnprivileged.
	UsePingChecks bool `yaml:"use_ping_checks"`
	// PingUnprivileged uses UDP based pings instead of raw sockets.
	PingUnprivileged bool `yaml:"ping_unprivileged"`
	// CheckInterval is the delay between two backend health probes.
	CheckInterval time.Duration `yaml:"check_interval"`
	// HealthPath is the backend endpoint used for the HTTP health probe.
	HealthPath string `yaml:"health_path"`
}

func defaultStatisticsConfig() StatisticsConfig {
	return StatisticsConfig{
		ListeningAddress: ":8787",
		UsePingChecks:    false,
		PingUnprivileged: true,
		CheckInterval:    1 * time.Minute,
		HealthPath:       "/api/health",
	}
}
