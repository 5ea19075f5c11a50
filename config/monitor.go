package config

import (
	"fmt"
	"time"
)

/* --------------------------------- Monitor Config Defaults -------------------------------- */

const (
	defaultMetricsAddr = ":9090"
)

/* --------------------------------- Monitor Config Struct -------------------------------- */

// MonitorConfig enables monitor mode, which repeats the run on an interval
// and exposes the outcome as Prometheus metrics and a health endpoint.
type MonitorConfig struct {
	// Interval between runs. Zero runs once and exits.
	Interval time.Duration `yaml:"interval"`

	// MetricsAddr is the listen address of the /metrics and /healthz endpoints.
	MetricsAddr string `yaml:"metrics_addr"`

	// Pprof mounts the net/http/pprof handlers on the metrics server.
	Pprof bool `yaml:"pprof"`
}

// Enabled reports whether monitor mode is on.
func (c MonitorConfig) Enabled() bool {
	return c.Interval > 0
}

/* --------------------------------- Monitor Config Private Helpers -------------------------------- */

func (c *MonitorConfig) hydrateDefaults() {
	if c.MetricsAddr == "" {
		c.MetricsAddr = defaultMetricsAddr
	}
}

func (c MonitorConfig) Validate() error {
	if c.Interval < 0 {
		return fmt.Errorf("invalid monitor interval: %s", c.Interval)
	}
	return nil
}
