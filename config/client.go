package config

import (
	"fmt"
	"time"
)

/* --------------------------------- Client Config Defaults -------------------------------- */

const (
	defaultRequestTimeout = 30 * time.Second

	// Some sidecar deployments sit behind a CDN that rejects requests
	// without a browser User-Agent.
	defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_11_5) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/50.0.2661.102 Safari/537.36"
)

/* --------------------------------- Client Config Struct -------------------------------- */

// ClientConfig configures both endpoint clients.
type ClientConfig struct {
	// RequestTimeout bounds every single request or RPC call.
	// Exceeding it fails the affected check with a TimeoutError.
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// InsecureSkipVerify disables TLS certificate verification on both endpoints.
	InsecureSkipVerify bool `yaml:"insecure_skip_verify"`

	UserAgent string `yaml:"user_agent"`

	// MaxResponseSize bounds sidecar response bodies and WebSocket messages, in bytes.
	// Zero keeps the transport defaults.
	MaxResponseSize int64 `yaml:"max_response_size"`
}

/* --------------------------------- Client Config Private Helpers -------------------------------- */

func (c *ClientConfig) hydrateDefaults() {
	if c.RequestTimeout == 0 {
		c.RequestTimeout = defaultRequestTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
}

func (c ClientConfig) Validate() error {
	if c.RequestTimeout < 0 {
		return fmt.Errorf("invalid request timeout: %s", c.RequestTimeout)
	}
	if c.MaxResponseSize < 0 {
		return fmt.Errorf("invalid max response size: %d", c.MaxResponseSize)
	}
	return nil
}
