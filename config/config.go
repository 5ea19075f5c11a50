package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/papermoonio/sidecar-tests-substrate/config/utils"
)

/* --------------------------------- Config Defaults -------------------------------- */

const (
	defaultSidecarEndpoint   = "http://localhost:8080"
	defaultSubstrateEndpoint = "ws://localhost:9944"
)

/* --------------------------------- Config Struct -------------------------------- */

// Config is the top level struct parsed from a YAML config file.
// Command line flags are applied on top of it; see cmd.
//
// The endpoints are read once at startup and passed explicitly to the
// clients. Nothing in the module reads configuration from globals.
type Config struct {
	// SidecarEndpoint is the base URL of the Substrate API Sidecar, e.g. http://localhost:8080
	SidecarEndpoint string `yaml:"sidecar_endpoint"`

	// SubstrateEndpoint is the node's JSON-RPC WebSocket URL, e.g. ws://localhost:9944
	SubstrateEndpoint string `yaml:"substrate_endpoint"`

	Logger  LoggerConfig  `yaml:"logger_config"`
	Client  ClientConfig  `yaml:"client_config"`
	Checks  ChecksConfig  `yaml:"checks_config"`
	Monitor MonitorConfig `yaml:"monitor_config"`
	Report  ReportConfig  `yaml:"report_config"`
}

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() Config {
	config := Config{Checks: defaultChecksConfig()}
	config.hydrateDefaults()
	return config
}

// LoadConfigFromYAML reads a YAML configuration file from the specified path
// and unmarshals its content into a Config instance, with defaults applied
// to every unset field. The result is validated.
func LoadConfigFromYAML(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	// Keys absent from the file keep their defaults.
	config := DefaultConfig()
	if err = yaml.Unmarshal(data, &config); err != nil {
		return Config{}, err
	}

	config.hydrateDefaults()

	return config, config.Validate()
}

/* --------------------------------- Config Hydration Helpers -------------------------------- */

func (c *Config) hydrateDefaults() {
	if c.SidecarEndpoint == "" {
		c.SidecarEndpoint = defaultSidecarEndpoint
	}
	if c.SubstrateEndpoint == "" {
		c.SubstrateEndpoint = defaultSubstrateEndpoint
	}

	c.Logger.hydrateLoggerDefaults()
	c.Client.hydrateDefaults()
	c.Checks.hydrateDefaults()
	c.Monitor.hydrateDefaults()
}

/* --------------------------------- Config Validation Helpers -------------------------------- */

var (
	ErrInvalidSidecarEndpoint   = errors.New("invalid sidecar endpoint: must be an http or https URL")
	ErrInvalidSubstrateEndpoint = errors.New("invalid substrate endpoint: must be a ws or wss URL")
)

// Validate checks the configuration after defaults and flag overrides are applied.
func (c Config) Validate() error {
	if !utils.IsValidURL(c.SidecarEndpoint, "http", "https") {
		return fmt.Errorf("%w: %q", ErrInvalidSidecarEndpoint, c.SidecarEndpoint)
	}
	if !utils.IsValidURL(c.SubstrateEndpoint, "ws", "wss") {
		return fmt.Errorf("%w: %q", ErrInvalidSubstrateEndpoint, c.SubstrateEndpoint)
	}

	if err := c.Logger.Validate(); err != nil {
		return err
	}
	if err := c.Client.Validate(); err != nil {
		return err
	}
	if err := c.Checks.Validate(); err != nil {
		return err
	}
	return c.Monitor.Validate()
}
