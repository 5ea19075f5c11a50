package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_LoadConfigFromYAML(t *testing.T) {
	polkadotPrefix := uint16(0)

	tests := []struct {
		name     string
		filePath string
		want     Config
		wantErr  error
	}{
		{
			name:     "should load valid config and hydrate unset fields",
			filePath: "./testdata/sidecar-tests.example.yaml",
			want: Config{
				SidecarEndpoint:   "https://sidecar.example.com",
				SubstrateEndpoint: "wss://rpc.example.com",
				Logger: LoggerConfig{
					Level: "warn",
				},
				Client: ClientConfig{
					RequestTimeout:     10 * time.Second,
					InsecureSkipVerify: true,
					UserAgent:          defaultUserAgent,
				},
				Checks: ChecksConfig{
					Enabled:            []CheckID{CheckHeadBlock, CheckLastBlocks, CheckFinalityLag},
					NumBlocks:          20,
					Concurrency:        4,
					BlockTimeTolerance: 6000,
					PeerTolerance:      defaultPeerTolerance,
					MaxFinalityLag:     defaultMaxFinalityLag,
					SS58Prefix:         &polkadotPrefix,
					Accounts:           []string{"5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY"},
					SignerFormat:       SignerFormatAuto,
				},
				Monitor: MonitorConfig{
					Interval:    time.Minute,
					MetricsAddr: ":9100",
					Pprof:       true,
				},
				Report: ReportConfig{
					File: "report.json",
				},
			},
		},
		{
			name:     "should reject a sidecar endpoint with a websocket scheme",
			filePath: "./testdata/invalid-endpoint.yaml",
			wantErr:  ErrInvalidSidecarEndpoint,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := LoadConfigFromYAML(test.filePath)
			if test.wantErr != nil {
				require.ErrorIs(t, err, test.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, test.want, got)
		})
	}
}

func Test_LoadConfigFromYAML_ExplicitZero(t *testing.T) {
	config, err := LoadConfigFromYAML("./testdata/zero-tolerances.yaml")
	require.NoError(t, err)

	require.Zero(t, config.Checks.PeerTolerance)
	require.Zero(t, config.Checks.MaxFinalityLag)
	require.Equal(t, "account20", config.Checks.SignerFormat)
	require.Equal(t, []string{"0xf24ff3a9cf04c71dbc94d0b566f7a27b94566cac"}, config.Checks.Accounts)

	// Keys absent from the file still get their defaults.
	require.Equal(t, defaultNumBlocks, config.Checks.NumBlocks)
	require.Equal(t, defaultSidecarEndpoint, config.SidecarEndpoint)
}

func Test_LoadConfigFromYAML_Errors(t *testing.T) {
	t.Run("unknown check", func(t *testing.T) {
		_, err := LoadConfigFromYAML("./testdata/unknown-check.yaml")
		require.ErrorContains(t, err, `unknown check "pallet_storage"`)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfigFromYAML("./testdata/does-not-exist.yaml")
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("checks_config: [unclosed"), 0o600))

		_, err := LoadConfigFromYAML(path)
		require.Error(t, err)
	})
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	require.NoError(t, config.Validate())
	require.Equal(t, "http://localhost:8080", config.SidecarEndpoint)
	require.Equal(t, "ws://localhost:9944", config.SubstrateEndpoint)
	require.Equal(t, "info", config.Logger.Level)
	require.Equal(t, 30*time.Second, config.Client.RequestTimeout)
	require.Equal(t, 5, config.Checks.NumBlocks)
	require.Equal(t, 1, config.Checks.Concurrency)
	require.Zero(t, config.Checks.BlockTimeTolerance)
	require.Equal(t, float64(2), config.Checks.PeerTolerance)
	require.Equal(t, uint64(10), config.Checks.MaxFinalityLag)
	require.Equal(t, SignerFormatAuto, config.Checks.SignerFormat)
	require.Nil(t, config.Checks.SS58Prefix)
	require.False(t, config.Monitor.Enabled())

	for _, id := range AllChecks {
		require.True(t, config.Checks.IsEnabled(id), id)
	}
}

func TestConfig_Validate(t *testing.T) {
	tooLargePrefix := uint16(20000)

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "http substrate endpoint", mutate: func(c *Config) { c.SubstrateEndpoint = "http://localhost:9944" }, wantErr: true},
		{name: "invalid log level", mutate: func(c *Config) { c.Logger.Level = "verbose" }, wantErr: true},
		{name: "upper case log level", mutate: func(c *Config) { c.Logger.Level = "DEBUG" }},
		{name: "zero concurrency", mutate: func(c *Config) { c.Checks.Concurrency = 0 }, wantErr: true},
		{name: "negative tolerance", mutate: func(c *Config) { c.Checks.BlockTimeTolerance = -1 }, wantErr: true},
		{name: "ss58 prefix out of range", mutate: func(c *Config) { c.Checks.SS58Prefix = &tooLargePrefix }, wantErr: true},
		{name: "invalid account", mutate: func(c *Config) { c.Checks.Accounts = []string{"not-an-address"} }, wantErr: true},
		{name: "account20 address", mutate: func(c *Config) { c.Checks.Accounts = []string{"0xf24ff3a9cf04c71dbc94d0b566f7a27b94566cac"} }},
		{name: "short hex account", mutate: func(c *Config) { c.Checks.Accounts = []string{"0xf24f"} }, wantErr: true},
		{name: "unknown signer format", mutate: func(c *Config) { c.Checks.SignerFormat = "ethereum" }, wantErr: true},
		{name: "negative interval", mutate: func(c *Config) { c.Monitor.Interval = -time.Second }, wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			config := DefaultConfig()
			test.mutate(&config)

			err := config.Validate()
			if test.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestChecksConfig_IsEnabled(t *testing.T) {
	checks := ChecksConfig{Enabled: []CheckID{CheckHeadBlock}}

	require.True(t, checks.IsEnabled(CheckHeadBlock))
	require.False(t, checks.IsEnabled(CheckLastBlocks))
}
