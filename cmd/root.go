package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/papermoonio/sidecar-tests-substrate/config"
)

// flagValues holds the raw flag values. Only flags set on the command line
// override the config file.
type flagValues struct {
	configPath string

	sidecarEndpoint    string
	substrateEndpoint  string
	logLevel           string
	numBlocks          int
	timeout            time.Duration
	blockTimeTolerance float64
	peerTolerance      float64
	maxFinalityLag     uint64
	ss58Prefix         uint16
	signerFormat       string
	accounts           []string
	checks             []string
	concurrency        int
	insecureSkipVerify bool
	userAgent          string

	reportFile string
	noColor    bool
	progress   bool
	verbose    bool

	interval    time.Duration
	metricsAddr string
	pprof       bool
}

// run executes the command line and returns the process exit code.
// SIGINT and SIGTERM cancel the run.
func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runContext(ctx, args, stdout, stderr)
}

func runContext(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	// --help returns before the run sets the exit code.
	exitCode := 0
	cmd := newRootCmd(stdout, stderr, &exitCode)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "%s %v\n", color.RedString("error:"), err)
		return 1
	}
	return exitCode
}

func newRootCmd(stdout, stderr io.Writer, exitCode *int) *cobra.Command {
	var flags flagValues

	cmd := &cobra.Command{
		Use:   "sidecar-tests",
		Short: "Validate a Substrate API Sidecar against its node",
		Long: `sidecar-tests cross-checks the responses of a Substrate API Sidecar with
direct JSON-RPC queries to the node's WebSocket endpoint: node and runtime
versions, chain properties, transaction material, network state, the head
block and the last N blocks with their extrinsics.

It exits 0 when every check passed and 1 otherwise. With --interval it keeps
running and exposes the outcome as Prometheus metrics and a /healthz endpoint.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}

			app := &app{
				cfg:     cfg,
				verbose: flags.verbose,
				stdout:  stdout,
				stderr:  stderr,
			}
			*exitCode = app.start(cmd.Context())
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.configPath, "config", "", "YAML config file; flags override its values")

	f.StringVarP(&flags.sidecarEndpoint, "sidecar-endpoint", "s", "http://localhost:8080", "Sidecar API base URL")
	f.StringVarP(&flags.substrateEndpoint, "substrate-endpoint", "r", "ws://localhost:9944", "Substrate node WebSocket URL")
	f.StringVarP(&flags.logLevel, "log-level", "l", "info", "log level: debug, info, warn, error")
	f.IntVarP(&flags.numBlocks, "num-blocks", "n", 5, "number of recent blocks to compare")
	f.DurationVar(&flags.timeout, "timeout", 30*time.Second, "per-request timeout")
	f.Float64Var(&flags.blockTimeTolerance, "block-time-tolerance", 0, "accepted block timestamp difference, in milliseconds")
	f.Float64Var(&flags.peerTolerance, "peer-tolerance", 2, "accepted peer count difference")
	f.Uint64Var(&flags.maxFinalityLag, "max-finality-lag", 10, "largest accepted distance between best and finalized block")
	f.Uint16Var(&flags.ss58Prefix, "ss58-prefix", 0, "overrides the chain's ss58Format when rendering signers")
	f.StringVar(&flags.signerFormat, "signer-format", config.SignerFormatAuto, "extrinsic signer encoding: auto, multiaddress or account20")
	f.StringArrayVar(&flags.accounts, "account", nil, "SS58 or 0x AccountId20 address whose nonce is compared; repeatable")
	f.StringSliceVar(&flags.checks, "check", nil, fmt.Sprintf("check groups to run (default all): %v", config.AllChecks))
	f.IntVar(&flags.concurrency, "concurrency", 1, "blocks compared in parallel")
	f.BoolVar(&flags.insecureSkipVerify, "insecure-skip-verify", false, "skip TLS certificate verification")
	f.StringVar(&flags.userAgent, "user-agent", "", "User-Agent sent to both endpoints")

	f.StringVar(&flags.reportFile, "report-file", "", "write the JSON report to this file")
	f.BoolVar(&flags.noColor, "no-color", false, "disable coloured output")
	f.BoolVar(&flags.progress, "progress", false, "show a progress bar while blocks are compared")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "print passing checks too")

	f.DurationVar(&flags.interval, "interval", 0, "repeat the run on this interval and serve metrics; 0 runs once")
	f.StringVar(&flags.metricsAddr, "metrics-addr", ":9090", "listen address of /metrics and /healthz in monitor mode")
	f.BoolVar(&flags.pprof, "pprof", false, "serve pprof handlers on the metrics address")

	return cmd
}

// loadConfig reads the config file, if any, and applies the flags set on
// the command line on top of it.
func loadConfig(cmd *cobra.Command, flags flagValues) (config.Config, error) {
	cfg := config.DefaultConfig()
	if flags.configPath != "" {
		var err error
		if cfg, err = config.LoadConfigFromYAML(flags.configPath); err != nil {
			return config.Config{}, fmt.Errorf("loading config %s: %w", flags.configPath, err)
		}
	}

	changed := cmd.Flags().Changed

	if changed("sidecar-endpoint") {
		cfg.SidecarEndpoint = flags.sidecarEndpoint
	}
	if changed("substrate-endpoint") {
		cfg.SubstrateEndpoint = flags.substrateEndpoint
	}
	if changed("log-level") {
		cfg.Logger.Level = flags.logLevel
	}
	if changed("num-blocks") {
		cfg.Checks.NumBlocks = flags.numBlocks
	}
	if changed("timeout") {
		cfg.Client.RequestTimeout = flags.timeout
	}
	if changed("block-time-tolerance") {
		cfg.Checks.BlockTimeTolerance = flags.blockTimeTolerance
	}
	if changed("peer-tolerance") {
		cfg.Checks.PeerTolerance = flags.peerTolerance
	}
	if changed("max-finality-lag") {
		cfg.Checks.MaxFinalityLag = flags.maxFinalityLag
	}
	if changed("ss58-prefix") {
		prefix := flags.ss58Prefix
		cfg.Checks.SS58Prefix = &prefix
	}
	if changed("signer-format") {
		cfg.Checks.SignerFormat = flags.signerFormat
	}
	if changed("account") {
		cfg.Checks.Accounts = flags.accounts
	}
	if changed("check") {
		cfg.Checks.Enabled = make([]config.CheckID, len(flags.checks))
		for i, id := range flags.checks {
			cfg.Checks.Enabled[i] = config.CheckID(id)
		}
	}
	if changed("concurrency") {
		cfg.Checks.Concurrency = flags.concurrency
	}
	if changed("insecure-skip-verify") {
		cfg.Client.InsecureSkipVerify = flags.insecureSkipVerify
	}
	if changed("user-agent") {
		cfg.Client.UserAgent = flags.userAgent
	}
	if changed("report-file") {
		cfg.Report.File = flags.reportFile
	}
	if changed("no-color") {
		cfg.Report.NoColor = flags.noColor
	}
	if changed("progress") {
		cfg.Report.Progress = flags.progress
	}
	if changed("interval") {
		cfg.Monitor.Interval = flags.interval
	}
	if changed("metrics-addr") {
		cfg.Monitor.MetricsAddr = flags.metricsAddr
	}
	if changed("pprof") {
		cfg.Monitor.Pprof = flags.pprof
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
