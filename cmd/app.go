package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cheggaaa/pb/v3"
	"github.com/pokt-network/poktroll/pkg/polylog"

	"github.com/papermoonio/sidecar-tests-substrate/checker"
	"github.com/papermoonio/sidecar-tests-substrate/config"
	"github.com/papermoonio/sidecar-tests-substrate/log"
	httpnet "github.com/papermoonio/sidecar-tests-substrate/network/http"
	"github.com/papermoonio/sidecar-tests-substrate/report"
	"github.com/papermoonio/sidecar-tests-substrate/sidecar"
	"github.com/papermoonio/sidecar-tests-substrate/substrate"
)

// app wires the clients, the runner and the report for one invocation.
type app struct {
	cfg     config.Config
	verbose bool

	stdout io.Writer
	stderr io.Writer

	logger polylog.Logger
}

// start runs once, or loops in monitor mode, and returns the exit code.
func (a *app) start(ctx context.Context) int {
	a.logger = log.NewLoggerWithOutput(a.cfg.Logger.Level, a.stderr)

	a.logger.Info().
		Str("sidecar_endpoint", a.cfg.SidecarEndpoint).
		Str("substrate_endpoint", a.cfg.SubstrateEndpoint).
		Int("num_blocks", a.cfg.Checks.NumBlocks).
		Msg("starting sidecar conformance checks")

	if a.cfg.Monitor.Enabled() {
		return a.monitor(ctx)
	}

	return a.runOnce(ctx).ExitCode()
}

// runOnce executes every enabled check group and writes the report.
// It never fails: unreachable endpoints surface as failed checks.
func (a *app) runOnce(ctx context.Context) *report.Report {
	rep := report.New(a.cfg.SidecarEndpoint, a.cfg.SubstrateEndpoint)

	chain, closeChain := a.dialChain(ctx)
	defer closeChain()

	runner := &checker.Runner{
		Logger:         a.logger,
		Sidecar:        a.newSidecarClient(),
		Chain:          chain,
		Config:         a.cfg.Checks,
		RequestTimeout: a.cfg.Client.RequestTimeout,
	}

	var bar *pb.ProgressBar
	if a.cfg.Report.Progress && a.cfg.Checks.IsEnabled(config.CheckLastBlocks) {
		if bar = newProgressBar(a.stderr, a.cfg.Checks.NumBlocks); bar != nil {
			runner.OnBlockChecked = func() { bar.Increment() }
		}
	}

	runner.Run(ctx, rep)
	rep.Finish()

	if bar != nil {
		bar.Finish()
	}

	rep.Print(a.stdout, report.PrintOptions{
		Color:   !a.cfg.Report.NoColor && isTerminal(a.stdout),
		Verbose: a.verbose,
	})

	if a.cfg.Report.File != "" {
		if err := a.writeReportFile(rep); err != nil {
			a.logger.Error().Err(err).Str("file", a.cfg.Report.File).Msg("failed to write report file")
		}
	}

	return rep
}

func (a *app) newSidecarClient() *sidecar.Client {
	httpClient := httpnet.NewClient(httpnet.ClientConfig{
		Timeout:            a.cfg.Client.RequestTimeout,
		InsecureSkipVerify: a.cfg.Client.InsecureSkipVerify,
		MaxBodySize:        a.cfg.Client.MaxResponseSize,
	})
	return sidecar.NewClient(a.logger, a.cfg.SidecarEndpoint, a.cfg.Client.UserAgent, httpClient)
}

// dialChain connects to the node. A failed dial yields a ChainAPI whose
// every call fails with the dial error, so each dependent check reports it.
func (a *app) dialChain(ctx context.Context) (checker.ChainAPI, func()) {
	dialCtx := ctx
	if a.cfg.Client.RequestTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, a.cfg.Client.RequestTimeout)
		defer cancel()
	}

	client, err := substrate.Dial(dialCtx, a.logger, substrate.Config{
		Endpoint:           a.cfg.SubstrateEndpoint,
		InsecureSkipVerify: a.cfg.Client.InsecureSkipVerify,
		UserAgent:          a.cfg.Client.UserAgent,
		ReadLimit:          a.cfg.Client.MaxResponseSize,
	})
	if err != nil {
		a.logger.Error().Err(err).Str("endpoint", a.cfg.SubstrateEndpoint).Msg("failed to connect to node")
		return checker.UnavailableChain(err), func() {}
	}

	return client, func() {
		if err := client.Close(); err != nil {
			a.logger.Debug().Err(err).Msg("closing node connection")
		}
	}
}

func (a *app) writeReportFile(rep *report.Report) error {
	f, err := os.Create(a.cfg.Report.File)
	if err != nil {
		return err
	}
	if err := rep.WriteJSON(f); err != nil {
		f.Close()
		return fmt.Errorf("encoding report: %w", err)
	}
	return f.Close()
}
