package main

import (
	"context"
	"time"

	"github.com/pokt-network/poktroll/pkg/polylog"

	"github.com/papermoonio/sidecar-tests-substrate/health"
	"github.com/papermoonio/sidecar-tests-substrate/metrics"
	"github.com/papermoonio/sidecar-tests-substrate/report"
)

// monitor repeats the run on an interval and exposes the outcome
// through the metrics server until ctx is cancelled.
func (a *app) monitor(ctx context.Context) int {
	reporter := &metrics.PrometheusMetricsReporter{Logger: a.logger}
	// Runs are sequential, so a run not recorded for three intervals is stuck.
	lastRun := &health.LastRun{MaxAge: 3 * a.cfg.Monitor.Interval}
	healthChecker := &health.Checker{
		Logger:     a.logger,
		Components: []health.Check{lastRun},
	}

	addr, err := reporter.ServeMetrics(ctx, metrics.ServerConfig{
		Addr:        a.cfg.Monitor.MetricsAddr,
		Healthz:     healthChecker.HealthzHandler,
		EnablePprof: a.cfg.Monitor.Pprof,
	})
	if err != nil {
		a.logger.Error().Err(err).Str("addr", a.cfg.Monitor.MetricsAddr).Msg("failed to start metrics server")
		return 1
	}

	m := &monitorLoop{
		logger:   a.logger.With("metrics_addr", addr),
		interval: a.cfg.Monitor.Interval,
		runOnce:  a.runOnce,
		reporter: reporter,
		lastRun:  lastRun,
	}
	m.loop(ctx)
	return 0
}

type monitorLoop struct {
	logger   polylog.Logger
	interval time.Duration
	runOnce  func(context.Context) *report.Report
	reporter *metrics.PrometheusMetricsReporter
	lastRun  *health.LastRun
}

// loop runs immediately, then on every tick. A run in progress when ctx is
// cancelled completes before loop returns, but its outcome is not published.
func (m *monitorLoop) loop(ctx context.Context) {
	m.logger.Info().Str("interval", m.interval.String()).Msg("monitor mode started")

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		m.runAndPublish(ctx)

		select {
		case <-ctx.Done():
			m.logger.Info().Msg("monitor mode stopped")
			return
		case <-ticker.C:
		}
	}
}

func (m *monitorLoop) runAndPublish(ctx context.Context) {
	rep := m.runOnce(ctx)
	if ctx.Err() != nil {
		return
	}

	m.reporter.Publish(rep)
	m.lastRun.Record(rep.AllPassed(), rep.FinishedAt)

	m.logger.Info().
		Int("checks", rep.Total()).
		Int("passed", rep.Passed()).
		Bool("all_passed", rep.AllPassed()).
		Msg("run finished")
}
