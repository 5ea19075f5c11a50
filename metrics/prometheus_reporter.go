// Package metrics exports the outcome of conformance runs as Prometheus metrics.
package metrics

import (
	"github.com/pokt-network/poktroll/pkg/polylog"

	"github.com/papermoonio/sidecar-tests-substrate/report"
)

// PrometheusMetricsReporter publishes finished runs to the default Prometheus registry.
type PrometheusMetricsReporter struct {
	Logger polylog.Logger
}

// Publish exports the results of a finished run.
func (pmr *PrometheusMetricsReporter) Publish(r *report.Report) {
	if r == nil {
		return
	}

	publishReportMetrics(r)

	pmr.Logger.Debug().
		Int("checks", r.Total()).
		Int("passed", r.Passed()).
		Bool("all_passed", r.AllPassed()).
		Msg("published run metrics")
}
