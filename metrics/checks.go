package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/papermoonio/sidecar-tests-substrate/report"
)

// See the metrics initialization below for details.
const (
	checksSubsystem = "sidecar_tests"

	checksTotalMetric             = "checks_total"
	lastRunSuccessMetric          = "last_run_success"
	lastRunTimestampSecondsMetric = "last_run_timestamp_seconds"
	checkDurationSecondsMetric    = "check_duration_seconds"
	groupPassedMetric             = "group_passed"
)

func init() {
	prometheus.MustRegister(checksTotal)
	prometheus.MustRegister(lastRunSuccess)
	prometheus.MustRegister(lastRunTimestampSeconds)
	prometheus.MustRegister(checkDurationSeconds)
	prometheus.MustRegister(groupPassed)
}

var (
	// checksTotal counts every recorded check result with labels:
	//   - group: check group, e.g. "Head Block"
	//   - passed: "true" or "false"
	//   - kind: error kind of a failing result, empty when passed
	//
	// Usage:
	// - Alert on a rising rate of failing checks.
	// - Tell sidecar outages (NetworkError) from data drift (MismatchError).
	checksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: checksSubsystem,
			Name:      checksTotalMetric,
			Help:      "Total number of check results, labeled by group, outcome and error kind.",
		},
		[]string{"group", "passed", "kind"},
	)

	// lastRunSuccess is 1 when every check of the latest run passed, otherwise 0.
	lastRunSuccess = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Subsystem: checksSubsystem,
			Name:      lastRunSuccessMetric,
			Help:      "Whether the latest run passed every check (1) or not (0).",
		},
	)

	// lastRunTimestampSeconds is the unix time the latest run finished.
	// Staleness of this gauge means the monitor loop is stuck.
	lastRunTimestampSeconds = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Subsystem: checksSubsystem,
			Name:      lastRunTimestampSecondsMetric,
			Help:      "Unix timestamp of the latest finished run.",
		},
	)

	// checkDurationSeconds observes how long each check group took.
	// Buckets span fast local nodes up to the default request timeout.
	checkDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Subsystem: checksSubsystem,
			Name:      checkDurationSecondsMetric,
			Help:      "Histogram of check group durations in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2, 5, 15, 30},
		},
		[]string{"group"},
	)

	// groupPassed is 1 when every check of the group passed in the latest run.
	groupPassed = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Subsystem: checksSubsystem,
			Name:      groupPassedMetric,
			Help:      "Whether the group passed in the latest run (1) or not (0).",
		},
		[]string{"group"},
	)
)

// publishReportMetrics exports the outcome of a finished run.
func publishReportMetrics(r *report.Report) {
	for _, result := range r.Results {
		checksTotal.With(
			prometheus.Labels{
				"group":  result.Group,
				"passed": strconv.FormatBool(result.Passed),
				"kind":   string(result.Kind),
			},
		).Inc()
	}

	for _, group := range r.Groups() {
		checkDurationSeconds.With(prometheus.Labels{"group": group.Name}).Observe(group.Duration.Seconds())
		groupPassed.With(prometheus.Labels{"group": group.Name}).Set(boolToFloat(group.OK()))
	}

	lastRunSuccess.Set(boolToFloat(r.AllPassed()))
	if !r.FinishedAt.IsZero() {
		lastRunTimestampSeconds.Set(float64(r.FinishedAt.Unix()))
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
