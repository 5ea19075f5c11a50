package metrics

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/papermoonio/sidecar-tests-substrate/check"
	"github.com/papermoonio/sidecar-tests-substrate/log"
	"github.com/papermoonio/sidecar-tests-substrate/report"
)

func newTestReport(finished time.Time) *report.Report {
	r := report.New("http://sidecar", "ws://node")
	r.Add(
		check.Compare("number", 100, 100, check.Exact()).WithGroup("Metrics Head"),
		check.Compare("hash", "0xabc", "0xdef", check.Exact()).WithGroup("Metrics Head"),
		check.FromError("clientVersion", check.ErrNetwork).WithGroup("Metrics Version"),
	)
	r.FinishedAt = finished
	return r
}

func Test_Publish(t *testing.T) {
	c := require.New(t)

	passedHead := checksTotal.With(prometheus.Labels{"group": "Metrics Head", "passed": "true", "kind": ""})
	mismatchHead := checksTotal.With(prometheus.Labels{"group": "Metrics Head", "passed": "false", "kind": "MismatchError"})
	networkVersion := checksTotal.With(prometheus.Labels{"group": "Metrics Version", "passed": "false", "kind": "NetworkError"})

	beforePassed := testutil.ToFloat64(passedHead)
	beforeMismatch := testutil.ToFloat64(mismatchHead)
	beforeNetwork := testutil.ToFloat64(networkVersion)

	finished := time.Unix(1700000000, 0)
	reporter := &PrometheusMetricsReporter{Logger: log.NewLoggerWithOutput("error", io.Discard)}
	reporter.Publish(newTestReport(finished))

	c.Equal(beforePassed+1, testutil.ToFloat64(passedHead))
	c.Equal(beforeMismatch+1, testutil.ToFloat64(mismatchHead))
	c.Equal(beforeNetwork+1, testutil.ToFloat64(networkVersion))
	c.Equal(float64(0), testutil.ToFloat64(lastRunSuccess))
	c.Equal(float64(1700000000), testutil.ToFloat64(lastRunTimestampSeconds))
	c.Equal(float64(0), testutil.ToFloat64(groupPassed.With(prometheus.Labels{"group": "Metrics Head"})))

	passing := report.New("http://sidecar", "ws://node")
	passing.Add(check.Compare("number", 1, 1, check.Exact()).WithGroup("Metrics Passing"))
	passing.FinishedAt = finished.Add(time.Minute)
	reporter.Publish(passing)

	c.Equal(float64(1), testutil.ToFloat64(lastRunSuccess))
	c.Equal(float64(1), testutil.ToFloat64(groupPassed.With(prometheus.Labels{"group": "Metrics Passing"})))
	c.Equal(float64(1700000060), testutil.ToFloat64(lastRunTimestampSeconds))

	// nil reports are ignored
	reporter.Publish(nil)
}

func Test_ServeMetrics(t *testing.T) {
	c := require.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reporter := &PrometheusMetricsReporter{Logger: log.NewLoggerWithOutput("error", io.Discard)}
	addr, err := reporter.ServeMetrics(ctx, ServerConfig{
		Addr: "127.0.0.1:0",
		Healthz: func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		},
	})
	c.NoError(err)

	resp, err := http.Get("http://" + addr + endpointMetrics)
	c.NoError(err)
	body, err := io.ReadAll(resp.Body)
	c.NoError(err)
	c.NoError(resp.Body.Close())
	c.Equal(http.StatusOK, resp.StatusCode)
	c.True(strings.Contains(string(body), "sidecar_tests_last_run_success"))

	resp, err = http.Get("http://" + addr + endpointHealthz)
	c.NoError(err)
	c.NoError(resp.Body.Close())
	c.Equal(http.StatusServiceUnavailable, resp.StatusCode)

	resp, err = http.Get("http://" + addr + "/debug/pprof/")
	c.NoError(err)
	c.NoError(resp.Body.Close())
	c.Equal(http.StatusNotFound, resp.StatusCode, "pprof is disabled by default")
}

func Test_ServeMetrics_InvalidAddr(t *testing.T) {
	reporter := &PrometheusMetricsReporter{Logger: log.NewLoggerWithOutput("error", io.Discard)}
	_, err := reporter.ServeMetrics(context.Background(), ServerConfig{Addr: "256.0.0.1:-1"})
	require.Error(t, err)
}
