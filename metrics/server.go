package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	endpointMetrics = "/metrics"
	endpointHealthz = "/healthz"

	shutdownTimeout = 5 * time.Second
)

// ServerConfig configures the monitor HTTP server.
type ServerConfig struct {
	Addr string
	// Healthz serves `/healthz` when set.
	Healthz http.HandlerFunc
	// EnablePprof mounts the net/http/pprof handlers under `/debug/pprof/`.
	EnablePprof bool
}

// ServeMetrics starts the metrics server asynchronously and returns the bound address.
// The server shuts down when ctx is done.
func (pmr *PrometheusMetricsReporter) ServeMetrics(ctx context.Context, cfg ServerConfig) (string, error) {
	mux := http.NewServeMux()
	mux.Handle(endpointMetrics, promhttp.Handler())
	if cfg.Healthz != nil {
		mux.HandleFunc(endpointHealthz, cfg.Healthz)
	}
	if cfg.EnablePprof {
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}

	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return "", err
	}

	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	addr := listener.Addr().String()
	go func() {
		pmr.Logger.Info().Str("endpoint_addr", addr).Msg("starting Prometheus reporter to serve metrics asynchronously.")
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			pmr.Logger.Error().Err(err).Msg("prometheus metrics reporter failed serving")
		}
	}()

	go func() {
		<-ctx.Done()
		pmr.Logger.Info().Str("endpoint_addr", addr).Msg("stopping Prometheus metrics server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	return addr, nil
}
