// Package log builds the polylog logger shared by every component and
// provides helpers to keep payloads out of log lines.
package log

import (
	"io"

	"github.com/pokt-network/poktroll/pkg/polylog"
	"github.com/pokt-network/poktroll/pkg/polylog/polyzero"
)

// NewLoggerWithOutput returns a zerolog backed logger writing to w at level.
func NewLoggerWithOutput(level string, w io.Writer) polylog.Logger {
	loggerOpts := []polylog.LoggerOption{
		polyzero.WithLevel(polyzero.ParseLevel(level)),
		polyzero.WithOutput(w),
	}

	return polyzero.NewLogger(loggerOpts...)
}
