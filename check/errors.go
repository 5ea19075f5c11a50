package check

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Error kinds reported on failing results.
//
// Every failure surfaced by the endpoint clients wraps exactly one of the
// sentinels below, so a failing Result can always name what went wrong:
// the endpoint was unreachable, too slow, replied with garbage, or replied
// with a value that differs from the other side.
var (
	// ErrNetwork covers connection, DNS and non-2xx transport failures.
	ErrNetwork = errors.New("network error")

	// ErrTimeout indicates the per-request deadline was exceeded.
	ErrTimeout = errors.New("timeout error")

	// ErrParse indicates a malformed JSON or JSON-RPC response.
	ErrParse = errors.New("parse error")

	// ErrMismatch indicates both endpoints replied but the values differ.
	ErrMismatch = errors.New("mismatch error")

	// ErrFieldMissing is a ParseError for a field absent from an otherwise well formed response.
	ErrFieldMissing = fmt.Errorf("%w: field missing", ErrParse)
)

// Kind names the class of failure recorded on a Result.
type Kind string

const (
	KindNone     Kind = ""
	KindNetwork  Kind = "NetworkError"
	KindTimeout  Kind = "TimeoutError"
	KindParse    Kind = "ParseError"
	KindMismatch Kind = "MismatchError"
	// KindUnknown is used for errors that were not classified by a client.
	KindUnknown Kind = "Error"
)

// KindOf returns the Kind of err.
// Timeouts take precedence since a timed out dial also looks like a network error.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrTimeout):
		return KindTimeout
	case errors.Is(err, ErrNetwork):
		return KindNetwork
	case errors.Is(err, ErrParse):
		return KindParse
	case errors.Is(err, ErrMismatch):
		return KindMismatch
	default:
		return KindUnknown
	}
}

// ClassifyTransport wraps a transport level error with ErrTimeout or ErrNetwork.
// Errors already carrying a kind are returned unchanged.
func ClassifyTransport(err error) error {
	if err == nil {
		return nil
	}

	if KindOf(err) != KindUnknown {
		return err
	}

	if isTimeout(err) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}

	return fmt.Errorf("%w: %w", ErrNetwork, err)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
