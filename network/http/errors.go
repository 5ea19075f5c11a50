package http

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// Endpoint returned a non 2xx HTTP status code.
	ErrEndpointHTTPError = errors.New("endpoint returned non 2xx HTTP status code")

	// Endpoint returned a body larger than the configured read limit.
	ErrResponseTooLarge = errors.New("response body exceeds read limit")
)

// EnsureHTTPSuccess returns an error if the status code is not a 2xx successful status code.
// Otherwise returns nil.
func EnsureHTTPSuccess(statusCode int) error {
	if statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: %d", ErrEndpointHTTPError, statusCode)
	}
	return nil
}
