// Package http holds the HTTP transport shared by the REST clients.
package http

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"time"

	"github.com/papermoonio/sidecar-tests-substrate/log"
)

// ClientConfig configures the transport used for REST endpoints.
type ClientConfig struct {
	// Timeout bounds every request, including reading the body.
	// A context deadline passed to Get takes precedence when it is shorter.
	Timeout time.Duration

	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool

	// MaxBodySize bounds response bodies. Zero uses DefaultMaxBodySize.
	MaxBodySize int64
}

// Client performs single-attempt GET requests and returns the response body.
// It never retries: a failed request is reported to the caller as is.
type Client struct {
	httpClient *http.Client
	bufferPool *bufferPool
}

// NewClient builds a Client from cfg.
func NewClient(cfg ClientConfig) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		bufferPool: newBufferPool(cfg.MaxBodySize),
	}
}

// Get sends a GET request to url with the given headers.
//
// It returns:
//   - the body, for any 2xx status
//   - an error wrapping ErrEndpointHTTPError with the status code and a
//     preview of the body, for any other status
//   - the transport error as is, e.g. connection refused or deadline exceeded
func (c *Client) Get(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return c.readAndValidateResponse(resp)
}

// readAndValidateResponse reads the body and checks the status code.
// The body is read first so non-2xx errors can carry a preview of it.
func (c *Client) readAndValidateResponse(resp *http.Response) ([]byte, error) {
	body, err := c.bufferPool.readAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if err := EnsureHTTPSuccess(resp.StatusCode); err != nil {
		return nil, fmt.Errorf("%w: %s", err, log.PreviewBody(body))
	}

	return body, nil
}
