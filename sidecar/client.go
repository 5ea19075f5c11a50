// Package sidecar is a client for the Substrate API Sidecar REST API.
//
// Responses are returned as untyped documents so the checks can report a
// missing or mistyped field on its own instead of failing the whole response.
package sidecar

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/pokt-network/poktroll/pkg/polylog"

	"github.com/papermoonio/sidecar-tests-substrate/check"
	"github.com/papermoonio/sidecar-tests-substrate/document"
	"github.com/papermoonio/sidecar-tests-substrate/log"
	httpnet "github.com/papermoonio/sidecar-tests-substrate/network/http"
)

// Client fetches sidecar endpoints with a single attempt per call.
type Client struct {
	logger polylog.Logger

	baseURL    string
	userAgent  string
	httpClient *httpnet.Client
}

// NewClient returns a Client for the sidecar at baseURL.
func NewClient(logger polylog.Logger, baseURL, userAgent string, httpClient *httpnet.Client) *Client {
	return &Client{
		logger:     logger.With("component", "sidecar_client", "endpoint", baseURL),
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: httpClient,
	}
}

// Fetch GETs path relative to the base URL and decodes the JSON object it returns.
//
// Errors wrap:
//   - check.ErrNetwork for connection failures and non-2xx statuses
//   - check.ErrTimeout when ctx expires
//   - check.ErrParse when the body is not a JSON object
func (c *Client) Fetch(ctx context.Context, path string) (document.Document, error) {
	endpointURL := c.baseURL + path

	headers := map[string]string{
		"Accept": "application/json",
	}
	if c.userAgent != "" {
		headers["User-Agent"] = c.userAgent
	}

	body, err := c.httpClient.Get(ctx, endpointURL, headers)
	if err != nil {
		c.logger.Debug().Err(err).Str("path", path).Msg("sidecar request failed")
		if errors.Is(err, httpnet.ErrEndpointHTTPError) {
			return nil, fmt.Errorf("GET %s: %w: %w", path, check.ErrNetwork, err)
		}
		if errors.Is(err, httpnet.ErrResponseTooLarge) {
			return nil, fmt.Errorf("GET %s: %w: %w", path, check.ErrParse, err)
		}
		return nil, fmt.Errorf("GET %s: %w", path, check.ClassifyTransport(err))
	}

	c.logger.Debug().Str("path", path).Str("response", log.PreviewBody(body)).Msg("sidecar response")

	doc, err := document.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w (body: %s)", path, err, log.PreviewBody(body))
	}

	return doc, nil
}

// Block returns /blocks/{id}, where id is a block number or hash.
func (c *Client) Block(ctx context.Context, id string) (document.Document, error) {
	return c.Fetch(ctx, "/blocks/"+url.PathEscape(id))
}

// BlockHead returns /blocks/head, the latest finalized block.
func (c *Client) BlockHead(ctx context.Context) (document.Document, error) {
	return c.Fetch(ctx, "/blocks/head")
}

// BlockHeader returns /blocks/{id}/header.
func (c *Client) BlockHeader(ctx context.Context, id string) (document.Document, error) {
	return c.Fetch(ctx, "/blocks/"+url.PathEscape(id)+"/header")
}

// NodeVersion returns /node/version.
func (c *Client) NodeVersion(ctx context.Context) (document.Document, error) {
	return c.Fetch(ctx, "/node/version")
}

// NodeNetwork returns /node/network.
func (c *Client) NodeNetwork(ctx context.Context) (document.Document, error) {
	return c.Fetch(ctx, "/node/network")
}

// RuntimeSpec returns /runtime/spec.
func (c *Client) RuntimeSpec(ctx context.Context) (document.Document, error) {
	return c.Fetch(ctx, "/runtime/spec")
}

// TransactionMaterial returns /transaction/material without the metadata blob.
func (c *Client) TransactionMaterial(ctx context.Context) (document.Document, error) {
	return c.Fetch(ctx, "/transaction/material?noMeta=true")
}

// AccountBalanceInfo returns /accounts/{address}/balance-info.
func (c *Client) AccountBalanceInfo(ctx context.Context, address string) (document.Document, error) {
	return c.Fetch(ctx, "/accounts/"+url.PathEscape(address)+"/balance-info")
}
