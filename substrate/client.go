// Package substrate is a JSON-RPC 2.0 client for a Substrate node's
// WebSocket endpoint.
//
// Every call is a single attempt bounded by its context. Failures wrap
// exactly one of the check error kinds:
//   - check.ErrNetwork: dial failure, dropped connection, or a JSON-RPC error object
//   - check.ErrTimeout: the context deadline expired before the reply arrived
//   - check.ErrParse: the reply is not a valid response or the result has an unexpected shape
package substrate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pokt-network/poktroll/pkg/polylog"

	"github.com/papermoonio/sidecar-tests-substrate/check"
	"github.com/papermoonio/sidecar-tests-substrate/jsonrpc"
	"github.com/papermoonio/sidecar-tests-substrate/log"
)

// ErrConnectionClosed is returned by calls made after the connection was lost or closed.
var ErrConnectionClosed = errors.New("websocket connection closed")

// Config holds the settings for a node connection.
type Config struct {
	// Endpoint is the ws:// or wss:// URL of the node.
	Endpoint string

	InsecureSkipVerify bool
	UserAgent          string

	// ReadLimit bounds a single message from the node, in bytes.
	ReadLimit int64
}

// Client is a JSON-RPC client over a single WebSocket connection.
// It is safe for concurrent use.
type Client struct {
	logger polylog.Logger
	conn   *connection

	nextID atomic.Int64

	// writeMu serializes writes; gorilla allows one concurrent writer.
	writeMu sync.Mutex

	pendingMu sync.Mutex
	pending   map[string]chan jsonrpc.Response

	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

// Dial connects to the node. The context bounds the handshake only.
func Dial(ctx context.Context, logger polylog.Logger, cfg Config) (*Client, error) {
	wsConn, err := dialNode(ctx, cfg)
	if err != nil {
		return nil, check.ClassifyTransport(err)
	}

	c := &Client{
		logger:  logger.With("component", "substrate_client", "endpoint", cfg.Endpoint),
		pending: make(map[string]chan jsonrpc.Response),
		done:    make(chan struct{}),
	}

	connCtx, cancelConn := context.WithCancel(context.Background())
	c.conn = newConnection(connCtx, cancelConn, c.logger, wsConn, c.handleMessage, c.markClosed)

	c.logger.Debug().Msg("connected to node")

	return c, nil
}

// Close closes the connection and fails every pending call.
func (c *Client) Close() error {
	c.writeMu.Lock()
	_ = c.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait),
	)
	c.writeMu.Unlock()

	c.markClosed(ErrConnectionClosed)
	c.conn.cancelCtx()
	return c.conn.Close()
}

// Call sends a JSON-RPC request and decodes its result into result.
// result may be nil when the caller only cares about success.
//
// A null result is reported as check.ErrFieldMissing: nodes reply with
// null for unknown blocks and hashes.
func (c *Client) Call(ctx context.Context, method string, params []any, result any) error {
	id := jsonrpc.IDFromInt(int(c.nextID.Add(1)))

	req, err := jsonrpc.NewRequest(id, jsonrpc.Method(method), params...)
	if err != nil {
		return fmt.Errorf("%s: building request: %w", method, err)
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("%s: encoding request: %w", method, err)
	}

	replyCh := make(chan jsonrpc.Response, 1)
	if err := c.addPending(id, replyCh); err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	defer c.removePending(id)

	logger := c.logger.With("method", method, "id", id.String())
	logger.Debug().Str("request", log.Preview(string(payload))).Msg("sending request")

	if err := c.write(ctx, payload); err != nil {
		return fmt.Errorf("%s: %w", method, check.ClassifyTransport(err))
	}

	var resp jsonrpc.Response
	select {
	case resp = <-replyCh:
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", method, check.ClassifyTransport(ctx.Err()))
	case <-c.done:
		return fmt.Errorf("%s: %w: %w", method, check.ErrNetwork, c.closeErr)
	}

	if err := resp.Validate(id); err != nil {
		return fmt.Errorf("%s: %w: %w", method, check.ErrParse, err)
	}

	if resp.IsError() {
		logger.Debug().Int("code", resp.Error.Code).Str("message", resp.Error.Message).Msg("node returned an error")
		return fmt.Errorf("%s: %w: %w", method, check.ErrNetwork, resp.Error)
	}

	if result == nil {
		return nil
	}

	if err := resp.UnmarshalResult(result); err != nil {
		if jsonrpc.IsNullResultErr(err) {
			return fmt.Errorf("%s: %w: null result", method, check.ErrFieldMissing)
		}
		return fmt.Errorf("%s: %w: %w", method, check.ErrParse, err)
	}

	return nil
}

func (c *Client) write(ctx context.Context, payload []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(writeWait)
	}
	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return err
	}

	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

// handleMessage routes a reply to the call waiting for its ID.
// Notifications and replies to abandoned calls are dropped.
func (c *Client) handleMessage(msg []byte) {
	var resp jsonrpc.Response
	if err := json.Unmarshal(msg, &resp); err != nil {
		c.logger.Warn().Err(err).Str("message", log.PreviewBody(msg)).Msg("dropping undecodable message from node")
		return
	}

	if resp.ID.IsEmpty() {
		c.logger.Debug().Str("message", log.PreviewBody(msg)).Msg("dropping message without id")
		return
	}

	c.pendingMu.Lock()
	replyCh, ok := c.pending[resp.ID.String()]
	c.pendingMu.Unlock()

	if !ok {
		c.logger.Debug().Str("id", resp.ID.String()).Msg("dropping reply to unknown or abandoned call")
		return
	}

	// replyCh is buffered and each ID receives at most one reply.
	select {
	case replyCh <- resp:
	default:
	}
}

func (c *Client) addPending(id jsonrpc.ID, ch chan jsonrpc.Response) error {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()

	select {
	case <-c.done:
		return fmt.Errorf("%w: %w", check.ErrNetwork, c.closeErr)
	default:
	}

	c.pending[id.String()] = ch
	return nil
}

func (c *Client) removePending(id jsonrpc.ID) {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()
	delete(c.pending, id.String())
}

// markClosed records why the connection ended and wakes every pending call.
func (c *Client) markClosed(err error) {
	c.closeOnce.Do(func() {
		c.pendingMu.Lock()
		defer c.pendingMu.Unlock()

		if err == nil || !errors.Is(err, ErrConnectionClosed) {
			err = fmt.Errorf("%w: %v", ErrConnectionClosed, err)
		}
		c.closeErr = err
		close(c.done)
	})
}
