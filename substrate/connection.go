package substrate

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pokt-network/poktroll/pkg/polylog"
)

const (
	// Time allowed to write a message to the node.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the node.
	pongWait = 30 * time.Second

	// Send pings to the node with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// defaultReadLimit bounds a single message from the node.
	defaultReadLimit = 64 * 1024 * 1024
)

// connection wraps a WebSocket connection to the node with a read loop
// and a keep-alive ping loop.
type connection struct {
	ctx       context.Context
	cancelCtx context.CancelFunc

	logger polylog.Logger

	*websocket.Conn

	// onMessage is called from the read loop for every text or binary message.
	onMessage func([]byte)
	// onDisconnect is called once, from whichever loop first observes the failure.
	onDisconnect func(error)
}

// dialNode opens a WebSocket connection to the node's RPC endpoint.
func dialNode(ctx context.Context, cfg Config) (*websocket.Conn, error) {
	dialer := *websocket.DefaultDialer
	if cfg.InsecureSkipVerify {
		dialer.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}

	headers := http.Header{}
	if cfg.UserAgent != "" {
		headers.Set("User-Agent", cfg.UserAgent)
	}

	conn, resp, err := dialer.DialContext(ctx, cfg.Endpoint, headers)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("websocket handshake with %s failed with status %d: %w", cfg.Endpoint, resp.StatusCode, err)
		}
		return nil, fmt.Errorf("websocket dial %s: %w", cfg.Endpoint, err)
	}

	readLimit := cfg.ReadLimit
	if readLimit <= 0 {
		readLimit = defaultReadLimit
	}
	conn.SetReadLimit(readLimit)

	return conn, nil
}

func newConnection(
	ctx context.Context,
	cancelCtx context.CancelFunc,
	logger polylog.Logger,
	conn *websocket.Conn,
	onMessage func([]byte),
	onDisconnect func(error),
) *connection {
	c := &connection{
		ctx:       ctx,
		cancelCtx: cancelCtx,

		logger: logger,

		Conn: conn,

		onMessage:    onMessage,
		onDisconnect: onDisconnect,
	}

	// Handlers are installed before the read loop starts since gorilla
	// does not allow changing them concurrently with a read.
	if err := c.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("failed to set initial read deadline")
	}
	c.SetPongHandler(func(string) error {
		return c.SetReadDeadline(time.Now().Add(pongWait))
	})

	go c.connLoop()
	go c.pingLoop()

	return c
}

// connLoop reads messages from the node and hands them to onMessage.
func (c *connection) connLoop() {
	for {
		_, msg, err := c.ReadMessage()
		if err != nil {
			c.handleDisconnect(err)
			return
		}

		c.onMessage(msg)
	}
}

// handleDisconnect handles both expected disconnections (Close) and
// unexpected ones (node restart, network loss) by cancelling the
// connection context, which stops the ping loop.
func (c *connection) handleDisconnect(err error) {
	if c.ctx.Err() == nil {
		c.logger.Warn().Err(err).Msg("websocket connection to node lost")
	}
	c.cancelCtx()
	c.onDisconnect(err)
}

// pingLoop sends keep-alive ping messages and extends the read deadline on every pong.
// If no pong arrives within pongWait the read in connLoop fails and the connection is torn down.
// See: https://pkg.go.dev/github.com/gorilla/websocket#hdr-Control_Messages
func (c *connection) pingLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := c.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				c.handleDisconnect(fmt.Errorf("failed to send ping: %w", err))
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}
