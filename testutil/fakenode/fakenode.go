// Package fakenode serves a scripted Substrate JSON-RPC endpoint over WebSocket for tests.
package fakenode

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/papermoonio/sidecar-tests-substrate/jsonrpc"
)

// Handler produces the reply to a single request.
// Returning a non-nil *jsonrpc.ResponseError replies with a JSON-RPC error object.
type Handler func(params json.RawMessage) (any, *jsonrpc.ResponseError)

// RawHandler produces the raw bytes written back for a request with the given ID.
type RawHandler func(id jsonrpc.ID) []byte

// Node is a fake node. Methods without a handler reply with "method not found".
type Node struct {
	t      testing.TB
	server *httptest.Server

	mu          sync.Mutex
	handlers    map[string]Handler
	rawHandlers map[string]RawHandler
	calls       map[string][]json.RawMessage
	conns       []*websocket.Conn
}

// New starts a fake node that is shut down when the test ends.
func New(t testing.TB) *Node {
	t.Helper()

	n := &Node{
		t:           t,
		handlers:    make(map[string]Handler),
		rawHandlers: make(map[string]RawHandler),
		calls:       make(map[string][]json.RawMessage),
	}
	n.server = httptest.NewServer(http.HandlerFunc(n.serveWS))
	t.Cleanup(n.Close)

	return n
}

// URL returns the ws:// URL of the node.
func (n *Node) URL() string {
	return "ws" + strings.TrimPrefix(n.server.URL, "http")
}

// Handle registers h for method, replacing any previous handler.
func (n *Node) Handle(method string, h Handler) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.handlers[method] = h
}

// HandleResult replies to method with a fixed result.
func (n *Node) HandleResult(method string, result any) {
	n.Handle(method, func(json.RawMessage) (any, *jsonrpc.ResponseError) {
		return result, nil
	})
}

// HandleError replies to method with a JSON-RPC error object.
func (n *Node) HandleError(method string, code int, message string) {
	n.Handle(method, func(json.RawMessage) (any, *jsonrpc.ResponseError) {
		return nil, &jsonrpc.ResponseError{Code: code, Message: message}
	})
}

// HandleRaw replies to method with arbitrary bytes, e.g. a malformed response.
func (n *Node) HandleRaw(method string, h RawHandler) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.rawHandlers[method] = h
}

// Calls returns the params of every request received for method.
func (n *Node) Calls(method string) []json.RawMessage {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]json.RawMessage(nil), n.calls[method]...)
}

// DropConnections closes every open client connection without a close handshake.
func (n *Node) DropConnections() {
	n.mu.Lock()
	conns := n.conns
	n.conns = nil
	n.mu.Unlock()

	for _, conn := range conns {
		_ = conn.Close()
	}
}

// Close drops every connection and stops the server.
func (n *Node) Close() {
	n.DropConnections()
	n.server.Close()
}

var upgrader = websocket.Upgrader{}

func (n *Node) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	n.mu.Lock()
	n.conns = append(n.conns, conn)
	n.mu.Unlock()

	var writeMu sync.Mutex
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}

		// Requests are served concurrently so a slow handler does not block others.
		go func() {
			reply := n.reply(msg)
			if reply == nil {
				return
			}
			writeMu.Lock()
			defer writeMu.Unlock()
			_ = conn.WriteMessage(websocket.TextMessage, reply)
		}()
	}
}

func (n *Node) reply(msg []byte) []byte {
	var req jsonrpc.Request
	if err := json.Unmarshal(msg, &req); err != nil {
		return n.marshal(jsonrpc.GetErrorResponse(jsonrpc.ID{}, jsonrpc.ResponseCodeParseErr, "parse error", nil))
	}

	method := string(req.Method)

	n.mu.Lock()
	n.calls[method] = append(n.calls[method], req.Params.Raw())
	handler, hasHandler := n.handlers[method]
	rawHandler, hasRawHandler := n.rawHandlers[method]
	n.mu.Unlock()

	switch {
	case hasRawHandler:
		return rawHandler(req.ID)
	case hasHandler:
		result, rpcErr := handler(req.Params.Raw())
		if rpcErr != nil {
			return n.marshal(jsonrpc.GetErrorResponse(req.ID, rpcErr.Code, rpcErr.Message, rpcErr.Data))
		}
		resp, err := jsonrpc.GetResultResponse(req.ID, result)
		if err != nil {
			n.t.Errorf("fakenode: encoding result for %s: %v", method, err)
			return nil
		}
		return n.marshal(resp)
	default:
		return n.marshal(jsonrpc.GetErrorResponse(req.ID, jsonrpc.ResponseCodeMethodNotFound, "Method not found", nil))
	}
}

func (n *Node) marshal(resp jsonrpc.Response) []byte {
	bz, err := json.Marshal(resp)
	if err != nil {
		n.t.Errorf("fakenode: encoding response: %v", err)
		return nil
	}
	return bz
}
