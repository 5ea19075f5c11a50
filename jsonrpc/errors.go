package jsonrpc

// Standard JSON-RPC 2.0 error codes.
// Reference: https://www.jsonrpc.org/specification#error_object
const (
	ResponseCodeParseErr          = -32700
	ResponseCodeDefaultBadRequest = -32600
	ResponseCodeMethodNotFound    = -32601
	ResponseCodeInvalidParams     = -32602
	ResponseCodeInternalErr       = -32603
)
