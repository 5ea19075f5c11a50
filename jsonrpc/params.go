package jsonrpc

import (
	"encoding/json"
	"fmt"
)

// Params represents the 'params' field in a JSON-RPC request.
//
// According to JSON-RPC 2.0 spec, params must be a structured value: either
// an array or an object. Substrate RPC methods take positional params, e.g.
//   - chain_getBlock:     {"params": ["0x6857c3c1..."]}
//   - chain_getBlockHash: {"params": [100]}
//
// See the below link on JSONRPC spec for more details:
// https://www.jsonrpc.org/specification#parameter_structures
type Params struct {
	// rawMessage stores the actual value of the params field, not the entire JSON-RPC request.
	// It is kept private to ensure all values pass through JSON validation.
	rawMessage json.RawMessage
}

// BuildPositionalParams builds an array Params object from the supplied values.
// No values results in an empty array, which Substrate nodes accept for
// methods without arguments.
//
// For example, for a `chain_getBlockHash` request, the params would look like:
// params - [100]
func BuildPositionalParams(values ...any) (Params, error) {
	if values == nil {
		values = []any{}
	}
	jsonParams, err := json.Marshal(values)
	if err != nil {
		return Params{}, fmt.Errorf("failed to marshal params: %w", err)
	}
	return Params{rawMessage: jsonParams}, nil
}

// Raw returns the serialized params value.
func (p Params) Raw() json.RawMessage {
	return p.rawMessage
}

// Custom marshaler allows Params to be serialized while keeping rawMessage private.
func (p Params) MarshalJSON() ([]byte, error) {
	if p.IsEmpty() {
		return []byte("null"), nil
	}
	return p.rawMessage, nil
}

// Custom unmarshaler ensures incoming data complies with JSON-RPC 2.0 specification
func (p *Params) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		p.rawMessage = nil
		return nil
	}

	var checkType any
	if err := json.Unmarshal(data, &checkType); err != nil {
		return fmt.Errorf("failed to unmarshal params field: %w", err)
	}

	switch checkType.(type) {
	// The only valid types for params are an array or an object.
	case []any, map[string]any:
		p.rawMessage = append(json.RawMessage(nil), data...)
		return nil
	default:
		return fmt.Errorf("params must be either array or object, got %T", checkType)
	}
}

// IsEmpty returns true when params contains no data.
func (p Params) IsEmpty() bool {
	return len(p.rawMessage) == 0
}
