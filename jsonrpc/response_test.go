package jsonrpc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func rawMessage(s string) *json.RawMessage {
	raw := json.RawMessage(s)
	return &raw
}

func TestResponse_Validate(t *testing.T) {
	tests := []struct {
		name     string
		reqID    ID
		response Response
		wantErr  bool
	}{
		{
			name:  "should validate successfully with correct version and result",
			reqID: IDFromInt(1),
			response: Response{
				ID:      IDFromInt(1),
				Version: Version2,
				Result:  rawMessage(`"parity-polkadot"`),
			},
		},
		{
			name:  "should validate successfully with null result",
			reqID: IDFromInt(1),
			response: Response{
				ID:      IDFromInt(1),
				Version: Version2,
				Result:  rawMessage(`null`),
			},
		},
		{
			name:  "should fail validation with incorrect version",
			reqID: IDFromInt(1),
			response: Response{
				ID:      IDFromInt(1),
				Version: "1.0",
				Result:  rawMessage(`"success"`),
			},
			wantErr: true,
		},
		{
			name:  "should fail validation with mismatched id",
			reqID: IDFromInt(1),
			response: Response{
				ID:      IDFromInt(2),
				Version: Version2,
				Result:  rawMessage(`"success"`),
			},
			wantErr: true,
		},
		{
			name:  "should fail validation with both result and error",
			reqID: IDFromInt(1),
			response: Response{
				ID:      IDFromInt(1),
				Version: Version2,
				Result:  rawMessage(`"success"`),
				Error:   &ResponseError{Code: 1, Message: "error"},
			},
			wantErr: true,
		},
		{
			name:  "should fail validation with neither result nor error",
			reqID: IDFromInt(1),
			response: Response{
				ID:      IDFromInt(1),
				Version: Version2,
			},
			wantErr: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.response.Validate(test.reqID)
			if test.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestResponse_UnmarshalJSON(t *testing.T) {
	var resp Response
	err := json.Unmarshal([]byte(`{"jsonrpc":"2.0","id":3,"error":{"code":-32601,"message":"Method not found"}}`), &resp)
	require.NoError(t, err)
	require.True(t, resp.IsError())
	require.Equal(t, ResponseCodeMethodNotFound, resp.Error.Code)
	require.Equal(t, "3", resp.ID.String())
	require.EqualError(t, resp.Error, "jsonrpc error -32601: Method not found")

	err = json.Unmarshal([]byte(`{"jsonrpc":"2.0","id":4,"result":null}`), &resp)
	require.NoError(t, err)
	require.True(t, resp.IsNullResult())

	var out string
	require.True(t, IsNullResultErr(resp.UnmarshalResult(&out)))
}

func TestGetResultResponse(t *testing.T) {
	resp, err := GetResultResponse(IDFromInt(9), map[string]any{"peers": 3})
	require.NoError(t, err)
	require.NoError(t, resp.Validate(IDFromInt(9)))

	var health struct {
		Peers int `json:"peers"`
	}
	require.NoError(t, resp.UnmarshalResult(&health))
	require.Equal(t, 3, health.Peers)
}
