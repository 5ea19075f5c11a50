package jsonrpc

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	errInvalidVersion     = errors.New("invalid jsonrpc version")
	errIDMismatch         = errors.New("response id does not match request id")
	errResultAndError     = errors.New("response contains both result and error")
	errNoResultNorError   = errors.New("response contains neither result nor error")
	errNullResultResponse = errors.New("response result is null")
)

// Response captures all the fields of a JSONRPC response.
// See the following link for more details:
// https://www.jsonrpc.org/specification#response_object
type Response struct {
	ID      ID      `json:"id"`
	Version Version `json:"jsonrpc"`
	// Result captures the result field of the JSONRPC spec.
	// It is kept raw so callers can decode it into the type they expect.
	Result *json.RawMessage `json:"result,omitempty"`
	Error  *ResponseError   `json:"error,omitempty"`
}

// UnmarshalJSON keeps an explicit `"result": null` distinguishable from an absent result field.
func (r *Response) UnmarshalJSON(data []byte) error {
	type responseAlias struct {
		ID      ID              `json:"id"`
		Version Version         `json:"jsonrpc"`
		Result  json.RawMessage `json:"result"`
		Error   *ResponseError  `json:"error"`
	}

	var alias responseAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	*r = Response{
		ID:      alias.ID,
		Version: alias.Version,
		Error:   alias.Error,
	}
	if alias.Result != nil {
		result := alias.Result
		r.Result = &result
	}
	return nil
}

// Validate checks the response is a well formed reply to the request with expectedID.
func (r Response) Validate(expectedID ID) error {
	if r.Version != Version2 {
		return fmt.Errorf("%w: jsonrpc field is %q, expected %q", errInvalidVersion, r.Version, Version2)
	}

	if r.ID != expectedID {
		return fmt.Errorf("%w: got %s, expected %s", errIDMismatch, r.ID, expectedID)
	}

	if r.Result != nil && r.Error != nil {
		return errResultAndError
	}

	if r.Result == nil && r.Error == nil {
		return errNoResultNorError
	}

	return nil
}

// IsError returns true if the endpoint replied with a JSON-RPC error object.
func (r Response) IsError() bool {
	return r.Error != nil
}

// IsNullResult returns true if the result field is absent or an explicit null.
// Substrate nodes reply with a null result for unknown blocks and hashes.
func (r Response) IsNullResult() bool {
	return r.Result == nil || string(*r.Result) == "null"
}

// UnmarshalResult decodes the result field into v.
func (r Response) UnmarshalResult(v any) error {
	if r.IsNullResult() {
		return errNullResultResponse
	}
	return json.Unmarshal(*r.Result, v)
}

// GetErrorResponse is a helper function that builds a JSONRPC Response using the supplied ID and error values.
func GetErrorResponse(id ID, errCode int, errMsg string, errData any) Response {
	return Response{
		ID:      id,
		Version: Version2,
		Error: &ResponseError{
			Code:    errCode,
			Message: errMsg,
			Data:    errData,
		},
	}
}

// GetResultResponse builds a successful JSONRPC Response for the supplied ID.
func GetResultResponse(id ID, result any) (Response, error) {
	bz, err := json.Marshal(result)
	if err != nil {
		return Response{}, err
	}
	raw := json.RawMessage(bz)
	return Response{
		ID:      id,
		Version: Version2,
		Result:  &raw,
	}, nil
}

// IsNullResultErr reports whether err was returned by UnmarshalResult for a null result.
func IsNullResultErr(err error) bool {
	return errors.Is(err, errNullResultResponse)
}
