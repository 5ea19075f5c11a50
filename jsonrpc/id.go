package jsonrpc

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ID correlates a JSON-RPC response with the request that produced it.
//
// JSON-RPC ID requirements:
// - Must be a String, Number, or NULL if included
// - Numbers should not contain fractional parts
// - Server must reply with the same value in the Response object
//
// Substrate nodes echo numeric IDs back, so the substrate client only
// ever allocates integer IDs starting at 1.
type ID struct {
	intID int
	strID string
}

// String returns ID as a string.
// strID takes precedence if both fields are set.
func (id ID) String() string {
	if id.strID != "" {
		return id.strID
	}

	return strconv.Itoa(id.intID)
}

// IsEmpty is true for an unset ID, which is serialized as null.
func (id ID) IsEmpty() bool {
	return id.intID == 0 && id.strID == ""
}

func (id ID) MarshalJSON() ([]byte, error) {
	switch {
	case id.intID != 0:
		return []byte(strconv.Itoa(id.intID)), nil
	case id.strID != "":
		return []byte(fmt.Sprintf("%q", id.strID)), nil
	default:
		return []byte("null"), nil
	}
}

func (id *ID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ID{}
		return nil
	}

	var intID int
	if err := json.Unmarshal(data, &intID); err == nil {
		id.intID = intID
		return nil
	}

	var strID string
	if err := json.Unmarshal(data, &strID); err != nil {
		return fmt.Errorf("id must be a string, number or null: %w", err)
	}

	id.strID = strID
	return nil
}

func IDFromInt(id int) ID {
	return ID{intID: id}
}
