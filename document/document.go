// Package document provides typed access to untyped JSON responses.
//
// Sidecar responses are decoded into a Document rather than fixed structs
// so a missing or mistyped field is reported per field instead of failing
// the whole response. Paths are dot separated; numeric segments index
// into arrays, e.g. "extrinsics.0.signature.signer.id".
package document

import (
	"bytes"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/papermoonio/sidecar-tests-substrate/check"
)

// Document is a decoded JSON object.
type Document map[string]any

// Parse decodes b into a Document. Numbers are kept as json.Number.
func Parse(b []byte) (Document, error) {
	return Decode(bytes.NewReader(b))
}

// Decode reads a single JSON object from r.
func Decode(r io.Reader) (Document, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %w", check.ErrParse, err)
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a JSON object, got %s", check.ErrParse, typeName(v))
	}

	return Document(obj), nil
}

// Has reports whether path resolves to a non-null value.
func (d Document) Has(path string) bool {
	v, err := d.Value(path)
	return err == nil && v != nil
}

// Value returns the raw value at path.
// A missing or null value returns an error wrapping check.ErrFieldMissing.
func (d Document) Value(path string) (any, error) {
	var cur any = map[string]any(d)

	for _, seg := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			next, ok := node[seg]
			if !ok {
				return nil, fmt.Errorf("%s: %w", path, check.ErrFieldMissing)
			}
			cur = next
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil {
				return nil, fmt.Errorf("%s: %w: %q is not an array index", path, check.ErrParse, seg)
			}
			if idx < 0 || idx >= len(node) {
				return nil, fmt.Errorf("%s: %w: index %d out of range", path, check.ErrFieldMissing, idx)
			}
			cur = node[idx]
		case nil:
			return nil, fmt.Errorf("%s: %w", path, check.ErrFieldMissing)
		default:
			return nil, fmt.Errorf("%s: %w: cannot descend into %s", path, check.ErrParse, typeName(node))
		}
	}

	if cur == nil {
		return nil, fmt.Errorf("%s: %w", path, check.ErrFieldMissing)
	}

	return cur, nil
}

// String returns the string at path.
func (d Document) String(path string) (string, error) {
	v, err := d.Value(path)
	if err != nil {
		return "", err
	}

	s, ok := v.(string)
	if !ok {
		return "", wrongType(path, "string", v)
	}
	return s, nil
}

// Bool returns the boolean at path.
func (d Document) Bool(path string) (bool, error) {
	v, err := d.Value(path)
	if err != nil {
		return false, err
	}

	b, ok := v.(bool)
	if !ok {
		return false, wrongType(path, "bool", v)
	}
	return b, nil
}

// Number returns the number at path as a big.Int.
// Sidecar encodes large integers as decimal strings, so both JSON numbers
// and numeric strings are accepted.
func (d Document) Number(path string) (*big.Int, error) {
	v, err := d.Value(path)
	if err != nil {
		return nil, err
	}

	var s string
	switch t := v.(type) {
	case json.Number:
		s = t.String()
	case string:
		s = t
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return nil, wrongType(path, "number", v)
	}

	base := 10
	if strings.HasPrefix(s, "0x") {
		s, base = s[2:], 16
	}

	n, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %q is not an integer", path, check.ErrParse, s)
	}
	return n, nil
}

// Uint returns the unsigned integer at path.
func (d Document) Uint(path string) (uint64, error) {
	n, err := d.Number(path)
	if err != nil {
		return 0, err
	}
	if n.Sign() < 0 || !n.IsUint64() {
		return 0, fmt.Errorf("%s: %w: %s does not fit in uint64", path, check.ErrParse, n)
	}
	return n.Uint64(), nil
}

// Int returns the signed integer at path.
func (d Document) Int(path string) (int64, error) {
	n, err := d.Number(path)
	if err != nil {
		return 0, err
	}
	if !n.IsInt64() {
		return 0, fmt.Errorf("%s: %w: %s does not fit in int64", path, check.ErrParse, n)
	}
	return n.Int64(), nil
}

// Object returns the object at path as a Document.
func (d Document) Object(path string) (Document, error) {
	v, err := d.Value(path)
	if err != nil {
		return nil, err
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, wrongType(path, "object", v)
	}
	return Document(obj), nil
}

// Array returns the array at path.
func (d Document) Array(path string) ([]any, error) {
	v, err := d.Value(path)
	if err != nil {
		return nil, err
	}

	arr, ok := v.([]any)
	if !ok {
		return nil, wrongType(path, "array", v)
	}
	return arr, nil
}

// Objects returns the array at path, requiring every element to be an object.
func (d Document) Objects(path string) ([]Document, error) {
	arr, err := d.Array(path)
	if err != nil {
		return nil, err
	}

	docs := make([]Document, len(arr))
	for i, elem := range arr {
		obj, ok := elem.(map[string]any)
		if !ok {
			return nil, wrongType(fmt.Sprintf("%s.%d", path, i), "object", elem)
		}
		docs[i] = Document(obj)
	}
	return docs, nil
}

// StringList returns the value at path as a list of strings.
//
// Chain properties such as tokenSymbol may be a scalar or an array
// depending on the chain, so a scalar yields a one element list.
// Numbers are rendered in their canonical decimal form.
func (d Document) StringList(path string) ([]string, error) {
	v, err := d.Value(path)
	if err != nil {
		return nil, err
	}

	elems, ok := v.([]any)
	if !ok {
		elems = []any{v}
	}

	out := make([]string, 0, len(elems))
	for i, elem := range elems {
		switch t := elem.(type) {
		case string:
			out = append(out, t)
		case json.Number:
			out = append(out, t.String())
		case float64:
			out = append(out, strconv.FormatFloat(t, 'f', -1, 64))
		default:
			return nil, wrongType(fmt.Sprintf("%s.%d", path, i), "string or number", elem)
		}
	}
	return out, nil
}

func wrongType(path, want string, got any) error {
	return fmt.Errorf("%s: %w: expected %s, got %s", path, check.ErrParse, want, typeName(got))
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "bool"
	case json.Number, float64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
