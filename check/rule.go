package check

import (
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Rule decides whether an expected and an actual value are equal.
//
// Equal returns an error when the values cannot be compared under the
// rule at all, e.g. a non-numeric value passed to a Tolerance rule.
// Such errors are reported as ParseErrors, not mismatches.
type Rule interface {
	Name() string
	Equal(expected, actual any) (bool, error)
}

// Exact returns the rule used for identifiers, hashes and versions.
//
// Values are compared structurally. Numbers are compared by value, so
// uint32(7), int64(7) and json.Number("7") are all equal, but the string
// "7" is not a number.
func Exact() Rule {
	return exactRule{}
}

// Tolerance returns a numeric rule accepting |expected-actual| <= delta.
// Used for block timestamps and peer counts.
func Tolerance(delta float64) Rule {
	return toleranceRule{delta: delta}
}

// SetEqual returns a rule for unordered collections.
// Duplicates are significant: [a a b] is not equal to [a b b].
// A scalar is treated as a single element collection.
func SetEqual() Rule {
	return setRule{}
}

// CaseFold returns a rule for strings that compares them case-insensitively.
func CaseFold() Rule {
	return caseFoldRule{}
}

type exactRule struct{}

func (exactRule) Name() string { return "exact" }

func (exactRule) Equal(expected, actual any) (bool, error) {
	return cmp.Equal(normalize(expected), normalize(actual)), nil
}

type toleranceRule struct {
	delta float64
}

func (r toleranceRule) Name() string { return fmt.Sprintf("tolerance(%g)", r.delta) }

func (r toleranceRule) Equal(expected, actual any) (bool, error) {
	e, ok := toRat(expected)
	if !ok {
		return false, fmt.Errorf("%w: expected value %v (%T) is not numeric", ErrParse, expected, expected)
	}
	a, ok := toRat(actual)
	if !ok {
		return false, fmt.Errorf("%w: actual value %v (%T) is not numeric", ErrParse, actual, actual)
	}

	delta := new(big.Rat)
	if delta.SetFloat64(r.delta) == nil || delta.Sign() < 0 {
		return false, fmt.Errorf("invalid tolerance %g", r.delta)
	}

	diff := new(big.Rat).Sub(e, a)
	return diff.Abs(diff).Cmp(delta) <= 0, nil
}

type setRule struct{}

func (setRule) Name() string { return "set" }

func (setRule) Equal(expected, actual any) (bool, error) {
	sortByKey := cmpopts.SortSlices(func(x, y any) bool {
		return sortKey(x) < sortKey(y)
	})
	return cmp.Equal(asSlice(normalize(expected)), asSlice(normalize(actual)), sortByKey, cmpopts.EquateEmpty()), nil
}

type caseFoldRule struct{}

func (caseFoldRule) Name() string { return "casefold" }

func (caseFoldRule) Equal(expected, actual any) (bool, error) {
	e, eok := expected.(string)
	a, aok := actual.(string)
	if !eok || !aok {
		return false, fmt.Errorf("%w: casefold compares strings, got %T and %T", ErrParse, expected, actual)
	}
	return strings.EqualFold(e, a), nil
}

// number is the canonical form of every numeric value after normalize.
type number string

// normalize rewrites v into a tree of maps, slices, strings, bools and
// numbers so go-cmp can compare values decoded by different JSON codecs.
func normalize(v any) any {
	if v == nil {
		return nil
	}

	if r, ok := toRat(v); ok {
		return number(r.RatString())
	}

	switch t := v.(type) {
	case string, bool, number:
		return t
	case fmt.Stringer:
		return t.String()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return fmt.Sprintf("0x%x", rv.Bytes())
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = normalize(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = normalize(iter.Value().Interface())
		}
		return out
	case reflect.Pointer:
		if rv.IsNil() {
			return nil
		}
		return normalize(rv.Elem().Interface())
	default:
		return fmt.Sprintf("%v", v)
	}
}

// toRat converts any Go or JSON numeric representation to a big.Rat.
func toRat(v any) (*big.Rat, bool) {
	switch t := v.(type) {
	case int:
		return new(big.Rat).SetInt64(int64(t)), true
	case int8:
		return new(big.Rat).SetInt64(int64(t)), true
	case int16:
		return new(big.Rat).SetInt64(int64(t)), true
	case int32:
		return new(big.Rat).SetInt64(int64(t)), true
	case int64:
		return new(big.Rat).SetInt64(t), true
	case uint:
		return new(big.Rat).SetUint64(uint64(t)), true
	case uint8:
		return new(big.Rat).SetUint64(uint64(t)), true
	case uint16:
		return new(big.Rat).SetUint64(uint64(t)), true
	case uint32:
		return new(big.Rat).SetUint64(uint64(t)), true
	case uint64:
		return new(big.Rat).SetUint64(t), true
	case float32:
		r := new(big.Rat)
		return r, r.SetFloat64(float64(t)) != nil
	case float64:
		r := new(big.Rat)
		return r, r.SetFloat64(t) != nil
	case *big.Int:
		if t == nil {
			return nil, false
		}
		return new(big.Rat).SetInt(t), true
	case number:
		return new(big.Rat).SetString(string(t))
	case interface {
		Int64() (int64, error)
		Float64() (float64, error)
		String() string
	}:
		// json.Number, from either encoding/json or goccy/go-json.
		return new(big.Rat).SetString(t.String())
	default:
		return nil, false
	}
}

func asSlice(v any) []any {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		return t
	default:
		return []any{t}
	}
}

// sortKey orders normalized values of mixed types deterministically.
func sortKey(v any) string {
	return fmt.Sprintf("%T:%v", v, v)
}
