package check

import (
	"encoding/json"
	"math/big"
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

func TestExact(t *testing.T) {
	tests := []struct {
		name     string
		expected any
		actual   any
		equal    bool
	}{
		{name: "equal hashes", expected: "0xabc", actual: "0xabc", equal: true},
		{name: "different hashes", expected: "0xabc", actual: "0xdef", equal: false},
		{name: "numbers of different go types", expected: uint32(100), actual: int64(100), equal: true},
		{name: "encoding/json number", expected: uint64(9430), actual: json.Number("9430"), equal: true},
		{name: "goccy json number", expected: uint64(9430), actual: gojson.Number("9430"), equal: true},
		{name: "big int", expected: big.NewInt(7), actual: 7, equal: true},
		{name: "numeric string is not a number", expected: 100, actual: "100", equal: false},
		{name: "different numbers", expected: 100, actual: 101, equal: false},
		{name: "booleans", expected: false, actual: false, equal: true},
		{name: "nil and nil", expected: nil, actual: nil, equal: true},
		{name: "nil and value", expected: nil, actual: "x", equal: false},
		{name: "ordered slices", expected: []string{"a", "b"}, actual: []any{"a", "b"}, equal: true},
		{name: "slice order matters", expected: []string{"a", "b"}, actual: []string{"b", "a"}, equal: false},
		{name: "maps", expected: map[string]any{"n": 1}, actual: map[string]int{"n": 1}, equal: true},
		{name: "byte slices", expected: []byte{0xab}, actual: "0xab", equal: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			equal, err := Exact().Equal(test.expected, test.actual)
			require.NoError(t, err)
			require.Equal(t, test.equal, equal)
		})
	}
}

func TestTolerance(t *testing.T) {
	tests := []struct {
		name     string
		delta    float64
		expected any
		actual   any
		equal    bool
		wantErr  error
	}{
		{name: "exact with zero delta", delta: 0, expected: uint64(1700000000000), actual: uint64(1700000000000), equal: true},
		{name: "off by one with zero delta", delta: 0, expected: 10, actual: 11, equal: false},
		{name: "within delta", delta: 6000, expected: uint64(1700000000000), actual: uint64(1700000006000), equal: true},
		{name: "within delta, negative diff", delta: 2, expected: 10, actual: 8, equal: true},
		{name: "outside delta", delta: 2, expected: 10, actual: 13, equal: false},
		{name: "fractional", delta: 0.5, expected: 1.25, actual: json.Number("1.5"), equal: true},
		{name: "non numeric expected", delta: 1, expected: "abc", actual: 1, wantErr: ErrParse},
		{name: "non numeric actual", delta: 1, expected: 1, actual: true, wantErr: ErrParse},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			equal, err := Tolerance(test.delta).Equal(test.expected, test.actual)
			if test.wantErr != nil {
				require.ErrorIs(t, err, test.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, test.equal, equal)
		})
	}
}

func TestSetEqual(t *testing.T) {
	tests := []struct {
		name     string
		expected any
		actual   any
		equal    bool
	}{
		{name: "same order", expected: []string{"DOT", "KSM"}, actual: []string{"DOT", "KSM"}, equal: true},
		{name: "different order", expected: []string{"DOT", "KSM"}, actual: []any{"KSM", "DOT"}, equal: true},
		{name: "missing element", expected: []string{"DOT", "KSM"}, actual: []string{"DOT"}, equal: false},
		{name: "duplicates are significant", expected: []string{"a", "a", "b"}, actual: []string{"a", "b", "b"}, equal: false},
		{name: "scalar against single element", expected: "DOT", actual: []string{"DOT"}, equal: true},
		{name: "numbers by value", expected: []any{12, 10}, actual: []any{json.Number("10"), uint8(12)}, equal: true},
		{name: "nil and empty", expected: nil, actual: []string{}, equal: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			equal, err := SetEqual().Equal(test.expected, test.actual)
			require.NoError(t, err)
			require.Equal(t, test.equal, equal)
		})
	}
}

func TestCaseFold(t *testing.T) {
	equal, err := CaseFold().Equal("ParachainSystem", "parachainsystem")
	require.NoError(t, err)
	require.True(t, equal)

	_, err = CaseFold().Equal("a", 1)
	require.ErrorIs(t, err, ErrParse)
}
