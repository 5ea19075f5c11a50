package check

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompare_EqualValuesPass(t *testing.T) {
	values := []any{"0xabc", uint64(100), true, []string{"DOT"}, map[string]any{"specName": "polkadot"}}

	for _, v := range values {
		t.Run(fmt.Sprintf("%T", v), func(t *testing.T) {
			result := Compare("Field", v, v, Exact())
			require.True(t, result.Passed)
			require.Equal(t, KindNone, result.Kind)
			require.Empty(t, result.Message)
			require.NoError(t, result.Err())
		})
	}
}

func TestCompare_UnequalValuesRecordedVerbatim(t *testing.T) {
	result := Compare("Block Hash", "0xdef", "0xabc", Exact())

	require.False(t, result.Passed)
	require.Equal(t, "Block Hash", result.Name)
	require.Equal(t, "0xdef", result.Expected)
	require.Equal(t, "0xabc", result.Actual)
	require.Equal(t, KindMismatch, result.Kind)
	require.Contains(t, result.Message, "MismatchError")
	require.Contains(t, result.Message, "0xabc")
	require.Contains(t, result.Message, "0xdef")
	require.Equal(t, "exact", result.Rule)
	require.ErrorIs(t, result.Err(), ErrMismatch)
}

func TestCompare_IncomparableValuesAreParseErrors(t *testing.T) {
	result := Compare("Timestamp", "not-a-number", uint64(1), Tolerance(10))

	require.False(t, result.Passed)
	require.Equal(t, KindParse, result.Kind)
	require.ErrorIs(t, result.Err(), ErrParse)
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind Kind
	}{
		{name: "network", err: fmt.Errorf("%w: connection refused", ErrNetwork), kind: KindNetwork},
		{name: "timeout", err: ClassifyTransport(context.DeadlineExceeded), kind: KindTimeout},
		{name: "parse", err: fmt.Errorf("decode: %w", ErrParse), kind: KindParse},
		{name: "field missing is a parse error", err: fmt.Errorf("hash: %w", ErrFieldMissing), kind: KindParse},
		{name: "unclassified", err: errors.New("boom"), kind: KindUnknown},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := FromError("Node Version", test.err).WithGroup("Node Version")

			require.False(t, result.Passed)
			require.Equal(t, test.kind, result.Kind)
			require.Contains(t, result.Message, string(test.kind))
			require.Equal(t, "Node Version / Node Version", result.FullName())
		})
	}
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

var _ net.Error = timeoutErr{}

func TestClassifyTransport(t *testing.T) {
	require.Nil(t, ClassifyTransport(nil))
	require.ErrorIs(t, ClassifyTransport(errors.New("dial tcp: connection refused")), ErrNetwork)
	require.ErrorIs(t, ClassifyTransport(timeoutErr{}), ErrTimeout)
	require.ErrorIs(t, ClassifyTransport(fmt.Errorf("wrapped: %w", context.DeadlineExceeded)), ErrTimeout)

	alreadyParse := fmt.Errorf("%w: bad body", ErrParse)
	require.Equal(t, alreadyParse, ClassifyTransport(alreadyParse))
}
