package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPreview(t *testing.T) {
	tests := []struct {
		name   string
		str    string
		maxLen []int
		want   string
	}{
		{name: "short string unchanged", str: "0xabc", want: "0xabc"},
		{name: "default limit", str: strings.Repeat("a", 150), want: strings.Repeat("a", 97) + "..."},
		{name: "custom limit", str: "0123456789", maxLen: []int{8}, want: "01234..."},
		{name: "limit too small for ellipsis", str: "0123456789", maxLen: []int{2}, want: "01"},
		{name: "exactly at limit", str: "0123", maxLen: []int{4}, want: "0123"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.want, Preview(test.str, test.maxLen...))
		})
	}
}

func TestPreviewBody(t *testing.T) {
	require.Equal(t, "<empty>", PreviewBody(nil))
	require.Equal(t,
		"<html> <body>502 Bad Gateway</body> </html>",
		PreviewBody([]byte("<html>\n  <body>502 Bad Gateway</body>\n</html>\n")),
	)
	require.Equal(t, `{ "e...`, PreviewBody([]byte("{\n  \"error\": \"x\"\n}"), 7))
}

func TestNewLoggerWithOutput(t *testing.T) {
	var buf bytes.Buffer

	logger := NewLoggerWithOutput("info", &buf)
	logger.Debug().Msg("hidden")
	logger.Info().Str("endpoint", "ws://localhost:9944").Msg("connected")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "connected")
	require.Contains(t, out, "ws://localhost:9944")
}
