package log

import "strings"

// defaultMaxLoggedStrLen limits preview string length to prevent log spam.
const defaultMaxLoggedStrLen = 100

// Preview returns a log-safe preview of str.
//
// maxLen is optional and defaults to defaultMaxLoggedStrLen.
// Returns:
//   - Original string if len <= effective max length
//   - Truncated string ending in "..." if len > effective max length
func Preview(str string, maxLen ...int) string {
	l := defaultMaxLoggedStrLen
	if len(maxLen) > 0 {
		l = maxLen[0]
	}
	return previewWithLengthAndEllipsis(str, l)
}

// PreviewBody returns a single line preview of an HTTP or WebSocket payload.
// Runs of whitespace, including newlines in pretty-printed JSON or HTML
// error pages, are collapsed to one space before truncating.
func PreviewBody(body []byte, maxLen ...int) string {
	if len(body) == 0 {
		return "<empty>"
	}
	return Preview(strings.Join(strings.Fields(string(body)), " "), maxLen...)
}

// previewWithLengthAndEllipsis truncates str to the length provided for logging.
func previewWithLengthAndEllipsis(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}
