package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValidURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		schemes []string
		want    bool
	}{
		{name: "http sidecar", url: "http://localhost:8080", schemes: []string{"http", "https"}, want: true},
		{name: "https sidecar with path", url: "https://sidecar.example.com/api", schemes: []string{"http", "https"}, want: true},
		{name: "ws node", url: "ws://localhost:9944", schemes: []string{"ws", "wss"}, want: true},
		{name: "wss node", url: "wss://rpc.polkadot.io", schemes: []string{"ws", "wss"}, want: true},
		{name: "ws url where http is expected", url: "ws://localhost:9944", schemes: []string{"http", "https"}, want: false},
		{name: "missing scheme", url: "localhost:8080", schemes: []string{"http"}, want: false},
		{name: "missing host", url: "http://", schemes: []string{"http"}, want: false},
		{name: "empty", url: "", schemes: []string{"http"}, want: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.want, IsValidURL(test.url, test.schemes...))
		})
	}
}
