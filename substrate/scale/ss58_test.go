package scale

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

const aliceAccountID = "d43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d"

func aliceBytes(t *testing.T) []byte {
	t.Helper()
	b, err := hex.DecodeString(aliceAccountID)
	require.NoError(t, err)
	return b
}

func TestSS58(t *testing.T) {
	tests := []struct {
		name    string
		prefix  uint16
		address string
	}{
		{name: "generic substrate", prefix: 42, address: "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY"},
		{name: "polkadot", prefix: 0, address: "15oF4uVJwmo4TdGW7VfQxNLavjCXviqxT9S1MgbjMNHr6Sp5"},
		{name: "kusama", prefix: 2, address: "HNZata7iMYWmk5RvZRTiAsSDhV8366zq2YGb3tLH5Upf74F"},
		{name: "two byte prefix", prefix: 1284, address: "VdvKmYJfD4VXA9fzz1SbmCo2eYHSzUFbaDCZSuaNKJAe8YNg6"},
		{name: "largest prefix", prefix: MaxSS58Prefix, address: "yNa8JpqfFB3q8A29rCwSgxvdU94ufJw2yKKxDgznS5m1PoFvn"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			address, err := EncodeSS58(aliceBytes(t), test.prefix)
			require.NoError(t, err)
			require.Equal(t, test.address, address)

			accountID, prefix, err := DecodeSS58(test.address)
			require.NoError(t, err)
			require.Equal(t, aliceAccountID, hex.EncodeToString(accountID))
			require.Equal(t, test.prefix, prefix)
		})
	}
}

func TestSS58_Errors(t *testing.T) {
	t.Run("prefix out of range", func(t *testing.T) {
		_, err := EncodeSS58(aliceBytes(t), MaxSS58Prefix+1)
		require.ErrorIs(t, err, ErrInvalidSS58)
	})

	t.Run("unsupported account length", func(t *testing.T) {
		_, err := EncodeSS58(make([]byte, 20), 42)
		require.ErrorIs(t, err, ErrInvalidSS58)
	})

	t.Run("corrupted checksum", func(t *testing.T) {
		_, _, err := DecodeSS58("5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQZ")
		require.Error(t, err)
	})

	t.Run("not base58", func(t *testing.T) {
		_, _, err := DecodeSS58("0xd43593c7")
		require.ErrorIs(t, err, ErrInvalidSS58)
	})

	t.Run("too short", func(t *testing.T) {
		_, _, err := DecodeSS58("1")
		require.ErrorIs(t, err, ErrInvalidSS58)
	})
}
