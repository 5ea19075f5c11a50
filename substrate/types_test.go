package substrate

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/papermoonio/sidecar-tests-substrate/substrate/scale"
)

func TestParseHexNumber(t *testing.T) {
	n, err := ParseHexNumber("0x64")
	require.NoError(t, err)
	require.Equal(t, uint64(100), n)

	_, err = ParseHexNumber("100")
	require.Error(t, err)

	_, err = ParseHexNumber("0xzz")
	require.Error(t, err)
}

func TestSignedBlock_Unmarshal(t *testing.T) {
	raw := `{
		"block": {
			"header": {
				"parentHash": "0x01",
				"number": "0x64",
				"stateRoot": "0x02",
				"extrinsicsRoot": "0x03",
				"digest": {"logs": []}
			},
			"extrinsics": ["0x280403000b0068e5cf8b01"]
		},
		"justifications": null
	}`

	var block SignedBlock
	require.NoError(t, json.Unmarshal([]byte(raw), &block))
	require.Equal(t, HexNumber(100), block.Block.Header.Number)
	require.Equal(t, "0x01", block.Block.Header.ParentHash)

	extrinsics, err := block.Block.DecodeExtrinsics(scale.SignerMultiAddress)
	require.NoError(t, err)
	require.Len(t, extrinsics, 1)
	require.False(t, extrinsics[0].Signed)

	bz, err := json.Marshal(block.Block.Header.Number)
	require.NoError(t, err)
	require.Equal(t, `"0x64"`, string(bz))
}

func TestProperties_Unmarshal(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		prefix   uint16
		symbols  FlexList
		decimals FlexList
	}{
		{
			name:     "polkadot",
			raw:      `{"ss58Format":0,"tokenDecimals":10,"tokenSymbol":"DOT"}`,
			prefix:   0,
			symbols:  FlexList{"DOT"},
			decimals: FlexList{"10"},
		},
		{
			name:     "multi token chain",
			raw:      `{"ss58Format":8,"tokenDecimals":[12,12],"tokenSymbol":["KAR","KUSD"]}`,
			prefix:   8,
			symbols:  FlexList{"KAR", "KUSD"},
			decimals: FlexList{"12", "12"},
		},
		{
			name:   "development chain without properties",
			raw:    `{}`,
			prefix: 42,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var props Properties
			require.NoError(t, json.Unmarshal([]byte(test.raw), &props))
			require.Equal(t, test.prefix, props.SS58Prefix())
			require.Equal(t, test.symbols, props.TokenSymbol)
			require.Equal(t, test.decimals, props.TokenDecimals)
		})
	}
}
