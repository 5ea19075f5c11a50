package substrate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/papermoonio/sidecar-tests-substrate/substrate/scale"
)

// ParseHexNumber parses a 0x prefixed hex quantity such as a header's block number.
func ParseHexNumber(s string) (uint64, error) {
	if !strings.HasPrefix(s, "0x") {
		return 0, fmt.Errorf("hex number %q: missing 0x prefix", s)
	}
	n, err := strconv.ParseUint(s[2:], 16, 64)
	if err != nil {
		return 0, fmt.Errorf("hex number %q: %w", s, err)
	}
	return n, nil
}

// HexNumber is a block number encoded as a 0x prefixed hex string.
// Plain JSON numbers are accepted too.
type HexNumber uint64

func (n HexNumber) MarshalJSON() ([]byte, error) {
	return json.Marshal(fmt.Sprintf("0x%x", uint64(n)))
}

func (n *HexNumber) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var v uint64
		if numErr := json.Unmarshal(data, &v); numErr != nil {
			return fmt.Errorf("block number: expected hex string or number, got %s", data)
		}
		*n = HexNumber(v)
		return nil
	}

	v, err := ParseHexNumber(s)
	if err != nil {
		return err
	}
	*n = HexNumber(v)
	return nil
}

// Header is the result of chain_getHeader.
type Header struct {
	ParentHash     string          `json:"parentHash"`
	Number         HexNumber       `json:"number"`
	StateRoot      string          `json:"stateRoot"`
	ExtrinsicsRoot string          `json:"extrinsicsRoot"`
	Digest         json.RawMessage `json:"digest,omitempty"`
}

// Block holds a header and the hex encoded extrinsics.
type Block struct {
	Header     Header   `json:"header"`
	Extrinsics []string `json:"extrinsics"`
}

// DecodeExtrinsics decodes the envelope of every extrinsic in the block.
// Signer failures stay on the affected extrinsic, see scale.Extrinsic.SignerErr.
func (b Block) DecodeExtrinsics(format scale.SignerFormat) ([]scale.Extrinsic, error) {
	out := make([]scale.Extrinsic, len(b.Extrinsics))
	for i, raw := range b.Extrinsics {
		ext, err := scale.DecodeExtrinsicHex(raw, format)
		if err != nil {
			return nil, fmt.Errorf("extrinsic %d: %w", i, err)
		}
		out[i] = ext
	}
	return out, nil
}

// SignedBlock is the result of chain_getBlock.
type SignedBlock struct {
	Block          Block           `json:"block"`
	Justifications json.RawMessage `json:"justifications,omitempty"`
}

// RuntimeVersion is the result of state_getRuntimeVersion.
type RuntimeVersion struct {
	SpecName           string `json:"specName"`
	ImplName           string `json:"implName"`
	AuthoringVersion   uint32 `json:"authoringVersion"`
	SpecVersion        uint32 `json:"specVersion"`
	ImplVersion        uint32 `json:"implVersion"`
	TransactionVersion uint32 `json:"transactionVersion"`
	StateVersion       uint8  `json:"stateVersion"`
}

// Health is the result of system_health.
type Health struct {
	Peers           uint64 `json:"peers"`
	IsSyncing       bool   `json:"isSyncing"`
	ShouldHavePeers bool   `json:"shouldHavePeers"`
}

// Properties is the result of system_properties.
// Every field is optional; development chains often return an empty object.
type Properties struct {
	SS58Format    *uint16  `json:"ss58Format,omitempty"`
	TokenDecimals FlexList `json:"tokenDecimals,omitempty"`
	TokenSymbol   FlexList `json:"tokenSymbol,omitempty"`
	// IsEthereum is set by Ethereum compatible runtimes such as Moonbeam,
	// whose accounts are 20 byte AccountId20.
	IsEthereum bool `json:"isEthereum,omitempty"`
}

// SignerFormat returns the signer encoding implied by the properties.
func (p Properties) SignerFormat() scale.SignerFormat {
	if p.IsEthereum {
		return scale.SignerAccount20
	}
	return scale.SignerMultiAddress
}

// SS58Prefix returns the chain's address format, or the generic format when unset.
func (p Properties) SS58Prefix() uint16 {
	if p.SS58Format == nil {
		return scale.DefaultSS58Prefix
	}
	return *p.SS58Format
}

// FlexList is a chain property that is either a scalar or an array of
// strings or numbers, normalized to a list of strings.
type FlexList []string

func (l *FlexList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}

	elems, ok := v.([]any)
	if !ok {
		elems = []any{v}
	}

	out := make(FlexList, 0, len(elems))
	for _, elem := range elems {
		switch t := elem.(type) {
		case nil:
			continue
		case string:
			out = append(out, t)
		case json.Number:
			out = append(out, t.String())
		default:
			return fmt.Errorf("property list: unexpected element %v", elem)
		}
	}

	*l = out
	return nil
}
