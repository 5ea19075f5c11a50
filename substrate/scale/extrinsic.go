package scale

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/papermoonio/sidecar-tests-substrate/log"
)

const (
	preambleMask    = 0b1100_0000
	preambleBare    = 0b0000_0000
	preambleSigned  = 0b1000_0000
	preambleGeneral = 0b0100_0000
	versionMask     = 0b0011_1111
)

// AddressKind is the variant of a MultiAddress.
type AddressKind uint8

const (
	AddressID AddressKind = iota
	AddressIndex
	AddressRaw
	Address32
	Address20
)

// MultiAddress is the signer of a signed extrinsic.
type MultiAddress struct {
	Kind AddressKind
	// Bytes holds the account ID for AddressID, Address32, Address20 and AddressRaw.
	Bytes []byte
	// Index holds the account index for AddressIndex.
	Index uint64
}

// String renders the address the way the sidecar does: SS58 for 32 byte
// account IDs, 0x hex for 20 byte and raw addresses, decimal for indices.
func (a MultiAddress) String(ss58Prefix uint16) (string, error) {
	switch a.Kind {
	case AddressID, Address32:
		return EncodeSS58(a.Bytes, ss58Prefix)
	case AddressIndex:
		return strconv.FormatUint(a.Index, 10), nil
	case Address20, AddressRaw:
		return "0x" + hex.EncodeToString(a.Bytes), nil
	default:
		return "", fmt.Errorf("unknown address kind %d", a.Kind)
	}
}

// SignerFormat is the encoding of the signer of a signed extrinsic.
// It is fixed by the runtime and cannot be read from the extrinsic itself.
type SignerFormat uint8

const (
	// SignerMultiAddress is the MultiAddress enum used by most Substrate chains.
	SignerMultiAddress SignerFormat = iota
	// SignerAccount20 is a bare 20 byte AccountId20, as on Ethereum compatible
	// chains such as Moonbeam.
	SignerAccount20
)

var signerFormatNames = map[SignerFormat]string{
	SignerMultiAddress: "multiaddress",
	SignerAccount20:    "account20",
}

func (f SignerFormat) String() string {
	if name, ok := signerFormatNames[f]; ok {
		return name
	}
	return "SignerFormat(" + strconv.Itoa(int(f)) + ")"
}

// ParseSignerFormat parses "multiaddress" or "account20".
func ParseSignerFormat(s string) (SignerFormat, error) {
	for format, name := range signerFormatNames {
		if strings.EqualFold(s, name) {
			return format, nil
		}
	}
	return 0, fmt.Errorf("unknown signer format %q", s)
}

// Extrinsic is the metadata-free view of an encoded extrinsic.
//
// The signed extensions and the call of a signed extrinsic are runtime
// specific, so only the envelope up to the signer is decoded for them.
// Bare (unsigned) extrinsics expose their call index and arguments.
type Extrinsic struct {
	// Hash is the blake2b-256 hash of the full encoding, length prefix included.
	Hash [32]byte

	Version uint8
	Signed  bool
	// General is set for version 5 general transactions, which carry
	// extensions but no signature.
	General bool

	Signer *MultiAddress
	// SignerErr is set when the extrinsic is signed but its signer could not
	// be decoded. The rest of the envelope is still valid.
	SignerErr error

	// CallIndex is the pallet and call index of a bare extrinsic.
	CallIndex *[2]byte
	// Args are the encoded call arguments of a bare extrinsic.
	Args []byte
}

// HashHex returns the 0x prefixed extrinsic hash.
func (e Extrinsic) HashHex() string {
	return "0x" + hex.EncodeToString(e.Hash[:])
}

var ErrInvalidExtrinsic = errors.New("scale: invalid extrinsic")

// DecodeHex decodes an optionally 0x prefixed hex string.
func DecodeHex(s string) ([]byte, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid hex %q: %w", log.Preview(s, 20), err)
	}
	return b, nil
}

// DecodeExtrinsicHex decodes an extrinsic as returned by chain_getBlock.
func DecodeExtrinsicHex(s string, format SignerFormat) (Extrinsic, error) {
	b, err := DecodeHex(s)
	if err != nil {
		return Extrinsic{}, fmt.Errorf("%w: %w", ErrInvalidExtrinsic, err)
	}
	return DecodeExtrinsic(b, format)
}

// DecodeExtrinsic decodes the envelope of a length prefixed extrinsic.
// A signer that does not decode in format is reported in SignerErr, not as
// an error, since the hash and the signed flag are still known.
func DecodeExtrinsic(b []byte, format SignerFormat) (Extrinsic, error) {
	ext := Extrinsic{Hash: blake2b.Sum256(b)}
	r := &reader{buf: b}

	length, err := r.compact()
	if err != nil {
		return Extrinsic{}, fmt.Errorf("%w: length: %w", ErrInvalidExtrinsic, err)
	}
	if uint64(r.remaining()) != length {
		return Extrinsic{}, fmt.Errorf("%w: length prefix %d, body %d bytes", ErrInvalidExtrinsic, length, r.remaining())
	}

	versionByte, err := r.byte()
	if err != nil {
		return Extrinsic{}, fmt.Errorf("%w: version: %w", ErrInvalidExtrinsic, err)
	}
	ext.Version = versionByte & versionMask

	switch versionByte & preambleMask {
	case preambleBare:
		callIndex, err := r.bytes(2)
		if err != nil {
			return Extrinsic{}, fmt.Errorf("%w: call index: %w", ErrInvalidExtrinsic, err)
		}
		ext.CallIndex = &[2]byte{callIndex[0], callIndex[1]}
		ext.Args = b[r.pos:]
	case preambleSigned:
		ext.Signed = true
		signer, err := decodeSigner(r, format)
		if err != nil {
			ext.SignerErr = fmt.Errorf("%w: %s signer: %w", ErrInvalidExtrinsic, format, err)
			break
		}
		ext.Signer = &signer
	case preambleGeneral:
		ext.General = true
	default:
		return Extrinsic{}, fmt.Errorf("%w: unsupported preamble %#x", ErrInvalidExtrinsic, versionByte)
	}

	return ext, nil
}

func decodeSigner(r *reader, format SignerFormat) (MultiAddress, error) {
	switch format {
	case SignerMultiAddress:
		return decodeMultiAddress(r)
	case SignerAccount20:
		b, err := r.bytes(20)
		if err != nil {
			return MultiAddress{}, err
		}
		return MultiAddress{Kind: Address20, Bytes: b}, nil
	default:
		return MultiAddress{}, fmt.Errorf("unsupported signer format %s", format)
	}
}

func decodeMultiAddress(r *reader) (MultiAddress, error) {
	variant, err := r.byte()
	if err != nil {
		return MultiAddress{}, err
	}

	addr := MultiAddress{Kind: AddressKind(variant)}
	switch addr.Kind {
	case AddressID, Address32:
		addr.Bytes, err = r.bytes(32)
	case Address20:
		addr.Bytes, err = r.bytes(20)
	case AddressIndex:
		addr.Index, err = r.compact()
	case AddressRaw:
		var n uint64
		if n, err = r.compact(); err == nil {
			if n > uint64(r.remaining()) {
				return MultiAddress{}, fmt.Errorf("%w: raw address of %d bytes", ErrShortInput, n)
			}
			addr.Bytes, err = r.bytes(int(n))
		}
	default:
		return MultiAddress{}, fmt.Errorf("unknown MultiAddress variant %d", variant)
	}
	if err != nil {
		return MultiAddress{}, err
	}

	return addr, nil
}

// DecodeCompactArg decodes a call whose only argument is a compact integer,
// such as timestamp.set.
func (e Extrinsic) DecodeCompactArg() (uint64, error) {
	if e.CallIndex == nil {
		return 0, fmt.Errorf("%w: not a bare extrinsic", ErrInvalidExtrinsic)
	}

	v, n, err := DecodeCompact(e.Args)
	if err != nil {
		return 0, err
	}
	if n != len(e.Args) {
		return 0, fmt.Errorf("%w: %d trailing argument bytes", ErrInvalidExtrinsic, len(e.Args)-n)
	}
	return v, nil
}
