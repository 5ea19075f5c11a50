package scale

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

const (
	// DefaultSS58Prefix is the generic Substrate address format.
	DefaultSS58Prefix uint16 = 42

	// MaxSS58Prefix is the largest prefix representable in the two byte form.
	MaxSS58Prefix uint16 = 16383
)

var (
	ErrInvalidSS58         = errors.New("ss58: invalid address")
	ErrInvalidSS58Checksum = errors.New("ss58: checksum mismatch")
)

var ss58ChecksumPrefix = []byte("SS58PRE")

// EncodeSS58 renders an account ID as an SS58 address with the given network prefix.
// Account IDs of 32 or 33 bytes use a two byte checksum; 1, 2, 4 and 8 byte
// account indices use one byte.
func EncodeSS58(accountID []byte, prefix uint16) (string, error) {
	if prefix > MaxSS58Prefix {
		return "", fmt.Errorf("%w: prefix %d out of range", ErrInvalidSS58, prefix)
	}

	checksumLen, err := ss58ChecksumLen(len(accountID))
	if err != nil {
		return "", err
	}

	var payload []byte
	if prefix < 64 {
		payload = append(payload, byte(prefix))
	} else {
		payload = append(payload,
			byte((prefix&0b0000_0000_1111_1100)>>2)|0b0100_0000,
			byte(prefix>>8)|byte((prefix&0b0000_0000_0000_0011)<<6),
		)
	}
	payload = append(payload, accountID...)

	checksum := ss58Checksum(payload)
	return base58.Encode(append(payload, checksum[:checksumLen]...)), nil
}

// DecodeSS58 parses an SS58 address, verifying its checksum.
// It returns the account ID and the network prefix.
func DecodeSS58(address string) ([]byte, uint16, error) {
	raw, err := base58.Decode(address)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrInvalidSS58, err)
	}
	if len(raw) < 3 {
		return nil, 0, fmt.Errorf("%w: too short", ErrInvalidSS58)
	}

	var (
		prefix    uint16
		prefixLen int
	)
	switch {
	case raw[0] < 64:
		prefix, prefixLen = uint16(raw[0]), 1
	case raw[0] < 128:
		lower := (raw[0] << 2) | (raw[1] >> 6)
		upper := raw[1] & 0b0011_1111
		prefix, prefixLen = uint16(lower)|uint16(upper)<<8, 2
	default:
		return nil, 0, fmt.Errorf("%w: reserved prefix byte %#x", ErrInvalidSS58, raw[0])
	}

	rest := len(raw) - prefixLen
	checksumLen := 0
	switch rest {
	case 34, 35:
		checksumLen = 2
	case 2, 3, 5, 9:
		checksumLen = 1
	default:
		return nil, 0, fmt.Errorf("%w: unexpected length %d", ErrInvalidSS58, len(raw))
	}

	payload := raw[:len(raw)-checksumLen]
	checksum := ss58Checksum(payload)
	if !bytes.Equal(checksum[:checksumLen], raw[len(raw)-checksumLen:]) {
		return nil, 0, ErrInvalidSS58Checksum
	}

	return payload[prefixLen:], prefix, nil
}

func ss58ChecksumLen(accountLen int) (int, error) {
	switch accountLen {
	case 1, 2, 4, 8:
		return 1, nil
	case 32, 33:
		return 2, nil
	default:
		return 0, fmt.Errorf("%w: unsupported account length %d", ErrInvalidSS58, accountLen)
	}
}

func ss58Checksum(payload []byte) [blake2b.Size]byte {
	return blake2b.Sum512(append(append([]byte{}, ss58ChecksumPrefix...), payload...))
}
