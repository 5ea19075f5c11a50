// Package scale decodes the parts of the SCALE codec needed to inspect a
// block without runtime metadata: compact integers, the extrinsic envelope
// and SS58 addresses.
package scale

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/bits"
)

var (
	// ErrShortInput indicates the input ended before the value was complete.
	ErrShortInput = errors.New("scale: unexpected end of input")

	// ErrOverflow indicates a compact integer does not fit in 64 bits.
	ErrOverflow = errors.New("scale: compact integer overflows uint64")
)

// DecodeCompact decodes a compact encoded unsigned integer from the start of b.
// It returns the value and the number of bytes consumed.
func DecodeCompact(b []byte) (uint64, int, error) {
	if len(b) == 0 {
		return 0, 0, ErrShortInput
	}

	switch b[0] & 0b11 {
	case 0b00:
		return uint64(b[0] >> 2), 1, nil
	case 0b01:
		if len(b) < 2 {
			return 0, 0, ErrShortInput
		}
		return uint64(binary.LittleEndian.Uint16(b) >> 2), 2, nil
	case 0b10:
		if len(b) < 4 {
			return 0, 0, ErrShortInput
		}
		return uint64(binary.LittleEndian.Uint32(b) >> 2), 4, nil
	default:
		n := int(b[0]>>2) + 4
		if len(b) < 1+n {
			return 0, 0, ErrShortInput
		}
		if n > 8 {
			for _, extra := range b[1+8 : 1+n] {
				if extra != 0 {
					return 0, 0, ErrOverflow
				}
			}
		}

		var buf [8]byte
		copy(buf[:], b[1:1+min(n, 8)])
		return binary.LittleEndian.Uint64(buf[:]), 1 + n, nil
	}
}

// EncodeCompact returns the compact encoding of v using the smallest mode.
func EncodeCompact(v uint64) []byte {
	switch {
	case v < 1<<6:
		return []byte{byte(v << 2)}
	case v < 1<<14:
		out := make([]byte, 2)
		binary.LittleEndian.PutUint16(out, uint16(v<<2)|0b01)
		return out
	case v < 1<<30:
		out := make([]byte, 4)
		binary.LittleEndian.PutUint32(out, uint32(v<<2)|0b10)
		return out
	default:
		n := (bits.Len64(v) + 7) / 8
		out := make([]byte, 1+n)
		out[0] = byte(n-4)<<2 | 0b11
		for i := 0; i < n; i++ {
			out[1+i] = byte(v >> (8 * i))
		}
		return out
	}
}

// reader is a cursor over a SCALE encoded byte slice.
type reader struct {
	buf []byte
	pos int
}

func (r *reader) remaining() int {
	return len(r.buf) - r.pos
}

func (r *reader) byte() (byte, error) {
	if r.remaining() < 1 {
		return 0, ErrShortInput
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

func (r *reader) bytes(n int) ([]byte, error) {
	if n < 0 || r.remaining() < n {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrShortInput, n, r.remaining())
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *reader) compact() (uint64, error) {
	v, n, err := DecodeCompact(r.buf[r.pos:])
	if err != nil {
		return 0, err
	}
	r.pos += n
	return v, nil
}
