package http

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

const (
	// initialBufferSize fits a typical sidecar block response without growing.
	initialBufferSize = 64 * 1024

	// maxPooledBufferSize keeps buffers grown by unusually large blocks out of the pool.
	maxPooledBufferSize = 4 * 1024 * 1024

	// DefaultMaxBodySize bounds a single response body.
	DefaultMaxBodySize = 32 * 1024 * 1024
)

// bufferPool manages reusable byte buffers for reading response bodies.
type bufferPool struct {
	pool        sync.Pool
	maxBodySize int64
}

func newBufferPool(maxBodySize int64) *bufferPool {
	if maxBodySize <= 0 {
		maxBodySize = DefaultMaxBodySize
	}

	return &bufferPool{
		pool: sync.Pool{
			New: func() any {
				return bytes.NewBuffer(make([]byte, 0, initialBufferSize))
			},
		},
		maxBodySize: maxBodySize,
	}
}

func (bp *bufferPool) getBuffer() *bytes.Buffer {
	buf := bp.pool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func (bp *bufferPool) putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledBufferSize {
		return
	}
	bp.pool.Put(buf)
}

// readAll reads r fully using a pooled buffer and returns an independent copy.
// Bodies longer than maxBodySize are rejected rather than silently truncated,
// since a truncated JSON body would surface as a confusing parse error.
func (bp *bufferPool) readAll(r io.Reader) ([]byte, error) {
	buf := bp.getBuffer()
	defer bp.putBuffer(buf)

	n, err := buf.ReadFrom(io.LimitReader(r, bp.maxBodySize+1))
	if err != nil {
		return nil, err
	}
	if n > bp.maxBodySize {
		return nil, fmt.Errorf("%w: limit %d bytes", ErrResponseTooLarge, bp.maxBodySize)
	}

	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}
