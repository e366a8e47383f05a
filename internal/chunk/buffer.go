package chunk

import (
	"errors"
	"io"
	"sync"
)

// Buffer is a read buffer that hands out its complete records and keeps the
// unfinished trailing record for the next fill.
//
// Handed out byte slices are owned by the caller. They can be given back
// with Release, so that a steady state run allocates about one buffer per
// chunk in flight.
type Buffer struct {
	buf  []byte // buf[:n] is valid data
	n    int
	size int
	pool sync.Pool
}

// NewBuffer returns a buffer that reads size bytes at a time.
func NewBuffer(size int) *Buffer {
	if size < 1 {
		size = 1
	}
	b := &Buffer{size: size}
	b.pool.New = func() any {
		p := make([]byte, b.size)
		return &p
	}
	b.buf = b.get(0)
	return b
}

// get returns a buffer with room for at least need bytes.
func (b *Buffer) get(need int) []byte {
	if need > b.size {
		return make([]byte, need+b.size)
	}
	p := b.pool.Get().(*[]byte)
	return (*p)[:b.size]
}

// Release gives a slice obtained from CarryRemainder or Drain back to the
// buffer. It must not be used afterwards.
func (b *Buffer) Release(p []byte) {
	if cap(p) != b.size {
		return
	}
	p = p[:cap(p)]
	b.pool.Put(&p)
}

// Len returns the number of buffered bytes.
func (b *Buffer) Len() int {
	return b.n
}

// Fill reads from r after the carried fragment until the buffer is full or
// r is exhausted, in which case it returns io.EOF. A buffer that is still
// full from the previous fill, because it holds a single record longer than
// the buffer, is doubled first.
func (b *Buffer) Fill(r io.Reader) (int, error) {
	if b.buf == nil {
		b.buf = b.get(0)
	}
	if b.n == len(b.buf) {
		grown := make([]byte, 2*len(b.buf))
		copy(grown, b.buf[:b.n])
		b.buf = grown
	}
	k, err := io.ReadFull(r, b.buf[b.n:])
	b.n += k
	switch {
	case err == nil:
		return k, nil
	case errors.Is(err, io.ErrUnexpectedEOF):
		return k, io.EOF
	default:
		return k, err
	}
}

// CompleteRecordLength returns the number of leading buffered bytes that
// form complete records.
func (b *Buffer) CompleteRecordLength() int {
	return LastBoundary(b.buf[:b.n])
}

// CarryRemainder returns the complete records and moves the trailing
// fragment to the front of a fresh buffer, where the next Fill appends to
// it. It returns nil if there is no complete record yet.
func (b *Buffer) CarryRemainder() []byte {
	k := b.CompleteRecordLength()
	if k == 0 {
		return nil
	}
	rest := b.n - k
	next := b.get(rest + 1)
	copy(next, b.buf[k:b.n])
	chunk := b.buf[:k]
	b.buf, b.n = next, rest
	return chunk
}

// Drain returns whatever is left in the buffer, typically a last record
// without a trailing newline, and empties the buffer.
func (b *Buffer) Drain() []byte {
	if b.n == 0 {
		return nil
	}
	rest := b.buf[:b.n]
	b.buf, b.n = nil, 0
	return rest
}
