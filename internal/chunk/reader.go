package chunk

import (
	"fmt"
	"io"

	"github.com/miku/1brc-chunked/internal/measure"
)

// DefaultSize is the default number of bytes read per chunk.
const DefaultSize = 4 << 20

// Chunk is a run of complete records. It is owned by whoever received it
// from Reader.Next.
type Chunk struct {
	Seq    int   // dispatch order, starting at 0
	Offset int64 // input offset of Data[0]
	Data   []byte

	buf *Buffer
}

// Release hands the chunk's memory back to the reader. Data must not be used
// afterwards.
func (c Chunk) Release() {
	if c.buf != nil {
		c.buf.Release(c.Data)
	}
}

// Reader cuts an input stream into chunks at record boundaries. It reads
// sequentially and is not safe for concurrent use.
type Reader struct {
	r      io.Reader
	buf    *Buffer
	seq    int
	offset int64
	eof    bool
}

// NewReader returns a reader that fills size bytes at a time. A size of 0
// or less means DefaultSize.
func NewReader(r io.Reader, size int) *Reader {
	if size <= 0 {
		size = DefaultSize
	}
	return &Reader{r: r, buf: NewBuffer(size)}
}

// Next returns the next chunk, or io.EOF once the input is exhausted. A last
// line without a trailing newline is treated as a complete record and
// returned in a final chunk of its own.
func (r *Reader) Next() (Chunk, error) {
	for !r.eof {
		_, err := r.buf.Fill(r.r)
		if err == io.EOF {
			r.eof = true
		} else if err != nil {
			return Chunk{}, fmt.Errorf("%w: read at offset %d: %w",
				measure.ErrInputUnavailable, r.offset+int64(r.buf.Len()), err)
		}
		if data := r.buf.CarryRemainder(); data != nil {
			return r.emit(data), nil
		}
	}
	if data := r.buf.Drain(); data != nil {
		return r.emit(data), nil
	}
	return Chunk{}, io.EOF
}

func (r *Reader) emit(data []byte) Chunk {
	c := Chunk{
		Seq:    r.seq,
		Offset: r.offset,
		Data:   data,
		buf:    r.buf,
	}
	r.seq++
	r.offset += int64(len(data))
	return c
}

// Offset returns the number of bytes handed out in chunks so far.
func (r *Reader) Offset() int64 {
	return r.offset
}
