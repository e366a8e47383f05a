package pipeline

import (
	"io"

	"github.com/miku/1brc-chunked/internal/chunk"
	"github.com/miku/1brc-chunked/internal/measure"
)

// Sequential aggregates r into a single map on the calling goroutine. It
// uses the same chunking as Run and serves as a baseline.
func Sequential(r io.Reader, chunkSize int) (measure.Aggregates, error) {
	var (
		data = make(measure.Aggregates)
		cr   = chunk.NewReader(r, chunkSize)
	)
	for {
		c, err := cr.Next()
		if err == io.EOF {
			return data, nil
		}
		if err != nil {
			return nil, err
		}
		err = fold(data, c)
		c.Release()
		if err != nil {
			return nil, err
		}
	}
}
