// Package pipeline aggregates a measurements stream chunk by chunk on a
// bounded pool of goroutines and merges the partial results.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/miku/1brc-chunked/internal/chunk"
	"github.com/miku/1brc-chunked/internal/measure"
	"golang.org/x/sync/errgroup"
)

// Config holds the tunables of a run. Zero values select defaults.
type Config struct {
	Workers   int // concurrent chunk tasks, default runtime.NumCPU()
	ChunkSize int // bytes per read, default chunk.DefaultSize
}

func (c Config) withDefaults() Config {
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.ChunkSize <= 0 {
		c.ChunkSize = chunk.DefaultSize
	}
	return c
}

// collector gathers the finished per-chunk aggregates. Each task adds
// exactly once.
type collector struct {
	mu   sync.Mutex
	maps []measure.Aggregates
}

func (c *collector) add(m measure.Aggregates) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.maps = append(c.maps, m)
}

// Run reads r sequentially and aggregates every chunk in its own task, with
// at most cfg.Workers tasks in flight. Once all tasks have finished the
// per-chunk results are merged. The first error of any task or of the reader
// fails the whole run; no partial result is returned.
func Run(ctx context.Context, r io.Reader, cfg Config) (measure.Aggregates, error) {
	cfg = cfg.withDefaults()
	var (
		g, gctx = errgroup.WithContext(ctx)
		cr      = chunk.NewReader(r, cfg.ChunkSize)
		results collector
		readErr error
	)
	g.SetLimit(cfg.Workers)
	for gctx.Err() == nil {
		c, err := cr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			readErr = err
			break
		}
		// blocks while cfg.Workers tasks are running
		g.Go(func() error {
			defer c.Release()
			data, err := aggregate(c)
			if err != nil {
				return err
			}
			results.add(data)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if readErr != nil {
		return nil, readErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return measure.MergeAll(results.maps...), nil
}

// aggregate folds all records of a chunk into a fresh map.
func aggregate(c chunk.Chunk) (measure.Aggregates, error) {
	data := make(measure.Aggregates)
	if err := fold(data, c); err != nil {
		return nil, err
	}
	return data, nil
}

func fold(data measure.Aggregates, c chunk.Chunk) error {
	lines := chunk.NewLines(c.Data)
	for {
		line, ok := lines.Next()
		if !ok {
			return nil
		}
		if err := data.AddLine(line); err != nil {
			return fmt.Errorf("chunk %d, offset %d: %w", c.Seq, c.Offset+int64(lines.Start()), err)
		}
	}
}
