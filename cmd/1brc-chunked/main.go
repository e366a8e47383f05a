// 1brc-chunked prints min/mean/max temperature per station of a
// measurements file.
//
// data:
//
// Tamale;27.5
// Bergen;9.6
// Lodwar;37.1
// Whitehorse;-3.8
// Ouarzazate;19.1
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"runtime/pprof"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/miku/1brc-chunked/internal/measure"
	"github.com/miku/1brc-chunked/internal/pipeline"
	"github.com/schollz/progressbar/v3"
)

var (
	workers    = flag.Int("workers", 0, "number of concurrent chunk workers, 0 means one per CPU")
	chunkSize  = flag.String("chunk-size", "4MiB", "bytes read per chunk")
	useMmap    = flag.Bool("mmap", false, "read the input through a memory map")
	sequential = flag.Bool("sequential", false, "aggregate on a single goroutine into one map")
	progress   = flag.Bool("progress", false, "show a progress bar on stderr")
	verbose    = flag.Bool("v", false, "log sizes and timings")
	cpuprofile = flag.String("cpuprofile", "", "file to write cpu profile to")
)

func main() {
	flag.Parse()
	log.SetPrefix(fmt.Sprintf("[%s] ", uuid.New().String()[:8]))
	fn := "measurements.txt"
	if flag.NArg() > 0 {
		fn = flag.Arg(0)
	}
	if err := run(fn); err != nil {
		log.Fatal(err)
	}
}

func run(fn string) error {
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}
	size, err := humanize.ParseBytes(*chunkSize)
	if err != nil {
		return fmt.Errorf("invalid chunk size: %w", err)
	}
	if size == 0 || size > math.MaxInt32 {
		return fmt.Errorf("chunk size out of range: %s", *chunkSize)
	}
	src, err := pipeline.Open(fn, *useMmap)
	if err != nil {
		return err
	}
	defer src.Close()
	if *verbose {
		if src.Size() >= 0 {
			log.Printf("reading %s (%s) in %s chunks", fn, humanize.Bytes(uint64(src.Size())), humanize.IBytes(size))
		} else {
			log.Printf("reading %s in %s chunks", fn, humanize.IBytes(size))
		}
	}
	var r io.Reader = src
	if *progress {
		bar := progressbar.DefaultBytes(src.Size(), "aggregating")
		defer bar.Finish()
		r = io.TeeReader(src, bar)
	}
	var (
		started = time.Now()
		data    measure.Aggregates
	)
	if *sequential {
		data, err = pipeline.Sequential(r, int(size))
	} else {
		data, err = pipeline.Run(context.Background(), r, pipeline.Config{
			Workers:   *workers,
			ChunkSize: int(size),
		})
	}
	if err != nil {
		return err
	}
	if *verbose {
		log.Printf("aggregated %s records from %d stations in %s",
			humanize.Comma(data.Count()), len(data), time.Since(started))
	}
	return measure.Format(os.Stdout, data)
}
