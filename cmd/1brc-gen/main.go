// 1brc-gen writes a synthetic measurements file, one "station;temp" record
// per line.
package main

import (
	"bufio"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/miku/1brc-chunked/internal/gen"
	"github.com/schollz/progressbar/v3"
)

var (
	numRows    = flag.Int64("n", 1_000_000, "number of records to generate")
	outputPath = flag.String("o", "measurements.txt", "output file path")
	seed       = flag.Uint64("seed", 1, "random seed")
	progress   = flag.Bool("progress", false, "show a progress bar on stderr")
)

const batch = 100_000

func main() {
	flag.Parse()
	if *numRows < 0 {
		log.Fatal("n must not be negative")
	}
	if dir := filepath.Dir(*outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatal(err)
		}
	}
	f, err := os.Create(*outputPath)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	var (
		g   = gen.New(gen.Stations, *seed)
		bw  = bufio.NewWriterSize(f, 1<<20)
		bar *progressbar.ProgressBar
	)
	if *progress {
		bar = progressbar.Default(*numRows, "generating")
	}
	for i := int64(0); i < *numRows; i++ {
		if err := g.WriteLine(bw); err != nil {
			log.Fatal(err)
		}
		if bar != nil && (i+1)%batch == 0 {
			bar.Add(batch)
		}
	}
	if err := bw.Flush(); err != nil {
		log.Fatal(err)
	}
	if bar != nil {
		bar.Finish()
	}
	if err := f.Close(); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s records to %s", humanize.Comma(*numRows), *outputPath)
}
