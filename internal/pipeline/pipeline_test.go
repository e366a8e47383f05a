package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/miku/1brc-chunked/internal/gen"
	"github.com/miku/1brc-chunked/internal/measure"
)

func format(t *testing.T, data measure.Aggregates) string {
	t.Helper()
	var buf bytes.Buffer
	if err := measure.Format(&buf, data); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestRunExample(t *testing.T) {
	t.Parallel()

	const want = "{Berlin=3.4/3.4/3.4, Hamburg=-1.2/5.4/12.0}\n"
	for _, input := range []string{
		"Hamburg;12.0\nBerlin;3.4\nHamburg;-1.2\n",
		"Hamburg;12.0\nBerlin;3.4\nHamburg;-1.2",
	} {
		for _, size := range []int{1, 5, 13, 14, 4096} {
			data, err := Run(context.Background(), strings.NewReader(input), Config{Workers: 3, ChunkSize: size})
			if err != nil {
				t.Fatalf("size %d: %v", size, err)
			}
			if got := format(t, data); got != want {
				t.Errorf("size %d: got %q, want %q", size, got, want)
			}
		}
	}
}

func TestRunMatchesSequential(t *testing.T) {
	t.Parallel()

	const rows = 20_000
	var input bytes.Buffer
	if err := gen.Write(&input, rows, 42); err != nil {
		t.Fatal(err)
	}
	want, err := Sequential(bytes.NewReader(input.Bytes()), 1<<20)
	if err != nil {
		t.Fatal(err)
	}
	if want.Count() != rows {
		t.Fatalf("sequential counted %d records, want %d", want.Count(), rows)
	}

	for _, size := range []int{7, 64, 100, 1000, 4096, 1 << 16} {
		for _, workers := range []int{1, 2, 8} {
			t.Run(fmt.Sprintf("size=%d/workers=%d", size, workers), func(t *testing.T) {
				t.Parallel()
				got, err := Run(context.Background(), bytes.NewReader(input.Bytes()), Config{
					Workers:   workers,
					ChunkSize: size,
				})
				if err != nil {
					t.Fatal(err)
				}
				if got.Count() != rows {
					t.Errorf("got %d records, want %d", got.Count(), rows)
				}
				if !reflect.DeepEqual(got, want) {
					t.Errorf("parallel result differs from sequential")
				}
			})
		}
	}
}

func TestRunMalformed(t *testing.T) {
	t.Parallel()

	var input bytes.Buffer
	if err := gen.Write(&input, 5000, 7); err != nil {
		t.Fatal(err)
	}
	input.WriteString("Hamburg;twelve\n")
	if err := gen.Write(&input, 5000, 8); err != nil {
		t.Fatal(err)
	}

	for _, size := range []int{64, 4096, 1 << 20} {
		data, err := Run(context.Background(), bytes.NewReader(input.Bytes()), Config{Workers: 4, ChunkSize: size})
		if !errors.Is(err, measure.ErrMalformedRecord) {
			t.Fatalf("size %d: got error %v, want ErrMalformedRecord", size, err)
		}
		if data != nil {
			t.Errorf("size %d: got partial result with %d stations", size, len(data))
		}
		if _, err := Sequential(bytes.NewReader(input.Bytes()), size); !errors.Is(err, measure.ErrMalformedRecord) {
			t.Fatalf("size %d: sequential got error %v, want ErrMalformedRecord", size, err)
		}
	}
}

func TestRunSingleStation(t *testing.T) {
	t.Parallel()

	input := strings.Repeat("X;-7.3\n", 1000)
	for _, size := range []int{1, 7, 8, 100, 1 << 20} {
		data, err := Run(context.Background(), strings.NewReader(input), Config{Workers: 4, ChunkSize: size})
		if err != nil {
			t.Fatal(err)
		}
		if got := format(t, data); got != "{X=-7.3/-7.3/-7.3}\n" {
			t.Errorf("size %d: got %q", size, got)
		}
		if data["X"].Count != 1000 {
			t.Errorf("size %d: got count %d", size, data["X"].Count)
		}
	}
}

func TestRunEmpty(t *testing.T) {
	t.Parallel()

	data, err := Run(context.Background(), strings.NewReader(""), Config{})
	if err != nil {
		t.Fatal(err)
	}
	if got := format(t, data); got != "{}\n" {
		t.Errorf("got %q, want {}", got)
	}
}

func TestRunCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, strings.NewReader("a;1.0\n"), Config{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}

func TestOpen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fn := filepath.Join(dir, "measurements.txt")
	var input bytes.Buffer
	if err := gen.Write(&input, 3000, 3); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(fn, input.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	want, err := Sequential(bytes.NewReader(input.Bytes()), 0)
	if err != nil {
		t.Fatal(err)
	}

	for _, useMmap := range []bool{false, true} {
		t.Run(fmt.Sprintf("mmap=%v", useMmap), func(t *testing.T) {
			t.Parallel()
			src, err := Open(fn, useMmap)
			if err != nil {
				t.Fatal(err)
			}
			defer src.Close()
			if src.Size() != int64(input.Len()) {
				t.Errorf("Size() = %d, want %d", src.Size(), input.Len())
			}
			got, err := Run(context.Background(), src, Config{ChunkSize: 512})
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("result from file differs from in-memory result")
			}
		})
	}
}

func TestOpenUnavailable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, useMmap := range []bool{false, true} {
		_, err := Open(filepath.Join(dir, "missing.txt"), useMmap)
		if !errors.Is(err, measure.ErrInputUnavailable) {
			t.Errorf("mmap=%v: got %v, want ErrInputUnavailable", useMmap, err)
		}
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("mmap=%v: got %v, want wrapped os.ErrNotExist", useMmap, err)
		}
	}
	if _, err := Open(dir, false); !errors.Is(err, measure.ErrInputUnavailable) {
		t.Errorf("directory: got %v, want ErrInputUnavailable", err)
	}
}

func BenchmarkRun(b *testing.B) {
	var input bytes.Buffer
	if err := gen.Write(&input, 200_000, 1); err != nil {
		b.Fatal(err)
	}
	b.SetBytes(int64(input.Len()))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Run(context.Background(), bytes.NewReader(input.Bytes()), Config{ChunkSize: 256 << 10}); err != nil {
			b.Fatal(err)
		}
	}
}
