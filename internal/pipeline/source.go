package pipeline

import (
	"fmt"
	"io"
	"os"

	"github.com/miku/1brc-chunked/internal/measure"
	"golang.org/x/exp/mmap"
)

// Source is an opened measurements file.
type Source interface {
	io.ReadCloser
	// Size is the input size in bytes, or -1 if unknown.
	Size() int64
}

type fileSource struct {
	*os.File
	size int64
}

func (s *fileSource) Size() int64 { return s.size }

type mmapSource struct {
	*io.SectionReader
	r *mmap.ReaderAt
}

func (s *mmapSource) Size() int64 { return int64(s.r.Len()) }

func (s *mmapSource) Close() error { return s.r.Close() }

// Open opens path for sequential reading, either as a regular file or as a
// memory mapped file. A path of "-" reads standard input. Failures wrap
// measure.ErrInputUnavailable.
func Open(path string, useMmap bool) (Source, error) {
	if path == "-" {
		return &fileSource{File: os.Stdin, size: -1}, nil
	}
	if useMmap {
		r, err := mmap.Open(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", measure.ErrInputUnavailable, err)
		}
		return &mmapSource{
			SectionReader: io.NewSectionReader(r, 0, int64(r.Len())),
			r:             r,
		}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", measure.ErrInputUnavailable, err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %w", measure.ErrInputUnavailable, err)
	}
	if fi.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%w: %s is a directory", measure.ErrInputUnavailable, path)
	}
	return &fileSource{File: f, size: fi.Size()}, nil
}
