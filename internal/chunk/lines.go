// Package chunk reads a stream of newline terminated records in large,
// self-contained chunks. No record is ever split across two chunks.
package chunk

import "bytes"

// LastBoundary returns the length of the prefix of data that consists of
// complete, newline terminated records. It is 0 if data has no newline.
func LastBoundary(data []byte) int {
	return bytes.LastIndexByte(data, '\n') + 1
}

// Lines iterates over the newline separated records of a byte slice. The
// returned lines are sub-slices of the original data, nothing is copied.
type Lines struct {
	data  []byte
	pos   int
	start int
}

// NewLines returns an iterator over data.
func NewLines(data []byte) *Lines {
	return &Lines{data: data}
}

// Next returns the next record without its newline. A trailing segment
// without a newline is returned as the last record; data ending in a newline
// yields no empty record at the end.
func (l *Lines) Next() ([]byte, bool) {
	if l.pos >= len(l.data) {
		return nil, false
	}
	l.start = l.pos
	rest := l.data[l.pos:]
	i := bytes.IndexByte(rest, '\n')
	if i == -1 {
		l.pos = len(l.data)
		return rest, true
	}
	l.pos += i + 1
	return rest[:i], true
}

// Start returns the offset of the record last returned by Next.
func (l *Lines) Start() int {
	return l.start
}
