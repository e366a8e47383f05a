package measure

import (
	"bufio"
	"io"
)

// Format writes the summary line "{a=min/mean/max, b=...}\n", stations in
// ascending byte order.
func Format(w io.Writer, a Aggregates) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(a.appendSummary(nil)); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}
	return bw.Flush()
}

// String returns the summary without the trailing newline.
func (a Aggregates) String() string {
	return string(a.appendSummary(nil))
}

func (a Aggregates) appendSummary(b []byte) []byte {
	b = append(b, '{')
	for i, k := range a.Stations() {
		if i > 0 {
			b = append(b, ", "...)
		}
		b = append(b, k...)
		b = append(b, '=')
		b = a[k].Append(b)
	}
	return append(b, '}')
}
