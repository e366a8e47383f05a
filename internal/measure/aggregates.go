package measure

import (
	"sort"

	"golang.org/x/exp/maps"
)

// Aggregates maps a station name, compared byte for byte, to its running
// measurement. An Aggregates value is owned by one goroutine at a time.
type Aggregates map[string]*Measurement

// Add folds a temperature into the station's measurement.
func (a Aggregates) Add(name []byte, t Temp) {
	// the string conversion in the lookup does not allocate
	if m, ok := a[string(name)]; ok {
		m.Add(t)
		return
	}
	a[string(name)] = NewMeasurement(t)
}

// AddLine parses a single record and folds it in.
func (a Aggregates) AddLine(line []byte) error {
	name, t, err := ParseRecord(line)
	if err != nil {
		return err
	}
	a.Add(name, t)
	return nil
}

// Merge folds all measurements of o into a. The measurements of o are copied,
// o can be discarded or reused afterwards.
func (a Aggregates) Merge(o Aggregates) {
	for k, v := range o {
		if m, ok := a[k]; ok {
			m.Merge(v)
			continue
		}
		c := *v
		a[k] = &c
	}
}

// MergeAll reduces any number of per-chunk aggregates into a new one.
func MergeAll(all ...Aggregates) Aggregates {
	data := make(Aggregates)
	for _, m := range all {
		data.Merge(m)
	}
	return data
}

// Stations returns the station names in ascending byte order.
func (a Aggregates) Stations() []string {
	keys := maps.Keys(a)
	sort.Strings(keys)
	return keys
}

// Count returns the number of records folded into a.
func (a Aggregates) Count() int64 {
	var n int64
	for _, m := range a {
		n += m.Count
	}
	return n
}
