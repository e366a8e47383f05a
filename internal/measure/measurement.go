// Package measure aggregates station temperatures: parsing, folding,
// merging and printing the summary.
package measure

// Measurement, as there is no need to keep all numbers around, we can compute
// them on the fly.
type Measurement struct {
	Min   Temp
	Max   Temp
	Sum   TempSum
	Count int64
}

// NewMeasurement returns a measurement holding a single sample.
func NewMeasurement(t Temp) *Measurement {
	return &Measurement{
		Min:   t,
		Max:   t,
		Sum:   TempSum(t),
		Count: 1,
	}
}

// Add folds a single sample into m.
func (m *Measurement) Add(t Temp) {
	m.Min = min(m.Min, t)
	m.Max = max(m.Max, t)
	m.Sum += TempSum(t)
	m.Count++
}

// Merge combines o into m. The result does not depend on merge order.
func (m *Measurement) Merge(o *Measurement) {
	m.Min = min(m.Min, o.Min)
	m.Max = max(m.Max, o.Max)
	m.Sum += o.Sum
	m.Count += o.Count
}

// Mean returns Sum/Count rounded half away from zero to the nearest tenth.
// The division is done on integers, so an exact x.x5 always rounds outward.
func (m *Measurement) Mean() Temp {
	if m.Count == 0 {
		return 0
	}
	s := int64(m.Sum)
	neg := s < 0
	if neg {
		s = -s
	}
	q := (2*s + m.Count) / (2 * m.Count)
	if neg {
		q = -q
	}
	return Temp(q)
}

// Append appends "min/mean/max" to b.
func (m *Measurement) Append(b []byte) []byte {
	b = m.Min.Append(b)
	b = append(b, '/')
	b = m.Mean().Append(b)
	b = append(b, '/')
	return m.Max.Append(b)
}

func (m *Measurement) String() string {
	return string(m.Append(nil))
}
