package model

// MovingAverage is aligned index-for-index with the PriceSeries it was
// computed from. Values[i] is meaningful only when Defined[i] is true.
type MovingAverage struct {
	Window  int
	Values  []float64
	Defined []bool
}

// Len returns the length of the series the average is aligned with.
func (m MovingAverage) Len() int { return len(m.Values) }

// At returns the value at i and whether it is defined.
func (m MovingAverage) At(i int) (float64, bool) {
	if i < 0 || i >= len(m.Values) || !m.Defined[i] {
		return 0, false
	}
	return m.Values[i], true
}

// DefinedCount returns the number of defined positions.
func (m MovingAverage) DefinedCount() int {
	n := 0
	for _, d := range m.Defined {
		if d {
			n++
		}
	}
	return n
}

// Nullable returns the values with undefined positions as nil, for JSON output.
func (m MovingAverage) Nullable() []*float64 {
	out := make([]*float64, len(m.Values))
	for i := range m.Values {
		if m.Defined[i] {
			v := m.Values[i]
			out[i] = &v
		}
	}
	return out
}
