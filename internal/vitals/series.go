package vitals

// SeriesCapacity bounds how many samples a series retains.
const SeriesCapacity = 10

// Series is a time-ordered sliding window of samples for one
// (patient, vital) pair. Oldest samples are evicted first.
type Series []Sample

// Append returns a new series with the sample added at the end,
// dropping from the front when capacity is exceeded. The input series
// is never mutated; ticks publish fresh values instead of sharing
// backing arrays across readers.
func Append(s Series, smp Sample) Series {
	out := make(Series, 0, len(s)+1)
	out = append(out, s...)
	out = append(out, smp)
	if len(out) > SeriesCapacity {
		out = out[len(out)-SeriesCapacity:]
	}
	return out
}

// Latest returns the value of the most recent sample. The second return
// is false when the series is empty; a zero reading and "no data" are
// distinct results.
func Latest(s Series) (float64, bool) {
	if len(s) == 0 {
		return 0, false
	}
	return s[len(s)-1].Value, true
}

// Bundle maps every vital type to its series for one patient. All five
// keys are always present, possibly with empty series.
type Bundle map[VitalType]Series

// NewBundle creates a bundle with an empty series per vital type.
func NewBundle() Bundle {
	b := make(Bundle, len(Types))
	for _, vt := range Types {
		b[vt] = Series{}
	}
	return b
}

// Clone returns a deep copy safe to hand to readers.
func (b Bundle) Clone() Bundle {
	out := make(Bundle, len(b))
	for vt, s := range b {
		cp := make(Series, len(s))
		copy(cp, s)
		out[vt] = cp
	}
	return out
}
