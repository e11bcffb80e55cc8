package vitals

import (
	"testing"
	"time"
)

func TestAppendEvictsOldest(t *testing.T) {
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	var s Series
	for i := 0; i < 25; i++ {
		s = Append(s, Sample{Timestamp: base.Add(time.Duration(i) * time.Second), Value: float64(i)})
		if len(s) > SeriesCapacity {
			t.Fatalf("series grew to %d after %d appends", len(s), i+1)
		}
	}
	if len(s) != SeriesCapacity {
		t.Fatalf("expected %d samples, got %d", SeriesCapacity, len(s))
	}
	if s[0].Value != 15 || s[len(s)-1].Value != 24 {
		t.Errorf("unexpected window: first=%f last=%f", s[0].Value, s[len(s)-1].Value)
	}
	for i := 1; i < len(s); i++ {
		if s[i].Timestamp.Before(s[i-1].Timestamp) {
			t.Errorf("timestamps not ordered at %d", i)
		}
	}
}

func TestAppendDoesNotMutateInput(t *testing.T) {
	orig := Series{{Value: 1}, {Value: 2}}
	out := Append(orig, Sample{Value: 3})
	if len(orig) != 2 {
		t.Errorf("input series mutated: len=%d", len(orig))
	}
	if len(out) != 3 || out[2].Value != 3 {
		t.Errorf("unexpected output series: %+v", out)
	}
	out[0].Value = 99
	if orig[0].Value == 99 {
		t.Errorf("output aliases input backing array")
	}
}

func TestLatest(t *testing.T) {
	if _, ok := Latest(Series{}); ok {
		t.Errorf("expected no value from empty series")
	}
	v, ok := Latest(Series{{Value: 1}, {Value: 7.5}})
	if !ok || v != 7.5 {
		t.Errorf("Latest = (%f, %t), want (7.5, true)", v, ok)
	}
}

func TestNewBundleHasAllVitals(t *testing.T) {
	b := NewBundle()
	if len(b) != len(Types) {
		t.Fatalf("expected %d keys, got %d", len(Types), len(b))
	}
	for _, vt := range Types {
		s, ok := b[vt]
		if !ok {
			t.Errorf("missing key %s", vt)
		}
		if len(s) != 0 {
			t.Errorf("expected empty series for %s", vt)
		}
	}
}

func TestBundleCloneIsIndependent(t *testing.T) {
	b := NewBundle()
	b[HeartRate] = Append(b[HeartRate], Sample{Value: 72})
	cp := b.Clone()
	cp[HeartRate][0].Value = 180
	if b[HeartRate][0].Value != 72 {
		t.Errorf("clone shares sample storage with original")
	}
}
