package vitals

// Band is an inclusive value range.
type Band struct {
	Lo float64
	Hi float64
}

// Contains reports whether v falls inside the band, bounds included.
func (b Band) Contains(v float64) bool {
	return v >= b.Lo && v <= b.Hi
}

// Thresholds holds the classification bands for one vital. A value in
// the normal band is stable, in the warning band warning, anything else
// critical. Normal is checked first, so overlapping bands are fine.
type Thresholds struct {
	Normal  Band
	Warning Band
}

var thresholds = map[VitalType]Thresholds{
	HeartRate:   {Normal: Band{60, 100}, Warning: Band{50, 120}},
	Systolic:    {Normal: Band{90, 140}, Warning: Band{80, 160}},
	Diastolic:   {Normal: Band{60, 90}, Warning: Band{50, 100}},
	SpO2:        {Normal: Band{95, 100}, Warning: Band{90, 95}},
	Temperature: {Normal: Band{36.0, 37.5}, Warning: Band{35.5, 38.5}},
}

// ThresholdsFor returns the classification bands for a vital type.
func ThresholdsFor(vt VitalType) (Thresholds, bool) {
	t, ok := thresholds[vt]
	return t, ok
}

// Classify maps a single reading to its severity using the vital's
// threshold bands. Unknown vital types classify as stable; a missing
// configuration is not itself alarming.
func Classify(value float64, vt VitalType) Severity {
	t, ok := thresholds[vt]
	if !ok {
		return SeverityStable
	}
	if t.Normal.Contains(value) {
		return SeverityStable
	}
	if t.Warning.Contains(value) {
		return SeverityWarning
	}
	return SeverityCritical
}

// Aggregate classifies the latest value of every vital with data and
// returns the worst severity. A bundle with no samples at all is
// stable: absence of data is an explicit default, not an alarm.
func Aggregate(b Bundle) Severity {
	overall := SeverityStable
	for _, vt := range Types {
		v, ok := Latest(b[vt])
		if !ok {
			continue
		}
		overall = overall.Worse(Classify(v, vt))
	}
	return overall
}
