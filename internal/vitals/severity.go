package vitals

import "fmt"

// Severity is the classified clinical urgency of a reading or patient,
// totally ordered: Stable < Warning < Critical.
type Severity int

const (
	SeverityStable Severity = iota
	SeverityWarning
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityCritical:
		return "critical"
	default:
		return "stable"
	}
}

// Worse returns the higher of two severities.
func (s Severity) Worse(o Severity) Severity {
	if o > s {
		return o
	}
	return s
}

// Regime biases synthetic generation toward a target severity band.
// It shares vocabulary with Severity but is a generation-time intent,
// not a classification result.
type Regime string

const (
	RegimeNormal   Regime = "normal"
	RegimeWarning  Regime = "warning"
	RegimeCritical Regime = "critical"
)

// ParseRegime converts a config string into a Regime. An empty string
// maps to RegimeNormal.
func ParseRegime(s string) (Regime, error) {
	switch Regime(s) {
	case RegimeNormal, RegimeWarning, RegimeCritical:
		return Regime(s), nil
	case "":
		return RegimeNormal, nil
	}
	return RegimeNormal, fmt.Errorf("unknown regime %q", s)
}

// Regime maps an observed severity to the generation regime that keeps
// the patient trending in the same band on the next tick.
func (s Severity) Regime() Regime {
	switch s {
	case SeverityWarning:
		return RegimeWarning
	case SeverityCritical:
		return RegimeCritical
	default:
		return RegimeNormal
	}
}
