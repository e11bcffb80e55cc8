package vitals

import (
	"math/rand"
	"time"
)

// Generation constants. Baselines shift the sampling mean off-nominal
// per regime; Advance combines proportional noise with mean-reverting
// drift plus occasional regime excursions.
const (
	noiseFactor   = 0.015
	driftStrength = 0.08

	warningShift = 0.15
	warningWiden = 1.2

	criticalShift = 0.30
	criticalWiden = 1.5

	warningExcursionP  = 0.05
	warningBandShift   = 0.12
	warningExcursMult  = 1.0
	warningRecoverMult = 0.8

	criticalExcursionP  = 0.08
	criticalHighFrac    = 0.85
	criticalLowFrac     = 1.15
	criticalExcursMult  = 1.5
	criticalRecoverMult = 0.5

	normalRevertMult = 1.5
)

// Generator produces synthetic vital-sign values and trajectories.
type Generator struct {
	rand *rand.Rand
	now  func() time.Time
}

// NewGenerator creates a generator seeded from the wall clock.
func NewGenerator() *Generator {
	return NewSeededGenerator(time.Now().UnixNano())
}

// NewSeededGenerator creates a generator with a fixed seed for
// reproducible runs.
func NewSeededGenerator(seed int64) *Generator {
	return &Generator{
		rand: rand.New(rand.NewSource(seed)),
		now:  time.Now,
	}
}

// Baseline samples an initial value for a vital under the given regime.
// Warning and critical regimes shift the sampling mean off-nominal and
// widen the spread; the result is clamped to the vital's bounds.
func (g *Generator) Baseline(vt VitalType, regime Regime) float64 {
	p, ok := params[vt]
	if !ok {
		return 0
	}
	mean, std := p.Mean, p.StdDev
	switch regime {
	case RegimeWarning:
		mean = p.Mean * (1 + g.direction()*warningShift)
		std = p.StdDev * warningWiden
	case RegimeCritical:
		mean = p.Mean * (1 + g.direction()*criticalShift)
		std = p.StdDev * criticalWiden
	}
	return clamp(Gauss(g.rand, mean, std), p)
}

// Advance evolves a value one step: small proportional noise plus drift
// toward a regime-dependent target. Normal regime reverts strongly to
// the nominal mean; warning and critical mostly recover toward it but
// occasionally drift out to an off-nominal or near-extreme target.
func (g *Generator) Advance(current float64, vt VitalType, regime Regime) float64 {
	p, ok := params[vt]
	if !ok {
		return current
	}
	noise := current * noiseFactor * (g.rand.Float64()*2 - 1)

	target := p.Mean
	mult := normalRevertMult
	switch regime {
	case RegimeWarning:
		if g.rand.Float64() < warningExcursionP {
			target = p.Mean * (1 + g.direction()*warningBandShift)
			mult = warningExcursMult
		} else {
			mult = warningRecoverMult
		}
	case RegimeCritical:
		if g.rand.Float64() < criticalExcursionP {
			if g.direction() > 0 {
				target = p.Max * criticalHighFrac
			} else {
				target = p.Min * criticalLowFrac
			}
			mult = criticalExcursMult
		} else {
			mult = criticalRecoverMult
		}
	}
	drift := (target - current) * driftStrength * mult

	return clamp(current+noise+drift, p)
}

// History produces count samples spaced interval apart ending at the
// current time: a baseline followed by successive Advance steps. Used
// only when a patient is initialized.
func (g *Generator) History(vt VitalType, count int, interval time.Duration, regime Regime) Series {
	if count <= 0 {
		return Series{}
	}
	end := g.now()
	out := make(Series, 0, count)
	v := g.Baseline(vt, regime)
	for i := 0; i < count; i++ {
		if i > 0 {
			v = g.Advance(v, vt, regime)
		}
		ts := end.Add(-interval * time.Duration(count-1-i))
		out = append(out, Sample{Timestamp: ts, Value: v})
	}
	return out
}

func (g *Generator) direction() float64 {
	if g.rand.Float64() < 0.5 {
		return -1
	}
	return 1
}

func clamp(v float64, p Params) float64 {
	if v < p.Min {
		return p.Min
	}
	if v > p.Max {
		return p.Max
	}
	return v
}
