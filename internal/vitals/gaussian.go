package vitals

import (
	"math"
	"math/rand"
)

// Gauss draws a value from N(mean, stdDev) using the Box-Muller
// transform over two uniform draws. The first draw is resampled until
// non-zero so the logarithm is always defined.
func Gauss(r *rand.Rand, mean, stdDev float64) float64 {
	u1 := r.Float64()
	for u1 == 0 {
		u1 = r.Float64()
	}
	u2 := r.Float64()
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	return mean + stdDev*z
}
