package detector

import "math/rand"

// JitterFunc perturbs a pre-jitter probability to simulate model
// uncertainty. Implementations must return values in [-0.05, 0.05].
// Tests inject a zero function to make scoring deterministic.
type JitterFunc func() float64

// UniformJitter samples uniformly from [-0.05, 0.05].
func UniformJitter() float64 {
	return rand.Float64()*0.1 - 0.05
}
