// Package testutil builds deterministic value sets and .vtu fixture
// files for tests.
package testutil

import (
	"math"
	"math/rand"
)

// Ramp returns n uniformly spaced values from 0 to 1 inclusive.
func Ramp(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) / float64(n-1)
	}

	return out
}

// Constant returns a slice of length n filled with value.
func Constant(value float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}

	return out
}

// Noise returns reproducible pseudo-random values in [-amplitude, amplitude].
func Noise(seed int64, amplitude float64, n int) []float64 {
	out := make([]float64, n)
	rng := rand.New(rand.NewSource(seed))

	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return out
}

// Perturbed returns a copy of values with every element scaled by
// (1 + scale).
func Perturbed(values []float64, scale float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v * (1 + scale)
	}

	return out
}

// Sine returns n samples of a sine over cycles full periods.
func Sine(amplitude float64, cycles, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*float64(cycles)*float64(i)/float64(n))
	}

	return out
}
