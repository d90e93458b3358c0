// SPDX-License-Identifier: MIT

package builder

import (
	"fmt"
	"math/rand"
)

// Bounds of the default value distribution, U[DefaultMin, DefaultMax).
const (
	DefaultMin = 0.0
	DefaultMax = 100.0
)

// ValueFn produces the value of cell (i, j) of a cols-wide matrix.
// It must be deterministic for a given RNG state.
type ValueFn func(rng *rand.Rand, i, j, cols int) float64

// ConstantFn returns a ValueFn that always yields v.
// Complexity: O(1).
func ConstantFn(v float64) ValueFn {
	return func(_ *rand.Rand, _, _, _ int) float64 { return v }
}

// UniformFn returns a ValueFn sampling U[min, max). min == max yields min.
// Panics if max < min.
func UniformFn(min, max float64) ValueFn {
	if max < min {
		panic(fmt.Sprintf("UniformFn: require min <= max, got min=%g, max=%g", min, max))
	}
	span := max - min

	return func(rng *rand.Rand, _, _, _ int) float64 {
		if span == 0 {
			return min
		}

		return min + rng.Float64()*span
	}
}

// NormalFn returns a ValueFn sampling N(mean, stddev). Panics if stddev < 0.
func NormalFn(mean, stddev float64) ValueFn {
	if stddev < 0 {
		panic(fmt.Sprintf("NormalFn: stddev must be >= 0, got %g", stddev))
	}

	return func(rng *rand.Rand, _, _, _ int) float64 {
		return mean + rng.NormFloat64()*stddev
	}
}

// IndexFn returns a ValueFn yielding the row-major index i*cols + j.
func IndexFn() ValueFn {
	return func(_ *rand.Rand, i, j, cols int) float64 {
		return float64(i*cols + j)
	}
}
