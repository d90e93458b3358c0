// SPDX-License-Identifier: MIT

package builder

import "math/rand"

// DefaultSeed seeds the RNG when neither WithSeed nor WithRand is given.
const DefaultSeed int64 = 1

// builderConfig is passed by value to constructors.
type builderConfig struct {
	rng     *rand.Rand
	valueFn ValueFn
}

// Option mutates builderConfig. Options apply in order; last wins.
type Option func(*builderConfig)

// newBuilderConfig resolves opts against deterministic defaults:
// a DefaultSeed RNG and UniformFn(DefaultMin, DefaultMax).
// Complexity: O(len(opts)).
func newBuilderConfig(opts ...Option) builderConfig {
	cfg := builderConfig{valueFn: UniformFn(DefaultMin, DefaultMax)}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewSource(DefaultSeed))
	}

	return cfg
}

// WithSeed draws values from a fresh RNG seeded with seed.
func WithSeed(seed int64) Option {
	return func(c *builderConfig) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand draws values from rng, advancing its state. Panics on nil.
func WithRand(rng *rand.Rand) Option {
	if rng == nil {
		panic("WithRand: rng must not be nil")
	}

	return func(c *builderConfig) { c.rng = rng }
}

// WithValueFn sets the cell generator. Panics on nil.
func WithValueFn(fn ValueFn) Option {
	if fn == nil {
		panic("WithValueFn: fn must not be nil")
	}

	return func(c *builderConfig) { c.valueFn = fn }
}

// WithConstant fills every cell with v.
func WithConstant(v float64) Option { return WithValueFn(ConstantFn(v)) }

// WithUniform samples U[min, max).
func WithUniform(min, max float64) Option { return WithValueFn(UniformFn(min, max)) }

// WithNormal samples N(mean, stddev).
func WithNormal(mean, stddev float64) Option { return WithValueFn(NormalFn(mean, stddev)) }

// WithIndex fills cell (i, j) with i*cols + j.
func WithIndex() Option { return WithValueFn(IndexFn()) }
