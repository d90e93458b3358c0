// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for Dense construction.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors,
//   - gatherOptions helper (internal).
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - Every flag impacts behavior and is covered by tests.
package matrix

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultValidateNaNInf toggles strict finite-value validation on Set and
	// on NewDenseFrom ingestion.
	DefaultValidateNaNInf = true
)

// Options holds the effective construction policy for a Dense.
// Fields are unexported; public APIs consume ...Option.
type Options struct {
	validateNaNInf bool // reject NaN/±Inf on Set and ingestion
}

// Option mutates Options. Options are applied in order (last-writer-wins).
type Option func(*Options)

// WithValidateNaNInf enables finite-only enforcement (the default).
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf disables finite-only enforcement.
// Useful when a payload legitimately carries ±Inf (e.g. overflowed products
// that the caller wants to inspect rather than reject).
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// ValidateNaNInf reports whether the finite-only policy is on.
func (o Options) ValidateNaNInf() bool { return o.validateNaNInf }

// NewMatrixOptions resolves option setters against documented defaults.
// Complexity: O(len(opts)).
func NewMatrixOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

// gatherOptions applies user-provided setters on top of defaults.
func gatherOptions(user ...Option) Options {
	o := Options{
		validateNaNInf: DefaultValidateNaNInf,
	}
	for _, fn := range user {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
