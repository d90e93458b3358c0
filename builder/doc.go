// Package builder generates matrix fixtures for tests, benchmarks, examples
// and the command-line demo: random operands, constant fills, index ramps
// and identities.
//
// Configuration follows the functional-options style used across the
// module:
//
//   - Option:    a function that mutates the builder configuration.
//   - ValueFn:   produces the value for cell (i, j) given an optional RNG.
//   - WithSeed / WithRand: select the random source. Without them a fixed
//     DefaultSeed is used, so every fixture is reproducible.
//
// Value distributions (ValueFn implementations):
//
//   - UniformFn(min, max): U[min, max), the default being U[0, 100).
//   - ConstantFn(v):       every cell v.
//   - NormalFn(mean, sd):  Gaussian samples.
//   - IndexFn():           i*cols + j, handy for layout checks.
//
// Option constructors panic on meaningless arguments (nil RNG, max < min);
// build functions return errors wrapping ErrBadSize for invalid shapes.
package builder
