// Package distmul multiplies dense matrices by splitting the rows of the
// left operand over a group of participants.
//
// A coordinator broadcasts B in full, scatters contiguous row bands of A,
// every participant (the coordinator included) multiplies its band locally,
// and the coordinator gathers C in the original row order. The result is
// bit-identical to a single-participant product for any participant count.
//
// Packages, bottom-up:
//
//	partition/   balanced contiguous row plans (counts and offsets)
//	matrix/      row-major Dense buffers, row-band views, reference Mul, previews
//	collective/  Broadcast, Scatter, Gather over goroutines (Group) or TCP (Network)
//	kernel/      the local band × B multiply, optionally over several goroutines
//	engine/      the phase-by-phase orchestration (Run) and an in-process Multiply
//	builder/     reproducible matrix fixtures
//	config/      TOML configuration for the command
//	cmd/distmul  the command: run a local group, one TCP participant, or launch P processes
//
// Quick start:
//
//	a, _ := builder.Dense(1000, 1000)
//	b, _ := builder.Dense(1000, 800, builder.WithSeed(2))
//	rep, err := engine.Multiply(ctx, a, b, 4)
//	// rep.C is 1000×800, rep.Seconds() the time from broadcast to gather.
//
// Runnable scenarios live in examples/.
package distmul
