// SPDX-License-Identifier: MIT

package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/katalvlaran/distmul/collective"
	"github.com/katalvlaran/distmul/kernel"
	"github.com/katalvlaran/distmul/matrix"
	"github.com/katalvlaran/distmul/partition"
)

// Coordinator is the rank that owns A and B, roots every collective and
// receives C.
const Coordinator = 0

// runner carries one participant through the phases of Run.
type runner struct {
	ch    collective.Channel
	dims  Dims
	rank  int
	opts  Options
	log   *slog.Logger
	phase Phase
}

func (r *runner) enter(p Phase) {
	r.phase = p
	r.log.Debug("phase", "rank", r.rank, "phase", p.String())
	if r.opts.hook != nil {
		r.opts.hook(r.rank, p)
	}
}

// fail classifies err, aborts the channel when peers could otherwise block
// and logs the failure.
func (r *runner) fail(class, err error, abort bool) error {
	err = engineErrorf(r.phase, class, err)
	if abort {
		r.ch.Abort(err)
	}
	r.log.Error("run failed", "rank", r.rank, "phase", r.phase.String(), "err", err)

	return err
}

// Run executes this participant's part of C = A × B over ch.
//
// Every participant passes the same dims. a and b are read only on the
// Coordinator and may be nil elsewhere; they are not modified.
//
// Implementation:
//   - Stage 1: validate dims and kernel options locally (no collective is
//     entered on failure); the coordinator also checks a and b against dims.
//   - Stage 2: Broadcast B, plan rows with partition.New(ARows, Size), Scatter
//     A along plan.Scale(ACols).
//   - Stage 3: kernel.Multiply on the local band.
//   - Stage 4: Gather C along plan.Scale(BCols) and build the Report.
//
// Errors:
//   - ErrConfig (with matrix.ErrInvalidDimensions, matrix.ErrDimensionMismatch
//     or kernel.ErrInvalidWorkers).
//   - ErrCollective (with collective.ErrAborted, ErrMismatch, ...).
//   - ErrCompute for a failed local multiply.
func Run(ctx context.Context, ch collective.Channel, dims Dims, a, b *matrix.Dense, opts ...Option) (*Report, error) {
	o := gatherOptions(opts...)
	if ch == nil {
		return nil, engineErrorf(PhaseStart, ErrConfig, errors.New("nil channel"))
	}
	r := &runner{ch: ch, dims: dims, rank: ch.Rank(), opts: o, log: o.logger}
	defer r.enter(PhaseTerminal)
	r.enter(PhaseStart)

	r.enter(PhaseValidateDimensions)
	if err := dims.Validate(); err != nil {
		// Every participant reaches the same verdict; nothing to abort.
		return nil, r.fail(ErrConfig, err, false)
	}
	kopts := kernel.NewOptions(kernel.WithWorkers(o.kernelWorkers))
	if err := kopts.Validate(); err != nil {
		// Options are per participant; peers may already be waiting.
		return nil, r.fail(ErrConfig, err, true)
	}
	coordinator := r.rank == Coordinator
	if coordinator {
		if err := dims.matches(a, b); err != nil {
			return nil, r.fail(ErrConfig, err, true)
		}
	}

	start := time.Now()

	r.enter(PhaseBroadcasting)
	var bPayload []float64
	if coordinator {
		bPayload = b.Data()
	}
	bBuf, err := ch.Broadcast(ctx, bPayload, Coordinator)
	if err != nil {
		return nil, r.fail(ErrCollective, err, false)
	}
	bLocal, err := matrix.NewDenseFrom(dims.BRows, dims.BCols, bBuf, matrix.WithNoValidateNaNInf())
	if err != nil {
		return nil, r.fail(ErrCollective, err, true)
	}

	r.enter(PhasePlanning)
	plan, err := partition.New(dims.ARows, ch.Size())
	if err != nil {
		return nil, r.fail(ErrConfig, err, true)
	}
	aPlan, err := plan.Scale(dims.ACols)
	if err != nil {
		return nil, r.fail(ErrConfig, err, true)
	}
	cPlan, err := plan.Scale(dims.BCols)
	if err != nil {
		return nil, r.fail(ErrConfig, err, true)
	}
	mine, ok := plan.Block(r.rank)
	if !ok {
		return nil, r.fail(ErrConfig, fmt.Errorf("rank %d outside a plan of %d", r.rank, plan.Size()), true)
	}

	r.enter(PhaseScattering)
	var aPayload []float64
	if coordinator {
		aPayload = a.Data()
	}
	aBuf, err := ch.Scatter(ctx, aPayload, aPlan, Coordinator)
	if err != nil {
		return nil, r.fail(ErrCollective, err, false)
	}
	aBand, err := matrix.NewDenseFrom(mine.Count, dims.ACols, aBuf, matrix.WithNoValidateNaNInf())
	if err != nil {
		return nil, r.fail(ErrCollective, err, true)
	}

	r.enter(PhaseComputing)
	cBand, err := kernel.Multiply(ctx, aBand, bLocal, kernel.WithWorkers(kopts.Workers()))
	if err != nil {
		return nil, r.fail(ErrCompute, err, true)
	}

	r.enter(PhaseGathering)
	cBuf, err := ch.Gather(ctx, cBand.Data(), cPlan, Coordinator)
	if err != nil {
		return nil, r.fail(ErrCollective, err, false)
	}
	elapsed := time.Since(start)

	rep := &Report{Rank: r.rank, Size: ch.Size(), Dims: dims, Plan: plan, Elapsed: elapsed}
	if coordinator {
		rows, cols := dims.C()
		if rep.C, err = matrix.NewDenseFrom(rows, cols, cBuf, matrix.WithNoValidateNaNInf()); err != nil {
			return nil, r.fail(ErrCollective, fmt.Errorf("gathered C: %w", err), false)
		}
		r.log.Info("product ready",
			"dims", dims.String(), "participants", ch.Size(), "rows", plan.Counts(), "seconds", rep.Seconds())
	}
	r.enter(PhaseDone)

	return rep, nil
}
