// SPDX-License-Identifier: MIT

package engine

import (
	"context"
	"fmt"

	"github.com/katalvlaran/distmul/collective"
	"github.com/katalvlaran/distmul/matrix"
	"github.com/katalvlaran/distmul/partition"
	"golang.org/x/sync/errgroup"
)

// Multiply computes a × b with participants goroutines joined by a
// collective.Group and returns the coordinator's Report.
//
// The first error any participant hits is returned; peers observe it as an
// aborted channel and stop.
func Multiply(ctx context.Context, a, b *matrix.Dense, participants int, opts ...Option) (*Report, error) {
	if participants < 1 {
		return nil, engineErrorf(PhaseStart, ErrConfig,
			fmt.Errorf("participants=%d: %w", participants, partition.ErrNoParticipants))
	}
	if err := matrix.ValidateNotNil(a); err != nil {
		return nil, engineErrorf(PhaseStart, ErrConfig, fmt.Errorf("A: %w", err))
	}
	if err := matrix.ValidateNotNil(b); err != nil {
		return nil, engineErrorf(PhaseStart, ErrConfig, fmt.Errorf("B: %w", err))
	}
	group, err := collective.NewGroup(participants)
	if err != nil {
		return nil, engineErrorf(PhaseStart, ErrConfig, err)
	}

	dims := DimsOf(a, b)
	reports := make([]*Report, participants)
	var g errgroup.Group
	for _, m := range group.Members() {
		g.Go(func() error {
			var mineA, mineB *matrix.Dense
			if m.Rank() == Coordinator {
				mineA, mineB = a, b
			}
			rep, err := Run(ctx, m, dims, mineA, mineB, opts...)
			reports[m.Rank()] = rep
			return err
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	return reports[Coordinator], nil
}
