// SPDX-License-Identifier: MIT

package engine

import (
	"time"

	"github.com/katalvlaran/distmul/matrix"
	"github.com/katalvlaran/distmul/partition"
)

// Report is what one participant knows after a successful run.
type Report struct {
	Rank int
	Size int
	Dims Dims

	// Plan is the row plan every participant derived.
	Plan partition.Plan

	// C is the product on the coordinator, nil elsewhere.
	C *matrix.Dense

	// Elapsed covers broadcast through gather on the coordinator.
	// Workers report their own time for the same section.
	Elapsed time.Duration
}

// Seconds is Elapsed in seconds.
func (r *Report) Seconds() float64 { return r.Elapsed.Seconds() }

// IsCoordinator reports whether this report came from rank Coordinator.
func (r *Report) IsCoordinator() bool { return r.Rank == Coordinator }
