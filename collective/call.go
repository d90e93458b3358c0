// SPDX-License-Identifier: MIT

package collective

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/distmul/partition"
)

// call is the transport-independent description of one collective: what is
// being done, around which root, along which plan. Every implementation
// funnels through it, so the delivery semantics exist in exactly one place.
type call struct {
	kind Kind
	root int
	plan partition.Plan // nil for broadcast
}

// check validates the call against the group size before anything is sent.
func (c call) check(size int) error {
	if c.root < 0 || c.root >= size {
		return fmt.Errorf("root %d of %d: %w", c.root, size, ErrBadRoot)
	}
	if c.kind == KindBroadcast {
		return nil
	}
	if c.plan.Size() != size {
		return fmt.Errorf("plan has %d blocks for %d participants: %w", c.plan.Size(), size, ErrBadPlan)
	}
	if err := c.plan.Validate(c.plan.Total()); err != nil {
		return fmt.Errorf("%w: %w", ErrBadPlan, err)
	}

	return nil
}

// checkPayload validates what rank is about to contribute.
func (c call) checkPayload(rank int, payload []float64) error {
	switch c.kind {
	case KindScatter:
		if rank == c.root && len(payload) != c.plan.Total() {
			return fmt.Errorf("root payload len=%d, plan total=%d: %w", len(payload), c.plan.Total(), ErrPayloadLength)
		}
	case KindGather:
		if want := c.plan[rank].Count; len(payload) != want {
			return fmt.Errorf("rank %d payload len=%d, plan count=%d: %w", rank, len(payload), want, ErrPayloadLength)
		}
	}

	return nil
}

// contribution returns a private copy of what rank puts into the round, or
// nil when rank has nothing to contribute (non-roots of Broadcast/Scatter).
func (c call) contribution(rank int, payload []float64) []float64 {
	if c.kind != KindGather && rank != c.root {
		return nil
	}

	return clonePayload(payload)
}

// agrees reports whether two participants entered the same collective.
func (c call) agrees(o call) bool {
	return c.kind == o.kind && c.root == o.root && c.plan.Equal(o.plan)
}

// deliver computes rank's result from the complete set of contributions.
// slots[i] is participant i's contribution. The result never aliases slots.
func (c call) deliver(rank int, slots [][]float64) []float64 {
	switch c.kind {
	case KindBroadcast:
		return clonePayload(slots[c.root])
	case KindScatter:
		b := c.plan[rank]
		return clonePayload(slots[c.root][b.Offset : b.Offset+b.Count])
	case KindGather:
		if rank != c.root {
			return nil
		}
		out := make([]float64, c.plan.Total())
		for i, b := range c.plan {
			copy(out[b.Offset:b.Offset+b.Count], slots[i])
		}
		return out
	default:
		return nil
	}
}

// String renders the call for logs and mismatch errors.
func (c call) String() string {
	if c.kind == KindBroadcast {
		return fmt.Sprintf("%s(root=%d)", c.kind, c.root)
	}

	return fmt.Sprintf("%s(root=%d, counts=%v)", c.kind, c.root, c.plan.Counts())
}

// clonePayload copies p into a fresh, non-nil slice.
func clonePayload(p []float64) []float64 {
	if p == nil {
		return []float64{}
	}

	return slices.Clone(p)
}
