// SPDX-License-Identifier: MIT

package collective

import (
	"context"
	"fmt"

	"github.com/katalvlaran/distmul/partition"
)

// Kind identifies a collective operation.
type Kind uint8

const (
	KindBroadcast Kind = iota
	KindScatter
	KindGather

	kindCount
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindBroadcast:
		return "Broadcast"
	case KindScatter:
		return "Scatter"
	case KindGather:
		return "Gather"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Channel is one participant's endpoint in a group of Size() peers.
// Methods block until every peer has entered the matching call.
type Channel interface {
	// Rank is this participant's index in [0, Size()).
	Rank() int

	// Size is the number of participants.
	Size() int

	// Broadcast returns a copy of root's payload on every participant.
	// Non-root payloads are ignored.
	Broadcast(ctx context.Context, payload []float64, root int) ([]float64, error)

	// Scatter returns participant Rank()'s block of root's payload.
	// On root len(payload) must equal plan.Total(); elsewhere payload is ignored.
	Scatter(ctx context.Context, payload []float64, plan partition.Plan, root int) ([]float64, error)

	// Gather collects every participant's block on root, laid out by plan.
	// len(local) must equal plan[Rank()].Count. Non-roots get nil.
	Gather(ctx context.Context, local []float64, plan partition.Plan, root int) ([]float64, error)

	// Abort breaks the channel for every participant with the given cause.
	// Use it when a participant fails outside a collective so its peers do not
	// block forever in the next one.
	Abort(cause error)
}

// collectiveErrorf tags err with the operation and rank that observed it.
func collectiveErrorf(kind Kind, rank int, err error) error {
	return fmt.Errorf("%s[rank %d]: %w", kind, rank, err)
}

// abortedError wraps the recorded cause so both ErrAborted and the cause match errors.Is.
func abortedError(cause error) error {
	return fmt.Errorf("%w: %w", ErrAborted, cause)
}
