// SPDX-License-Identifier: MIT

package collective

import (
	"context"
	"sync/atomic"

	"github.com/katalvlaran/distmul/partition"
)

// Counter wraps a Channel and counts the collectives entered through it,
// whether or not they succeed. It is safe for concurrent reads while the
// wrapped participant runs.
type Counter struct {
	Channel
	counts [kindCount]atomic.Int64
}

var _ Channel = (*Counter)(nil)

// NewCounter wraps ch.
func NewCounter(ch Channel) *Counter {
	return &Counter{Channel: ch}
}

// Count returns how many calls of kind were entered.
func (c *Counter) Count(kind Kind) int64 {
	if kind >= kindCount {
		return 0
	}

	return c.counts[kind].Load()
}

// Calls is the total over all kinds.
func (c *Counter) Calls() int64 {
	var total int64
	for k := range c.counts {
		total += c.counts[k].Load()
	}

	return total
}

// Broadcast implements Channel.
func (c *Counter) Broadcast(ctx context.Context, payload []float64, root int) ([]float64, error) {
	c.counts[KindBroadcast].Add(1)
	return c.Channel.Broadcast(ctx, payload, root)
}

// Scatter implements Channel.
func (c *Counter) Scatter(ctx context.Context, payload []float64, plan partition.Plan, root int) ([]float64, error) {
	c.counts[KindScatter].Add(1)
	return c.Channel.Scatter(ctx, payload, plan, root)
}

// Gather implements Channel.
func (c *Counter) Gather(ctx context.Context, local []float64, plan partition.Plan, root int) ([]float64, error) {
	c.counts[KindGather].Add(1)
	return c.Channel.Gather(ctx, local, plan, root)
}
