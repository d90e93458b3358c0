// SPDX-License-Identifier: MIT

package collective

import (
	"context"
	"fmt"
	"sync"

	"github.com/katalvlaran/distmul/partition"
)

// Group connects Size() in-process participants. Each participant drives its
// own Member from its own goroutine; Members must not be shared.
//
// Every collective is a round: participants deposit a private copy of their
// contribution, the last one to arrive releases the round, and each then
// reads its own result from the completed contributions. A round object is
// never reused, so a fast participant can enter the next collective while a
// slow one is still reading the previous round.
type Group struct {
	size    int
	members []*Member

	mu     sync.Mutex
	cur    *round        // round being filled; nil between collectives
	cause  error         // first failure, sticky
	broken chan struct{} // closed once cause is set
}

// round is one rendezvous.
type round struct {
	call    call
	slots   [][]float64
	arrived int
	done    chan struct{}
}

// Member is one participant's Channel into a Group.
type Member struct {
	g    *Group
	rank int
}

var _ Channel = (*Member)(nil)

// NewGroup creates a group of size participants and returns it; use
// Member(i) or Members() to hand out endpoints.
func NewGroup(size int) (*Group, error) {
	if size < 1 {
		return nil, fmt.Errorf("NewGroup(%d): %w", size, ErrBadRank)
	}
	g := &Group{size: size, broken: make(chan struct{})}
	g.members = make([]*Member, size)
	for i := range g.members {
		g.members[i] = &Member{g: g, rank: i}
	}

	return g, nil
}

// Size is the number of participants.
func (g *Group) Size() int { return g.size }

// Member returns participant rank's endpoint.
func (g *Group) Member(rank int) (*Member, error) {
	if rank < 0 || rank >= g.size {
		return nil, fmt.Errorf("Member(%d) of %d: %w", rank, g.size, ErrBadRank)
	}

	return g.members[rank], nil
}

// Members returns all endpoints in rank order.
func (g *Group) Members() []*Member {
	return append([]*Member(nil), g.members...)
}

// Abort breaks the group; see Channel.Abort.
func (g *Group) Abort(cause error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.abortLocked(cause)
}

// Err returns the failure that broke the group, or nil.
func (g *Group) Err() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.cause
}

func (g *Group) abortLocked(cause error) {
	if g.cause != nil {
		return
	}
	if cause == nil {
		cause = ErrClosed
	}
	g.cause = cause
	close(g.broken)
}

// exchange deposits rank's contribution into the current round and blocks
// until the round completes, the group breaks or ctx is done.
func (g *Group) exchange(ctx context.Context, rank int, c call, contribution []float64) ([][]float64, error) {
	g.mu.Lock()
	if g.cause != nil {
		cause := g.cause
		g.mu.Unlock()
		return nil, abortedError(cause)
	}
	r := g.cur
	if r == nil {
		r = &round{call: c, slots: make([][]float64, g.size), done: make(chan struct{})}
		g.cur = r
	} else if !r.call.agrees(c) {
		err := fmt.Errorf("rank %d entered %s, others entered %s: %w", rank, c, r.call, ErrMismatch)
		g.abortLocked(err)
		g.mu.Unlock()
		return nil, err
	}
	r.slots[rank] = contribution
	r.arrived++
	if r.arrived == g.size {
		g.cur = nil
		close(r.done)
	}
	g.mu.Unlock()

	// A completed round wins over a concurrent abort.
	select {
	case <-r.done:
		return r.slots, nil
	default:
	}
	select {
	case <-r.done:
		return r.slots, nil
	case <-g.broken:
		return nil, abortedError(g.Err())
	case <-ctx.Done():
		err := ctx.Err()
		g.Abort(fmt.Errorf("rank %d: %w", rank, err))
		return nil, err
	}
}

// run is the shared body of the three collectives.
func (m *Member) run(ctx context.Context, c call, payload []float64) ([]float64, error) {
	if err := c.check(m.g.size); err != nil {
		m.g.Abort(collectiveErrorf(c.kind, m.rank, err))
		return nil, collectiveErrorf(c.kind, m.rank, err)
	}
	if err := c.checkPayload(m.rank, payload); err != nil {
		m.g.Abort(collectiveErrorf(c.kind, m.rank, err))
		return nil, collectiveErrorf(c.kind, m.rank, err)
	}
	if err := ctx.Err(); err != nil {
		m.g.Abort(fmt.Errorf("rank %d: %w", m.rank, err))
		return nil, collectiveErrorf(c.kind, m.rank, err)
	}
	slots, err := m.g.exchange(ctx, m.rank, c, c.contribution(m.rank, payload))
	if err != nil {
		return nil, collectiveErrorf(c.kind, m.rank, err)
	}

	return c.deliver(m.rank, slots), nil
}

// Rank implements Channel.
func (m *Member) Rank() int { return m.rank }

// Size implements Channel.
func (m *Member) Size() int { return m.g.size }

// Broadcast implements Channel.
func (m *Member) Broadcast(ctx context.Context, payload []float64, root int) ([]float64, error) {
	return m.run(ctx, call{kind: KindBroadcast, root: root}, payload)
}

// Scatter implements Channel.
func (m *Member) Scatter(ctx context.Context, payload []float64, plan partition.Plan, root int) ([]float64, error) {
	return m.run(ctx, call{kind: KindScatter, root: root, plan: plan}, payload)
}

// Gather implements Channel.
func (m *Member) Gather(ctx context.Context, local []float64, plan partition.Plan, root int) ([]float64, error) {
	return m.run(ctx, call{kind: KindGather, root: root, plan: plan}, local)
}

// Abort implements Channel.
func (m *Member) Abort(cause error) { m.g.Abort(cause) }
