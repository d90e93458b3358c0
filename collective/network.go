// SPDX-License-Identifier: MIT

package collective

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/katalvlaran/distmul/partition"
	"golang.org/x/sync/errgroup"
)

// Defaults for NetworkConfig.
const (
	DefaultDialTimeout  = 10 * time.Second
	defaultRedialPause  = 50 * time.Millisecond
	abortWriteDeadline  = time.Second
	handshakeReadWindow = 10 * time.Second
)

// NetworkConfig describes one participant of a TCP group.
// All participants share Size and Addr; Rank is unique per process.
type NetworkConfig struct {
	Rank int    // 0 is the hub and listens on Addr; others dial it
	Size int    // number of participants, >= 1
	Addr string // host:port of the hub

	// DialTimeout bounds how long a worker keeps retrying to reach the hub,
	// which may start after it. Zero means DefaultDialTimeout.
	DialTimeout time.Duration

	// Logger receives connection and failure events. Nil discards them.
	Logger *slog.Logger
}

func (c NetworkConfig) validate() error {
	if c.Size < 1 || c.Rank < 0 || c.Rank >= c.Size {
		return fmt.Errorf("rank %d of %d: %w", c.Rank, c.Size, ErrBadRank)
	}

	return nil
}

func (c NetworkConfig) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return c.Logger
}

// Network is a Channel over TCP. Rank 0 is the hub of a star: every
// collective is one round trip in which each worker sends an enter frame
// with its contribution and the hub, once all workers have entered, answers
// each with a release frame holding that worker's result.
//
// The hub reads every worker connection from a dedicated goroutine for the
// life of the Network, so a worker that fails or hangs up after entering a
// round still fails that round before any result is released.
//
// A Network is driven by one goroutine; Abort and Close may be called from
// any goroutine.
type Network struct {
	cfg   NetworkConfig
	log   *slog.Logger
	ln    net.Listener  // hub only
	peers []*peer       // hub only; indexed by rank, peers[0] == nil
	inbox chan inbound  // hub only; fed by one readLoop per worker
	hub   *peer         // workers only
	seq   atomic.Uint64 // collectives entered so far

	mu    sync.Mutex
	cause error
	done  chan struct{} // closed once cause is set
}

// inbound is one frame, or the read error that ended a connection, as the
// hub received it from a worker.
type inbound struct {
	rank  int
	frame enterFrame
	err   error
}

func newNetwork(cfg NetworkConfig) *Network {
	return &Network{cfg: cfg, log: cfg.logger(), done: make(chan struct{})}
}

var _ Channel = (*Network)(nil)

// Listener is a hub that has bound its address but not yet accepted workers.
type Listener struct {
	cfg NetworkConfig
	ln  net.Listener
}

// Listen binds the hub address for rank 0.
func Listen(cfg NetworkConfig) (*Listener, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("Listen: %w", err)
	}
	if cfg.Rank != 0 {
		return nil, fmt.Errorf("Listen: rank %d is not the hub: %w", cfg.Rank, ErrBadRank)
	}
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("Listen %s: %w", cfg.Addr, err)
	}

	return &Listener{cfg: cfg, ln: ln}, nil
}

// Addr is the bound address; useful when Addr asked for port 0.
func (l *Listener) Addr() net.Addr { return l.ln.Addr() }

// Accept waits for all Size-1 workers to join and returns the hub's Network.
// Cancelling ctx closes the listener and fails the call.
func (l *Listener) Accept(ctx context.Context) (*Network, error) {
	n := newNetwork(l.cfg)
	n.ln, n.peers = l.ln, make([]*peer, l.cfg.Size)
	stop := context.AfterFunc(ctx, func() { _ = l.ln.Close() })
	defer stop()

	for joined := 1; joined < l.cfg.Size; {
		conn, err := l.ln.Accept()
		if err != nil {
			n.closeAll()
			if ctx.Err() != nil {
				return nil, fmt.Errorf("Accept: %w", ctx.Err())
			}
			return nil, fmt.Errorf("Accept: %w", err)
		}
		p, err := n.admit(conn)
		if err != nil {
			n.log.Warn("rejected worker", "remote", conn.RemoteAddr().String(), "err", err)
			_ = conn.Close()
			continue
		}
		n.peers[p.rank] = p
		joined++
		n.log.Info("worker joined", "rank", p.rank, "remote", conn.RemoteAddr().String(), "joined", joined, "size", l.cfg.Size)
	}
	_ = l.ln.Close()

	// Each worker sends at most an enter frame, an abort frame and a final
	// read error before the hub drains them.
	n.inbox = make(chan inbound, 3*l.cfg.Size)
	for _, p := range n.peers[1:] {
		go n.readLoop(p)
	}

	return n, nil
}

// readLoop forwards every frame p sends to the hub's inbox until the
// connection fails or the Network breaks.
func (n *Network) readLoop(p *peer) {
	for {
		var f enterFrame
		err := p.recv(&f)
		select {
		case n.inbox <- inbound{rank: p.rank, frame: f, err: err}:
		case <-n.done:
			return
		}
		if err != nil {
			return
		}
	}
}

// admit runs the hello/welcome handshake for a freshly accepted connection.
func (n *Network) admit(conn net.Conn) (*peer, error) {
	p := newPeer(-1, conn)
	_ = conn.SetReadDeadline(time.Now().Add(handshakeReadWindow))
	var h helloFrame
	if err := p.recv(&h); err != nil {
		return nil, err
	}
	_ = conn.SetReadDeadline(time.Time{})

	var reason error
	switch {
	case h.Size != n.cfg.Size:
		reason = fmt.Errorf("worker expects size %d, hub has %d: %w", h.Size, n.cfg.Size, ErrBadRank)
	case h.Rank < 1 || h.Rank >= n.cfg.Size:
		reason = fmt.Errorf("worker rank %d: %w", h.Rank, ErrBadRank)
	case n.peers[h.Rank] != nil:
		reason = fmt.Errorf("rank %d already joined: %w", h.Rank, ErrBadRank)
	}
	if reason != nil {
		_ = p.send(welcomeFrame{Err: reason.Error()})
		return nil, reason
	}
	p.rank = h.Rank
	if err := p.send(welcomeFrame{}); err != nil {
		return nil, err
	}

	return p, nil
}

// Dial connects worker cfg.Rank to the hub, retrying until DialTimeout so
// workers may start before the hub.
func Dial(ctx context.Context, cfg NetworkConfig) (*Network, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("Dial: %w", err)
	}
	if cfg.Rank == 0 {
		return nil, fmt.Errorf("Dial: rank 0 is the hub: %w", ErrBadRank)
	}
	timeout := cfg.DialTimeout
	if timeout <= 0 {
		timeout = DefaultDialTimeout
	}
	dctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var (
		d    net.Dialer
		conn net.Conn
		err  error
	)
	for {
		conn, err = d.DialContext(dctx, "tcp", cfg.Addr)
		if err == nil {
			break
		}
		select {
		case <-dctx.Done():
			return nil, fmt.Errorf("Dial %s: %w", cfg.Addr, err)
		case <-time.After(defaultRedialPause):
		}
	}

	p := newPeer(0, conn)
	if err = p.send(helloFrame{Rank: cfg.Rank, Size: cfg.Size}); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("Dial: %w", err)
	}
	var w welcomeFrame
	if err = p.recv(&w); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("Dial: %w", err)
	}
	if w.Err != "" {
		_ = conn.Close()
		return nil, fmt.Errorf("Dial: hub rejected rank %d: %s: %w", cfg.Rank, w.Err, ErrBadRank)
	}
	n := newNetwork(cfg)
	n.hub = p
	n.log.Info("joined hub", "rank", cfg.Rank, "size", cfg.Size, "addr", cfg.Addr)

	return n, nil
}

// Connect is Listen+Accept on rank 0 and Dial elsewhere.
func Connect(ctx context.Context, cfg NetworkConfig) (*Network, error) {
	if cfg.Rank != 0 {
		return Dial(ctx, cfg)
	}
	l, err := Listen(cfg)
	if err != nil {
		return nil, err
	}

	return l.Accept(ctx)
}

// Rank implements Channel.
func (n *Network) Rank() int { return n.cfg.Rank }

// Size implements Channel.
func (n *Network) Size() int { return n.cfg.Size }

// Broadcast implements Channel.
func (n *Network) Broadcast(ctx context.Context, payload []float64, root int) ([]float64, error) {
	return n.run(ctx, call{kind: KindBroadcast, root: root}, payload)
}

// Scatter implements Channel.
func (n *Network) Scatter(ctx context.Context, payload []float64, plan partition.Plan, root int) ([]float64, error) {
	return n.run(ctx, call{kind: KindScatter, root: root, plan: plan}, payload)
}

// Gather implements Channel.
func (n *Network) Gather(ctx context.Context, local []float64, plan partition.Plan, root int) ([]float64, error) {
	return n.run(ctx, call{kind: KindGather, root: root, plan: plan}, local)
}

// Abort breaks the channel: the hub tells every worker why and hangs up; a
// worker tells the hub, which then breaks the channel for everyone.
func (n *Network) Abort(cause error) {
	if cause == nil {
		cause = ErrClosed
	}
	n.mu.Lock()
	if n.cause != nil {
		n.mu.Unlock()
		return
	}
	n.cause = cause
	close(n.done)
	n.mu.Unlock()

	if !errors.Is(cause, ErrClosed) {
		n.log.Error("collective aborted", "rank", n.cfg.Rank, "err", cause)
	}
	msg := cause.Error()
	if n.hub != nil {
		_ = n.hub.conn.SetWriteDeadline(time.Now().Add(abortWriteDeadline))
		_ = n.hub.send(enterFrame{Seq: n.seq.Load(), Err: msg})
	}
	for _, p := range n.peers {
		if p == nil {
			continue
		}
		_ = p.conn.SetWriteDeadline(time.Now().Add(abortWriteDeadline))
		_ = p.send(releaseFrame{Seq: n.seq.Load(), Err: msg})
	}
	n.closeAll()
}

// Close hangs up without signalling a failure. Further calls fail with ErrClosed.
func (n *Network) Close() error {
	n.mu.Lock()
	if n.cause == nil {
		n.cause = ErrClosed
		close(n.done)
	}
	n.mu.Unlock()
	n.closeAll()

	return nil
}

func (n *Network) closeAll() {
	if n.ln != nil {
		_ = n.ln.Close()
	}
	if n.hub != nil {
		_ = n.hub.close()
	}
	for _, p := range n.peers {
		if p != nil {
			_ = p.close()
		}
	}
}

func (n *Network) err() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.cause
}

// run validates, then performs one round as hub or worker.
func (n *Network) run(ctx context.Context, c call, payload []float64) ([]float64, error) {
	rank := n.cfg.Rank
	if cause := n.err(); cause != nil {
		if errors.Is(cause, ErrClosed) {
			return nil, collectiveErrorf(c.kind, rank, ErrClosed)
		}
		return nil, collectiveErrorf(c.kind, rank, abortedError(cause))
	}
	n.seq.Add(1)
	if err := c.check(n.cfg.Size); err != nil {
		err = collectiveErrorf(c.kind, rank, err)
		n.Abort(err)
		return nil, err
	}
	if err := c.checkPayload(rank, payload); err != nil {
		err = collectiveErrorf(c.kind, rank, err)
		n.Abort(err)
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		n.Abort(fmt.Errorf("rank %d: %w", rank, context.Cause(ctx)))
		return nil, collectiveErrorf(c.kind, rank, err)
	}
	stop := context.AfterFunc(ctx, func() {
		n.Abort(fmt.Errorf("rank %d: %w", rank, context.Cause(ctx)))
	})
	defer stop()

	n.log.Debug("collective enter", "rank", rank, "seq", n.seq.Load(), "call", c.String())
	var (
		out []float64
		err error
	)
	if rank == 0 {
		out, err = n.hubRound(c, payload)
	} else {
		out, err = n.workerRound(c, payload)
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil, collectiveErrorf(c.kind, rank, ctx.Err())
		}
		if !errors.Is(err, ErrAborted) && !errors.Is(err, ErrMismatch) && !errors.Is(err, ErrPayloadLength) {
			// A lost connection means a peer is gone or hung up after an abort.
			cause := n.err()
			if cause == nil {
				cause = err
			}
			err = abortedError(cause)
		}
		n.Abort(err)
		return nil, collectiveErrorf(c.kind, rank, err)
	}

	return out, nil
}

// hubRound collects every worker's enter frame, checks agreement, then
// releases each worker with its result. Any failure a worker reports, or a
// lost connection, fails the round as long as no result has been released.
func (n *Network) hubRound(c call, payload []float64) ([]float64, error) {
	seq := n.seq.Load()
	slots := make([][]float64, n.cfg.Size)
	slots[0] = c.contribution(0, payload)

	entered := make([]bool, n.cfg.Size)
	for waiting := n.cfg.Size - 1; waiting > 0; waiting-- {
		in, err := n.next()
		if err != nil {
			return nil, err
		}
		if entered[in.rank] {
			return nil, in.failure()
		}
		if err = n.enter(in, seq, c, slots); err != nil {
			return nil, err
		}
		entered[in.rank] = true
	}
	// Everyone entered; a worker may still have failed while it waited.
	select {
	case in := <-n.inbox:
		return nil, in.failure()
	default:
	}

	var g errgroup.Group
	for r := 1; r < n.cfg.Size; r++ {
		g.Go(func() error {
			return n.peers[r].send(releaseFrame{Seq: seq, Payload: c.deliver(r, slots)})
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return c.deliver(0, slots), nil
}

// next waits for the next inbound frame or for the Network to break.
func (n *Network) next() (inbound, error) {
	select {
	case in := <-n.inbox:
		return in, nil
	case <-n.done:
		return inbound{}, abortedError(n.err())
	}
}

// enter records in as worker in.rank's entry into collective seq.
func (n *Network) enter(in inbound, seq uint64, c call, slots [][]float64) error {
	if in.err != nil || in.frame.Err != "" {
		return in.failure()
	}
	f := in.frame
	got := call{kind: f.Kind, root: f.Root, plan: f.Plan}
	if f.Seq != seq || !got.agrees(c) {
		return fmt.Errorf("rank %d entered #%d %s, hub entered #%d %s: %w", in.rank, f.Seq, got, seq, c, ErrMismatch)
	}
	if err := c.checkPayload(in.rank, f.Payload); err != nil {
		return err
	}
	if got.kind == KindGather || in.rank == c.root {
		slots[in.rank] = clonePayload(f.Payload)
	}

	return nil
}

// failure is the error for a frame that cannot be a valid entry: a lost
// connection, a worker's abort, or a second entry into the same round.
func (in inbound) failure() error {
	switch {
	case in.err != nil:
		return in.err
	case in.frame.Err != "":
		return abortedError(fmt.Errorf("rank %d: %s", in.rank, in.frame.Err))
	default:
		return fmt.Errorf("rank %d entered #%d twice: %w", in.rank, in.frame.Seq, ErrMismatch)
	}
}

// workerRound sends this worker's enter frame and waits for its release.
func (n *Network) workerRound(c call, payload []float64) ([]float64, error) {
	rank := n.cfg.Rank
	seq := n.seq.Load()
	f := enterFrame{Seq: seq, Kind: c.kind, Root: c.root, Plan: c.plan, Payload: c.contribution(rank, payload)}
	if err := n.hub.send(f); err != nil {
		return nil, err
	}
	var rel releaseFrame
	if err := n.hub.recv(&rel); err != nil {
		return nil, err
	}
	if rel.Err != "" {
		return nil, abortedError(fmt.Errorf("hub: %s", rel.Err))
	}
	if rel.Seq != seq {
		return nil, fmt.Errorf("release #%d for call #%d: %w", rel.Seq, seq, ErrMismatch)
	}

	switch c.kind {
	case KindGather:
		if rank != c.root {
			return nil, nil
		}
		if len(rel.Payload) != c.plan.Total() {
			return nil, fmt.Errorf("gathered len=%d, plan total=%d: %w", len(rel.Payload), c.plan.Total(), ErrPayloadLength)
		}
	case KindScatter:
		if want := c.plan[rank].Count; len(rel.Payload) != want {
			return nil, fmt.Errorf("scattered len=%d, plan count=%d: %w", len(rel.Payload), want, ErrPayloadLength)
		}
	}

	return clonePayload(rel.Payload), nil
}
