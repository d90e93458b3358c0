// SPDX-License-Identifier: MIT

package collective

import (
	"encoding/gob"
	"fmt"
	"net"
	"sync"

	"github.com/katalvlaran/distmul/partition"
)

// helloFrame is the first frame a worker sends after dialing the hub.
type helloFrame struct {
	Rank int
	Size int
}

// welcomeFrame answers a hello; a non-empty Err rejects the worker.
type welcomeFrame struct {
	Err string
}

// enterFrame announces that a worker entered collective Seq and carries its
// contribution. A non-empty Err means the worker failed locally and the hub
// must break the channel.
type enterFrame struct {
	Seq     uint64
	Kind    Kind
	Root    int
	Plan    partition.Plan
	Payload []float64
	Err     string
}

// releaseFrame carries a worker's result for collective Seq, or the reason
// the channel broke.
type releaseFrame struct {
	Seq     uint64
	Payload []float64
	Err     string
}

// peer is a gob-framed connection. Sends are serialized because an abort may
// race with a collective on the same connection; receives happen from one
// goroutine at a time by construction.
type peer struct {
	rank int
	conn net.Conn
	dec  *gob.Decoder

	wmu sync.Mutex
	enc *gob.Encoder
}

func newPeer(rank int, conn net.Conn) *peer {
	return &peer{rank: rank, conn: conn, enc: gob.NewEncoder(conn), dec: gob.NewDecoder(conn)}
}

func (p *peer) send(v any) error {
	p.wmu.Lock()
	defer p.wmu.Unlock()
	if err := p.enc.Encode(v); err != nil {
		return fmt.Errorf("send to rank %d: %w", p.rank, err)
	}

	return nil
}

func (p *peer) recv(v any) error {
	if err := p.dec.Decode(v); err != nil {
		return fmt.Errorf("recv from rank %d: %w", p.rank, err)
	}

	return nil
}

func (p *peer) close() error { return p.conn.Close() }
