// SPDX-License-Identifier: MIT

package collective_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/katalvlaran/distmul/collective"
	"github.com/stretchr/testify/require"
)

// testTimeout bounds every test so a lost rendezvous fails instead of hanging.
const testTimeout = 10 * time.Second

// runAll drives each channel from its own goroutine and returns the per-rank
// results and errors.
func runAll(t testing.TB, chans []collective.Channel, fn func(ctx context.Context, ch collective.Channel) ([]float64, error)) ([][]float64, []error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	outs := make([][]float64, len(chans))
	errs := make([]error, len(chans))
	var wg sync.WaitGroup
	for i, ch := range chans {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outs[i], errs[i] = fn(ctx, ch)
		}()
	}
	wg.Wait()

	return outs, errs
}

// groupChannels returns the members of a fresh in-process group.
func groupChannels(t testing.TB, size int) (*collective.Group, []collective.Channel) {
	t.Helper()
	g, err := collective.NewGroup(size)
	require.NoError(t, err)
	chans := make([]collective.Channel, 0, size)
	for _, m := range g.Members() {
		chans = append(chans, m)
	}

	return g, chans
}

// networkChannels connects size participants over loopback TCP.
func networkChannels(t testing.TB, size int) []*collective.Network {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	l, err := collective.Listen(collective.NetworkConfig{Rank: 0, Size: size, Addr: "127.0.0.1:0"})
	require.NoError(t, err)
	addr := l.Addr().String()

	nets := make([]*collective.Network, size)
	errs := make([]error, size)
	var wg sync.WaitGroup
	for r := 1; r < size; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			nets[r], errs[r] = collective.Dial(ctx, collective.NetworkConfig{Rank: r, Size: size, Addr: addr})
		}()
	}
	nets[0], errs[0] = l.Accept(ctx)
	wg.Wait()
	for r, err := range errs {
		require.NoError(t, err, "rank %d", r)
	}
	t.Cleanup(func() {
		for _, n := range nets {
			_ = n.Close()
		}
	})

	return nets
}

func asChannels(nets []*collective.Network) []collective.Channel {
	out := make([]collective.Channel, len(nets))
	for i, n := range nets {
		out[i] = n
	}

	return out
}

// seq returns [from, from+1, ..., from+n-1].
func seq(from, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(from + i)
	}

	return out
}
