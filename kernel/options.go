// SPDX-License-Identifier: MIT

package kernel

import "fmt"

// DefaultWorkers computes the band on the calling goroutine.
const DefaultWorkers = 1

// Options holds the effective kernel configuration.
type Options struct {
	workers int
}

// Option mutates Options; later options win.
type Option func(*Options)

// WithWorkers splits the band's rows over n goroutines. n < 1 is rejected by
// Multiply and MultiplyInto with ErrInvalidWorkers.
func WithWorkers(n int) Option {
	return func(o *Options) { o.workers = n }
}

// Workers reports the configured worker count.
func (o Options) Workers() int { return o.workers }

// NewOptions resolves opts against the defaults.
func NewOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

func gatherOptions(opts ...Option) Options {
	o := Options{workers: DefaultWorkers}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// Validate reports ErrInvalidWorkers for a worker count below one.
func (o Options) Validate() error {
	if o.workers < 1 {
		return fmt.Errorf("workers=%d: %w", o.workers, ErrInvalidWorkers)
	}

	return nil
}
