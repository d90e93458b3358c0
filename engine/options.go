// SPDX-License-Identifier: MIT

package engine

import (
	"io"
	"log/slog"

	"github.com/katalvlaran/distmul/kernel"
)

// PhaseHook observes phase transitions of one participant. It runs on the
// participant's goroutine and must not block.
type PhaseHook func(rank int, p Phase)

// Options holds the effective run configuration.
type Options struct {
	logger        *slog.Logger
	hook          PhaseHook
	kernelWorkers int
}

// Option mutates Options; later options win.
type Option func(*Options)

// WithLogger routes phase transitions (Debug), the coordinator's summary
// (Info) and failures (Error) to l. Nil restores the default discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.logger = l }
}

// WithPhaseHook calls h on every phase transition.
func WithPhaseHook(h PhaseHook) Option {
	return func(o *Options) { o.hook = h }
}

// WithKernelWorkers sets kernel.WithWorkers for the local multiply.
func WithKernelWorkers(n int) Option {
	return func(o *Options) { o.kernelWorkers = n }
}

func gatherOptions(opts ...Option) Options {
	o := Options{kernelWorkers: kernel.DefaultWorkers}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return o
}
