// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"

	"github.com/katalvlaran/distmul/builder"
	"github.com/katalvlaran/distmul/collective"
	"github.com/katalvlaran/distmul/config"
	"github.com/katalvlaran/distmul/engine"
	"github.com/katalvlaran/distmul/matrix"
	"github.com/spf13/cobra"
)

func newRunCmd(a *app) *cobra.Command {
	f := &flagSet{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Multiply as one process: a local group, or one TCP participant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f.apply(cmd.Flags(), &a.cfg)
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			return a.run(cmd.Context())
		},
	}
	f.register(cmd.Flags())

	return cmd
}

// operands generates A and B from the matrix settings. B uses the next seed
// so the two never coincide.
func operands(m config.Matrix) (*matrix.Dense, *matrix.Dense, error) {
	a, err := builder.Dense(m.ARows, m.ACols, builder.WithSeed(m.Seed), builder.WithUniform(m.Min, m.Max))
	if err != nil {
		return nil, nil, fmt.Errorf("generate A: %w", err)
	}
	b, err := builder.Dense(m.BRows, m.BCols, builder.WithSeed(m.Seed+1), builder.WithUniform(m.Min, m.Max))
	if err != nil {
		return nil, nil, fmt.Errorf("generate B: %w", err)
	}

	return a, b, nil
}

func (a *app) run(ctx context.Context) error {
	cfg := a.cfg
	local := cfg.Transport.Kind == config.TransportLocal
	coordinator := local || cfg.Transport.Rank == engine.Coordinator
	out := cfg.Output

	var A, B *matrix.Dense
	if coordinator {
		fmt.Fprintln(a.stdout, "Generating matrices...")
		var err error
		if A, B, err = operands(cfg.Matrix); err != nil {
			return err
		}
		if out.ShowInputs {
			fmt.Fprintln(a.stdout, "Matrix A:")
			if err = matrix.Preview(a.stdout, A, out.PreviewRows, out.PreviewCols); err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, "\nMatrix B:")
			if err = matrix.Preview(a.stdout, B, out.PreviewRows, out.PreviewCols); err != nil {
				return err
			}
			fmt.Fprintln(a.stdout)
		}
	}

	opts := []engine.Option{engine.WithLogger(a.log), engine.WithKernelWorkers(cfg.Run.KernelWorkers)}
	var (
		rep *engine.Report
		err error
	)
	if local {
		rep, err = engine.Multiply(ctx, A, B, cfg.Run.Participants, opts...)
	} else {
		rep, err = a.runTCP(ctx, A, B, opts)
	}
	if err != nil {
		return err
	}
	if !rep.IsCoordinator() {
		return nil
	}

	fmt.Fprintln(a.stdout, "Result matrix C (partial view):")
	if err = matrix.Preview(a.stdout, rep.C, out.PreviewRows, out.PreviewCols); err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, "\nMatrix multiplication completed.")
	fmt.Fprintf(a.stdout, "Time taken: %.6f seconds\n", rep.Seconds())

	return nil
}

func (a *app) runTCP(ctx context.Context, A, B *matrix.Dense, opts []engine.Option) (*engine.Report, error) {
	nc := a.cfg.NetworkConfig()
	nc.Logger = a.log
	n, err := collective.Connect(ctx, nc)
	if err != nil {
		return nil, err
	}
	defer n.Close()

	return engine.Run(ctx, n, a.cfg.Dims(), A, B, opts...)
}
