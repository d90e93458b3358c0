// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/katalvlaran/distmul/config"
	"github.com/katalvlaran/distmul/engine"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newLaunchCmd(a *app) *cobra.Command {
	f := &flagSet{}
	cmd := &cobra.Command{
		Use:   "launch",
		Short: "Run every participant as its own OS process over TCP",
		Long: "launch starts --participants copies of this program with " +
			"`run --transport tcp`, one per rank, and waits for all of them. " +
			"Only the coordinator's output is shown; any failure stops the rest.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f.apply(cmd.Flags(), &a.cfg)
			a.cfg.Transport.Kind = config.TransportTCP
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			return a.launch(cmd.Context())
		},
	}
	f.register(cmd.Flags())

	return cmd
}

func (a *app) launch(ctx context.Context) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("launch: %w", err)
	}
	size := a.cfg.Run.Participants
	a.log.Info("launching", "participants", size, "addr", a.cfg.Transport.Addr)

	g, gctx := errgroup.WithContext(ctx)
	for rank := 0; rank < size; rank++ {
		c := exec.CommandContext(gctx, exe, participantArgs(a.cfg, rank, a.verbosity())...)
		c.Stderr = a.stderr
		if rank == engine.Coordinator {
			c.Stdout = a.stdout
		}
		g.Go(func() error {
			if err := c.Run(); err != nil {
				return fmt.Errorf("rank %d: %w", rank, err)
			}
			return nil
		})
	}

	return g.Wait()
}

// verbosity returns the log flags to forward to participants.
func (a *app) verbosity() []string {
	switch {
	case a.debug:
		return []string{"--vv"}
	case a.verbose:
		return []string{"-v"}
	case a.quiet:
		return []string{"-q"}
	default:
		return nil
	}
}

// participantArgs spells out the full configuration for one rank, so the
// child does not depend on the parent's config file.
func participantArgs(cfg config.Config, rank int, extra []string) []string {
	itoa := strconv.Itoa
	args := []string{
		"run",
		"--transport", config.TransportTCP,
		"--rank", itoa(rank),
		"--participants", itoa(cfg.Run.Participants),
		"--addr", cfg.Transport.Addr,
		"--dial-timeout", time.Duration(cfg.Transport.DialTimeout).String(),
		"--a-rows", itoa(cfg.Matrix.ARows),
		"--a-cols", itoa(cfg.Matrix.ACols),
		"--b-rows", itoa(cfg.Matrix.BRows),
		"--b-cols", itoa(cfg.Matrix.BCols),
		"--seed", strconv.FormatInt(cfg.Matrix.Seed, 10),
		"--min", strconv.FormatFloat(cfg.Matrix.Min, 'g', -1, 64),
		"--max", strconv.FormatFloat(cfg.Matrix.Max, 'g', -1, 64),
		"--kernel-workers", itoa(cfg.Run.KernelWorkers),
		"--preview-rows", itoa(cfg.Output.PreviewRows),
		"--preview-cols", itoa(cfg.Output.PreviewCols),
		"--show-inputs=" + strconv.FormatBool(cfg.Output.ShowInputs),
	}

	return append(args, extra...)
}
