// SPDX-License-Identifier: MIT

package main

import (
	"io"
	"log/slog"
	"time"

	"github.com/katalvlaran/distmul/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// app is the state shared by subcommands after the root pre-run.
type app struct {
	stdout, stderr io.Writer

	configPath string
	verbose    bool
	debug      bool
	quiet      bool

	cfg config.Config
	log *slog.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr, cfg: config.Default()}
	root := &cobra.Command{
		Use:           "distmul",
		Short:         "Distributed dense matrix multiplication",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.log = newLogger(a.stderr, LevelFromFlags(a.debug, a.verbose, a.quiet))
			if a.configPath != "" {
				cfg, err := config.Load(a.configPath)
				if err != nil {
					return err
				}
				a.cfg = cfg
			}
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "TOML configuration file")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log progress")
	pf.BoolVar(&a.debug, "vv", false, "log every phase and connection")
	pf.BoolVarP(&a.quiet, "quiet", "q", false, "log errors only")

	root.AddCommand(newRunCmd(a), newLaunchCmd(a), newConfigCmd(a))

	return root
}

func newConfigCmd(a *app) *cobra.Command {
	f := &flagSet{}
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f.apply(cmd.Flags(), &a.cfg)
			return a.cfg.Write(a.stdout)
		},
	}
	f.register(cmd.Flags())

	return cmd
}

// flagSet mirrors the config fields that can be overridden per invocation.
// Only flags the user actually set override the file.
type flagSet struct {
	aRows, aCols, bRows, bCols int
	seed                       int64
	min, max                   float64
	participants, workers      int
	transport, addr            string
	rank                       int
	previewRows, previewCols   int
	showInputs                 bool
	dialTimeout                time.Duration
}

func (f *flagSet) register(fs *pflag.FlagSet) {
	d := config.Default()
	fs.IntVar(&f.aRows, "a-rows", d.Matrix.ARows, "rows of A")
	fs.IntVar(&f.aCols, "a-cols", d.Matrix.ACols, "columns of A")
	fs.IntVar(&f.bRows, "b-rows", d.Matrix.BRows, "rows of B (must equal --a-cols)")
	fs.IntVar(&f.bCols, "b-cols", d.Matrix.BCols, "columns of B")
	fs.Int64Var(&f.seed, "seed", d.Matrix.Seed, "seed for the generated operands")
	fs.Float64Var(&f.min, "min", d.Matrix.Min, "lower bound of generated values")
	fs.Float64Var(&f.max, "max", d.Matrix.Max, "upper bound (exclusive) of generated values")
	fs.IntVarP(&f.participants, "participants", "p", d.Run.Participants, "number of participants")
	fs.IntVar(&f.workers, "kernel-workers", d.Run.KernelWorkers, "goroutines per participant for the local multiply")
	fs.StringVar(&f.transport, "transport", d.Transport.Kind, `"local" or "tcp"`)
	fs.IntVar(&f.rank, "rank", d.Transport.Rank, "this participant's rank (tcp)")
	fs.StringVar(&f.addr, "addr", d.Transport.Addr, "hub address (tcp)")
	fs.DurationVar(&f.dialTimeout, "dial-timeout", time.Duration(d.Transport.DialTimeout), "how long workers retry the hub (tcp)")
	fs.IntVar(&f.previewRows, "preview-rows", d.Output.PreviewRows, "rows shown in matrix previews")
	fs.IntVar(&f.previewCols, "preview-cols", d.Output.PreviewCols, "columns shown in matrix previews")
	fs.BoolVar(&f.showInputs, "show-inputs", d.Output.ShowInputs, "print previews of A and B")
}

// apply copies every changed flag into cfg.
func (f *flagSet) apply(fs *pflag.FlagSet, cfg *config.Config) {
	set := func(name string, fn func()) {
		if fs.Changed(name) {
			fn()
		}
	}
	set("a-rows", func() { cfg.Matrix.ARows = f.aRows })
	set("a-cols", func() { cfg.Matrix.ACols = f.aCols })
	set("b-rows", func() { cfg.Matrix.BRows = f.bRows })
	set("b-cols", func() { cfg.Matrix.BCols = f.bCols })
	set("seed", func() { cfg.Matrix.Seed = f.seed })
	set("min", func() { cfg.Matrix.Min = f.min })
	set("max", func() { cfg.Matrix.Max = f.max })
	set("participants", func() { cfg.Run.Participants = f.participants })
	set("kernel-workers", func() { cfg.Run.KernelWorkers = f.workers })
	set("transport", func() { cfg.Transport.Kind = f.transport })
	set("rank", func() { cfg.Transport.Rank = f.rank })
	set("addr", func() { cfg.Transport.Addr = f.addr })
	set("preview-rows", func() { cfg.Output.PreviewRows = f.previewRows })
	set("preview-cols", func() { cfg.Output.PreviewCols = f.previewCols })
	set("show-inputs", func() { cfg.Output.ShowInputs = f.showInputs })
	set("dial-timeout", func() { cfg.Transport.DialTimeout = config.Duration(f.dialTimeout) })
}
