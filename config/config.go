// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/katalvlaran/distmul/builder"
	"github.com/katalvlaran/distmul/collective"
	"github.com/katalvlaran/distmul/engine"
	"github.com/katalvlaran/distmul/matrix"
	"github.com/pelletier/go-toml/v2"
)

// Transport kinds.
const (
	TransportLocal = "local" // goroutines in one process
	TransportTCP   = "tcp"   // one process per participant
)

// Defaults.
const (
	DefaultARows        = 1000
	DefaultACols        = 1000
	DefaultBRows        = 1000
	DefaultBCols        = 800
	DefaultParticipants = 4
	DefaultAddr         = "127.0.0.1:7946"
)

// Config is the full command configuration.
type Config struct {
	Matrix    Matrix    `toml:"matrix"`
	Run       Run       `toml:"run"`
	Transport Transport `toml:"transport"`
	Output    Output    `toml:"output"`
}

// Matrix describes the generated operands.
type Matrix struct {
	ARows int     `toml:"a_rows"`
	ACols int     `toml:"a_cols"`
	BRows int     `toml:"b_rows"`
	BCols int     `toml:"b_cols"`
	Seed  int64   `toml:"seed"`
	Min   float64 `toml:"min"`
	Max   float64 `toml:"max"`
}

// Run sizes the computation.
type Run struct {
	Participants  int `toml:"participants"`
	KernelWorkers int `toml:"kernel_workers"`
}

// Transport selects how participants talk.
type Transport struct {
	Kind        string   `toml:"kind"`
	Rank        int      `toml:"rank"`
	Addr        string   `toml:"addr"`
	DialTimeout Duration `toml:"dial_timeout"`
}

// Output controls what the coordinator prints.
type Output struct {
	PreviewRows int  `toml:"preview_rows"`
	PreviewCols int  `toml:"preview_cols"`
	ShowInputs  bool `toml:"show_inputs"`
}

// Duration is a time.Duration written as a Go duration string ("10s").
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Default returns the stock configuration: A 1000×1000 and B 1000×800 drawn
// from U[0,100), four local participants, 10×10 previews.
func Default() Config {
	return Config{
		Matrix: Matrix{
			ARows: DefaultARows, ACols: DefaultACols,
			BRows: DefaultBRows, BCols: DefaultBCols,
			Seed: builder.DefaultSeed,
			Min:  builder.DefaultMin, Max: builder.DefaultMax,
		},
		Run: Run{Participants: DefaultParticipants, KernelWorkers: 1},
		Transport: Transport{
			Kind:        TransportLocal,
			Addr:        DefaultAddr,
			DialTimeout: Duration(collective.DefaultDialTimeout),
		},
		Output: Output{
			PreviewRows: matrix.DefaultPreviewSize,
			PreviewCols: matrix.DefaultPreviewSize,
			ShowInputs:  true,
		},
	}
}

// Load reads path over Default(). Unknown keys are an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg, err := Decode(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Decode reads TOML from r over Default().
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Write encodes cfg as TOML.
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Dims are the operand shapes as the engine sees them.
func (c Config) Dims() engine.Dims {
	return engine.Dims{
		ARows: c.Matrix.ARows, ACols: c.Matrix.ACols,
		BRows: c.Matrix.BRows, BCols: c.Matrix.BCols,
	}
}

// NetworkConfig is the collective.NetworkConfig for this participant.
func (c Config) NetworkConfig() collective.NetworkConfig {
	return collective.NetworkConfig{
		Rank:        c.Transport.Rank,
		Size:        c.Run.Participants,
		Addr:        c.Transport.Addr,
		DialTimeout: time.Duration(c.Transport.DialTimeout),
	}
}

// Validate checks every field that can be checked without running. Operand
// shapes are validated by the engine on every participant, so a mismatch
// still fails the whole group there.
func (c Config) Validate() error {
	m := c.Matrix
	switch {
	case m.ARows < 0 || m.ACols < 0 || m.BRows < 0 || m.BCols < 0:
		return fmt.Errorf("matrix: negative dimension in %s: %w", c.Dims(), ErrInvalid)
	case m.Max < m.Min:
		return fmt.Errorf("matrix: max %g < min %g: %w", m.Max, m.Min, ErrInvalid)
	case c.Run.Participants < 1:
		return fmt.Errorf("run: participants=%d: %w", c.Run.Participants, ErrInvalid)
	case c.Run.KernelWorkers < 1:
		return fmt.Errorf("run: kernel_workers=%d: %w", c.Run.KernelWorkers, ErrInvalid)
	case c.Output.PreviewRows < 0 || c.Output.PreviewCols < 0:
		return fmt.Errorf("output: negative preview size: %w", ErrInvalid)
	}
	switch c.Transport.Kind {
	case TransportLocal:
	case TransportTCP:
		if c.Transport.Rank < 0 || c.Transport.Rank >= c.Run.Participants {
			return fmt.Errorf("transport: rank %d of %d: %w", c.Transport.Rank, c.Run.Participants, ErrInvalid)
		}
		if c.Transport.Addr == "" {
			return fmt.Errorf("transport: empty addr: %w", ErrInvalid)
		}
	default:
		return fmt.Errorf("transport: unknown kind %q: %w", c.Transport.Kind, ErrInvalid)
	}

	return nil
}
