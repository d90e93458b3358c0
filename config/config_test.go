// SPDX-License-Identifier: MIT

package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/katalvlaran/distmul/config"
	"github.com/katalvlaran/distmul/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := config.Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, engine.Dims{ARows: 1000, ACols: 1000, BRows: 1000, BCols: 800}, c.Dims())
	assert.Equal(t, 4, c.Run.Participants)
	assert.Equal(t, config.TransportLocal, c.Transport.Kind)
	assert.Equal(t, 10, c.Output.PreviewRows)
	assert.Equal(t, 0.0, c.Matrix.Min)
	assert.Equal(t, 100.0, c.Matrix.Max)
}

func TestDecode_OverridesOnlyGivenKeys(t *testing.T) {
	src := `
[matrix]
a_rows = 6
b_cols = 3

[transport]
kind = "tcp"
rank = 2
dial_timeout = "250ms"
`
	c, err := config.Decode(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 6, c.Matrix.ARows)
	assert.Equal(t, 1000, c.Matrix.ACols)
	assert.Equal(t, 3, c.Matrix.BCols)
	assert.Equal(t, config.TransportTCP, c.Transport.Kind)

	nc := c.NetworkConfig()
	assert.Equal(t, 2, nc.Rank)
	assert.Equal(t, 4, nc.Size)
	assert.Equal(t, 250*time.Millisecond, nc.DialTimeout)
	assert.Equal(t, config.DefaultAddr, nc.Addr)
	require.NoError(t, c.Validate())
}

func TestDecode_Errors(t *testing.T) {
	_, err := config.Decode(strings.NewReader("[matrix]\nrows = 3\n"))
	assert.Error(t, err, "unknown keys are rejected")

	_, err = config.Decode(strings.NewReader("[transport]\ndial_timeout = \"soon\"\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "distmul.toml")
	require.NoError(t, os.WriteFile(path, []byte("[run]\nparticipants = 7\n"), 0o600))
	c, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, c.Run.Participants)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWrite_RoundTripsDefault(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, config.Default().Write(&buf))
	assert.Contains(t, buf.String(), "dial_timeout")
	assert.Contains(t, buf.String(), "10s")

	c, err := config.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), c)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*config.Config){
		"negative dim":      func(c *config.Config) { c.Matrix.BCols = -1 },
		"max below min":     func(c *config.Config) { c.Matrix.Max = -1 },
		"no participants":   func(c *config.Config) { c.Run.Participants = 0 },
		"no kernel workers": func(c *config.Config) { c.Run.KernelWorkers = 0 },
		"negative preview":  func(c *config.Config) { c.Output.PreviewCols = -1 },
		"unknown transport": func(c *config.Config) { c.Transport.Kind = "udp" },
		"rank out of range": func(c *config.Config) {
			c.Transport.Kind = config.TransportTCP
			c.Transport.Rank = 4
		},
		"empty addr": func(c *config.Config) {
			c.Transport.Kind = config.TransportTCP
			c.Transport.Addr = ""
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := config.Default()
			mutate(&c)
			assert.ErrorIs(t, c.Validate(), config.ErrInvalid)
		})
	}

	// Inner-dimension mismatches are left to the engine.
	c := config.Default()
	c.Matrix.BRows = 3
	assert.NoError(t, c.Validate())
}
