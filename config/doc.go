// Package config holds the settings of the distmul command: operand shapes
// and values, participant count, transport and output. Settings are read
// from TOML with github.com/pelletier/go-toml/v2 on top of Default(), so a
// file only needs the keys it changes; command-line flags are layered on
// top by the caller.
//
// Example file:
//
//	[matrix]
//	a_rows = 1000
//	a_cols = 1000
//	b_rows = 1000
//	b_cols = 800
//
//	[run]
//	participants = 4
//
//	[transport]
//	kind = "tcp"
//	addr = "127.0.0.1:7946"
//	dial_timeout = "10s"
package config
