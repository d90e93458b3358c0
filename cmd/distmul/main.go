// Command distmul multiplies two generated dense matrices by splitting A's
// rows over P participants.
//
// Usage:
//
//	distmul run                          # 4 goroutines, A 1000x1000, B 1000x800
//	distmul run -p 8 --a-rows 2000       # override shapes and participants
//	distmul run --transport tcp --rank 1 --participants 3 --addr host:7946
//	distmul launch -p 4                  # spawn 4 OS processes over loopback TCP
//	distmul config                       # print the effective configuration
//
// Settings come from the built-in defaults, then the --config TOML file,
// then flags. The coordinator prints a preview of A and B, a preview of C
// and the time taken by broadcast through gather.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
