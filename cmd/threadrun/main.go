// Command threadrun is the CLI entrypoint.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dkozlow/threadrun/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	os.Exit(exitCode(ctx, cmd.Run(ctx, os.Args[1:])))
}

// exitCode maps the CLI result onto a process exit status: 0 on success,
// 130 when interrupted by a signal, 1 for everything else.
func exitCode(ctx context.Context, err error) int {
	switch {
	case err == nil:
		return 0
	case ctx.Err() != nil:
		fmt.Fprintln(os.Stderr, "threadrun: interrupted")
		return 130
	default:
		fmt.Fprintf(os.Stderr, "threadrun: %v\n", err)
		return 1
	}
}
