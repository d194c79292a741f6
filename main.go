// ./main.go
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/xkilldash9x/numo/cmd"
)

// osExit allows mocking os.Exit in tests.
var osExit = os.Exit

// main is the entry point for the numo CLI application.
func main() {
	// Cancel the run on SIGINT/SIGTERM; the scorer checks the context between lines.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := cmd.Execute(ctx)
	stop()

	osExit(exitCode(err))
}

// exitCode maps a command error to the process exit status. cmd.Execute has
// already reported the error.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	default:
		return 1
	}
}
