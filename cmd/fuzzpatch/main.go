package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/asynkron/fuzzpatch/internal/cli"
)

// main bootstraps the fuzzpatch CLI.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code := cli.Execute(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
