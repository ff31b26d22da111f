package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/podded/podded/cli"
	"github.com/podded/podded/engine/runtime"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:], runtime.Terminal())
	stop()
	os.Exit(code)
}
