package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	app := newCommandContext(defaultDependencies(), os.Stdin, os.Stdout, os.Stderr)
	code := app.execute(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
