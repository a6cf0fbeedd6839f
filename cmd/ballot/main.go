// Command ballot is the campus election client.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := newCLI(ctx, os.Stdin, os.Stdout, os.Stderr).run(os.Args[1:])
	stop()
	os.Exit(code)
}
