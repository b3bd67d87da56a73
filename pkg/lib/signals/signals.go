package signals

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// Context returns a child of parent that is canceled on SIGTERM or
// SIGINT. If a second signal is caught, the program is terminated with
// exit code 1. The returned stop function releases the signal handler.
func Context(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	c := make(chan os.Signal, 2)
	signal.Notify(c, shutdownSignals...)
	go func() {
		select {
		case <-c:
			cancel()
		case <-ctx.Done():
			signal.Stop(c)
			return
		}
		<-c
		os.Exit(1) // second signal. Exit directly.
	}()
	return ctx, func() {
		signal.Stop(c)
		cancel()
	}
}
