package main

import (
	"context"
	"os"

	"github.com/operator-framework/fasb/pkg/lib/signals"
)

func main() {
	ctx, stop := signals.Context(context.Background())
	defer stop()

	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
