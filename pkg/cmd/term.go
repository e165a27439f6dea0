package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// WithTermination returns a context cancelled on SIGTERM or SIGINT.
func WithTermination(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}
