package main

import (
	"context"
	"os/signal"
)

// notifyContext returns a context cancelled by the first shutdown signal.
// Batch renders stop taking files and the server drains its requests.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, shutdownSignals...)
}
