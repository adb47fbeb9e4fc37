package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// handleSignals cancels the run on SIGTERM. SIGINT is logged and otherwise
// ignored so collected output is still printed; children receive it from the
// terminal themselves. The returned stop func releases the handler.
func handleSignals(cancel context.CancelFunc) (stop func()) {
	sigChan := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		for {
			select {
			case sig := <-sigChan:
				if sig == syscall.SIGTERM {
					slog.Info("terminate received, stopping tasks", "signal", sig)
					cancel()
					return
				}
				slog.Warn("interrupt received, waiting for tasks to finish", "signal", sig)
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(sigChan)
		close(done)
	}
}
