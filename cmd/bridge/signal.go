package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// WaitForShutdown blocks until SIGINT or SIGTERM. Each SIGHUP in the
// meantime calls onReload.
func WaitForShutdown(onReload func()) {
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, os.Interrupt)
	defer signal.Stop(sc)

	for sig := range sc {
		if sig == syscall.SIGHUP {
			slog.Info("Reload signal received")
			if onReload != nil {
				onReload()
			}
			continue
		}
		slog.Info("Shutdown signal received", "signal", sig.String())
		return
	}
}
