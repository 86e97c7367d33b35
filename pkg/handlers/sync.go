package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
)

const (
	syncAttempts = 3
	syncDelay    = 5 * time.Second
)

// SyncCommands runs sync until it succeeds, retrying a fixed number of times. Every failure is logged.
func SyncCommands(ctx context.Context, sync func() error) error {
	return syncWithRetry(ctx, syncAttempts, syncDelay, sync)
}

func syncWithRetry(ctx context.Context, attempts int, delay time.Duration, sync func() error) error {
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = sync(); err == nil {
			slog.Info("alterra: commands registered", slog.Int("commands.count", len(Commands)))
			return nil
		}
		if attempt == attempts {
			break
		}
		slog.Warn("alterra: error while registering commands, retrying",
			slog.Int("attempt", attempt),
			slog.Duration("delay", delay),
			tint.Err(err))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	slog.Error("alterra: giving up on registering commands", slog.Int("attempts", attempts), tint.Err(err))
	return err
}
