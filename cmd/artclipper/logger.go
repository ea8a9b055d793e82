package main

import (
	"log/slog"
	"os"
)

// newLogger returns a structured slog.Logger with the given level.
func newLogger(level slog.Leveler) *slog.Logger {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}
