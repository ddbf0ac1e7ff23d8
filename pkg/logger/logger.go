// Package logger holds the process-wide structured logger for the
// skillmarket API.
package logger

import (
	"log/slog"
	"os"
)

var Log *slog.Logger

// Init wires Log to a JSON handler on stdout. Call once at startup,
// before the router starts serving.
func Init() {
	Log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}
