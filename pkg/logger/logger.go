package logger

import (
	"log/slog"
	"os"
)

// Log is usable at import time so library code and tests can log without
// setup. Init reconfigures it with the production handler.
var Log = slog.New(slog.NewJSONHandler(os.Stdout, nil))

func Init() {
	// JSON handler for production-ready logging
	Log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}
