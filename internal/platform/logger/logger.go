package logger

import (
	"log/slog"
	"os"
)

// New returns the application logger. JSON output so log aggregators can
// index the request_id and entity fields handlers attach.
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
