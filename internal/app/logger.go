package app

import (
	"io"
	"log/slog"
)

// levelForVerbosity maps the --verbose setting onto a log level: 0 keeps
// only warnings and errors, 1 adds progress, 2 adds per-folder detail.
func levelForVerbosity(verbose int) slog.Level {
	switch verbose {
	case 0:
		return slog.LevelWarn
	case 2:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// newLogger creates and configures a new slog.Logger instance. It does not
// set the global logger, allowing for isolated logger instances.
func newLogger(verbose int, formatStr string, outW io.Writer) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: levelForVerbosity(verbose)}
	var handler slog.Handler

	if formatStr == "json" {
		handler = slog.NewJSONHandler(outW, handlerOpts)
	} else {
		handler = slog.NewTextHandler(outW, handlerOpts)
	}

	return slog.New(handler)
}
