package modgraph

import "log/slog"

// Logger is the structured logger used while building module graphs.
// Arguments are key-value pairs:
//
//	logger.Debug("Provider instantiated", "module", "db", "provider", "DB")
//
// *slog.Logger satisfies this interface.
type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
	Debug(msg string, args ...any)
}

// discardLogger returns the logger used when none is configured.
func discardLogger() Logger {
	return slog.New(slog.DiscardHandler)
}
