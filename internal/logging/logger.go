// Package logging defines the structured-logging interface used by the
// NutriTrack client. The only implementation wraps log/slog.
package logging

import "context"

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Warn(ctx, "chat log is malformed", "date", date, "err", err)
type Logger interface {
	// Debug logs diagnostic details (request ids, cache hits).
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs unusual but non-fatal conditions, e.g. an unreadable
	// transcript that is being treated as absent.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs failures that the user will not see otherwise, such as
	// a local storage write that did not go through.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}
