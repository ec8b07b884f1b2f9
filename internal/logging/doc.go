// Package logging constructs the slog loggers used throughout filmstrip.
// Console output is a compact key=value line format; JSON output is the
// stdlib JSON handler with normalized field names. Helpers mirror the slog
// attr constructors so call sites stay terse.
package logging
