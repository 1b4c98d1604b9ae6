// Package logging assembles structured slog loggers and formatting helpers used
// across segcheck commands.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes helpers that enforce the warning shape used for
// skipped input (event_type, error_hint, impact). Loggers write to stderr so
// reports on stdout stay machine readable; an optional JSON log file can be
// teed alongside. A no-op logger is provided for tests and library callers.
package logging
