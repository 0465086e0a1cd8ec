// Package logging assembles the structured slog loggers used across Singe.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and provides small attr helpers so workflow code tags log lines
// uniformly. A no-op logger is available for tests and wiring code that
// cannot fail.
package logging
