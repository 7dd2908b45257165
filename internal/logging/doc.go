// Package logging assembles structured slog loggers and formatting helpers used
// across NSSK.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so components can tag log lines
// with the run correlation ID and the Sonarr series being processed. The
// package also provides a no-op logger for tests and wiring code that cannot
// fail.
package logging
