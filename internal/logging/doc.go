// Package logging assembles structured slog loggers and formatting helpers used
// across storyshort.
//
// It owns the console and JSON handlers, centralizes level and output plumbing,
// and exposes context helpers that tag log lines with composition IDs, stages,
// and request correlation IDs. A no-op logger is provided for tests and for
// wiring code that cannot fail.
package logging
