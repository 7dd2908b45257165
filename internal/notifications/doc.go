// Package notifications pushes run summaries and failures to ntfy.
//
// NewService returns a no-op implementation when no ntfy topic is configured,
// so callers never need to check whether notifications are enabled.
package notifications
