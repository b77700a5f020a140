package domain

import "time"

const (
	// ActivityInfo marks routine lifecycle events (e.g. a tool call starting).
	ActivityInfo ActivityKind = "info"

	// ActivitySuccess marks successfully completed operations.
	ActivitySuccess ActivityKind = "success"

	// ActivityError marks failed operations.
	ActivityError ActivityKind = "error"
)

// ActivityKind classifies an activity log entry.
type ActivityKind string

// ActivityEntry is one record in the bounded, most-recent-first activity log
// kept by the tool client for observability.
type ActivityEntry struct {
	// Timestamp is when the activity was recorded.
	Timestamp time.Time `json:"timestamp"`

	// Message is a short human-readable description of the activity.
	Message string `json:"message"`

	// Kind classifies the entry.
	Kind ActivityKind `json:"kind"`

	// Data optionally carries the parameters or result associated with the activity.
	Data any `json:"data,omitempty"`
}
