// Package logkey holds the shared slog attribute keys.
package logkey

const (
	TraceID = "trace_id"
	ERROR   = "error"
)
