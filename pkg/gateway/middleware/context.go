package middleware

// contextKey is a private type for context values set by middleware.
type contextKey string

const (
	// RequestIDKey carries the request correlation id.
	RequestIDKey contextKey = "request_id"

	// StartTimeKey carries the request start time.
	StartTimeKey contextKey = "start_time"
)
