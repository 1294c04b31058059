package ollama

import (
	"fmt"
)

// RejectedError indicates the upstream returned a non-success status for
// a generation or embedding request.
type RejectedError struct {
	// StatusCode is the HTTP status returned by the upstream
	StatusCode int

	// Body is the (truncated) response body, kept for logging
	Body string
}

// Error implements the error interface.
func (e *RejectedError) Error() string {
	return fmt.Sprintf("upstream rejected request (HTTP %d)", e.StatusCode)
}

// UnavailableError indicates the upstream could not be reached.
type UnavailableError struct {
	// Address is the configured upstream base address
	Address string

	// Cause is the underlying transport error
	Cause error
}

// Error implements the error interface.
func (e *UnavailableError) Error() string {
	return fmt.Sprintf("upstream unavailable at %s", e.Address)
}

// Unwrap returns the underlying error for error chain support.
func (e *UnavailableError) Unwrap() error {
	return e.Cause
}

// ProtocolError indicates the streaming response was malformed or ended
// before the terminal done marker.
type ProtocolError struct {
	// Message describes the protocol violation
	Message string

	// Cause is the underlying error (if any)
	Cause error
}

// Error implements the error interface.
func (e *ProtocolError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("upstream protocol error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("upstream protocol error: %s", e.Message)
}

// Unwrap returns the underlying error for error chain support.
func (e *ProtocolError) Unwrap() error {
	return e.Cause
}
