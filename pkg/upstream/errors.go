package upstream

import "fmt"

// TransportError represents a failure to complete an HTTP exchange with an
// upstream service: connection refused, DNS failure, or deadline exceeded.
// An HTTP response with an error status is not a TransportError; callers
// interpret status codes themselves.
type TransportError struct {
	// Target is the URL that could not be reached.
	Target string

	// Cause is the underlying transport error.
	Cause error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("upstream request to %s failed: %v", e.Target, e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *TransportError) Unwrap() error {
	return e.Cause
}
