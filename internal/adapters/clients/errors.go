// Package clients provides the instrumented HTTP client used by sync sources.
package clients

import (
	"errors"
	"fmt"
)

// Transport-level failures. Callers translate them to domain errors.
var (
	// ErrCircuitOpen is returned without contacting the downstream while its breaker is open.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrMaxRetriesExceeded wraps the last failure once every attempt is spent.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)

// StatusError is a retryable HTTP status seen on the last attempt.
type StatusError struct {
	StatusCode int
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("server error: %d", e.StatusCode)
}
