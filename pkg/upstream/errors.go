package upstream

import "fmt"

// Error represents a failed upstream completion call.
//
// StatusCode is the upstream HTTP status for protocol-level failures and
// zero for transport-level failures (connection refused, timeout, etc.).
// Message carries the upstream error text when available.
type Error struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("upstream request failed: %s", e.Message)
}
