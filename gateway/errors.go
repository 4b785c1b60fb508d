package gateway

import (
	"errors"
	"fmt"
)

// Failure taxonomy for remote resource calls. Expected domain outcomes
// (unauthorized, forbidden, missing, validation) are returned as typed
// errors so callers can switch on them; only transport-level failures
// surface as NetworkError.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrServer       = errors.New("server error")
)

// ValidationError carries the backend's message for a 400/422 response.
// It is shown inline near the offending field or action, never as a
// generic failure toast.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// NetworkError wraps transport failures (connection refused, timeouts,
// malformed response bodies). The triggering action is never retried
// automatically.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsUnauthorized reports whether err is the 401 outcome a token refresh
// may recover from. The single-retry policy applies to this and only
// this failure.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
